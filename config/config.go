package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	Report ReportConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	RunMigrations  bool
	MigrationsPath string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	KPICache time.Duration
}

// ReportConfig carries the documented estimation constants used by the
// report composer. The operational schema has no pricing or room data,
// so these values back the figures the reports flag as estimates.
type ReportConfig struct {
	ConsultationFee   float64
	OperatingCostRate float64
	ConsultationRooms int
	DailyWorkingHours int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	cacheTTL, err := time.ParseDuration(viper.GetString("KPI_CACHE_TTL"))
	if err != nil {
		cacheTTL = 60 * time.Second
	}

	viper.SetDefault("REPORT_CONSULTATION_FEE", 500.0)
	viper.SetDefault("REPORT_OPERATING_COST_RATE", 0.30)
	viper.SetDefault("REPORT_CONSULTATION_ROOMS", 3)
	viper.SetDefault("REPORT_DAILY_WORKING_HOURS", 8)
	viper.SetDefault("DB_MIGRATIONS_PATH", "db/migrations")

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:           viper.GetString("DB_HOST"),
			Port:           viper.GetString("DB_PORT"),
			User:           viper.GetString("DB_USER"),
			Password:       viper.GetString("DB_PASSWORD"),
			Name:           viper.GetString("DB_NAME"),
			RunMigrations:  viper.GetBool("DB_RUN_MIGRATIONS"),
			MigrationsPath: viper.GetString("DB_MIGRATIONS_PATH"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			KPICache: cacheTTL,
		},
		Report: ReportConfig{
			ConsultationFee:   viper.GetFloat64("REPORT_CONSULTATION_FEE"),
			OperatingCostRate: viper.GetFloat64("REPORT_OPERATING_COST_RATE"),
			ConsultationRooms: viper.GetInt("REPORT_CONSULTATION_ROOMS"),
			DailyWorkingHours: viper.GetInt("REPORT_DAILY_WORKING_HOURS"),
		},
	}

	return config, nil
}
