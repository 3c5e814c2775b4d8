package usecase

import (
	"context"
	"sort"
	"time"

	"vet-clinic-analytics/internal/delivery/dto"
	"vet-clinic-analytics/internal/domain/repository"
	"vet-clinic-analytics/pkg/metrics"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// DefaultAlertHorizonDays bounds how far ahead vaccination alerts look.
	DefaultAlertHorizonDays = 30

	topVaccineLimit = 5

	urgentWindowDays   = 7
	upcomingWindowDays = 15
)

type KPIUsecase interface {
	DashboardSummary(ctx context.Context) (*dto.DashboardSummary, error)
	AppointmentsByMonth(ctx context.Context, year int) ([]dto.MonthlyAppointmentStat, error)
	PetsBySpecies(ctx context.Context) ([]dto.SpeciesStat, error)
	DoctorPerformance(ctx context.Context, month, year int) ([]dto.DoctorPerformanceStat, error)
	VaccinationStatistics(ctx context.Context) (*dto.VaccinationStats, error)
	VaccinationAlerts(ctx context.Context, horizonDays int) ([]dto.VaccinationAlert, error)
}

type kpiUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

func NewKPIUsecase(db *gorm.DB, log *logrus.Logger, analyticsRepo repository.AnalyticsRepository) KPIUsecase {
	return &kpiUsecase{
		db:            db,
		log:           log,
		analyticsRepo: analyticsRepo,
		now:           time.Now,
	}
}

// today truncates the clock to the store-local calendar date.
func (u *kpiUsecase) today() time.Time {
	t := u.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b. Both dates are
// normalized to UTC midnight first, so a DST transition in the local
// zone cannot shorten or stretch the count.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

func (u *kpiUsecase) DashboardSummary(ctx context.Context) (*dto.DashboardSummary, error) {
	totalPets, err := u.analyticsRepo.CountPets(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count pets: %+v", err)
		return nil, err
	}

	totalClients, err := u.analyticsRepo.CountClients(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count clients: %+v", err)
		return nil, err
	}

	totalAppointments, err := u.analyticsRepo.CountAppointments(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, err
	}

	appointmentsToday, err := u.analyticsRepo.CountAppointmentsOn(ctx, u.db, u.today())
	if err != nil {
		u.log.Warnf("Failed to count today's appointments: %+v", err)
		return nil, err
	}

	// The schema carries no pricing data. Revenue stays zero with
	// RevenueAvailable false instead of a fabricated figure.
	return &dto.DashboardSummary{
		TotalPets:         totalPets,
		TotalClients:      totalClients,
		TotalAppointments: totalAppointments,
		AppointmentsToday: appointmentsToday,
		MonthlyRevenue:    0,
		MonthlyGrowth:     0,
		RevenueAvailable:  false,
	}, nil
}

func (u *kpiUsecase) AppointmentsByMonth(ctx context.Context, year int) ([]dto.MonthlyAppointmentStat, error) {
	if year <= 0 {
		year = u.now().Year()
	}

	rows, err := u.analyticsRepo.AppointmentsByMonth(ctx, u.db, year)
	if err != nil {
		u.log.Warnf("Failed to aggregate appointments by month: %+v", err)
		return nil, err
	}

	stats := make([]dto.MonthlyAppointmentStat, len(rows))
	for i, row := range rows {
		stats[i] = dto.MonthlyAppointmentStat{
			Month:          time.Month(row.Month).String(),
			MonthNumber:    row.Month,
			Year:           row.Year,
			Total:          row.Total,
			Completed:      row.Completed,
			Cancelled:      row.Cancelled,
			CompletionRate: metrics.Rate(row.Completed, row.Total),
		}
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].MonthNumber < stats[j].MonthNumber
	})

	return stats, nil
}

func (u *kpiUsecase) PetsBySpecies(ctx context.Context) ([]dto.SpeciesStat, error) {
	totalPets, err := u.analyticsRepo.CountPets(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count pets: %+v", err)
		return nil, err
	}

	rows, err := u.analyticsRepo.PetsBySpecies(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to aggregate pets by species: %+v", err)
		return nil, err
	}

	stats := make([]dto.SpeciesStat, len(rows))
	for i, row := range rows {
		stats[i] = dto.SpeciesStat{
			Species:    row.Species,
			TotalPets:  row.Total,
			Percentage: metrics.Rate(row.Total, totalPets),
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalPets > stats[j].TotalPets
	})

	return stats, nil
}

// DoctorPerformance reports doctors with at least one appointment in the
// period, ordered by total appointments descending with doctor id as the
// tie-break. Average diagnoses is total diagnoses over completed
// appointments, 0 when nothing was completed.
func (u *kpiUsecase) DoctorPerformance(ctx context.Context, month, year int) ([]dto.DoctorPerformanceStat, error) {
	if month <= 0 {
		month = int(u.now().Month())
	}
	if year <= 0 {
		year = u.now().Year()
	}

	rows, err := u.analyticsRepo.DoctorPerformance(ctx, u.db, month, year)
	if err != nil {
		u.log.Warnf("Failed to aggregate doctor performance: %+v", err)
		return nil, err
	}

	stats := make([]dto.DoctorPerformanceStat, len(rows))
	for i, row := range rows {
		stats[i] = dto.DoctorPerformanceStat{
			DoctorID:              row.DoctorID,
			DoctorName:            row.DoctorName,
			TotalAppointments:     row.Total,
			CompletedAppointments: row.Completed,
			CompletionRate:        metrics.Rate(row.Completed, row.Total),
			AvgDiagnosesPerVisit:  metrics.Average(row.Diagnoses, row.Completed),
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].TotalAppointments != stats[j].TotalAppointments {
			return stats[i].TotalAppointments > stats[j].TotalAppointments
		}
		return stats[i].DoctorID < stats[j].DoctorID
	})

	return stats, nil
}

func (u *kpiUsecase) VaccinationStatistics(ctx context.Context) (*dto.VaccinationStats, error) {
	today := u.today()

	total, err := u.analyticsRepo.CountVaccinations(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count vaccinations: %+v", err)
		return nil, err
	}

	overdue, err := u.analyticsRepo.CountVaccinationsOverdue(ctx, u.db, today)
	if err != nil {
		u.log.Warnf("Failed to count overdue vaccinations: %+v", err)
		return nil, err
	}

	upcoming, err := u.analyticsRepo.CountVaccinationsDueWithin(ctx, u.db, today, DefaultAlertHorizonDays)
	if err != nil {
		u.log.Warnf("Failed to count upcoming vaccinations: %+v", err)
		return nil, err
	}

	topRows, err := u.analyticsRepo.TopVaccines(ctx, u.db, topVaccineLimit)
	if err != nil {
		u.log.Warnf("Failed to rank vaccines: %+v", err)
		return nil, err
	}

	topVaccines := make([]dto.VaccineUsage, len(topRows))
	for i, row := range topRows {
		topVaccines[i] = dto.VaccineUsage{Vaccine: row.Name, Count: row.Total}
	}

	return &dto.VaccinationStats{
		TotalVaccinations:    total,
		OverdueVaccinations:  overdue,
		UpcomingVaccinations: upcoming,
		TopVaccines:          topVaccines,
	}, nil
}

// VaccinationAlerts classifies every entry due within the horizon.
// Entries without a scheduled next dose never appear. Overdue entries
// sort first, ascending by how overdue they are; the rest follow the
// next-due date ascending.
func (u *kpiUsecase) VaccinationAlerts(ctx context.Context, horizonDays int) ([]dto.VaccinationAlert, error) {
	if horizonDays <= 0 {
		horizonDays = DefaultAlertHorizonDays
	}

	today := u.today()
	until := today.AddDate(0, 0, horizonDays)

	rows, err := u.analyticsRepo.VaccinationAlerts(ctx, u.db, until)
	if err != nil {
		u.log.Warnf("Failed to load vaccination alerts: %+v", err)
		return nil, err
	}

	alerts := make([]dto.VaccinationAlert, len(rows))
	for i, row := range rows {
		daysToDue := daysBetween(today, row.NextDueDate)

		urgency := dto.UrgencyScheduled
		overdueDays := 0
		switch {
		case daysToDue < 0:
			urgency = dto.UrgencyOverdue
			overdueDays = -daysToDue
		case daysToDue <= urgentWindowDays:
			urgency = dto.UrgencyUrgent
		case daysToDue <= upcomingWindowDays:
			urgency = dto.UrgencyUpcoming
		}

		alert := dto.VaccinationAlert{
			PetID:       row.PetID,
			PetName:     row.PetName,
			OwnerName:   row.OwnerName,
			OwnerPhone:  row.OwnerPhone,
			Vaccine:     row.Vaccine,
			NextDueDate: row.NextDueDate.Format("2006-01-02"),
			DaysToDue:   daysToDue,
			OverdueDays: overdueDays,
			Urgency:     urgency,
		}
		if !row.AdministeredAt.IsZero() {
			alert.LastAdministered = row.AdministeredAt.Format("2006-01-02")
		}
		alerts[i] = alert
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		overdueI, overdueJ := alerts[i].DaysToDue < 0, alerts[j].DaysToDue < 0
		if overdueI != overdueJ {
			return overdueI
		}
		if overdueI {
			return alerts[i].OverdueDays < alerts[j].OverdueDays
		}
		return alerts[i].NextDueDate < alerts[j].NextDueDate
	})

	return alerts, nil
}
