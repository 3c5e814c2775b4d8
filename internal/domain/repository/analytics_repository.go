package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// MonthlyAppointmentRow is one month of grouped appointment counts.
type MonthlyAppointmentRow struct {
	Month     int   `gorm:"column:month"`
	Year      int   `gorm:"column:year"`
	Total     int64 `gorm:"column:total"`
	Completed int64 `gorm:"column:completed"`
	Cancelled int64 `gorm:"column:cancelled"`
}

// SpeciesCountRow is the pet count for one species.
type SpeciesCountRow struct {
	Species string `gorm:"column:species"`
	Total   int64  `gorm:"column:total"`
}

// DoctorPerformanceRow aggregates one doctor's appointments for a period.
// Diagnoses is the total diagnosis count over the doctor's appointments
// in the same period.
type DoctorPerformanceRow struct {
	DoctorID   int    `gorm:"column:doctor_id"`
	DoctorName string `gorm:"column:doctor_name"`
	Total      int64  `gorm:"column:total"`
	Completed  int64  `gorm:"column:completed"`
	Diagnoses  int64  `gorm:"column:diagnoses"`
}

// NameCountRow is a generic (label, count) aggregation row used for
// top-vaccine, top-diagnosis and top-treatment queries.
type NameCountRow struct {
	Name  string `gorm:"column:name"`
	Total int64  `gorm:"column:total"`
}

// VaccinationAlertRow joins a due vaccination entry with its pet, owner
// and vaccine. Entries with a NULL next-due date are filtered out at the
// query level.
type VaccinationAlertRow struct {
	PetID          int       `gorm:"column:pet_id"`
	PetName        string    `gorm:"column:pet_name"`
	OwnerName      string    `gorm:"column:owner_name"`
	OwnerPhone     string    `gorm:"column:owner_phone"`
	Vaccine        string    `gorm:"column:vaccine"`
	AdministeredAt time.Time `gorm:"column:administered_at"`
	NextDueDate    time.Time `gorm:"column:next_due_date"`
}

// StatusBreakdownRow counts appointments in a period by status.
type StatusBreakdownRow struct {
	Total     int64 `gorm:"column:total"`
	Pending   int64 `gorm:"column:pending"`
	Confirmed int64 `gorm:"column:confirmed"`
	Completed int64 `gorm:"column:completed"`
	Cancelled int64 `gorm:"column:cancelled"`
}

// PeriodFilter narrows aggregate queries to an inclusive calendar date
// range with optional dimension filters.
type PeriodFilter struct {
	Start    time.Time
	End      time.Time
	DoctorID *int
	Species  *string
}

// AnalyticsRepository is the read-only aggregation query layer over the
// operational store. Every call runs against the session it is handed and
// returns typed rows; no state is kept between calls.
type AnalyticsRepository interface {
	CountPets(ctx context.Context, db *gorm.DB) (int64, error)
	CountClients(ctx context.Context, db *gorm.DB) (int64, error)
	CountAppointments(ctx context.Context, db *gorm.DB) (int64, error)
	CountAppointmentsOn(ctx context.Context, db *gorm.DB, day time.Time) (int64, error)

	AppointmentsByMonth(ctx context.Context, db *gorm.DB, year int) ([]MonthlyAppointmentRow, error)
	PetsBySpecies(ctx context.Context, db *gorm.DB) ([]SpeciesCountRow, error)
	DoctorPerformance(ctx context.Context, db *gorm.DB, month, year int) ([]DoctorPerformanceRow, error)

	CountVaccinations(ctx context.Context, db *gorm.DB) (int64, error)
	CountVaccinationsOverdue(ctx context.Context, db *gorm.DB, today time.Time) (int64, error)
	CountVaccinationsDueWithin(ctx context.Context, db *gorm.DB, today time.Time, days int) (int64, error)
	TopVaccines(ctx context.Context, db *gorm.DB, limit int) ([]NameCountRow, error)
	VaccinationAlerts(ctx context.Context, db *gorm.DB, until time.Time) ([]VaccinationAlertRow, error)

	AppointmentStatusBreakdown(ctx context.Context, db *gorm.DB, filter PeriodFilter) (StatusBreakdownRow, error)
	CountCompletedAppointments(ctx context.Context, db *gorm.DB, filter PeriodFilter) (int64, error)
	CountAppointmentsBetween(ctx context.Context, db *gorm.DB, filter PeriodFilter) (int64, error)
	TopDiagnoses(ctx context.Context, db *gorm.DB, filter PeriodFilter, limit int) ([]NameCountRow, error)
	TopTreatments(ctx context.Context, db *gorm.DB, filter PeriodFilter, limit int) ([]NameCountRow, error)
	CountVaccinationsBetween(ctx context.Context, db *gorm.DB, start, end time.Time) (int64, error)
}
