package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-clinic-analytics/internal/delivery/dto"
	"vet-clinic-analytics/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type fakeAnalyticsRepo struct {
	pets         int64
	clients      int64
	appointments int64
	todayCount   int64

	monthly     []repository.MonthlyAppointmentRow
	species     []repository.SpeciesCountRow
	performance []repository.DoctorPerformanceRow

	vaccinations int64
	overdue      int64
	dueWithin    int64
	topVaccines  []repository.NameCountRow
	alerts       []repository.VaccinationAlertRow

	breakdown           repository.StatusBreakdownRow
	completedByStart    map[string]int64
	appointmentsBetween int64
	topDiagnoses        []repository.NameCountRow
	topTreatments       []repository.NameCountRow
	vaccinationsBetween int64

	// captured arguments
	alertsUntil    time.Time
	monthlyYear    int
	perfMonth      int
	perfYear       int
	dueWithinDays  int
	completedCalls []repository.PeriodFilter

	err error
}

func (r *fakeAnalyticsRepo) CountPets(ctx context.Context, db *gorm.DB) (int64, error) {
	return r.pets, r.err
}

func (r *fakeAnalyticsRepo) CountClients(ctx context.Context, db *gorm.DB) (int64, error) {
	return r.clients, r.err
}

func (r *fakeAnalyticsRepo) CountAppointments(ctx context.Context, db *gorm.DB) (int64, error) {
	return r.appointments, r.err
}

func (r *fakeAnalyticsRepo) CountAppointmentsOn(ctx context.Context, db *gorm.DB, day time.Time) (int64, error) {
	return r.todayCount, r.err
}

func (r *fakeAnalyticsRepo) AppointmentsByMonth(ctx context.Context, db *gorm.DB, year int) ([]repository.MonthlyAppointmentRow, error) {
	r.monthlyYear = year
	return r.monthly, r.err
}

func (r *fakeAnalyticsRepo) PetsBySpecies(ctx context.Context, db *gorm.DB) ([]repository.SpeciesCountRow, error) {
	return r.species, r.err
}

func (r *fakeAnalyticsRepo) DoctorPerformance(ctx context.Context, db *gorm.DB, month, year int) ([]repository.DoctorPerformanceRow, error) {
	r.perfMonth = month
	r.perfYear = year
	return r.performance, r.err
}

func (r *fakeAnalyticsRepo) CountVaccinations(ctx context.Context, db *gorm.DB) (int64, error) {
	return r.vaccinations, r.err
}

func (r *fakeAnalyticsRepo) CountVaccinationsOverdue(ctx context.Context, db *gorm.DB, today time.Time) (int64, error) {
	return r.overdue, r.err
}

func (r *fakeAnalyticsRepo) CountVaccinationsDueWithin(ctx context.Context, db *gorm.DB, today time.Time, days int) (int64, error) {
	r.dueWithinDays = days
	return r.dueWithin, r.err
}

func (r *fakeAnalyticsRepo) TopVaccines(ctx context.Context, db *gorm.DB, limit int) ([]repository.NameCountRow, error) {
	return r.topVaccines, r.err
}

func (r *fakeAnalyticsRepo) VaccinationAlerts(ctx context.Context, db *gorm.DB, until time.Time) ([]repository.VaccinationAlertRow, error) {
	r.alertsUntil = until
	return r.alerts, r.err
}

func (r *fakeAnalyticsRepo) AppointmentStatusBreakdown(ctx context.Context, db *gorm.DB, filter repository.PeriodFilter) (repository.StatusBreakdownRow, error) {
	return r.breakdown, r.err
}

func (r *fakeAnalyticsRepo) CountCompletedAppointments(ctx context.Context, db *gorm.DB, filter repository.PeriodFilter) (int64, error) {
	r.completedCalls = append(r.completedCalls, filter)
	if r.err != nil {
		return 0, r.err
	}
	return r.completedByStart[filter.Start.Format("2006-01-02")], nil
}

func (r *fakeAnalyticsRepo) CountAppointmentsBetween(ctx context.Context, db *gorm.DB, filter repository.PeriodFilter) (int64, error) {
	return r.appointmentsBetween, r.err
}

func (r *fakeAnalyticsRepo) TopDiagnoses(ctx context.Context, db *gorm.DB, filter repository.PeriodFilter, limit int) ([]repository.NameCountRow, error) {
	return r.topDiagnoses, r.err
}

func (r *fakeAnalyticsRepo) TopTreatments(ctx context.Context, db *gorm.DB, filter repository.PeriodFilter, limit int) ([]repository.NameCountRow, error) {
	return r.topTreatments, r.err
}

func (r *fakeAnalyticsRepo) CountVaccinationsBetween(ctx context.Context, db *gorm.DB, start, end time.Time) (int64, error) {
	return r.vaccinationsBetween, r.err
}

func newKPIUsecaseForTest(repo *fakeAnalyticsRepo, now time.Time) *kpiUsecase {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return &kpiUsecase{
		db:            nil,
		log:           log,
		analyticsRepo: repo,
		now:           func() time.Time { return now },
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// -------------------------
// Tests
// -------------------------

func TestDashboardSummary_RevenueUnavailable(t *testing.T) {
	repo := &fakeAnalyticsRepo{pets: 120, clients: 80, appointments: 450, todayCount: 7}
	uc := newKPIUsecaseForTest(repo, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))

	got, err := uc.DashboardSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TotalPets != 120 || got.TotalClients != 80 || got.TotalAppointments != 450 || got.AppointmentsToday != 7 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.RevenueAvailable {
		t.Fatal("revenue must be flagged unavailable")
	}
	if got.MonthlyRevenue != 0 || got.MonthlyGrowth != 0 {
		t.Fatalf("revenue fields must stay zero, got %+v", got)
	}
}

func TestDashboardSummary_RepoError(t *testing.T) {
	repoErr := errors.New("connection refused")
	repo := &fakeAnalyticsRepo{err: repoErr}
	uc := newKPIUsecaseForTest(repo, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))

	if _, err := uc.DashboardSummary(context.Background()); !errors.Is(err, repoErr) {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestAppointmentsByMonth_OrderAndRates(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		monthly: []repository.MonthlyAppointmentRow{
			{Month: 3, Year: 2024, Total: 3, Completed: 1, Cancelled: 1},
			{Month: 1, Year: 2024, Total: 10, Completed: 8, Cancelled: 1},
			{Month: 2, Year: 2024, Total: 0, Completed: 0, Cancelled: 0},
		},
	}
	uc := newKPIUsecaseForTest(repo, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))

	got, err := uc.AppointmentsByMonth(context.Background(), 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 months, got %d", len(got))
	}
	if got[0].MonthNumber != 1 || got[1].MonthNumber != 2 || got[2].MonthNumber != 3 {
		t.Fatalf("months out of order: %+v", got)
	}
	if got[0].Month != "January" {
		t.Fatalf("expected month name January, got %q", got[0].Month)
	}
	if got[0].CompletionRate != 80.0 {
		t.Fatalf("expected completion rate 80.0, got %v", got[0].CompletionRate)
	}
	// Zero appointments must not divide by zero.
	if got[1].CompletionRate != 0 {
		t.Fatalf("expected completion rate 0 for empty month, got %v", got[1].CompletionRate)
	}
	if got[2].CompletionRate != 33.33 {
		t.Fatalf("expected completion rate 33.33, got %v", got[2].CompletionRate)
	}
}

func TestAppointmentsByMonth_MarchScenario(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		monthly: []repository.MonthlyAppointmentRow{
			{Month: 3, Year: 2024, Total: 10, Completed: 6, Cancelled: 2},
		},
	}
	uc := newKPIUsecaseForTest(repo, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))

	got, err := uc.AppointmentsByMonth(context.Background(), 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected one month, got %d", len(got))
	}
	march := got[0]
	if march.Month != "March" || march.Total != 10 || march.Completed != 6 || march.Cancelled != 2 {
		t.Fatalf("unexpected March stats: %+v", march)
	}
	if march.CompletionRate != 60.00 {
		t.Fatalf("expected completion rate 60.00, got %v", march.CompletionRate)
	}
}

func TestAppointmentsByMonth_DefaultsToCurrentYear(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := newKPIUsecaseForTest(repo, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))

	if _, err := uc.AppointmentsByMonth(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.monthlyYear != 2024 {
		t.Fatalf("expected default year 2024, got %d", repo.monthlyYear)
	}
}

func TestPetsBySpecies_Percentages(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		pets: 200,
		species: []repository.SpeciesCountRow{
			{Species: "Cat", Total: 50},
			{Species: "Dog", Total: 150},
		},
	}
	uc := newKPIUsecaseForTest(repo, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))

	got, err := uc.PetsBySpecies(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got[0].Species != "Dog" || got[1].Species != "Cat" {
		t.Fatalf("expected descending order by count, got %+v", got)
	}
	if got[0].Percentage != 75.0 || got[1].Percentage != 25.0 {
		t.Fatalf("unexpected percentages: %+v", got)
	}
}

func TestPetsBySpecies_PercentagesSumToWhole(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		pets: 3,
		species: []repository.SpeciesCountRow{
			{Species: "Dog", Total: 1},
			{Species: "Cat", Total: 1},
			{Species: "Bird", Total: 1},
		},
	}
	uc := newKPIUsecaseForTest(repo, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))

	got, err := uc.PetsBySpecies(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sum float64
	for _, stat := range got {
		sum += stat.Percentage
	}
	// Rounding may drift by at most 0.01 per species.
	if sum < 100-0.03 || sum > 100+0.03 {
		t.Fatalf("percentages sum to %v, want ~100", sum)
	}
}

func TestPetsBySpecies_ZeroPopulation(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		pets:    0,
		species: []repository.SpeciesCountRow{{Species: "Dog", Total: 0}},
	}
	uc := newKPIUsecaseForTest(repo, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))

	got, err := uc.PetsBySpecies(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Percentage != 0 {
		t.Fatalf("expected 0 percentage without pets, got %v", got[0].Percentage)
	}
}

func TestDoctorPerformance_OrderAndAverages(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		performance: []repository.DoctorPerformanceRow{
			{DoctorID: 7, DoctorName: "Ana Rojas", Total: 5, Completed: 0, Diagnoses: 0},
			{DoctorID: 2, DoctorName: "Luis Mena", Total: 12, Completed: 10, Diagnoses: 25},
			{DoctorID: 4, DoctorName: "Eva Soto", Total: 12, Completed: 6, Diagnoses: 9},
		},
	}
	uc := newKPIUsecaseForTest(repo, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))

	got, err := uc.DoctorPerformance(context.Background(), 3, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Ties on total break by doctor id ascending.
	if got[0].DoctorID != 2 || got[1].DoctorID != 4 || got[2].DoctorID != 7 {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[0].AvgDiagnosesPerVisit != 2.5 {
		t.Fatalf("expected 2.5 diagnoses per completed visit, got %v", got[0].AvgDiagnosesPerVisit)
	}
	// No completed appointments must not divide by zero.
	if got[2].AvgDiagnosesPerVisit != 0 {
		t.Fatalf("expected 0 average without completions, got %v", got[2].AvgDiagnosesPerVisit)
	}
	if got[1].CompletionRate != 50.0 {
		t.Fatalf("expected completion rate 50.0, got %v", got[1].CompletionRate)
	}
}

func TestDoctorPerformance_DefaultsPeriod(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := newKPIUsecaseForTest(repo, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))

	if _, err := uc.DoctorPerformance(context.Background(), 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.perfMonth != 3 || repo.perfYear != 2024 {
		t.Fatalf("expected defaults 3/2024, got %d/%d", repo.perfMonth, repo.perfYear)
	}
}

func TestVaccinationStatistics(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		vaccinations: 300,
		overdue:      12,
		dueWithin:    34,
		topVaccines: []repository.NameCountRow{
			{Name: "Rabies", Total: 90},
			{Name: "Parvovirus", Total: 60},
		},
	}
	uc := newKPIUsecaseForTest(repo, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC))

	got, err := uc.VaccinationStatistics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TotalVaccinations != 300 || got.OverdueVaccinations != 12 || got.UpcomingVaccinations != 34 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if repo.dueWithinDays != DefaultAlertHorizonDays {
		t.Fatalf("expected %d-day window, got %d", DefaultAlertHorizonDays, repo.dueWithinDays)
	}
	if len(got.TopVaccines) != 2 || got.TopVaccines[0].Vaccine != "Rabies" || got.TopVaccines[0].Count != 90 {
		t.Fatalf("unexpected top vaccines: %+v", got.TopVaccines)
	}
}

func TestVaccinationAlerts_UrgencyBoundaries(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	repo := &fakeAnalyticsRepo{
		alerts: []repository.VaccinationAlertRow{
			{PetID: 1, PetName: "Rex", Vaccine: "Rabies", NextDueDate: date(2024, 3, 14)},  // 1 day overdue
			{PetID: 2, PetName: "Mia", Vaccine: "Rabies", NextDueDate: date(2024, 3, 15)},  // due today
			{PetID: 3, PetName: "Toby", Vaccine: "Rabies", NextDueDate: date(2024, 3, 22)}, // 7 days out
			{PetID: 4, PetName: "Luna", Vaccine: "Rabies", NextDueDate: date(2024, 3, 23)}, // 8 days out
			{PetID: 5, PetName: "Nina", Vaccine: "Rabies", NextDueDate: date(2024, 3, 30)}, // 15 days out
			{PetID: 6, PetName: "Coco", Vaccine: "Rabies", NextDueDate: date(2024, 3, 31)}, // 16 days out
		},
	}
	uc := newKPIUsecaseForTest(repo, now)

	got, err := uc.VaccinationAlerts(context.Background(), DefaultAlertHorizonDays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[int]dto.AlertUrgency{
		1: dto.UrgencyOverdue,
		2: dto.UrgencyUrgent,
		3: dto.UrgencyUrgent,
		4: dto.UrgencyUpcoming,
		5: dto.UrgencyUpcoming,
		6: dto.UrgencyScheduled,
	}
	for _, alert := range got {
		if alert.Urgency != want[alert.PetID] {
			t.Fatalf("pet %d: expected %s, got %s (days to due %d)", alert.PetID, want[alert.PetID], alert.Urgency, alert.DaysToDue)
		}
	}

	first := got[0]
	if first.PetID != 1 || first.DaysToDue != -1 || first.OverdueDays != 1 {
		t.Fatalf("expected the overdue entry first with signed days, got %+v", first)
	}
}

func TestVaccinationAlerts_Ordering(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	repo := &fakeAnalyticsRepo{
		alerts: []repository.VaccinationAlertRow{
			{PetID: 1, NextDueDate: date(2024, 3, 20)},
			{PetID: 2, NextDueDate: date(2024, 3, 10)}, // 5 days overdue
			{PetID: 3, NextDueDate: date(2024, 3, 17)},
			{PetID: 4, NextDueDate: date(2024, 3, 14)}, // 1 day overdue
		},
	}
	uc := newKPIUsecaseForTest(repo, now)

	got, err := uc.VaccinationAlerts(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Overdue first ascending by overdue days, then by due date.
	order := []int{4, 2, 3, 1}
	for i, petID := range order {
		if got[i].PetID != petID {
			t.Fatalf("position %d: expected pet %d, got %d", i, petID, got[i].PetID)
		}
	}

	// Zero horizon falls back to the default window.
	wantUntil := date(2024, 4, 14)
	if !repo.alertsUntil.Equal(wantUntil) {
		t.Fatalf("expected horizon %s, got %s", wantUntil, repo.alertsUntil)
	}
}

func TestVaccinationAlerts_SpringForwardBoundaries(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}

	// The day after the US spring-forward change: the wall-clock gap to
	// adjacent midnights is 23 or 25 hours, but the calendar distance
	// must stay whole days.
	now := time.Date(2024, 3, 11, 9, 0, 0, 0, loc)
	repo := &fakeAnalyticsRepo{
		alerts: []repository.VaccinationAlertRow{
			{PetID: 1, NextDueDate: time.Date(2024, 3, 10, 0, 0, 0, 0, loc)}, // yesterday
			{PetID: 2, NextDueDate: time.Date(2024, 3, 19, 0, 0, 0, 0, loc)}, // 8 days out
			{PetID: 3, NextDueDate: time.Date(2024, 3, 27, 0, 0, 0, 0, loc)}, // 16 days out
		},
	}
	uc := newKPIUsecaseForTest(repo, now)

	got, err := uc.VaccinationAlerts(context.Background(), DefaultAlertHorizonDays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got[0].PetID != 1 || got[0].Urgency != dto.UrgencyOverdue || got[0].DaysToDue != -1 || got[0].OverdueDays != 1 {
		t.Fatalf("expected pet 1 overdue by one day, got %+v", got[0])
	}
	if got[1].Urgency != dto.UrgencyUpcoming {
		t.Fatalf("expected pet 2 upcoming at 8 days, got %+v", got[1])
	}
	if got[2].Urgency != dto.UrgencyScheduled {
		t.Fatalf("expected pet 3 scheduled at 16 days, got %+v", got[2])
	}
}

func TestVaccinationAlerts_DateFormatting(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	repo := &fakeAnalyticsRepo{
		alerts: []repository.VaccinationAlertRow{
			{PetID: 1, PetName: "Rex", AdministeredAt: date(2023, 3, 20), NextDueDate: date(2024, 3, 20)},
			{PetID: 2, PetName: "Mia", NextDueDate: date(2024, 3, 21)},
		},
	}
	uc := newKPIUsecaseForTest(repo, now)

	got, err := uc.VaccinationAlerts(context.Background(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got[0].NextDueDate != "2024-03-20" || got[0].LastAdministered != "2023-03-20" {
		t.Fatalf("unexpected date formatting: %+v", got[0])
	}
	// Unknown administration dates stay empty instead of a zero date.
	if got[1].LastAdministered != "" {
		t.Fatalf("expected empty last administered, got %q", got[1].LastAdministered)
	}
}
