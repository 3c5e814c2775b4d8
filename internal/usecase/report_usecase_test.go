package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"vet-clinic-analytics/config"
	"vet-clinic-analytics/internal/delivery/dto"
	"vet-clinic-analytics/internal/domain/repository"
	"vet-clinic-analytics/pkg/apperror"

	"github.com/sirupsen/logrus"
)

func testReportConfig() config.ReportConfig {
	return config.ReportConfig{
		ConsultationFee:   500.0,
		OperatingCostRate: 0.30,
		ConsultationRooms: 3,
		DailyWorkingHours: 8,
	}
}

func newReportUsecaseForTest(repo *fakeAnalyticsRepo, now time.Time) *reportUsecase {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return &reportUsecase{
		db:            nil,
		log:           log,
		analyticsRepo: repo,
		reportCfg:     testReportConfig(),
		now:           func() time.Time { return now },
	}
}

func marchFilters() dto.ReportFilters {
	return dto.ReportFilters{
		StartDate: date(2024, 3, 1),
		EndDate:   date(2024, 3, 31),
	}
}

func TestFinancialReport_EstimationMath(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		completedByStart: map[string]int64{
			"2024-03-01": 20,
			"2024-01-30": 16, // preceding 31-day window
		},
	}
	uc := newReportUsecaseForTest(repo, time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC))

	got, err := uc.FinancialReport(context.Background(), marchFilters())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TotalRevenue != 10000.00 {
		t.Fatalf("expected revenue 10000.00, got %v", got.TotalRevenue)
	}
	if got.OperatingCosts != 3000.00 {
		t.Fatalf("expected costs 3000.00, got %v", got.OperatingCosts)
	}
	if got.NetProfit != 7000.00 {
		t.Fatalf("expected net profit 7000.00, got %v", got.NetProfit)
	}
	if got.ProfitMargin != 70.00 {
		t.Fatalf("expected margin 70.00, got %v", got.ProfitMargin)
	}
	if got.PreviousPeriodChange != 25.00 {
		t.Fatalf("expected 25.00 growth, got %v", got.PreviousPeriodChange)
	}
	if !got.Estimated {
		t.Fatal("financial figures must be flagged as estimated")
	}

	if len(repo.completedCalls) != 2 {
		t.Fatalf("expected two period queries, got %d", len(repo.completedCalls))
	}
	prev := repo.completedCalls[1]
	if !prev.Start.Equal(date(2024, 1, 30)) || !prev.End.Equal(date(2024, 2, 29)) {
		t.Fatalf("unexpected previous window: %s - %s", prev.Start, prev.End)
	}
}

func TestFinancialReport_NoActivity(t *testing.T) {
	repo := &fakeAnalyticsRepo{completedByStart: map[string]int64{}}
	uc := newReportUsecaseForTest(repo, time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC))

	got, err := uc.FinancialReport(context.Background(), marchFilters())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Empty periods must not divide by zero anywhere.
	if got.TotalRevenue != 0 || got.ProfitMargin != 0 || got.PreviousPeriodChange != 0 {
		t.Fatalf("expected all-zero report, got %+v", got)
	}
}

func TestFinancialReport_InvalidPeriod(t *testing.T) {
	uc := newReportUsecaseForTest(&fakeAnalyticsRepo{}, time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC))

	filters := dto.ReportFilters{StartDate: date(2024, 3, 31), EndDate: date(2024, 3, 1)}
	if _, err := uc.FinancialReport(context.Background(), filters); !errors.Is(err, apperror.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestClinicalReport(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		appointmentsBetween: 40,
		topDiagnoses: []repository.NameCountRow{
			{Name: "Otitis", Total: 9},
			{Name: "Dermatitis", Total: 6},
		},
		topTreatments:       []repository.NameCountRow{{Name: "Antibiotic course", Total: 11}},
		vaccinationsBetween: 14,
	}
	uc := newReportUsecaseForTest(repo, time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC))

	got, err := uc.ClinicalReport(context.Background(), marchFilters())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TotalConsultations != 40 {
		t.Fatalf("expected 40 consultations, got %d", got.TotalConsultations)
	}
	if got.VaccinationsAdministered != 14 {
		t.Fatalf("expected 14 vaccinations, got %d", got.VaccinationsAdministered)
	}
	if len(got.TopDiagnoses) != 2 || got.TopDiagnoses[0].Label != "Otitis" || got.TopDiagnoses[0].Count != 9 {
		t.Fatalf("unexpected top diagnoses: %+v", got.TopDiagnoses)
	}
	if len(got.TopTreatments) != 1 || got.TopTreatments[0].Label != "Antibiotic course" {
		t.Fatalf("unexpected top treatments: %+v", got.TopTreatments)
	}
	if !got.Estimated {
		t.Fatal("clinical report must carry the estimation flag")
	}
}

func TestOperationalReport_CapacityMath(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		breakdown: repository.StatusBreakdownRow{
			Total:     12,
			Pending:   2,
			Confirmed: 1,
			Completed: 6,
			Cancelled: 3,
		},
	}
	uc := newReportUsecaseForTest(repo, time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC))

	// Single day: 8 hours x 3 rooms = 24 slots.
	filters := dto.ReportFilters{StartDate: date(2024, 3, 1), EndDate: date(2024, 3, 1)}
	got, err := uc.OperationalReport(context.Background(), filters)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.RoomOccupancy != 50.00 {
		t.Fatalf("expected 50.00 room occupancy, got %v", got.RoomOccupancy)
	}
	if got.CancellationRate != 25.00 {
		t.Fatalf("expected 25.00 cancellation rate, got %v", got.CancellationRate)
	}
	if got.StaffEfficiency != 50.00 {
		t.Fatalf("expected 50.00 staff efficiency, got %v", got.StaffEfficiency)
	}
	if got.Cancellations != 3 {
		t.Fatalf("expected 3 cancellations, got %d", got.Cancellations)
	}
}

func TestOperationalReport_SpringForwardPeriod(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}

	repo := &fakeAnalyticsRepo{
		breakdown: repository.StatusBreakdownRow{Total: 84, Completed: 42, Cancelled: 21},
	}
	uc := newReportUsecaseForTest(repo, time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC))

	// Seven calendar days spanning the spring-forward change, so the
	// wall-clock span is an hour short of a whole week. Capacity must
	// still be 7 x 8 hours x 3 rooms = 168 slots.
	filters := dto.ReportFilters{
		StartDate: time.Date(2024, 3, 8, 0, 0, 0, 0, loc),
		EndDate:   time.Date(2024, 3, 14, 0, 0, 0, 0, loc),
	}

	got, err := uc.OperationalReport(context.Background(), filters)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.RoomOccupancy != 50.00 {
		t.Fatalf("expected 50.00 room occupancy over 168 slots, got %v", got.RoomOccupancy)
	}
}

func TestInventoryReport_NeverLive(t *testing.T) {
	uc := newReportUsecaseForTest(&fakeAnalyticsRepo{}, time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC))

	got, err := uc.InventoryReport(context.Background(), marchFilters())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.LiveData {
		t.Fatal("inventory report must be flagged as not live")
	}
	if len(got.MedicationsUsed) == 0 || len(got.LowStock) == 0 {
		t.Fatalf("expected illustrative inventory rows, got %+v", got)
	}
}

func TestCompleteReport_FinancialSection(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		completedByStart: map[string]int64{"2024-03-01": 20},
	}
	uc := newReportUsecaseForTest(repo, time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC))

	filters := marchFilters()
	filters.ReportType = dto.ReportTypeFinancial

	got, err := uc.CompleteReport(context.Background(), filters, dto.ReportConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Financial == nil {
		t.Fatal("expected financial section")
	}
	if got.Clinical != nil || got.Operational != nil || got.Inventory != nil {
		t.Fatalf("expected a single section, got %+v", got)
	}
	if got.Metadata.ReportID == "" {
		t.Fatal("expected a generated report id")
	}
	if got.Metadata.RequestedBy != "anonymous" {
		t.Fatalf("expected anonymous requester, got %q", got.Metadata.RequestedBy)
	}
	if got.Metadata.TotalRecords != 20 {
		t.Fatalf("expected 20 records, got %d", got.Metadata.TotalRecords)
	}
	if !strings.Contains(got.Metadata.AppliedFilters, "2024-03-01") {
		t.Fatalf("expected applied filters to carry the period, got %q", got.Metadata.AppliedFilters)
	}

	summary := got.Summary
	if len(summary.KeyPoints) == 0 || len(summary.Trends) == 0 || len(summary.Alerts) == 0 || len(summary.Recommendations) == 0 {
		t.Fatalf("executive summary is incomplete: %+v", summary)
	}
	if len(summary.HighlightedMetrics) == 0 {
		t.Fatal("expected highlighted metrics")
	}
}

func TestCompleteReport_UnknownTypeKeepsEnvelope(t *testing.T) {
	uc := newReportUsecaseForTest(&fakeAnalyticsRepo{}, time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC))

	filters := marchFilters()
	filters.ReportType = "astrology"

	got, err := uc.CompleteReport(context.Background(), filters, dto.ReportConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Financial != nil || got.Clinical != nil || got.Operational != nil || got.Inventory != nil {
		t.Fatalf("expected no sections, got %+v", got)
	}
	if got.Metadata.TotalRecords != 0 {
		t.Fatalf("expected 0 records, got %d", got.Metadata.TotalRecords)
	}
}

func TestCompareFinancialPeriods(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		completedByStart: map[string]int64{
			"2024-03-01": 20,
			"2024-02-01": 10,
		},
	}
	uc := newReportUsecaseForTest(repo, time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC))

	first := dto.ReportFilters{StartDate: date(2024, 2, 1), EndDate: date(2024, 2, 29)}
	second := marchFilters()

	got, err := uc.CompareFinancialPeriods(context.Background(), first, second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.First.TotalRevenue != 5000.00 {
		t.Fatalf("expected first-period revenue 5000.00, got %v", got.First.TotalRevenue)
	}
	if got.Second.TotalRevenue != 10000.00 {
		t.Fatalf("expected second-period revenue 10000.00, got %v", got.Second.TotalRevenue)
	}
}

func TestAvailableReportTypes(t *testing.T) {
	uc := newReportUsecaseForTest(&fakeAnalyticsRepo{}, time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC))

	got := uc.AvailableReportTypes()
	if len(got) != 4 {
		t.Fatalf("expected 4 report types, got %d", len(got))
	}

	seen := map[dto.ReportType]bool{}
	for _, info := range got {
		seen[info.Type] = true
		if info.Name == "" || info.Description == "" || len(info.RequiredParams) == 0 {
			t.Fatalf("incomplete descriptor: %+v", info)
		}
	}
	for _, want := range []dto.ReportType{dto.ReportTypeFinancial, dto.ReportTypeClinical, dto.ReportTypeOperational, dto.ReportTypeInventory} {
		if !seen[want] {
			t.Fatalf("missing report type %s", want)
		}
	}
}
