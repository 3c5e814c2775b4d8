package dto

import (
	"time"
)

// ReportType selects the section a report run produces.
type ReportType string

const (
	ReportTypeFinancial   ReportType = "financial"
	ReportTypeClinical    ReportType = "clinical"
	ReportTypeOperational ReportType = "operational"
	ReportTypeInventory   ReportType = "inventory"
)

// ExportFormat is carried through report configuration. Actual export is
// handled outside this service.
type ExportFormat string

const (
	FormatPDF   ExportFormat = "pdf"
	FormatExcel ExportFormat = "excel"
	FormatCSV   ExportFormat = "csv"
	FormatJSON  ExportFormat = "json"
)

// Request DTOs

type ReportRequest struct {
	StartDate string  `json:"start_date" validate:"required"` // Format: YYYY-MM-DD
	EndDate   string  `json:"end_date" validate:"required"`   // Format: YYYY-MM-DD
	DoctorID  *int    `json:"doctor_id" validate:"omitempty,min=1"`
	Species   *string `json:"species" validate:"omitempty,min=1"`
}

type CompleteReportRequest struct {
	StartDate     string  `json:"start_date" validate:"required"`
	EndDate       string  `json:"end_date" validate:"required"`
	ReportType    string  `json:"report_type" validate:"required"`
	IncludeCharts *bool   `json:"include_charts" validate:"omitempty"`
	Format        string  `json:"format" validate:"omitempty,oneof=pdf excel csv json"`
	DoctorID      *int    `json:"doctor_id" validate:"omitempty,min=1"`
	Species       *string `json:"species" validate:"omitempty,min=1"`
}

type ComparePeriodsRequest struct {
	FirstStart  string `json:"first_start" validate:"required"`
	FirstEnd    string `json:"first_end" validate:"required"`
	SecondStart string `json:"second_start" validate:"required"`
	SecondEnd   string `json:"second_end" validate:"required"`
}

// ReportFilters is the parsed, validated filter set handed to the report
// composer.
type ReportFilters struct {
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	ReportType ReportType `json:"report_type"`
	DoctorID   *int       `json:"doctor_id,omitempty"`
	Species    *string    `json:"species,omitempty"`
}

// ReportConfig carries presentation options for a complete report run.
type ReportConfig struct {
	IncludeCharts      bool         `json:"include_charts"`
	IncludeComparisons bool         `json:"include_comparisons"`
	ExportFormat       ExportFormat `json:"export_format"`
}

// Response DTOs

type LabeledCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type MetricHighlight struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}

// FinancialReport estimates revenue from completed-appointment counts at
// a fixed per-consultation fee; the schema holds no real prices, so
// Estimated is always true here.
type FinancialReport struct {
	Period               string  `json:"period"`
	StartDate            string  `json:"start_date"`
	EndDate              string  `json:"end_date"`
	ConsultationRevenue  float64 `json:"consultation_revenue"`
	VaccinationRevenue   float64 `json:"vaccination_revenue"`
	MedicationRevenue    float64 `json:"medication_revenue"`
	SurgeryRevenue       float64 `json:"surgery_revenue"`
	TotalRevenue         float64 `json:"total_revenue"`
	OperatingCosts       float64 `json:"operating_costs"`
	NetProfit            float64 `json:"net_profit"`
	ProfitMargin         float64 `json:"profit_margin"`
	PreviousPeriodChange float64 `json:"previous_period_change"`
	Estimated            bool    `json:"estimated"`
}

type ClinicalReport struct {
	Period                   string         `json:"period"`
	StartDate                string         `json:"start_date"`
	EndDate                  string         `json:"end_date"`
	TotalConsultations       int64          `json:"total_consultations"`
	ConsultationsByType      []LabeledCount `json:"consultations_by_type"`
	TopDiagnoses             []LabeledCount `json:"top_diagnoses"`
	TopTreatments            []LabeledCount `json:"top_treatments"`
	SurgeriesPerformed       int64          `json:"surgeries_performed"`
	VaccinationsAdministered int64          `json:"vaccinations_administered"`
	AvgConsultationMinutes   float64        `json:"avg_consultation_minutes"`
	FollowUpRate             float64        `json:"follow_up_rate"`
	// Estimated covers the duration and follow-up figures, which have no
	// backing columns in the schema.
	Estimated bool `json:"estimated"`
}

type OperationalReport struct {
	Period             string   `json:"period"`
	StartDate          string   `json:"start_date"`
	EndDate            string   `json:"end_date"`
	RoomOccupancy      float64  `json:"room_occupancy"`
	EquipmentUsage     float64  `json:"equipment_usage"`
	AvgWaitMinutes     float64  `json:"avg_wait_minutes"`
	Cancellations      int64    `json:"cancellations"`
	CancellationRate   float64  `json:"cancellation_rate"`
	Reschedules        int64    `json:"reschedules"`
	ClientSatisfaction *float64 `json:"client_satisfaction,omitempty"`
	StaffEfficiency    float64  `json:"staff_efficiency"`
	// Estimated covers occupancy (fixed daily-capacity assumption),
	// equipment usage and wait time.
	Estimated bool `json:"estimated"`
}

type MedicationUsage struct {
	Medication string  `json:"medication"`
	Quantity   int64   `json:"quantity"`
	Cost       float64 `json:"cost"`
}

type StockAlert struct {
	Product      string `json:"product"`
	CurrentStock int64  `json:"current_stock"`
	MinimumStock int64  `json:"minimum_stock"`
}

// InventoryReport is illustrative only: there is no inventory schema in
// the operational store, so LiveData is always false and every figure is
// an estimate.
type InventoryReport struct {
	Period             string            `json:"period"`
	StartDate          string            `json:"start_date"`
	EndDate            string            `json:"end_date"`
	MedicationsUsed    []MedicationUsage `json:"medications_used"`
	LowStock           []StockAlert      `json:"low_stock"`
	ExpiredProducts    []string          `json:"expired_products"`
	InventoryTurnover  float64           `json:"inventory_turnover"`
	InventoryCost      float64           `json:"inventory_cost"`
	ExpiryLosses       float64           `json:"expiry_losses"`
	LiveData           bool              `json:"live_data"`
	Estimated          bool              `json:"estimated"`
}

type ReportMetadata struct {
	ReportID          string    `json:"report_id"`
	GeneratedAt       time.Time `json:"generated_at"`
	RequestedBy       string    `json:"requested_by"`
	ProcessingSeconds float64   `json:"processing_seconds"`
	TotalRecords      int64     `json:"total_records"`
	AppliedFilters    string    `json:"applied_filters"`
}

type ExecutiveSummary struct {
	KeyPoints          []string          `json:"key_points"`
	Trends             []string          `json:"trends"`
	Alerts             []string          `json:"alerts"`
	Recommendations    []string          `json:"recommendations"`
	HighlightedMetrics []MetricHighlight `json:"highlighted_metrics"`
}

type CompleteReport struct {
	Metadata    ReportMetadata     `json:"metadata"`
	Summary     ExecutiveSummary   `json:"summary"`
	Financial   *FinancialReport   `json:"financial,omitempty"`
	Clinical    *ClinicalReport    `json:"clinical,omitempty"`
	Operational *OperationalReport `json:"operational,omitempty"`
	Inventory   *InventoryReport   `json:"inventory,omitempty"`
}

type ReportTypeInfo struct {
	Type           ReportType `json:"type"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	RequiredParams []string   `json:"required_params"`
}

type FinancialComparison struct {
	First  FinancialReport `json:"first"`
	Second FinancialReport `json:"second"`
}
