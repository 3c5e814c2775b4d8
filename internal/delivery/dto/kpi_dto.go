package dto

// AlertUrgency is the tier assigned to a vaccination alert by
// days-to-due thresholding.
type AlertUrgency string

const (
	UrgencyOverdue   AlertUrgency = "OVERDUE"
	UrgencyUrgent    AlertUrgency = "URGENT"
	UrgencyUpcoming  AlertUrgency = "UPCOMING"
	UrgencyScheduled AlertUrgency = "SCHEDULED"
)

// DashboardSummary is the headline KPI bundle. The operational schema
// carries no pricing data, so the revenue fields are always zero and
// RevenueAvailable stays false rather than fabricating figures.
type DashboardSummary struct {
	TotalPets         int64   `json:"total_pets"`
	TotalClients      int64   `json:"total_clients"`
	TotalAppointments int64   `json:"total_appointments"`
	AppointmentsToday int64   `json:"appointments_today"`
	MonthlyRevenue    float64 `json:"monthly_revenue"`
	MonthlyGrowth     float64 `json:"monthly_growth"`
	RevenueAvailable  bool    `json:"revenue_available"`
}

type MonthlyAppointmentStat struct {
	Month          string  `json:"month"`
	MonthNumber    int     `json:"month_number"`
	Year           int     `json:"year"`
	Total          int64   `json:"total"`
	Completed      int64   `json:"completed"`
	Cancelled      int64   `json:"cancelled"`
	CompletionRate float64 `json:"completion_rate"`
}

type SpeciesStat struct {
	Species    string  `json:"species"`
	TotalPets  int64   `json:"total_pets"`
	Percentage float64 `json:"percentage"`
}

type DoctorPerformanceStat struct {
	DoctorID              int     `json:"doctor_id"`
	DoctorName            string  `json:"doctor_name"`
	TotalAppointments     int64   `json:"total_appointments"`
	CompletedAppointments int64   `json:"completed_appointments"`
	CompletionRate        float64 `json:"completion_rate"`
	AvgDiagnosesPerVisit  float64 `json:"avg_diagnoses_per_visit"`
}

type VaccineUsage struct {
	Vaccine string `json:"vaccine"`
	Count   int64  `json:"count"`
}

type VaccinationStats struct {
	TotalVaccinations    int64          `json:"total_vaccinations"`
	OverdueVaccinations  int64          `json:"overdue_vaccinations"`
	UpcomingVaccinations int64          `json:"upcoming_vaccinations"`
	TopVaccines          []VaccineUsage `json:"top_vaccines"`
}

// VaccinationAlert is one due or overdue booklet entry. DaysToDue is
// signed: negative means the next dose date has already passed.
type VaccinationAlert struct {
	PetID            int          `json:"pet_id"`
	PetName          string       `json:"pet_name"`
	OwnerName        string       `json:"owner_name"`
	OwnerPhone       string       `json:"owner_phone,omitempty"`
	Vaccine          string       `json:"vaccine"`
	LastAdministered string       `json:"last_administered,omitempty"`
	NextDueDate      string       `json:"next_due_date"`
	DaysToDue        int          `json:"days_to_due"`
	OverdueDays      int          `json:"overdue_days"`
	Urgency          AlertUrgency `json:"urgency"`
}
