package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"vet-clinic-analytics/internal/service"
	"vet-clinic-analytics/internal/usecase"
	"vet-clinic-analytics/pkg/apperror"
	"vet-clinic-analytics/pkg/response"
)

const (
	dashboardCacheKey = "dashboard"
	speciesCacheKey   = "pets-by-species"
)

type KPIHandler struct {
	kpiUsecase usecase.KPIUsecase
	cache      service.KPICacheService
}

func NewKPIHandler(kpiUsecase usecase.KPIUsecase, cache service.KPICacheService) *KPIHandler {
	return &KPIHandler{
		kpiUsecase: kpiUsecase,
		cache:      cache,
	}
}

func (h *KPIHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if payload, ok := h.cache.Get(r.Context(), dashboardCacheKey); ok {
		response.Success(w, http.StatusOK, "Dashboard summary retrieved successfully", json.RawMessage(payload))
		return
	}

	summary, err := h.kpiUsecase.DashboardSummary(r.Context())
	if err != nil {
		writeKPIError(w, err, "Failed to build dashboard summary")
		return
	}

	if payload, err := json.Marshal(summary); err == nil {
		h.cache.Set(r.Context(), dashboardCacheKey, payload)
	}

	response.Success(w, http.StatusOK, "Dashboard summary retrieved successfully", summary)
}

func (h *KPIHandler) AppointmentsByMonth(w http.ResponseWriter, r *http.Request) {
	year, ok := optionalIntParam(w, r, "year")
	if !ok {
		return
	}

	stats, err := h.kpiUsecase.AppointmentsByMonth(r.Context(), year)
	if err != nil {
		writeKPIError(w, err, "Failed to aggregate appointments by month")
		return
	}

	response.Success(w, http.StatusOK, "Monthly appointment statistics retrieved successfully", stats)
}

func (h *KPIHandler) PetsBySpecies(w http.ResponseWriter, r *http.Request) {
	if payload, ok := h.cache.Get(r.Context(), speciesCacheKey); ok {
		response.Success(w, http.StatusOK, "Species distribution retrieved successfully", json.RawMessage(payload))
		return
	}

	stats, err := h.kpiUsecase.PetsBySpecies(r.Context())
	if err != nil {
		writeKPIError(w, err, "Failed to aggregate pets by species")
		return
	}

	if payload, err := json.Marshal(stats); err == nil {
		h.cache.Set(r.Context(), speciesCacheKey, payload)
	}

	response.Success(w, http.StatusOK, "Species distribution retrieved successfully", stats)
}

func (h *KPIHandler) DoctorPerformance(w http.ResponseWriter, r *http.Request) {
	month, ok := optionalIntParam(w, r, "month")
	if !ok {
		return
	}
	year, ok := optionalIntParam(w, r, "year")
	if !ok {
		return
	}

	stats, err := h.kpiUsecase.DoctorPerformance(r.Context(), month, year)
	if err != nil {
		writeKPIError(w, err, "Failed to aggregate doctor performance")
		return
	}

	response.Success(w, http.StatusOK, "Doctor performance retrieved successfully", stats)
}

func (h *KPIHandler) VaccinationStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.kpiUsecase.VaccinationStatistics(r.Context())
	if err != nil {
		writeKPIError(w, err, "Failed to build vaccination statistics")
		return
	}

	response.Success(w, http.StatusOK, "Vaccination statistics retrieved successfully", stats)
}

func (h *KPIHandler) VaccinationAlerts(w http.ResponseWriter, r *http.Request) {
	horizonDays, ok := optionalIntParam(w, r, "horizonDays")
	if !ok {
		return
	}

	alerts, err := h.kpiUsecase.VaccinationAlerts(r.Context(), horizonDays)
	if err != nil {
		writeKPIError(w, err, "Failed to build vaccination alerts")
		return
	}

	response.Success(w, http.StatusOK, "Vaccination alerts retrieved successfully", alerts)
}

// optionalIntParam reads an optional positive integer query parameter,
// returning 0 when absent. A malformed value writes a 400 and reports
// false.
func optionalIntParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		response.Error(w, http.StatusBadRequest, "Invalid "+name+" parameter", nil)
		return 0, false
	}
	return value, true
}

func writeKPIError(w http.ResponseWriter, err error, message string) {
	if apperror.IsDataSource(err) {
		response.DataSourceUnavailable(w, "")
		return
	}
	response.InternalServerError(w, message)
}
