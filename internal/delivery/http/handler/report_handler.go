package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vet-clinic-analytics/internal/delivery/dto"
	"vet-clinic-analytics/internal/usecase"
	"vet-clinic-analytics/pkg/apperror"
	"vet-clinic-analytics/pkg/response"
	"vet-clinic-analytics/pkg/validator"

	"github.com/gorilla/mux"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
	validator     *validator.CustomValidator
}

func NewReportHandler(reportUsecase usecase.ReportUsecase, validator *validator.CustomValidator) *ReportHandler {
	return &ReportHandler{
		reportUsecase: reportUsecase,
		validator:     validator,
	}
}

// GenerateSection serves POST /reports/{type}. The path segment must name
// a known report type; the composite endpoint is the only place an
// unrecognized type is tolerated.
func (h *ReportHandler) GenerateSection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reportType, ok := parseReportType(vars["type"])
	if !ok {
		response.Error(w, http.StatusBadRequest, "Unknown report type", apperror.ErrUnknownReportType.Error())
		return
	}

	var req dto.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	filters, ok := h.parseFilters(w, req.StartDate, req.EndDate, reportType, req.DoctorID, req.Species)
	if !ok {
		return
	}

	var (
		report interface{}
		err    error
	)
	switch reportType {
	case dto.ReportTypeFinancial:
		report, err = h.reportUsecase.FinancialReport(r.Context(), filters)
	case dto.ReportTypeClinical:
		report, err = h.reportUsecase.ClinicalReport(r.Context(), filters)
	case dto.ReportTypeOperational:
		report, err = h.reportUsecase.OperationalReport(r.Context(), filters)
	case dto.ReportTypeInventory:
		report, err = h.reportUsecase.InventoryReport(r.Context(), filters)
	}
	if err != nil {
		writeReportError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Report generated successfully", report)
}

func (h *ReportHandler) GenerateComplete(w http.ResponseWriter, r *http.Request) {
	var req dto.CompleteReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	// Unknown types pass through here: the composite document simply
	// carries no section for them.
	reportType, _ := parseReportType(req.ReportType)
	if reportType == "" {
		reportType = dto.ReportType(req.ReportType)
	}

	filters, ok := h.parseFilters(w, req.StartDate, req.EndDate, reportType, req.DoctorID, req.Species)
	if !ok {
		return
	}

	includeCharts := true
	if req.IncludeCharts != nil {
		includeCharts = *req.IncludeCharts
	}
	format := dto.FormatPDF
	if req.Format != "" {
		format = dto.ExportFormat(req.Format)
	}

	cfg := dto.ReportConfig{
		IncludeCharts:      includeCharts,
		IncludeComparisons: true,
		ExportFormat:       format,
	}

	report, err := h.reportUsecase.CompleteReport(r.Context(), filters, cfg)
	if err != nil {
		writeReportError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Complete report generated successfully", report)
}

func (h *ReportHandler) ComparePeriods(w http.ResponseWriter, r *http.Request) {
	var req dto.ComparePeriodsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	first, ok := h.parseFilters(w, req.FirstStart, req.FirstEnd, dto.ReportTypeFinancial, nil, nil)
	if !ok {
		return
	}
	second, ok := h.parseFilters(w, req.SecondStart, req.SecondEnd, dto.ReportTypeFinancial, nil, nil)
	if !ok {
		return
	}

	comparison, err := h.reportUsecase.CompareFinancialPeriods(r.Context(), first, second)
	if err != nil {
		writeReportError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Period comparison generated successfully", comparison)
}

func (h *ReportHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Report types retrieved successfully", h.reportUsecase.AvailableReportTypes())
}

func (h *ReportHandler) parseFilters(w http.ResponseWriter, start, end string, reportType dto.ReportType, doctorID *int, species *string) (dto.ReportFilters, bool) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid start date format, use YYYY-MM-DD", nil)
		return dto.ReportFilters{}, false
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid end date format, use YYYY-MM-DD", nil)
		return dto.ReportFilters{}, false
	}

	return dto.ReportFilters{
		StartDate:  startDate,
		EndDate:    endDate,
		ReportType: reportType,
		DoctorID:   doctorID,
		Species:    species,
	}, true
}

func parseReportType(raw string) (dto.ReportType, bool) {
	switch dto.ReportType(raw) {
	case dto.ReportTypeFinancial, dto.ReportTypeClinical, dto.ReportTypeOperational, dto.ReportTypeInventory:
		return dto.ReportType(raw), true
	default:
		return "", false
	}
}

func writeReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrInvalidPeriod):
		response.Error(w, http.StatusBadRequest, "End date is before start date", nil)
	case errors.Is(err, apperror.ErrUnknownReportType):
		response.Error(w, http.StatusBadRequest, "Unknown report type", nil)
	case apperror.IsDataSource(err):
		response.DataSourceUnavailable(w, "")
	default:
		response.InternalServerError(w, "Failed to generate report")
	}
}
