package http

import (
	"net/http"

	"vet-clinic-analytics/internal/delivery/http/handler"
	"vet-clinic-analytics/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	kpiHandler        *handler.KPIHandler
	reportHandler     *handler.ReportHandler
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	kpiHandler *handler.KPIHandler,
	reportHandler *handler.ReportHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		kpiHandler:        kpiHandler,
		reportHandler:     reportHandler,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// KPI queries
	kpi := api.PathPrefix("/kpi").Subrouter()
	kpi.HandleFunc("/dashboard", r.kpiHandler.Dashboard).Methods(http.MethodGet)
	kpi.HandleFunc("/appointments-by-month", r.kpiHandler.AppointmentsByMonth).Methods(http.MethodGet)
	kpi.HandleFunc("/pets-by-species", r.kpiHandler.PetsBySpecies).Methods(http.MethodGet)
	kpi.HandleFunc("/doctor-performance", r.kpiHandler.DoctorPerformance).Methods(http.MethodGet)
	kpi.HandleFunc("/vaccinations/statistics", r.kpiHandler.VaccinationStatistics).Methods(http.MethodGet)
	kpi.HandleFunc("/vaccinations/alerts", r.kpiHandler.VaccinationAlerts).Methods(http.MethodGet)

	// Report generation
	reports := api.PathPrefix("/reports").Subrouter()
	reports.HandleFunc("/types", r.reportHandler.ListTypes).Methods(http.MethodGet)
	reports.HandleFunc("/complete", r.reportHandler.GenerateComplete).Methods(http.MethodPost)
	reports.HandleFunc("/financial/compare", r.reportHandler.ComparePeriods).Methods(http.MethodPost)
	reports.HandleFunc("/{type}", r.reportHandler.GenerateSection).Methods(http.MethodPost)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
