package http

import (
	"net/http"

	"preventive-care-tracker/internal/delivery/http/handler"
	"preventive-care-tracker/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	authHandler           *handler.AuthHandler
	guidelineHandler      *handler.GuidelineHandler
	recommendationHandler *handler.RecommendationHandler
	screeningHandler      *handler.ScreeningHandler
	appointmentHandler    *handler.AppointmentHandler
	selectionHandler      *handler.SelectionHandler
	auditLogHandler       *handler.AuditLogHandler
	authMiddleware        *middleware.AuthMiddleware
	corsMiddleware        *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	guidelineHandler *handler.GuidelineHandler,
	recommendationHandler *handler.RecommendationHandler,
	screeningHandler *handler.ScreeningHandler,
	appointmentHandler *handler.AppointmentHandler,
	selectionHandler *handler.SelectionHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		authHandler:           authHandler,
		guidelineHandler:      guidelineHandler,
		recommendationHandler: recommendationHandler,
		screeningHandler:      screeningHandler,
		appointmentHandler:    appointmentHandler,
		selectionHandler:      selectionHandler,
		auditLogHandler:       auditLogHandler,
		authMiddleware:        authMiddleware,
		corsMiddleware:        corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Member routes (protected)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Guideline catalog (read for everyone, personalization via clone)
	protected.HandleFunc("/guidelines", r.guidelineHandler.ListGuidelines).Methods(http.MethodGet)
	protected.HandleFunc("/guidelines/{id}", r.guidelineHandler.GetGuideline).Methods(http.MethodGet)
	protected.HandleFunc("/guidelines/{id}/clone", r.guidelineHandler.CloneGuideline).Methods(http.MethodPost)
	protected.HandleFunc("/guidelines/{guidelineId}/completions", r.screeningHandler.GetCompletionHistory).Methods(http.MethodGet)

	// Recommendations
	protected.HandleFunc("/recommendations", r.recommendationHandler.GetRecommendations).Methods(http.MethodGet)

	// Selections
	protected.HandleFunc("/selections", r.selectionHandler.Select).Methods(http.MethodPost)
	protected.HandleFunc("/selections", r.selectionHandler.ListSelections).Methods(http.MethodGet)
	protected.HandleFunc("/selections/{guidelineId}", r.selectionHandler.Deselect).Methods(http.MethodDelete)

	// Screenings
	protected.HandleFunc("/screenings", r.screeningHandler.CreateScreening).Methods(http.MethodPost)
	protected.HandleFunc("/screenings", r.screeningHandler.ListScreenings).Methods(http.MethodGet)
	protected.HandleFunc("/screenings/archived", r.screeningHandler.ListArchivedScreenings).Methods(http.MethodGet)
	protected.HandleFunc("/screenings/{id}", r.screeningHandler.GetScreening).Methods(http.MethodGet)
	protected.HandleFunc("/screenings/{id}", r.screeningHandler.ArchiveScreening).Methods(http.MethodDelete)
	protected.HandleFunc("/screenings/{id}/complete", r.screeningHandler.CompleteScreening).Methods(http.MethodPost)

	// Appointments
	protected.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)
	protected.HandleFunc("/appointments/{id}/result", r.appointmentHandler.RecordResult).Methods(http.MethodPost)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Catalog management (admin)
	admin.HandleFunc("/guidelines", r.guidelineHandler.CreateGuideline).Methods(http.MethodPost)
	admin.HandleFunc("/guidelines/{id}", r.guidelineHandler.UpdateGuideline).Methods(http.MethodPut)
	admin.HandleFunc("/guidelines/{id}", r.guidelineHandler.DeleteGuideline).Methods(http.MethodDelete)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
