package http

import (
	"net/http"

	"hospitron/internal/delivery/http/handler"
	"hospitron/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	appointmentHandler *handler.AppointmentHandler
	dashboardHandler   *handler.DashboardHandler
	auditLogHandler    *handler.AuditLogHandler
	pageHandler        *handler.PageHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	loggerMiddleware   *middleware.LoggerMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	dashboardHandler *handler.DashboardHandler,
	auditLogHandler *handler.AuditLogHandler,
	pageHandler *handler.PageHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggerMiddleware *middleware.LoggerMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		appointmentHandler: appointmentHandler,
		dashboardHandler:   dashboardHandler,
		auditLogHandler:    auditLogHandler,
		pageHandler:        pageHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
		loggerMiddleware:   loggerMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Appointments (protected)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("/doctor/{doctorId}", r.appointmentHandler.ListByDoctor).Methods(http.MethodGet)
	appointments.HandleFunc("/doctor/{doctorId}/today", r.appointmentHandler.TodayForDoctor).Methods(http.MethodGet)
	appointments.HandleFunc("/doctor/{doctorId}/upcoming", r.appointmentHandler.UpcomingForDoctor).Methods(http.MethodGet)
	appointments.HandleFunc("/patient/{patientId}", r.appointmentHandler.ListByPatient).Methods(http.MethodGet)
	appointments.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)
	appointments.HandleFunc("/{id}/status", r.appointmentHandler.UpdateAppointmentStatus).Methods(http.MethodPatch)
	appointments.HandleFunc("/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)
	appointments.HandleFunc("/{id}/audit-logs", r.auditLogHandler.ListAppointmentAuditLogs).Methods(http.MethodGet)

	// Dashboard and audit trail (protected)
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/dashboard", r.dashboardHandler.GetDashboard).Methods(http.MethodGet)
	protected.HandleFunc("/audit-logs", r.auditLogHandler.ListAuditLogs).Methods(http.MethodGet)
	protected.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// HTML pages
	r.router.HandleFunc("/", r.pageHandler.LoginPage).Methods(http.MethodGet)
	r.router.HandleFunc("/login", r.pageHandler.Login).Methods(http.MethodPost)

	pages := r.router.NewRoute().Subrouter()
	pages.Use(r.authMiddleware.RequireSession)
	pages.HandleFunc("/logout", r.pageHandler.Logout).Methods(http.MethodPost)
	pages.HandleFunc("/dashboard", r.pageHandler.Dashboard).Methods(http.MethodGet)
	pages.HandleFunc("/appointments", r.pageHandler.Appointments).Methods(http.MethodGet)
	pages.HandleFunc("/appointments/retry", r.pageHandler.RetryAppointments).Methods(http.MethodPost)
	pages.HandleFunc("/appointments/{id}", r.pageHandler.AppointmentDetail).Methods(http.MethodGet)

	// Preflight requests need a matching route for the middleware chain to run.
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.router.Use(r.loggerMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
