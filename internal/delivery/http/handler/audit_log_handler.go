package handler

import (
	"errors"
	"net/http"
	"strconv"

	"hospitron/internal/delivery/dto"
	"hospitron/internal/usecase"
	"hospitron/pkg/response"
	"hospitron/pkg/validator"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
	validator       *validator.CustomValidator
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase, validator *validator.CustomValidator) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
		validator:       validator,
	}
}

// ListAuditLogs accepts user_id, action, appointment_id and limit.
func (h *AuditLogHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}
	query.AppointmentID = r.URL.Query().Get("appointment_id")
	h.list(w, r, query)
}

// ListAppointmentAuditLogs is the change history of one appointment.
func (h *AuditLogHandler) ListAppointmentAuditLogs(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}
	query.AppointmentID = mux.Vars(r)["id"]
	h.list(w, r, query)
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	auditLogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	if err != nil {
		if errors.Is(err, usecase.ErrAuditLogNotFound) {
			response.NotFound(w, "Audit log not found")
			return
		}
		response.InternalServerError(w, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

func (h *AuditLogHandler) list(w http.ResponseWriter, r *http.Request, query dto.AuditLogQuery) {
	auditLogs, err := h.auditLogUsecase.ListAuditLogs(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs)
}

func (h *AuditLogHandler) parseQuery(w http.ResponseWriter, r *http.Request) (dto.AuditLogQuery, bool) {
	values := r.URL.Query()
	query := dto.AuditLogQuery{
		UserID: values.Get("user_id"),
		Action: values.Get("action"),
	}

	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.ValidationError(w, map[string]string{"limit": "limit must be a number"})
			return query, false
		}
		query.Limit = n
	}

	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return query, false
	}
	return query, true
}
