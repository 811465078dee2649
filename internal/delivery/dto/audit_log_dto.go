package dto

import (
	"time"

	"hospitron/internal/domain/entity"
)

// AuditLogQuery is read from the query string of GET /audit-logs.
type AuditLogQuery struct {
	UserID        string `json:"user_id"`
	Action        string `json:"action" validate:"omitempty,oneof=user.login user.logout appointment.create appointment.update appointment.status_update appointment.delete"`
	AppointmentID string `json:"appointment_id"`
	Limit         int    `json:"limit" validate:"gte=0,lte=500"`
}

type AuditLogResponse struct {
	ID        int64       `json:"id"`
	UserID    string      `json:"user_id,omitempty"`
	Action    string      `json:"action"`
	Entity    string      `json:"entity,omitempty"`
	EntityID  string      `json:"entity_id,omitempty"`
	Metadata  entity.JSON `json:"metadata"`
	CreatedAt time.Time   `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
