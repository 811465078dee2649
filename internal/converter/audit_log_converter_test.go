package converter

import (
	"testing"

	"hospitron/internal/delivery/dto"
	"hospitron/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestAuditLogToResponse_LiftsEntityFromMetadata(t *testing.T) {
	resp := AuditLogToResponse(&entity.AuditLog{
		ID:     4,
		UserID: "1",
		Action: entity.AuditActionAppointmentDelete,
		Metadata: entity.JSON{
			"entity":    entity.AuditEntityAppointment,
			"entity_id": "a-1",
		},
	})

	assert.Equal(t, "appointment", resp.Entity)
	assert.Equal(t, "a-1", resp.EntityID)
}

func TestAuditLogToResponse_LoginHasNoEntity(t *testing.T) {
	resp := AuditLogToResponse(&entity.AuditLog{Action: entity.AuditActionUserLogin, Metadata: entity.JSON{"email": "doctor@hospital.com"}})

	assert.Empty(t, resp.Entity)
	assert.Empty(t, resp.EntityID)
	assert.Nil(t, AuditLogToResponse(nil))
}

func TestAuditLogsToResponses_EmptyIsNotNil(t *testing.T) {
	assert.NotNil(t, AuditLogsToResponses(nil))
}

func TestAuditLogQueryToFilter(t *testing.T) {
	filter := AuditLogQueryToFilter(dto.AuditLogQuery{UserID: "1", Action: "appointment.update", AppointmentID: "a-1", Limit: 20})

	assert.Equal(t, entity.AuditLogFilter{UserID: "1", Action: "appointment.update", EntityID: "a-1", Limit: 20}, filter)
}
