package converter

import (
	"hospitron/internal/delivery/dto"
	"hospitron/internal/domain/entity"
)

func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	resp := &dto.AuditLogResponse{
		ID:        log.ID,
		UserID:    log.UserID,
		Action:    log.Action,
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	}
	resp.Entity, _ = log.Metadata["entity"].(string)
	resp.EntityID, _ = log.Metadata["entity_id"].(string)
	return resp
}

// AuditLogsToResponses never returns nil so an empty trail encodes as [].
func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, *AuditLogToResponse(&logs[i]))
	}
	return responses
}

func AuditLogQueryToFilter(q dto.AuditLogQuery) entity.AuditLogFilter {
	return entity.AuditLogFilter{
		UserID:   q.UserID,
		Action:   q.Action,
		EntityID: q.AppointmentID,
		Limit:    q.Limit,
	}
}
