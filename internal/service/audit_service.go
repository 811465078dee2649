package service

import (
	"context"

	"hospitron/internal/domain/entity"
	"hospitron/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AppointmentChange describes one successful appointment mutation.
// Before is nil when the previous state is unknown; Changes holds the
// requested partial update, if any.
type AppointmentChange struct {
	ActorID       string
	Action        string
	AppointmentID string
	Before        interface{}
	After         interface{}
	Changes       interface{}
}

// AuditService writes the staff activity trail. Callers may ignore the
// returned error; failures are already logged here.
type AuditService interface {
	RecordSignIn(ctx context.Context, user entity.User, sessionID string) error
	RecordSignOut(ctx context.Context, userID, sessionID string) error
	RecordAppointmentChange(ctx context.Context, change AppointmentChange) error
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) RecordSignIn(ctx context.Context, user entity.User, sessionID string) error {
	return s.create(ctx, user.ID, entity.AuditActionUserLogin, entity.JSON{
		"session_id": sessionID,
		"email":      user.Email,
		"role":       string(user.Role),
	})
}

func (s *auditService) RecordSignOut(ctx context.Context, userID, sessionID string) error {
	return s.create(ctx, userID, entity.AuditActionUserLogout, entity.JSON{
		"session_id": sessionID,
	})
}

func (s *auditService) RecordAppointmentChange(ctx context.Context, change AppointmentChange) error {
	metadata := entity.JSON{
		"entity":    entity.AuditEntityAppointment,
		"entity_id": change.AppointmentID,
		"old_value": change.Before,
		"new_value": change.After,
	}
	if change.Changes != nil {
		metadata["changes"] = change.Changes
	}
	return s.create(ctx, change.ActorID, change.Action, metadata)
}

func (s *auditService) create(ctx context.Context, userID, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, s.db, auditLog); err != nil {
		s.log.WithField("action", action).Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
