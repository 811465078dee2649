package usecase

import (
	"context"
	"errors"

	"hospitron/internal/converter"
	"hospitron/internal/delivery/dto"
	"hospitron/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultAuditLogLimit = 100

var ErrAuditLogNotFound = errors.New("audit log not found")

// AuditLogUsecase reads the staff activity trail.
type AuditLogUsecase interface {
	// ListAuditLogs returns matching entries newest first. A zero limit uses the default.
	ListAuditLogs(ctx context.Context, query dto.AuditLogQuery) (*dto.AuditLogListResponse, error)
	GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(db *gorm.DB, log *logrus.Logger, auditLogRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) ListAuditLogs(ctx context.Context, query dto.AuditLogQuery) (*dto.AuditLogListResponse, error) {
	filter := converter.AuditLogQueryToFilter(query)
	if filter.Limit <= 0 {
		filter.Limit = defaultAuditLogLimit
	}

	logs, err := u.auditLogRepo.Find(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find audit log %d: %+v", id, err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}
