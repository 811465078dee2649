package usecase

import (
	"context"

	"hospitron/internal/domain/entity"
	"hospitron/internal/domain/repository"
	"hospitron/internal/service"
	"hospitron/pkg/result"

	"github.com/sirupsen/logrus"
)

// AppointmentUsecase exposes the data client to the JSON API. Results pass
// through unchanged; successful mutations are recorded in the audit log
// under the acting user.
type AppointmentUsecase interface {
	ListByDoctor(ctx context.Context, doctorID string, filter entity.AppointmentFilter) result.Result[[]entity.Appointment]
	ListByPatient(ctx context.Context, patientID string, filter entity.AppointmentFilter) result.Result[[]entity.Appointment]
	TodayForDoctor(ctx context.Context, doctorID string) result.Result[[]entity.Appointment]
	UpcomingForDoctor(ctx context.Context, doctorID string) result.Result[[]entity.Appointment]
	Get(ctx context.Context, appointmentID string) result.Result[*entity.Appointment]
	Create(ctx context.Context, actorID string, payload entity.NewAppointment) result.Result[*entity.Appointment]
	Update(ctx context.Context, actorID, appointmentID string, changes entity.AppointmentChanges) result.Result[*entity.Appointment]
	UpdateStatus(ctx context.Context, actorID, appointmentID string, status entity.AppointmentStatus) result.Result[*entity.Appointment]
	Delete(ctx context.Context, actorID, appointmentID string) result.Result[struct{}]
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) ListByDoctor(ctx context.Context, doctorID string, filter entity.AppointmentFilter) result.Result[[]entity.Appointment] {
	return u.appointmentRepo.ListByDoctor(ctx, doctorID, filter)
}

func (u *appointmentUsecase) ListByPatient(ctx context.Context, patientID string, filter entity.AppointmentFilter) result.Result[[]entity.Appointment] {
	return u.appointmentRepo.ListByPatient(ctx, patientID, filter)
}

func (u *appointmentUsecase) TodayForDoctor(ctx context.Context, doctorID string) result.Result[[]entity.Appointment] {
	return u.appointmentRepo.TodayForDoctor(ctx, doctorID)
}

func (u *appointmentUsecase) UpcomingForDoctor(ctx context.Context, doctorID string) result.Result[[]entity.Appointment] {
	return u.appointmentRepo.UpcomingForDoctor(ctx, doctorID)
}

func (u *appointmentUsecase) Get(ctx context.Context, appointmentID string) result.Result[*entity.Appointment] {
	return u.appointmentRepo.Get(ctx, appointmentID)
}

func (u *appointmentUsecase) Create(ctx context.Context, actorID string, payload entity.NewAppointment) result.Result[*entity.Appointment] {
	res := u.appointmentRepo.Create(ctx, payload)
	if !res.IsOk() {
		return res
	}

	change := service.AppointmentChange{
		ActorID: actorID,
		Action:  entity.AuditActionAppointmentCreate,
		After:   payload,
	}
	// The backend may confirm a create without echoing the record.
	if created := res.Value(); created != nil {
		change.AppointmentID = created.AppointmentID
		change.After = created
	}
	_ = u.auditService.RecordAppointmentChange(ctx, change)
	return res
}

func (u *appointmentUsecase) Update(ctx context.Context, actorID, appointmentID string, changes entity.AppointmentChanges) result.Result[*entity.Appointment] {
	res := u.appointmentRepo.Update(ctx, appointmentID, changes)
	if res.IsOk() {
		_ = u.auditService.RecordAppointmentChange(ctx, service.AppointmentChange{
			ActorID:       actorID,
			Action:        entity.AuditActionAppointmentUpdate,
			AppointmentID: appointmentID,
			After:         res.Value(),
			Changes:       changes,
		})
	}
	return res
}

func (u *appointmentUsecase) UpdateStatus(ctx context.Context, actorID, appointmentID string, status entity.AppointmentStatus) result.Result[*entity.Appointment] {
	res := u.appointmentRepo.UpdateStatus(ctx, appointmentID, status)
	if res.IsOk() {
		_ = u.auditService.RecordAppointmentChange(ctx, service.AppointmentChange{
			ActorID:       actorID,
			Action:        entity.AuditActionAppointmentStatusUpdate,
			AppointmentID: appointmentID,
			After:         entity.JSON{"status": status},
		})
	}
	return res
}

func (u *appointmentUsecase) Delete(ctx context.Context, actorID, appointmentID string) result.Result[struct{}] {
	res := u.appointmentRepo.Delete(ctx, appointmentID)
	if res.IsOk() {
		_ = u.auditService.RecordAppointmentChange(ctx, service.AppointmentChange{
			ActorID:       actorID,
			Action:        entity.AuditActionAppointmentDelete,
			AppointmentID: appointmentID,
		})
	}
	return res
}
