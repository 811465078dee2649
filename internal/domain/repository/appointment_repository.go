package repository

import (
	"context"

	"hospitron/internal/domain/entity"
	"hospitron/pkg/result"
)

// AppointmentRepository reads and writes appointments through the backend.
// Every call performs one round trip and reports failure inside the Result.
type AppointmentRepository interface {
	ListByDoctor(ctx context.Context, doctorID string, filter entity.AppointmentFilter) result.Result[[]entity.Appointment]
	ListByPatient(ctx context.Context, patientID string, filter entity.AppointmentFilter) result.Result[[]entity.Appointment]
	Get(ctx context.Context, appointmentID string) result.Result[*entity.Appointment]
	Create(ctx context.Context, payload entity.NewAppointment) result.Result[*entity.Appointment]
	Update(ctx context.Context, appointmentID string, changes entity.AppointmentChanges) result.Result[*entity.Appointment]
	UpdateStatus(ctx context.Context, appointmentID string, status entity.AppointmentStatus) result.Result[*entity.Appointment]
	Delete(ctx context.Context, appointmentID string) result.Result[struct{}]
	TodayForDoctor(ctx context.Context, doctorID string) result.Result[[]entity.Appointment]
	UpcomingForDoctor(ctx context.Context, doctorID string) result.Result[[]entity.Appointment]
}
