package usecase

import (
	"context"

	"hospitron/internal/domain/entity"
	"hospitron/internal/service"
	"hospitron/pkg/result"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockAppointmentRepository struct {
	mock.Mock
}

func (m *mockAppointmentRepository) ListByDoctor(ctx context.Context, doctorID string, filter entity.AppointmentFilter) result.Result[[]entity.Appointment] {
	return m.Called(ctx, doctorID, filter).Get(0).(result.Result[[]entity.Appointment])
}

func (m *mockAppointmentRepository) ListByPatient(ctx context.Context, patientID string, filter entity.AppointmentFilter) result.Result[[]entity.Appointment] {
	return m.Called(ctx, patientID, filter).Get(0).(result.Result[[]entity.Appointment])
}

func (m *mockAppointmentRepository) Get(ctx context.Context, appointmentID string) result.Result[*entity.Appointment] {
	return m.Called(ctx, appointmentID).Get(0).(result.Result[*entity.Appointment])
}

func (m *mockAppointmentRepository) Create(ctx context.Context, payload entity.NewAppointment) result.Result[*entity.Appointment] {
	return m.Called(ctx, payload).Get(0).(result.Result[*entity.Appointment])
}

func (m *mockAppointmentRepository) Update(ctx context.Context, appointmentID string, changes entity.AppointmentChanges) result.Result[*entity.Appointment] {
	return m.Called(ctx, appointmentID, changes).Get(0).(result.Result[*entity.Appointment])
}

func (m *mockAppointmentRepository) UpdateStatus(ctx context.Context, appointmentID string, status entity.AppointmentStatus) result.Result[*entity.Appointment] {
	return m.Called(ctx, appointmentID, status).Get(0).(result.Result[*entity.Appointment])
}

func (m *mockAppointmentRepository) Delete(ctx context.Context, appointmentID string) result.Result[struct{}] {
	return m.Called(ctx, appointmentID).Get(0).(result.Result[struct{}])
}

func (m *mockAppointmentRepository) TodayForDoctor(ctx context.Context, doctorID string) result.Result[[]entity.Appointment] {
	return m.Called(ctx, doctorID).Get(0).(result.Result[[]entity.Appointment])
}

func (m *mockAppointmentRepository) UpcomingForDoctor(ctx context.Context, doctorID string) result.Result[[]entity.Appointment] {
	return m.Called(ctx, doctorID).Get(0).(result.Result[[]entity.Appointment])
}

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Save(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepository) Load(ctx context.Context, sessionID string) (*entity.Session, error) {
	args := m.Called(ctx, sessionID)
	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

func (m *mockSessionRepository) Clear(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type mockAuditService struct {
	mock.Mock
}

func (m *mockAuditService) RecordSignIn(ctx context.Context, user entity.User, sessionID string) error {
	return m.Called(ctx, user, sessionID).Error(0)
}

func (m *mockAuditService) RecordSignOut(ctx context.Context, userID, sessionID string) error {
	return m.Called(ctx, userID, sessionID).Error(0)
}

func (m *mockAuditService) RecordAppointmentChange(ctx context.Context, change service.AppointmentChange) error {
	return m.Called(ctx, change).Error(0)
}

type mockAuditLogRepository struct {
	mock.Mock
}

func (m *mockAuditLogRepository) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	return m.Called(log).Error(0)
}

func (m *mockAuditLogRepository) Find(ctx context.Context, db *gorm.DB, filter entity.AuditLogFilter) ([]entity.AuditLog, error) {
	args := m.Called(filter)
	logs, _ := args.Get(0).([]entity.AuditLog)
	return logs, args.Error(1)
}

func (m *mockAuditLogRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.AuditLog, error) {
	args := m.Called(id)
	log, _ := args.Get(0).(*entity.AuditLog)
	return log, args.Error(1)
}

func strPtr(s string) *string { return &s }

func appointmentFixture(id, patient string, status entity.AppointmentStatus) entity.Appointment {
	return entity.Appointment{
		AppointmentID: id,
		PatientID:     "p-" + id,
		DoctorID:      "d-1",
		PatientName:   patient,
		DoctorName:    "Dr. John Smith",
		Status:        status,
	}
}

type mockCredentialVerifier struct {
	mock.Mock
}

func (m *mockCredentialVerifier) Authenticate(ctx context.Context, creds service.Credentials) (*entity.User, error) {
	args := m.Called(ctx, creds)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

type mockAppointmentListUsecase struct {
	mock.Mock
}

func (m *mockAppointmentListUsecase) View(sessionID, doctorID string) *AppointmentListView {
	view, _ := m.Called(sessionID, doctorID).Get(0).(*AppointmentListView)
	return view
}

func (m *mockAppointmentListUsecase) Close(sessionID string) {
	m.Called(sessionID)
}

func (m *mockAppointmentListUsecase) Stop() {
	m.Called()
}
