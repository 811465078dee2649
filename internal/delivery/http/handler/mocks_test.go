package handler

import (
	"context"
	"net/http"
	"time"

	"hospitron/internal/delivery/dto"
	"hospitron/internal/delivery/http/middleware"
	"hospitron/internal/domain/entity"
	"hospitron/pkg/result"

	"github.com/stretchr/testify/mock"
)

type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.LoginResponse)
	return resp, args.Error(1)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, sessionID, userID string) error {
	return m.Called(ctx, sessionID, userID).Error(0)
}

func (m *mockAuthUsecase) Authenticate(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

func (m *mockAuthUsecase) CurrentUser(ctx context.Context, sessionID string) (*dto.UserResponse, error) {
	args := m.Called(ctx, sessionID)
	user, _ := args.Get(0).(*dto.UserResponse)
	return user, args.Error(1)
}

type mockAppointmentUsecase struct {
	mock.Mock
}

func (m *mockAppointmentUsecase) ListByDoctor(ctx context.Context, doctorID string, filter entity.AppointmentFilter) result.Result[[]entity.Appointment] {
	return m.Called(doctorID, filter).Get(0).(result.Result[[]entity.Appointment])
}

func (m *mockAppointmentUsecase) ListByPatient(ctx context.Context, patientID string, filter entity.AppointmentFilter) result.Result[[]entity.Appointment] {
	return m.Called(patientID, filter).Get(0).(result.Result[[]entity.Appointment])
}

func (m *mockAppointmentUsecase) TodayForDoctor(ctx context.Context, doctorID string) result.Result[[]entity.Appointment] {
	return m.Called(doctorID).Get(0).(result.Result[[]entity.Appointment])
}

func (m *mockAppointmentUsecase) UpcomingForDoctor(ctx context.Context, doctorID string) result.Result[[]entity.Appointment] {
	return m.Called(doctorID).Get(0).(result.Result[[]entity.Appointment])
}

func (m *mockAppointmentUsecase) Get(ctx context.Context, appointmentID string) result.Result[*entity.Appointment] {
	return m.Called(appointmentID).Get(0).(result.Result[*entity.Appointment])
}

func (m *mockAppointmentUsecase) Create(ctx context.Context, actorID string, payload entity.NewAppointment) result.Result[*entity.Appointment] {
	return m.Called(actorID, payload).Get(0).(result.Result[*entity.Appointment])
}

func (m *mockAppointmentUsecase) Update(ctx context.Context, actorID, appointmentID string, changes entity.AppointmentChanges) result.Result[*entity.Appointment] {
	return m.Called(actorID, appointmentID, changes).Get(0).(result.Result[*entity.Appointment])
}

func (m *mockAppointmentUsecase) UpdateStatus(ctx context.Context, actorID, appointmentID string, status entity.AppointmentStatus) result.Result[*entity.Appointment] {
	return m.Called(actorID, appointmentID, status).Get(0).(result.Result[*entity.Appointment])
}

func (m *mockAppointmentUsecase) Delete(ctx context.Context, actorID, appointmentID string) result.Result[struct{}] {
	return m.Called(actorID, appointmentID).Get(0).(result.Result[struct{}])
}

type mockDashboardUsecase struct {
	mock.Mock
}

func (m *mockDashboardUsecase) Overview(ctx context.Context, user entity.User) *dto.DashboardResponse {
	return m.Called(user).Get(0).(*dto.DashboardResponse)
}

type mockAuditLogUsecase struct {
	mock.Mock
}

func (m *mockAuditLogUsecase) ListAuditLogs(ctx context.Context, query dto.AuditLogQuery) (*dto.AuditLogListResponse, error) {
	args := m.Called(query)
	resp, _ := args.Get(0).(*dto.AuditLogListResponse)
	return resp, args.Error(1)
}

func (m *mockAuditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	args := m.Called(id)
	resp, _ := args.Get(0).(*dto.AuditLogResponse)
	return resp, args.Error(1)
}

type mockAppointmentRepository struct {
	mock.Mock
}

func (m *mockAppointmentRepository) ListByDoctor(ctx context.Context, doctorID string, filter entity.AppointmentFilter) result.Result[[]entity.Appointment] {
	return m.Called(doctorID, filter).Get(0).(result.Result[[]entity.Appointment])
}

func (m *mockAppointmentRepository) ListByPatient(ctx context.Context, patientID string, filter entity.AppointmentFilter) result.Result[[]entity.Appointment] {
	return m.Called(patientID, filter).Get(0).(result.Result[[]entity.Appointment])
}

func (m *mockAppointmentRepository) Get(ctx context.Context, appointmentID string) result.Result[*entity.Appointment] {
	return m.Called(appointmentID).Get(0).(result.Result[*entity.Appointment])
}

func (m *mockAppointmentRepository) Create(ctx context.Context, payload entity.NewAppointment) result.Result[*entity.Appointment] {
	return m.Called(payload).Get(0).(result.Result[*entity.Appointment])
}

func (m *mockAppointmentRepository) Update(ctx context.Context, appointmentID string, changes entity.AppointmentChanges) result.Result[*entity.Appointment] {
	return m.Called(appointmentID, changes).Get(0).(result.Result[*entity.Appointment])
}

func (m *mockAppointmentRepository) UpdateStatus(ctx context.Context, appointmentID string, status entity.AppointmentStatus) result.Result[*entity.Appointment] {
	return m.Called(appointmentID, status).Get(0).(result.Result[*entity.Appointment])
}

func (m *mockAppointmentRepository) Delete(ctx context.Context, appointmentID string) result.Result[struct{}] {
	return m.Called(appointmentID).Get(0).(result.Result[struct{}])
}

func (m *mockAppointmentRepository) TodayForDoctor(ctx context.Context, doctorID string) result.Result[[]entity.Appointment] {
	return m.Called(doctorID).Get(0).(result.Result[[]entity.Appointment])
}

func (m *mockAppointmentRepository) UpcomingForDoctor(ctx context.Context, doctorID string) result.Result[[]entity.Appointment] {
	return m.Called(doctorID).Get(0).(result.Result[[]entity.Appointment])
}

var testUser = entity.User{ID: "1", Email: "doctor@hospital.com", Name: "Dr. John Smith", Role: entity.RoleDoctor}

var testSession = &entity.Session{
	ID:        "s-1",
	User:      testUser,
	ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
}

// withTestSession attaches the session the auth middleware would have resolved.
func withTestSession(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.SessionKey, testSession)
	ctx = context.WithValue(ctx, middleware.TokenKey, "token-1")
	return r.WithContext(ctx)
}

func strPtr(s string) *string { return &s }
