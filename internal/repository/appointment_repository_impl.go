package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hospitron/internal/domain/entity"
	domainRepo "hospitron/internal/domain/repository"
	"hospitron/internal/infrastructure/api"
	"hospitron/pkg/response"
	"hospitron/pkg/result"

	"github.com/sirupsen/logrus"
)

const (
	msgFetchAppointments   = "Failed to fetch appointments"
	msgFetchAppointment    = "Failed to fetch appointment"
	msgCreateAppointment   = "Failed to create appointment"
	msgUpdateAppointment   = "Failed to update appointment"
	msgUpdateStatus        = "Failed to update appointment status"
	msgDeleteAppointment   = "Failed to delete appointment"
	msgFetchUpcomingForDoc = "Failed to fetch upcoming appointments"
)

type appointmentRepository struct {
	client *api.Client
	log    *logrus.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewAppointmentRepository returns the backend-backed repository. loc decides
// which calendar day counts as today.
func NewAppointmentRepository(client *api.Client, log *logrus.Logger, loc *time.Location) domainRepo.AppointmentRepository {
	if loc == nil {
		loc = time.Local
	}
	return &appointmentRepository{
		client: client,
		log:    log,
		loc:    loc,
		now:    time.Now,
	}
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID string, filter entity.AppointmentFilter) result.Result[[]entity.Appointment] {
	if err := requireID("doctor_id", doctorID); err != nil {
		return r.listFailure(err, msgFetchAppointments)
	}
	return r.list(ctx, api.PathEscape("/appointments/doctor/%s", doctorID), filter, msgFetchAppointments)
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID string, filter entity.AppointmentFilter) result.Result[[]entity.Appointment] {
	if err := requireID("patient_id", patientID); err != nil {
		return r.listFailure(err, msgFetchAppointments)
	}
	return r.list(ctx, api.PathEscape("/appointments/patient/%s", patientID), filter, msgFetchAppointments)
}

func (r *appointmentRepository) Get(ctx context.Context, appointmentID string) result.Result[*entity.Appointment] {
	if err := requireID("appointment_id", appointmentID); err != nil {
		return r.oneFailure(err, msgFetchAppointment)
	}
	return r.one(ctx, http.MethodGet, api.PathEscape("/appointments/%s", appointmentID), nil, msgFetchAppointment)
}

func (r *appointmentRepository) Create(ctx context.Context, payload entity.NewAppointment) result.Result[*entity.Appointment] {
	if err := validateNewAppointment(payload); err != nil {
		return r.oneFailure(err, msgCreateAppointment)
	}
	return r.one(ctx, http.MethodPost, "/appointments", payload, msgCreateAppointment)
}

func (r *appointmentRepository) Update(ctx context.Context, appointmentID string, changes entity.AppointmentChanges) result.Result[*entity.Appointment] {
	if err := requireID("appointment_id", appointmentID); err != nil {
		return r.oneFailure(err, msgUpdateAppointment)
	}
	return r.one(ctx, http.MethodPut, api.PathEscape("/appointments/%s", appointmentID), changes, msgUpdateAppointment)
}

// UpdateStatus passes status through unchecked; the backend owns validation.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, appointmentID string, status entity.AppointmentStatus) result.Result[*entity.Appointment] {
	if err := requireID("appointment_id", appointmentID); err != nil {
		return r.oneFailure(err, msgUpdateStatus)
	}
	body := map[string]entity.AppointmentStatus{"status": status}
	return r.one(ctx, http.MethodPatch, api.PathEscape("/appointments/%s/status", appointmentID), body, msgUpdateStatus)
}

func (r *appointmentRepository) Delete(ctx context.Context, appointmentID string) result.Result[struct{}] {
	if err := requireID("appointment_id", appointmentID); err != nil {
		r.log.Warnf("Failed to delete appointment: %+v", err)
		return result.Err[struct{}](failureMessage(err, msgDeleteAppointment))
	}

	env, err := r.client.Do(ctx, http.MethodDelete, api.PathEscape("/appointments/%s", appointmentID), nil, nil)
	if err != nil {
		r.log.Warnf("Failed to delete appointment: %+v", err)
		return result.Err[struct{}](failureMessage(err, msgDeleteAppointment))
	}
	if !env.Success {
		return result.Err[struct{}](messageOr(env.Message, msgDeleteAppointment))
	}
	return result.Ok(struct{}{})
}

// TodayForDoctor lists the doctor's appointments for the current local date.
func (r *appointmentRepository) TodayForDoctor(ctx context.Context, doctorID string) result.Result[[]entity.Appointment] {
	today := r.now().In(r.loc).Format(entity.DateLayout)
	return r.ListByDoctor(ctx, doctorID, entity.AppointmentFilter{Date: today})
}

func (r *appointmentRepository) UpcomingForDoctor(ctx context.Context, doctorID string) result.Result[[]entity.Appointment] {
	if err := requireID("doctor_id", doctorID); err != nil {
		return r.listFailure(err, msgFetchUpcomingForDoc)
	}
	return r.list(ctx, api.PathEscape("/appointments/doctor/%s/upcoming", doctorID), entity.AppointmentFilter{}, msgFetchUpcomingForDoc)
}

func (r *appointmentRepository) list(ctx context.Context, path string, filter entity.AppointmentFilter, fallback string) result.Result[[]entity.Appointment] {
	query, err := filterQuery(filter)
	if err != nil {
		return r.listFailure(err, fallback)
	}

	env, err := r.client.Do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return r.listFailure(err, fallback)
	}
	if !env.Success {
		return result.Err[[]entity.Appointment](messageOr(env.Message, fallback))
	}

	appointments, err := decodeList(path, env.Data)
	if err != nil {
		return r.listFailure(err, fallback)
	}
	return result.OkWithMeta(appointments, pagingMeta(env))
}

func (r *appointmentRepository) one(ctx context.Context, method, path string, body interface{}, fallback string) result.Result[*entity.Appointment] {
	env, err := r.client.Do(ctx, method, path, nil, body)
	if err != nil {
		return r.oneFailure(err, fallback)
	}
	if !env.Success {
		return result.Err[*entity.Appointment](messageOr(env.Message, fallback))
	}

	appointment, err := decodeOne(path, env.Data)
	if err != nil {
		return r.oneFailure(err, fallback)
	}
	return result.Ok(appointment)
}

func (r *appointmentRepository) listFailure(err error, fallback string) result.Result[[]entity.Appointment] {
	r.log.Warnf("%s: %+v", fallback, err)
	return result.Err[[]entity.Appointment](failureMessage(err, fallback))
}

func (r *appointmentRepository) oneFailure(err error, fallback string) result.Result[*entity.Appointment] {
	r.log.Warnf("%s: %+v", fallback, err)
	return result.Err[*entity.Appointment](failureMessage(err, fallback))
}

func filterQuery(filter entity.AppointmentFilter) (url.Values, error) {
	query := url.Values{}
	if filter.Date != "" {
		if _, err := time.Parse(entity.DateLayout, filter.Date); err != nil {
			return nil, &api.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
		}
		query.Set("date", filter.Date)
	}
	if filter.HasStatus() {
		query.Set("status", filter.Status)
	}
	return query, nil
}

func requireID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return &api.ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

func validateNewAppointment(payload entity.NewAppointment) error {
	if err := requireID("patient_id", payload.PatientID); err != nil {
		return err
	}
	if err := requireID("doctor_id", payload.DoctorID); err != nil {
		return err
	}
	if payload.AppointmentDateTime.IsZero() {
		return &api.ValidationError{Field: "appointment_datetime", Reason: "is required"}
	}
	return nil
}

// decodeList accepts a sequence, a single object, or nothing.
func decodeList(path string, data json.RawMessage) ([]entity.Appointment, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []entity.Appointment{}, nil
	}

	switch trimmed[0] {
	case '[':
		var appointments []entity.Appointment
		if err := json.Unmarshal(trimmed, &appointments); err != nil {
			return nil, &api.DecodeError{Path: path, Err: err}
		}
		if appointments == nil {
			appointments = []entity.Appointment{}
		}
		return appointments, nil
	case '{':
		var appointment entity.Appointment
		if err := json.Unmarshal(trimmed, &appointment); err != nil {
			return nil, &api.DecodeError{Path: path, Err: err}
		}
		return []entity.Appointment{appointment}, nil
	default:
		return nil, &api.DecodeError{Path: path, Err: errors.New("data is neither an object nor an array")}
	}
}

// decodeOne returns nil when the backend sent no record.
func decodeOne(path string, data json.RawMessage) (*entity.Appointment, error) {
	list, err := decodeList(path, data)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func pagingMeta(env *response.Envelope) *result.Meta {
	if !env.HasPaging() {
		return nil
	}
	meta := &result.Meta{}
	if env.Total != nil {
		meta.Total = *env.Total
	}
	if env.Page != nil {
		meta.Page = *env.Page
	}
	if env.Limit != nil {
		meta.Limit = *env.Limit
	}
	return meta
}

func failureMessage(err error, fallback string) string {
	var validationErr *api.ValidationError
	if errors.As(err, &validationErr) {
		return fallback + ": " + validationErr.Field + " " + validationErr.Reason
	}
	return messageOr(api.BackendMessage(err), fallback)
}

func messageOr(message, fallback string) string {
	if strings.TrimSpace(message) == "" {
		return fallback
	}
	return message
}
