package handler

import (
	"encoding/json"
	"net/http"

	"hospitron/internal/converter"
	"hospitron/internal/delivery/dto"
	"hospitron/internal/delivery/http/middleware"
	"hospitron/internal/domain/entity"
	"hospitron/internal/usecase"
	"hospitron/pkg/response"
	"hospitron/pkg/result"
	"hospitron/pkg/validator"

	"github.com/gorilla/mux"
)

const invalidDateTimeMessage = "appointment_datetime must be an ISO 8601 timestamp"

// AppointmentHandler serves the appointments JSON API. Backend failures
// arrive as Err results and are reported as 502 with the backend message.
type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) ListByDoctor(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	res := h.appointmentUsecase.ListByDoctor(r.Context(), mux.Vars(r)["doctorId"], filter)
	writeAppointmentList(w, res, "Appointments retrieved successfully")
}

func (h *AppointmentHandler) TodayForDoctor(w http.ResponseWriter, r *http.Request) {
	res := h.appointmentUsecase.TodayForDoctor(r.Context(), mux.Vars(r)["doctorId"])
	writeAppointmentList(w, res, "Today's appointments retrieved successfully")
}

func (h *AppointmentHandler) UpcomingForDoctor(w http.ResponseWriter, r *http.Request) {
	res := h.appointmentUsecase.UpcomingForDoctor(r.Context(), mux.Vars(r)["doctorId"])
	writeAppointmentList(w, res, "Upcoming appointments retrieved successfully")
}

func (h *AppointmentHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	res := h.appointmentUsecase.ListByPatient(r.Context(), mux.Vars(r)["patientId"], filter)
	writeAppointmentList(w, res, "Appointments retrieved successfully")
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	res := h.appointmentUsecase.Get(r.Context(), mux.Vars(r)["id"])
	if !res.IsOk() {
		response.BadGateway(w, res.Message())
		return
	}
	if res.Value() == nil {
		response.NotFound(w, "Appointment not found")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", converter.AppointmentToResponse(res.Value()))
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	payload, err := converter.CreateRequestToNewAppointment(&req)
	if err != nil {
		response.ValidationError(w, map[string]string{"appointment_datetime": invalidDateTimeMessage})
		return
	}

	res := h.appointmentUsecase.Create(r.Context(), session.User.ID, payload)
	writeAppointment(w, res, http.StatusCreated, "Appointment created successfully")
}

func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	changes, err := converter.UpdateRequestToChanges(&req)
	if err != nil {
		response.ValidationError(w, map[string]string{"appointment_datetime": invalidDateTimeMessage})
		return
	}

	res := h.appointmentUsecase.Update(r.Context(), session.User.ID, mux.Vars(r)["id"], changes)
	writeAppointment(w, res, http.StatusOK, "Appointment updated successfully")
}

func (h *AppointmentHandler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	status := entity.AppointmentStatus(req.Status)
	res := h.appointmentUsecase.UpdateStatus(r.Context(), session.User.ID, mux.Vars(r)["id"], status)
	writeAppointment(w, res, http.StatusOK, "Appointment status updated successfully")
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	res := h.appointmentUsecase.Delete(r.Context(), session.User.ID, mux.Vars(r)["id"])
	response.FromResult[struct{}](w, http.StatusOK, "Appointment deleted successfully", res, nil)
}

func (h *AppointmentHandler) parseFilter(w http.ResponseWriter, r *http.Request) (entity.AppointmentFilter, bool) {
	query := dto.AppointmentListQuery{
		Date:   r.URL.Query().Get("date"),
		Status: r.URL.Query().Get("status"),
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return entity.AppointmentFilter{}, false
	}

	return entity.AppointmentFilter{Date: query.Date, Status: query.Status}, true
}

func writeAppointmentList(w http.ResponseWriter, res result.Result[[]entity.Appointment], message string) {
	response.FromResult(w, http.StatusOK, message, res, func(appointments []entity.Appointment) interface{} {
		return converter.AppointmentsToResponses(appointments)
	})
}

func writeAppointment(w http.ResponseWriter, res result.Result[*entity.Appointment], status int, message string) {
	response.FromResult(w, status, message, res, func(appointment *entity.Appointment) interface{} {
		return converter.AppointmentToResponse(appointment)
	})
}
