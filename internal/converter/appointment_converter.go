package converter

import (
	"hospitron/internal/delivery/dto"
	"hospitron/internal/domain/entity"
	"hospitron/internal/presenter"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(a *entity.Appointment) *dto.AppointmentResponse {
	if a == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		AppointmentID:       a.AppointmentID,
		PatientID:           a.PatientID,
		DoctorID:            a.DoctorID,
		PatientName:         a.PatientName,
		PatientPhone:        a.PatientPhone,
		DoctorName:          a.DoctorName,
		AppointmentDateTime: a.AppointmentDateTime.Time,
		AppointmentType:     presenter.TypeOrDefault(a.AppointmentType),
		Status:              string(a.Status),
		StatusLabel:         presenter.StatusLabel(string(a.Status)),
		Duration:            a.Duration,
		RoomNumber:          a.RoomNumber,
		Notes:               a.Notes,
		CreatedAt:           a.CreatedAt.Time,
		UpdatedAt:           a.UpdatedAt.Time,
	}
}

// AppointmentsToResponses never returns nil so an empty list encodes as [].
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

// CreateRequestToNewAppointment parses the request timestamp.
func CreateRequestToNewAppointment(req *dto.CreateAppointmentRequest) (entity.NewAppointment, error) {
	when, err := entity.ParseDateTime(req.AppointmentDateTime)
	if err != nil {
		return entity.NewAppointment{}, err
	}

	return entity.NewAppointment{
		PatientID:           req.PatientID,
		DoctorID:            req.DoctorID,
		AppointmentDateTime: when,
		AppointmentType:     req.AppointmentType,
		Duration:            req.Duration,
		RoomNumber:          req.RoomNumber,
		Notes:               req.Notes,
	}, nil
}

func UpdateRequestToChanges(req *dto.UpdateAppointmentRequest) (entity.AppointmentChanges, error) {
	changes := entity.AppointmentChanges{
		AppointmentType: req.AppointmentType,
		Duration:        req.Duration,
		RoomNumber:      req.RoomNumber,
		Notes:           req.Notes,
	}

	if req.AppointmentDateTime != nil {
		when, err := entity.ParseDateTime(*req.AppointmentDateTime)
		if err != nil {
			return entity.AppointmentChanges{}, err
		}
		changes.AppointmentDateTime = &when
	}
	if req.Status != nil {
		status := entity.AppointmentStatus(*req.Status)
		changes.Status = &status
	}

	return changes, nil
}
