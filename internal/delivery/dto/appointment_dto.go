package dto

import "time"

// Request DTOs

type AppointmentListQuery struct {
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status string `json:"status" validate:"omitempty,oneof=all scheduled confirmed in_progress completed cancelled no_show"`
}

type CreateAppointmentRequest struct {
	PatientID           string  `json:"patient_id" validate:"required"`
	DoctorID            string  `json:"doctor_id" validate:"required"`
	AppointmentDateTime string  `json:"appointment_datetime" validate:"required"`
	AppointmentType     *string `json:"appointment_type,omitempty"`
	Duration            *int    `json:"duration,omitempty" validate:"omitempty,gt=0"`
	RoomNumber          *string `json:"room_number,omitempty"`
	Notes               *string `json:"notes,omitempty"`
}

type UpdateAppointmentRequest struct {
	AppointmentDateTime *string `json:"appointment_datetime,omitempty"`
	AppointmentType     *string `json:"appointment_type,omitempty"`
	Status              *string `json:"status,omitempty"`
	Duration            *int    `json:"duration,omitempty" validate:"omitempty,gt=0"`
	RoomNumber          *string `json:"room_number,omitempty"`
	Notes               *string `json:"notes,omitempty"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	AppointmentID       string    `json:"appointment_id"`
	PatientID           string    `json:"patient_id"`
	DoctorID            string    `json:"doctor_id"`
	PatientName         string    `json:"patient_name"`
	PatientPhone        *string   `json:"patient_phone,omitempty"`
	DoctorName          string    `json:"doctor_name"`
	AppointmentDateTime time.Time `json:"appointment_datetime"`
	AppointmentType     string    `json:"appointment_type"`
	Status              string    `json:"status"`
	StatusLabel         string    `json:"status_label"`
	Duration            *int      `json:"duration,omitempty"`
	RoomNumber          *string   `json:"room_number,omitempty"`
	Notes               *string   `json:"notes,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
