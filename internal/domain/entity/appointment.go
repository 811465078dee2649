package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// AppointmentStatuses lists the lifecycle values in display order.
var AppointmentStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

func (s AppointmentStatus) IsValid() bool {
	for _, known := range AppointmentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Appointment is one scheduled clinical encounter as served by the backend.
// Status is kept as received; unknown values are tolerated.
type Appointment struct {
	AppointmentID       string            `json:"appointment_id"`
	PatientID           string            `json:"patient_id"`
	DoctorID            string            `json:"doctor_id"`
	PatientName         string            `json:"patient_name"`
	PatientPhone        *string           `json:"patient_phone,omitempty"`
	DoctorName          string            `json:"doctor_name"`
	AppointmentDateTime DateTime          `json:"appointment_datetime"`
	AppointmentType     *string           `json:"appointment_type,omitempty"`
	Status              AppointmentStatus `json:"status"`
	Duration            *int              `json:"duration,omitempty"`
	RoomNumber          *string           `json:"room_number,omitempty"`
	Notes               *string           `json:"notes,omitempty"`
	CreatedAt           DateTime          `json:"created_at"`
	UpdatedAt           DateTime          `json:"updated_at"`
}

// NewAppointment is the payload for creating an appointment.
type NewAppointment struct {
	PatientID           string   `json:"patient_id"`
	DoctorID            string   `json:"doctor_id"`
	AppointmentDateTime DateTime `json:"appointment_datetime"`
	AppointmentType     *string  `json:"appointment_type,omitempty"`
	Duration            *int     `json:"duration,omitempty"`
	RoomNumber          *string  `json:"room_number,omitempty"`
	Notes               *string  `json:"notes,omitempty"`
}

// AppointmentChanges is a partial update; nil fields are left untouched.
type AppointmentChanges struct {
	AppointmentDateTime *DateTime          `json:"appointment_datetime,omitempty"`
	AppointmentType     *string            `json:"appointment_type,omitempty"`
	Status              *AppointmentStatus `json:"status,omitempty"`
	Duration            *int               `json:"duration,omitempty"`
	RoomNumber          *string            `json:"room_number,omitempty"`
	Notes               *string            `json:"notes,omitempty"`
}

func (c AppointmentChanges) IsEmpty() bool {
	return c.AppointmentDateTime == nil && c.AppointmentType == nil && c.Status == nil &&
		c.Duration == nil && c.RoomNumber == nil && c.Notes == nil
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// DateTime is a timestamp that accepts the formats the backend is known to emit.
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

// ParseDateTime parses s with the first matching layout.
func ParseDateTime(s string) (DateTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateTime{Time: t}, nil
		}
	}
	return DateTime{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(time.RFC3339))
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
