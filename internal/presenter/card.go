package presenter

import (
	"strconv"
	"time"

	"hospitron/internal/domain/entity"
)

// AppointmentCard is one populated row of the appointment list.
type AppointmentCard struct {
	ID          string
	PatientName string
	BadgeText   string
	BadgeClass  string
	Time        string
	Type        string
	Phone       string
	Room        string
	Notes       string
	StatusLabel string
	StatusColor string
	Duration    string
}

func NewAppointmentCard(a entity.Appointment, loc *time.Location) AppointmentCard {
	status := string(a.Status)
	card := AppointmentCard{
		ID:          a.AppointmentID,
		PatientName: a.PatientName,
		BadgeText:   StatusBadgeText(status),
		BadgeClass:  BadgeClass(StatusBadgeVariant(status)),
		Time:        FormatTime(a.AppointmentDateTime.Time, loc),
		Type:        TypeOrDefault(a.AppointmentType),
		Phone:       deref(a.PatientPhone),
		Notes:       TruncateNotes(deref(a.Notes)),
		StatusLabel: StatusLabel(status),
		StatusColor: StatusColor(status),
	}
	if room := deref(a.RoomNumber); room != "" {
		card.Room = "Room " + room
	}
	if a.Duration != nil && *a.Duration > 0 {
		card.Duration = strconv.Itoa(*a.Duration) + " min"
	}
	return card
}

func NewAppointmentCards(appointments []entity.Appointment, loc *time.Location) []AppointmentCard {
	cards := make([]AppointmentCard, 0, len(appointments))
	for _, a := range appointments {
		cards = append(cards, NewAppointmentCard(a, loc))
	}
	return cards
}
