package presenter

import (
	"strings"
	"testing"
	"time"

	"hospitron/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestStatusBadgeVariant(t *testing.T) {
	cases := map[string]BadgeVariant{
		"scheduled":      BadgeDefault,
		"confirmed":      BadgeSecondary,
		"in_progress":    BadgeOutline,
		"completed":      BadgeSuccess,
		"cancelled":      BadgeDestructive,
		"no_show":        BadgeDestructive,
		"COMPLETED":      BadgeSuccess,
		"unknown_status": BadgeDefault,
		"":               BadgeDefault,
	}
	for status, want := range cases {
		assert.Equal(t, want, StatusBadgeVariant(status), status)
	}
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "text-blue-600", StatusColor("scheduled"))
	assert.Equal(t, "text-green-600", StatusColor("confirmed"))
	assert.Equal(t, "text-yellow-600", StatusColor("in_progress"))
	assert.Equal(t, "text-green-800", StatusColor("completed"))
	assert.Equal(t, "text-red-600", StatusColor("cancelled"))
	assert.Equal(t, "text-red-800", StatusColor("no_show"))
	assert.Equal(t, "text-gray-600", StatusColor("unknown_status"))
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "in progress", StatusBadgeText("in_progress"))
	assert.Equal(t, "IN PROGRESS", StatusLabel("in_progress"))
	assert.Equal(t, "NO SHOW", StatusLabel("no_show"))
	assert.Equal(t, "UNKNOWN STATUS", StatusLabel("unknown_status"))
	assert.Equal(t, "All Status", StatusOptionLabel("all"))
	assert.Equal(t, "No Show", StatusOptionLabel("no_show"))
}

func TestBadgeClass(t *testing.T) {
	assert.Contains(t, BadgeClass(BadgeSuccess), "bg-green-500")
	assert.Contains(t, BadgeClass(BadgeVariant("bogus")), "bg-blue-600")
	assert.True(t, strings.HasPrefix(BadgeClass(BadgeOutline), "inline-flex"))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "02:30 PM", FormatTime(ts, time.UTC))
	assert.Equal(t, "09:05 AM", FormatTime(time.Date(2024, 3, 1, 9, 5, 0, 0, time.UTC), time.UTC))
	assert.Equal(t, "12:00 AM", FormatTime(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.UTC))
	assert.Equal(t, "09:30 PM", FormatTime(ts, time.FixedZone("WIB", 7*60*60)))
	assert.Empty(t, FormatTime(time.Time{}, time.UTC))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "3/1/2024", FormatDate("2024-03-01"))
	assert.Equal(t, "12/25/2024", FormatDate("2024-12-25"))
	assert.Equal(t, "garbage", FormatDate("garbage"))
}

func TestTruncateNotes(t *testing.T) {
	long := strings.Repeat("a", 150)
	short := strings.Repeat("b", 90)
	exact := strings.Repeat("c", 100)

	assert.Equal(t, strings.Repeat("a", 100)+"...", TruncateNotes(long))
	assert.Equal(t, short, TruncateNotes(short))
	assert.Equal(t, exact, TruncateNotes(exact))
}

func TestTypeOrDefault(t *testing.T) {
	assert.Equal(t, "Consultation", TypeOrDefault(nil))
	assert.Equal(t, "Consultation", TypeOrDefault(strPtr("")))
	assert.Equal(t, "Follow-up", TypeOrDefault(strPtr("Follow-up")))
}

func TestFilterAppointments(t *testing.T) {
	set := []entity.Appointment{
		{AppointmentID: "1", PatientName: "John Smith", AppointmentType: strPtr("Consultation")},
		{AppointmentID: "2", PatientName: "Jane Doe", Notes: strPtr("Needs X-ray review")},
		{AppointmentID: "3", PatientName: "Bob Lee"},
	}

	assert.Len(t, FilterAppointments(set, ""), 3)

	got := FilterAppointments(set, "consult")
	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0].AppointmentID)

	assert.Empty(t, FilterAppointments(set, "xyz"))
	assert.NotNil(t, FilterAppointments(set, "xyz"))

	got = FilterAppointments(set, "X-RAY")
	assert.Len(t, got, 1)
	assert.Equal(t, "2", got[0].AppointmentID)

	got = FilterAppointments(set, "jane")
	assert.Equal(t, "2", got[0].AppointmentID)
}

func TestFilterAppointments_Idempotent(t *testing.T) {
	set := []entity.Appointment{
		{PatientName: "John Smith"},
		{PatientName: "Johnny Cash", Notes: strPtr("smith family referral")},
		{PatientName: "Ann Lee"},
	}

	for _, term := range []string{"", "smith", "JOHN", "zzz"} {
		once := FilterAppointments(set, term)
		assert.Equal(t, once, FilterAppointments(once, term), term)
	}
}

func TestEmptyStateMessage(t *testing.T) {
	today := "2024-03-01"

	assert.Equal(t, "No appointments scheduled for today.", EmptyStateMessage("", "all", today, today))
	assert.Equal(t, "No appointments match your current filters.", EmptyStateMessage("john", "all", today, today))
	assert.Equal(t, "No appointments match your current filters.", EmptyStateMessage("", "completed", today, today))
	assert.Equal(t, "No appointments match your current filters.", EmptyStateMessage("", "all", "2024-03-02", today))
}

func TestResultSummary(t *testing.T) {
	assert.Equal(t, "Showing 1 appointment for 3/1/2024", ResultSummary(1, "2024-03-01"))
	assert.Equal(t, "Showing 4 appointments for 3/1/2024", ResultSummary(4, "2024-03-01"))
	assert.Equal(t, "Showing 2 appointments", ResultSummary(2, ""))
}

func TestNewAppointmentCard(t *testing.T) {
	duration := 30
	card := NewAppointmentCard(entity.Appointment{
		AppointmentID:       "a-1",
		PatientName:         "John Smith",
		PatientPhone:        strPtr("+1 555 0100"),
		AppointmentDateTime: entity.NewDateTime(time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)),
		Status:              "in_progress",
		Duration:            &duration,
		RoomNumber:          strPtr("12B"),
		Notes:               strPtr(strings.Repeat("n", 120)),
	}, time.UTC)

	assert.Equal(t, "a-1", card.ID)
	assert.Equal(t, "in progress", card.BadgeText)
	assert.Equal(t, "IN PROGRESS", card.StatusLabel)
	assert.Equal(t, "text-yellow-600", card.StatusColor)
	assert.Equal(t, "02:30 PM", card.Time)
	assert.Equal(t, "Consultation", card.Type)
	assert.Equal(t, "+1 555 0100", card.Phone)
	assert.Equal(t, "Room 12B", card.Room)
	assert.Equal(t, "30 min", card.Duration)
	assert.Len(t, card.Notes, 103)
}

func TestNewAppointmentCard_OptionalFieldsAbsent(t *testing.T) {
	zero := 0
	card := NewAppointmentCard(entity.Appointment{Status: "unknown_status", Duration: &zero}, time.UTC)

	assert.Empty(t, card.Phone)
	assert.Empty(t, card.Room)
	assert.Empty(t, card.Duration)
	assert.Empty(t, card.Notes)
	assert.Equal(t, "text-gray-600", card.StatusColor)
	assert.Contains(t, card.BadgeClass, "bg-blue-600")
}
