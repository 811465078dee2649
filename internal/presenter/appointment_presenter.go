// Package presenter turns appointments into display strings for the list view
// and dashboard. Every mapping is total: unknown statuses get the fallback style.
package presenter

import (
	"fmt"
	"strings"
	"time"

	"hospitron/internal/domain/entity"
)

const (
	notesLimit   = 100
	defaultType  = "Consultation"
	timeLayout   = "03:04 PM"
	fallbackText = "text-gray-600"
)

type BadgeVariant string

const (
	BadgeDefault     BadgeVariant = "default"
	BadgeSecondary   BadgeVariant = "secondary"
	BadgeOutline     BadgeVariant = "outline"
	BadgeSuccess     BadgeVariant = "success"
	BadgeDestructive BadgeVariant = "destructive"
)

const badgeBase = "inline-flex items-center rounded-full border px-2.5 py-0.5 text-xs font-semibold transition-colors"

var badgeClasses = map[BadgeVariant]string{
	BadgeDefault:     "border-transparent bg-blue-600 text-white",
	BadgeSecondary:   "border-transparent bg-gray-100 text-gray-900",
	BadgeDestructive: "border-transparent bg-red-500 text-white",
	BadgeOutline:     "text-gray-600 border-gray-300",
	BadgeSuccess:     "border-transparent bg-green-500 text-white",
}

var statusVariants = map[entity.AppointmentStatus]BadgeVariant{
	entity.StatusScheduled:  BadgeDefault,
	entity.StatusConfirmed:  BadgeSecondary,
	entity.StatusInProgress: BadgeOutline,
	entity.StatusCompleted:  BadgeSuccess,
	entity.StatusCancelled:  BadgeDestructive,
	entity.StatusNoShow:     BadgeDestructive,
}

var statusColors = map[entity.AppointmentStatus]string{
	entity.StatusScheduled:  "text-blue-600",
	entity.StatusConfirmed:  "text-green-600",
	entity.StatusInProgress: "text-yellow-600",
	entity.StatusCompleted:  "text-green-800",
	entity.StatusCancelled:  "text-red-600",
	entity.StatusNoShow:     "text-red-800",
}

var statusOptionLabels = map[string]string{
	entity.StatusAll:                "All Status",
	string(entity.StatusScheduled):  "Scheduled",
	string(entity.StatusConfirmed):  "Confirmed",
	string(entity.StatusInProgress): "In Progress",
	string(entity.StatusCompleted):  "Completed",
	string(entity.StatusCancelled):  "Cancelled",
	string(entity.StatusNoShow):     "No Show",
}

func normalizeStatus(status string) entity.AppointmentStatus {
	return entity.AppointmentStatus(strings.ToLower(strings.TrimSpace(status)))
}

func StatusBadgeVariant(status string) BadgeVariant {
	if v, ok := statusVariants[normalizeStatus(status)]; ok {
		return v
	}
	return BadgeDefault
}

func BadgeClass(variant BadgeVariant) string {
	classes, ok := badgeClasses[variant]
	if !ok {
		classes = badgeClasses[BadgeDefault]
	}
	return badgeBase + " " + classes
}

func StatusColor(status string) string {
	if c, ok := statusColors[normalizeStatus(status)]; ok {
		return c
	}
	return fallbackText
}

// StatusBadgeText renders in_progress as "in progress".
func StatusBadgeText(status string) string {
	return strings.ReplaceAll(status, "_", " ")
}

// StatusLabel renders in_progress as "IN PROGRESS".
func StatusLabel(status string) string {
	return strings.ToUpper(StatusBadgeText(status))
}

// StatusOptionLabel is the filter dropdown caption for a status value.
func StatusOptionLabel(status string) string {
	if label, ok := statusOptionLabels[status]; ok {
		return label
	}
	return StatusBadgeText(status)
}

// FormatTime renders a 12-hour clock with zero-padded hour and minutes, e.g. "02:30 PM".
func FormatTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(timeLayout)
}

// FormatDate renders a YYYY-MM-DD date as M/D/YYYY. Unparseable input is returned unchanged.
func FormatDate(date string) string {
	d, err := time.Parse(entity.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("1/2/2006")
}

func TruncateNotes(notes string) string {
	runes := []rune(notes)
	if len(runes) <= notesLimit {
		return notes
	}
	return string(runes[:notesLimit]) + "..."
}

func TypeOrDefault(appointmentType *string) string {
	if appointmentType == nil || *appointmentType == "" {
		return defaultType
	}
	return *appointmentType
}

// Matches reports whether term is a case-insensitive substring of the patient
// name, the type or the notes. An empty term matches everything.
func Matches(a entity.Appointment, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, field := range []string{a.PatientName, deref(a.AppointmentType), deref(a.Notes)} {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// FilterAppointments keeps the entries matching term, preserving order.
func FilterAppointments(appointments []entity.Appointment, term string) []entity.Appointment {
	filtered := make([]entity.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if Matches(a, term) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

const EmptyStateTitle = "No appointments found"

// EmptyStateMessage tells apart an empty day from filters that exclude everything.
func EmptyStateMessage(search, status, date, today string) string {
	if search != "" || (status != "" && status != entity.StatusAll) || date != today {
		return "No appointments match your current filters."
	}
	return "No appointments scheduled for today."
}

// ResultSummary is the footer under a populated list.
func ResultSummary(count int, date string) string {
	noun := "appointments"
	if count == 1 {
		noun = "appointment"
	}
	summary := fmt.Sprintf("Showing %d %s", count, noun)
	if date != "" {
		summary += " for " + FormatDate(date)
	}
	return summary
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
