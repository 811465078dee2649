package entity

// StatusAll is the filter value that omits the status constraint.
const StatusAll = "all"

// DateLayout is the calendar date format the backend expects.
const DateLayout = "2006-01-02"

// AppointmentFilter is a domain-level filter for listing appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	Date   string // Format: YYYY-MM-DD, empty for any date
	Status string // one of AppointmentStatuses, "all" or empty for any status
}

// HasStatus reports whether the filter narrows by status.
func (f AppointmentFilter) HasStatus() bool {
	return f.Status != "" && f.Status != StatusAll
}
