package dto

type StatCard struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

type ScheduleRow struct {
	AppointmentID string `json:"appointment_id"`
	Time          string `json:"time"`
	Patient       string `json:"patient"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	StatusColor   string `json:"status_color"`
}

type RecentPatient struct {
	PatientID string `json:"patient_id"`
	Name      string `json:"name"`
	LastVisit string `json:"last_visit"`
	Type      string `json:"type"`
}

type DashboardResponse struct {
	User           UserResponse    `json:"user"`
	Stats          []StatCard      `json:"stats"`
	Today          []ScheduleRow   `json:"today"`
	RecentPatients []RecentPatient `json:"recent_patients"`
	Warnings       []string        `json:"warnings,omitempty"`
}
