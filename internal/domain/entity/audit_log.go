package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AuditLog is one entry of the staff activity trail: sign-ins and every
// appointment change made through this service.
type AuditLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:varchar(64);index" json:"user_id,omitempty"`
	Action    string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON is a jsonb column.
type JSON map[string]interface{}

func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb value of type %T", value)
	}

	decoded := map[string]interface{}{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*j = decoded
	return nil
}

const (
	AuditActionUserLogin               = "user.login"
	AuditActionUserLogout              = "user.logout"
	AuditActionAppointmentCreate       = "appointment.create"
	AuditActionAppointmentUpdate       = "appointment.update"
	AuditActionAppointmentStatusUpdate = "appointment.status_update"
	AuditActionAppointmentDelete       = "appointment.delete"
)

// AuditActions lists every action the service records.
var AuditActions = []string{
	AuditActionUserLogin,
	AuditActionUserLogout,
	AuditActionAppointmentCreate,
	AuditActionAppointmentUpdate,
	AuditActionAppointmentStatusUpdate,
	AuditActionAppointmentDelete,
}

// AuditEntityAppointment is the metadata "entity" value of appointment changes.
const AuditEntityAppointment = "appointment"

// AuditLogFilter narrows the trail. Empty fields match everything; EntityID
// matches the "entity_id" key of the metadata.
type AuditLogFilter struct {
	UserID   string
	Action   string
	EntityID string
	Limit    int
}
