package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AppointmentResult captures the outcome of a completed appointment
type AppointmentResult struct {
	Status string `json:"status,omitempty"`
	Notes  string `json:"notes,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Value implements driver.Valuer
func (r AppointmentResult) Value() (driver.Value, error) {
	if r == (AppointmentResult{}) {
		return nil, nil
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner
func (r *AppointmentResult) Scan(value interface{}) error {
	if value == nil {
		*r = AppointmentResult{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}
	return json.Unmarshal(bytes, r)
}

// Appointment is a scheduled or completed visit, loosely linked to a
// screening. ScreeningID is a plain string on purpose: historical rows may
// hold either a ScreeningRecord ID or that record's guideline ID, and the
// reconciler resolves both. An empty ScreeningID means the appointment is
// not linked to any screening.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	ScreeningID     string            `gorm:"type:varchar(64);index" json:"screening_id,omitempty"`
	AppointmentDate time.Time         `gorm:"type:date;not null" json:"appointment_date"`
	Completed       bool              `gorm:"not null;default:false" json:"completed"`
	Result          AppointmentResult `gorm:"type:jsonb" json:"result,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// HasResult checks if an outcome has been recorded
func (a *Appointment) HasResult() bool {
	return a.Result != (AppointmentResult{})
}
