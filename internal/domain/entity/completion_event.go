package entity

import (
	"time"

	"github.com/google/uuid"
)

// CompletionEvent is an append-only history row recording that a guideline
// was fulfilled on a given date. Writing one does not touch the screening
// record beyond the single update performed at completion time.
type CompletionEvent struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	GuidelineID    uuid.UUID `gorm:"type:uuid;not null;index" json:"guideline_id"`
	CompletionDate time.Time `gorm:"type:date;not null" json:"completion_date"`
	Notes          string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (CompletionEvent) TableName() string {
	return "completion_events"
}
