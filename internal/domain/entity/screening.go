package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScreeningRecord is a user's tracked instance of a guideline. It holds the
// completion state and the computed next due date. Records are soft-deleted
// via Archived: archived records are excluded from default queries but never
// physically removed, and there is no transition back to active.
type ScreeningRecord struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	GuidelineID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"guideline_id"`
	UserID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Archived          bool       `gorm:"not null;default:false;index" json:"archived"`
	LastCompletedDate *time.Time `gorm:"type:date" json:"last_completed_date,omitempty"`
	NextDueDate       *time.Time `gorm:"type:date" json:"next_due_date,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Guideline Guideline `gorm:"foreignKey:GuidelineID" json:"guideline,omitempty"`
}

func (ScreeningRecord) TableName() string {
	return "screening_records"
}

// IsActive checks if the record has not been archived
func (s *ScreeningRecord) IsActive() bool {
	return !s.Archived
}

// Archive moves the record to its terminal archived state
func (s *ScreeningRecord) Archive() {
	s.Archived = true
}

// RecordCompletion updates the completion state in place. The record stays
// active; completion never archives.
func (s *ScreeningRecord) RecordCompletion(completedAt, nextDue time.Time) {
	s.LastCompletedDate = &completedAt
	s.NextDueDate = &nextDue
}
