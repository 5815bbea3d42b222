package entity

import (
	"time"

	"github.com/google/uuid"
)

// Selection is a user's choice to track a guideline. One row per
// (user, guideline) pair; selecting again only touches SelectedAt.
type Selection struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_selections_user_guideline" json:"user_id"`
	GuidelineID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_selections_user_guideline" json:"guideline_id"`
	SelectedAt  time.Time `gorm:"not null" json:"selected_at"`

	// Relationships
	Guideline Guideline `gorm:"foreignKey:GuidelineID" json:"guideline,omitempty"`
}

func (Selection) TableName() string {
	return "selections"
}
