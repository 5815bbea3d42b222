package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GuidelineVisibility controls who can see a guideline
type GuidelineVisibility string

const (
	VisibilityPublic  GuidelineVisibility = "public"
	VisibilityPrivate GuidelineVisibility = "private"
)

// Gender values used in guideline applicability sets and patient profiles
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderAll    = "all"
)

// DefaultFrequencyMonths is used when a guideline has no frequency configured
const DefaultFrequencyMonths = 12

// StringList is a JSONB-backed list of strings
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
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
	var result []string
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*l = StringList(result)
	return nil
}

// Guideline represents a preventive-care recommendation definition.
// Public guidelines form the shared catalog; private guidelines are
// user-owned copies created by personalization and carry a back-reference
// to the guideline they were cloned from.
type Guideline struct {
	ID                  uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name                string              `gorm:"type:varchar(255);not null" json:"name"`
	Description         string              `gorm:"type:text" json:"description,omitempty"`
	Category            string              `gorm:"type:varchar(100);index" json:"category,omitempty"`
	Genders             StringList          `gorm:"type:jsonb;not null" json:"genders"`
	FrequencyMonths     int                 `gorm:"not null;default:12" json:"frequency_months"`
	FrequencyMonthsMax  *int                `json:"frequency_months_max,omitempty"`
	Visibility          GuidelineVisibility `gorm:"type:varchar(10);not null;default:'public';index" json:"visibility"`
	CreatedBy           *uuid.UUID          `gorm:"type:uuid;index" json:"created_by,omitempty"`
	Tags                StringList          `gorm:"type:jsonb" json:"tags,omitempty"`
	OriginalGuidelineID *uuid.UUID          `gorm:"type:uuid" json:"original_guideline_id,omitempty"`
	CreatedAt           time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time           `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	AgeRanges []GuidelineAgeRange `gorm:"foreignKey:GuidelineID" json:"age_ranges,omitempty"`
	Resources []GuidelineResource `gorm:"foreignKey:GuidelineID" json:"resources,omitempty"`
}

func (Guideline) TableName() string {
	return "guidelines"
}

// EffectiveFrequencyMonths returns the configured frequency, falling back
// to the default when unset or zero.
func (g *Guideline) EffectiveFrequencyMonths() int {
	if g.FrequencyMonths <= 0 {
		return DefaultFrequencyMonths
	}
	return g.FrequencyMonths
}

// AppliesToGender reports whether the guideline applies to the given
// profile gender. A guideline with "all" in its gender set applies to
// everyone.
func (g *Guideline) AppliesToGender(gender string) bool {
	for _, v := range g.Genders {
		if v == GenderAll || v == gender {
			return true
		}
	}
	return false
}

// IsPrivate checks if the guideline is a user-owned copy
func (g *Guideline) IsPrivate() bool {
	return g.Visibility == VisibilityPrivate
}

// GuidelineAgeRange is one applicability interval of a guideline.
// MinAge is inclusive; a nil MaxAge means the range is unbounded above.
// Position preserves the stored scan order, which the recommendation
// engine depends on.
type GuidelineAgeRange struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	GuidelineID uuid.UUID `gorm:"type:uuid;not null;index" json:"guideline_id"`
	MinAge      int       `gorm:"not null" json:"min_age"`
	MaxAge      *int      `json:"max_age,omitempty"`
	Position    int       `gorm:"not null;default:0" json:"position"`
}

func (GuidelineAgeRange) TableName() string {
	return "guideline_age_ranges"
}

// Contains reports whether age falls inside the range. MaxAge is inclusive.
func (r *GuidelineAgeRange) Contains(age int) bool {
	if age < r.MinAge {
		return false
	}
	return r.MaxAge == nil || age <= *r.MaxAge
}

// GuidelineResource is supporting material attached to a guideline
// (patient information links, source publications)
type GuidelineResource struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	GuidelineID uuid.UUID `gorm:"type:uuid;not null;index" json:"guideline_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	URL         string    `gorm:"type:text" json:"url,omitempty"`
}

func (GuidelineResource) TableName() string {
	return "guideline_resources"
}
