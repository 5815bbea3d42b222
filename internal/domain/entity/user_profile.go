package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile carries the demographic data the recommendation engine
// classifies against. RiskFactors is reserved for future risk-based
// guideline matching and is currently unpopulated.
type UserProfile struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Gender      string    `gorm:"type:varchar(10);not null" json:"gender"`
	RiskFactors JSON      `gorm:"type:jsonb" json:"risk_factors,omitempty"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// AgeAt returns the profile's age in whole years at the given time.
func (p *UserProfile) AgeAt(at time.Time) int {
	age := at.Year() - p.DateOfBirth.Year()
	if at.YearDay() < p.DateOfBirth.YearDay() {
		age--
	}
	return age
}

// Age returns the profile's current age in whole years.
func (p *UserProfile) Age() int {
	return p.AgeAt(time.Now())
}
