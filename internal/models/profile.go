package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile carries the user-facing identity and the onboarding gate. The
// has_completed_onboarding flag flips false->true exactly once, when the
// onboarding wizard completes.
type Profile struct {
	ID                      uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	UserID                  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	FirstName               string         `gorm:"size:100" json:"first_name"`
	LastName                string         `gorm:"size:100" json:"last_name"`
	HasCompletedOnboarding  bool           `gorm:"not null;default:false" json:"has_completed_onboarding"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
