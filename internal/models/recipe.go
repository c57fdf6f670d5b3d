package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// DealItem is one grocery item the vision model identified as on sale in the
// uploaded flyer. Only the name is required; the pricing fields are kept for
// rows written by earlier revisions and are never recomputed.
type DealItem struct {
	Name     string `json:"name"`
	Store    string `json:"store,omitempty"`
	Category string `json:"category,omitempty"`
	Unit     string `json:"unit,omitempty"`

	// Deprecated pricing fields, parsed leniently when present.
	Price         float64 `json:"price,omitempty"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
}

// DealItems stores the deal item list as a single JSONB column.
type DealItems []DealItem

func (d DealItems) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "[]", nil
	}
	return json.Marshal(d)
}

func (d *DealItems) Scan(value interface{}) error {
	if value == nil {
		*d = DealItems{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, d)
}

// Recipe is a generated cooking result. Ingredient and instruction order is
// preserved verbatim from the model output; deal_items is an independently
// produced list with no structural link to ingredients.
type Recipe struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt       time.Time        `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt       time.Time        `json:"-"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
	Title           string           `gorm:"size:255;not null" json:"title"`
	Ingredients     JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	CookingTime     int              `gorm:"column:cooking_time" json:"cookingTime"`
	DifficultyLevel string           `gorm:"column:difficulty_level;size:16" json:"difficultyLevel"`
	Cuisine         string           `gorm:"size:100" json:"cuisine"`
	DealItems       DealItems        `gorm:"column:deal_items;type:jsonb;not null;default:'[]'" json:"dealItems"`

	// ImageURL is a display placeholder only; the original upload is never
	// stored, so the column does not exist.
	ImageURL string    `gorm:"-" json:"imageUrl,omitempty"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
