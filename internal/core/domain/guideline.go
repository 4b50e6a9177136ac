package domain

import (
	"errors"
	"time"
)

var ErrGuidelineNotFound = errors.New("guideline not found")

// Guideline is an internal production guideline document, e.g. house rules
// for audio-description scripting or caption timing.
type Guideline struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Category  string    `json:"category,omitempty" bson:"category,omitempty"`
	Body      string    `json:"body" bson:"body"`
	Version   int       `json:"version" bson:"version"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
