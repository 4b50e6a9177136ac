package domain

import (
	"errors"
	"time"
)

var ErrDistributorNotFound = errors.New("distributor not found")

// Distributor is a film distribution company the studio licenses titles from.
type Distributor struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	ContactName string    `json:"contact_name,omitempty" bson:"contact_name,omitempty"`
	Email       string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone       string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Notes       string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
