package domain

import (
	"errors"
	"time"
)

var ErrInvalidCIDR = errors.New("invalid CIDR entry")

// AllowlistEntry is one admin-managed network range permitted to reach the
// API when enforcement is on.
type AllowlistEntry struct {
	CIDR      string    `json:"cidr" bson:"cidr"`
	Note      string    `json:"note,omitempty" bson:"note,omitempty"`
	AddedBy   string    `json:"added_by,omitempty" bson:"added_by,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
