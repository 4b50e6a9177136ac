package domain

import (
	"errors"
	"time"
)

// MovieStatus tracks where a title sits in its release cycle.
type MovieStatus string

const (
	MovieAnnounced MovieStatus = "announced"
	MovieReleased  MovieStatus = "released"
	MovieArchived  MovieStatus = "archived"
)

var movieStatuses = map[MovieStatus]struct{}{
	MovieAnnounced: {},
	MovieReleased:  {},
	MovieArchived:  {},
}

// ValidMovieStatus reports whether s is a known movie status.
func ValidMovieStatus(s MovieStatus) bool {
	_, ok := movieStatuses[s]
	return ok
}

var (
	ErrMovieNotFound      = errors.New("movie not found")
	ErrDuplicateMovie     = errors.New("movie already exists")
	ErrUnknownMovieStatus = errors.New("unknown movie status")
)

// Movie is a theatrical title the studio produces accessibility media for.
type Movie struct {
	ID             string      `json:"id" bson:"_id,omitempty"`
	Title          string      `json:"title" bson:"title"`
	OriginalTitle  string      `json:"original_title,omitempty" bson:"original_title,omitempty"`
	DistributorID  string      `json:"distributor_id,omitempty" bson:"distributor_id,omitempty"`
	ReleaseDate    time.Time   `json:"release_date" bson:"release_date"`
	RuntimeMinutes int         `json:"runtime_minutes" bson:"runtime_minutes"`
	Status         MovieStatus `json:"status" bson:"status"`
	Summary        string      `json:"summary,omitempty" bson:"summary,omitempty"`
	CreatedAt      time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" bson:"updated_at"`
}
