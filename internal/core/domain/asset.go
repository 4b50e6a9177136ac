package domain

import (
	"errors"
	"strings"
	"time"
)

// AssetKind identifies which accessibility medium an asset carries.
type AssetKind string

const (
	AssetAudioDescription AssetKind = "audio_description"
	AssetCaptions         AssetKind = "captions"
	AssetSignLanguage     AssetKind = "sign_language"
)

var assetKinds = []AssetKind{AssetAudioDescription, AssetCaptions, AssetSignLanguage}

// ParseAssetKind converts a string into a known AssetKind.
func ParseAssetKind(value string) (AssetKind, bool) {
	normalized := AssetKind(strings.ToLower(strings.TrimSpace(value)))
	for _, k := range assetKinds {
		if k == normalized {
			return k, true
		}
	}
	return "", false
}

// AssetStatus tracks the review lifecycle of a media asset.
type AssetStatus string

const (
	AssetDraft     AssetStatus = "draft"
	AssetInReview  AssetStatus = "in_review"
	AssetApproved  AssetStatus = "approved"
	AssetDelivered AssetStatus = "delivered"
)

var assetStatuses = map[AssetStatus]struct{}{
	AssetDraft:     {},
	AssetInReview:  {},
	AssetApproved:  {},
	AssetDelivered: {},
}

// ValidAssetStatus reports whether s is a known asset status.
func ValidAssetStatus(s AssetStatus) bool {
	_, ok := assetStatuses[s]
	return ok
}

var (
	ErrAssetNotFound      = errors.New("asset not found")
	ErrUnknownAssetKind   = errors.New("unknown asset kind")
	ErrUnknownAssetStatus = errors.New("unknown asset status")
)

// Asset is one accessibility deliverable for a movie: an audio description
// track, a caption file, or a sign-language video.
type Asset struct {
	ID              string      `json:"id" bson:"_id,omitempty"`
	MovieID         string      `json:"movie_id" bson:"movie_id"`
	Kind            AssetKind   `json:"kind" bson:"kind"`
	Language        string      `json:"language" bson:"language"`
	Format          string      `json:"format,omitempty" bson:"format,omitempty"`
	DurationSeconds int         `json:"duration_seconds,omitempty" bson:"duration_seconds,omitempty"`
	SizeBytes       int64       `json:"size_bytes,omitempty" bson:"size_bytes,omitempty"`
	StorageKey      string      `json:"storage_key,omitempty" bson:"storage_key,omitempty"`
	Version         int         `json:"version" bson:"version"`
	Status          AssetStatus `json:"status" bson:"status"`
	CreatedAt       time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" bson:"updated_at"`
}
