package domain

import (
	"errors"
	"strings"
	"time"
)

// PersonKind classifies production personnel by the work they do.
type PersonKind string

const (
	KindVoiceArtist     PersonKind = "voice_artist"
	KindScriptwriter    PersonKind = "scriptwriter"
	KindSignInterpreter PersonKind = "sign_interpreter"
	KindStaff           PersonKind = "staff"
)

var personKinds = []PersonKind{KindVoiceArtist, KindScriptwriter, KindSignInterpreter, KindStaff}

// ParsePersonKind converts a string into a known PersonKind.
func ParsePersonKind(value string) (PersonKind, bool) {
	normalized := PersonKind(strings.ToLower(strings.TrimSpace(value)))
	for _, k := range personKinds {
		if k == normalized {
			return k, true
		}
	}
	return "", false
}

var (
	ErrPersonNotFound    = errors.New("person not found")
	ErrUnknownPersonKind = errors.New("unknown person kind")
)

// Person is a member of the production roster: narrators, script writers,
// sign-language interpreters and in-house staff.
type Person struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	Name      string     `json:"name" bson:"name"`
	Kana      string     `json:"kana,omitempty" bson:"kana,omitempty"`
	Kind      PersonKind `json:"kind" bson:"kind"`
	Email     string     `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string     `json:"phone,omitempty" bson:"phone,omitempty"`
	Agency    string     `json:"agency,omitempty" bson:"agency,omitempty"`
	Notes     string     `json:"notes,omitempty" bson:"notes,omitempty"`
	Active    bool       `json:"active" bson:"active"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}
