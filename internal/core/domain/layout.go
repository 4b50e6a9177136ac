package domain

import (
	"errors"
	"time"
)

var (
	ErrPreferencesNotFound = errors.New("layout preferences not found")
	ErrNoLayoutSession     = errors.New("no layout session")
	ErrLastVisibleCard     = errors.New("at least one card must stay visible")
	ErrNotPermutation      = errors.New("order is not a permutation of the current cards")
)

// LayoutPreferences is the persisted dashboard layout for one user: the card
// order plus which cards are visible and which are collapsed. The server copy
// is the source of truth on reload; during a session the in-memory state wins.
type LayoutPreferences struct {
	UserID         string    `json:"user_id" bson:"user_id"`
	CardOrder      []CardID  `json:"card_order" bson:"card_order"`
	VisibleCards   []CardID  `json:"visible_cards" bson:"visible_cards"`
	CollapsedCards []CardID  `json:"collapsed_cards" bson:"collapsed_cards"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// Sanitize drops ids that are not in the available set. Persisted layouts can
// reference cards that no longer exist or that the role lost access to; those
// ids are silently ignored rather than treated as corruption.
func (p LayoutPreferences) Sanitize(available map[CardID]struct{}) LayoutPreferences {
	return LayoutPreferences{
		UserID:         p.UserID,
		CardOrder:      filterKnown(p.CardOrder, available),
		VisibleCards:   filterKnown(p.VisibleCards, available),
		CollapsedCards: filterKnown(p.CollapsedCards, available),
		UpdatedAt:      p.UpdatedAt,
	}
}

// filterKnown keeps ids present in the known set, preserving order and
// dropping duplicates.
func filterKnown(ids []CardID, known map[CardID]struct{}) []CardID {
	out := make([]CardID, 0, len(ids))
	seen := make(map[CardID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
