package ports

import (
	"context"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// LayoutSource says where the current layout came from.
type LayoutSource string

const (
	// LayoutSourceSaved means persisted preferences were loaded and merged.
	LayoutSourceSaved LayoutSource = "saved"
	// LayoutSourceDefault means registry defaults are in effect, either
	// because the user has no saved layout yet or because loading failed.
	LayoutSourceDefault LayoutSource = "default"
)

// SaveState reflects the persistence status of a layout session.
type SaveState string

const (
	SaveStateSaved   SaveState = "saved"   // in-memory state matches the store
	SaveStatePending SaveState = "pending" // mutations await the debounced write
	SaveStateFailed  SaveState = "failed"  // the last write failed; state kept in memory
)

// LayoutView is a read-only snapshot of one user's layout session.
type LayoutView struct {
	CardOrder      []domain.CardID
	VisibleCards   []domain.CardID
	CollapsedCards []domain.CardID
	Source         LayoutSource
	SaveState      SaveState
	// Warning carries a non-fatal message, e.g. "saved layout could not be
	// loaded, showing defaults". Empty when nothing is wrong.
	Warning string
	// LastSaveError is the message of the most recent failed write, surfaced
	// so the UI can toast it. Empty once a write succeeds.
	LastSaveError string
}

// LayoutService owns the in-memory layout session of each signed-in user and
// schedules debounced persistence of mutations.
type LayoutService interface {
	// Initialize loads (or re-loads) the session for userID. Load failures
	// and missing preferences fall back to registry defaults and are
	// reported via the view's Warning, never as an error.
	Initialize(ctx context.Context, userID string, role domain.Role) (*LayoutView, error)
	// Reorder replaces the card order with a full permutation of the current
	// one. Unknown ids in newOrder are ignored; a missing known id rejects
	// the whole request with domain.ErrNotPermutation.
	Reorder(ctx context.Context, userID string, newOrder []domain.CardID) (*LayoutView, error)
	// MoveCard moves a card delta positions among its visible siblings,
	// keeping hidden cards in place. The keyboard-accessible reorder path.
	MoveCard(ctx context.Context, userID string, cardID domain.CardID, delta int) (*LayoutView, error)
	// ToggleVisibility flips a card in or out of the visible set. Hiding the
	// last visible card fails with domain.ErrLastVisibleCard.
	ToggleVisibility(ctx context.Context, userID string, cardID domain.CardID) (*LayoutView, error)
	// ToggleCollapse flips a card's collapsed state, or force-sets it when
	// explicit is non-nil.
	ToggleCollapse(ctx context.Context, userID string, cardID domain.CardID, explicit *bool) (*LayoutView, error)
	// ResetToDefaults re-derives the session from registry defaults. The
	// reset is persisted by the normal debounce, like any other mutation.
	ResetToDefaults(ctx context.Context, userID string) (*LayoutView, error)
	// Save persists the current state immediately, bypassing the debounce.
	Save(ctx context.Context, userID string) (*LayoutView, error)
	// Replace installs a complete client-supplied layout and persists it
	// immediately (the PUT path of the wire contract).
	Replace(ctx context.Context, userID string, prefs domain.LayoutPreferences) (*LayoutView, error)
	// View returns the current snapshot without mutating anything.
	View(userID string) (*LayoutView, error)
	// Teardown discards the session and cancels any pending save timer
	// without flushing.
	Teardown(userID string)
	// Close flushes every dirty session. Called once at shutdown.
	Close(ctx context.Context) error
}
