package ports

import (
	"context"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// PreferencesRepository is the durable store for dashboard layout preferences.
type PreferencesRepository interface {
	// Load retrieves the stored preferences for a user. A user that has never
	// saved a layout yields domain.ErrPreferencesNotFound, which callers must
	// treat as "use defaults", distinct from a transport failure.
	Load(ctx context.Context, userID string) (*domain.LayoutPreferences, error)
	// Save upserts the whole record. Partial patches are deliberately not
	// supported: the order/visible/collapsed triple is always written
	// together so the three collections cannot desynchronise.
	Save(ctx context.Context, prefs *domain.LayoutPreferences) error
}
