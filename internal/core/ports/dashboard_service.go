package ports

import (
	"context"
	"time"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// CardBody is the content payload of one rendered card. Shapes differ per
// card, so the body is a loose key/value document.
type CardBody map[string]any

// ContentProvider computes the body payload for one card. Providers run only
// for cards that are visible and not collapsed.
type ContentProvider func(ctx context.Context, userID string) (CardBody, error)

// ContentCache is a TTL cache for card body payloads (Redis in production)
// so rendering the dashboard does not fan out to Mongo aggregations on
// every poll.
type ContentCache interface {
	// Get unmarshals the cached payload for key into dest and reports a hit.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Invalidate drops one cached payload, e.g. after a backup finishes.
	Invalidate(ctx context.Context, key string) error
}

// RenderedCard is one card in the dashboard response. Body is nil for
// collapsed cards; hidden cards are absent entirely.
type RenderedCard struct {
	ID        domain.CardID
	Title     string
	Icon      string
	Collapsed bool
	Body      CardBody
	// BodyError carries a provider failure note. A failing provider degrades
	// its own card, never the whole dashboard.
	BodyError string
}

// DashboardView is the rendered dashboard for one user.
type DashboardView struct {
	Cards     []RenderedCard
	Source    LayoutSource
	SaveState SaveState
	Warning   string
}

// DashboardService renders the dashboard from the layout session.
type DashboardService interface {
	Render(ctx context.Context, userID string, role domain.Role) (*DashboardView, error)
	// Catalog returns the role-filtered card registry for the settings UI.
	Catalog(role domain.Role) []domain.CardDefinition
}
