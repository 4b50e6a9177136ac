package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/accesscast/studio-admin/internal/api/metrics"
	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

const defaultCardTTL = 30 * time.Second

// cardProvider pairs a content provider with its caching policy.
type cardProvider struct {
	fn ports.ContentProvider
	// perUser scopes the cache key to the requesting user (profile card).
	perUser bool
	ttl     time.Duration
}

// DashboardService renders the dashboard: the layout session decides which
// cards appear and in what order, content providers fill the bodies, and a
// TTL cache keeps repeated polls off the aggregation queries.
type DashboardService struct {
	layout    ports.LayoutService
	registry  *domain.CardRegistry
	cache     ports.ContentCache
	providers map[domain.CardID]cardProvider
	logger    zerolog.Logger
}

func NewDashboardService(layout ports.LayoutService, registry *domain.CardRegistry, cache ports.ContentCache, logger zerolog.Logger) *DashboardService {
	return &DashboardService{
		layout:    layout,
		registry:  registry,
		cache:     cache,
		providers: make(map[domain.CardID]cardProvider),
		logger:    logger,
	}
}

// RegisterProvider attaches the content provider for one card id.
func (s *DashboardService) RegisterProvider(id domain.CardID, fn ports.ContentProvider) {
	s.providers[id] = cardProvider{fn: fn, ttl: defaultCardTTL}
}

// RegisterPerUserProvider attaches a provider whose payload is cached per
// user instead of globally.
func (s *DashboardService) RegisterPerUserProvider(id domain.CardID, fn ports.ContentProvider) {
	s.providers[id] = cardProvider{fn: fn, perUser: true, ttl: defaultCardTTL}
}

// Catalog returns the role-filtered card registry for the settings UI.
func (s *DashboardService) Catalog(role domain.Role) []domain.CardDefinition {
	return s.registry.AvailableCards(role)
}

// Render walks the layout in order and emits every visible card. Headers are
// always present; bodies only for cards that are not collapsed, so collapsing
// a card stops its provider from running at all. Hidden cards are skipped
// entirely. One failing provider degrades its own card to an error note,
// never the whole dashboard.
func (s *DashboardService) Render(ctx context.Context, userID string, role domain.Role) (*ports.DashboardView, error) {
	view, err := s.layout.View(userID)
	if errors.Is(err, domain.ErrNoLayoutSession) {
		view, err = s.layout.Initialize(ctx, userID, role)
	}
	if err != nil {
		return nil, err
	}

	visible := make(map[domain.CardID]struct{}, len(view.VisibleCards))
	for _, id := range view.VisibleCards {
		visible[id] = struct{}{}
	}
	collapsed := make(map[domain.CardID]struct{}, len(view.CollapsedCards))
	for _, id := range view.CollapsedCards {
		collapsed[id] = struct{}{}
	}

	out := &ports.DashboardView{
		Cards:     make([]ports.RenderedCard, 0, len(view.VisibleCards)),
		Source:    view.Source,
		SaveState: view.SaveState,
		Warning:   view.Warning,
	}

	for _, id := range view.CardOrder {
		if _, ok := visible[id]; !ok {
			continue
		}
		def, ok := s.registry.Get(id)
		if !ok {
			continue
		}

		card := ports.RenderedCard{
			ID:    id,
			Title: def.Title,
			Icon:  domain.IconFor(def.Type),
		}
		if _, isCollapsed := collapsed[id]; isCollapsed {
			card.Collapsed = true
			out.Cards = append(out.Cards, card)
			continue
		}

		body, err := s.cardBody(ctx, userID, id)
		if err != nil {
			s.logger.Warn().Err(err).Str("card", string(id)).Msg("card content provider failed")
			card.BodyError = "content unavailable"
		} else {
			card.Body = body
		}
		out.Cards = append(out.Cards, card)
	}

	return out, nil
}

func (s *DashboardService) cardBody(ctx context.Context, userID string, id domain.CardID) (ports.CardBody, error) {
	p, ok := s.providers[id]
	if !ok {
		return ports.CardBody{}, nil
	}

	key := fmt.Sprintf("dashboard:card:%s", id)
	if p.perUser {
		key = fmt.Sprintf("dashboard:card:%s:%s", id, userID)
	}

	if s.cache != nil {
		var cached ports.CardBody
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Debug().Err(err).Str("card", string(id)).Msg("card cache read failed")
		} else if hit {
			metrics.DashboardCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.DashboardCacheTotal.WithLabelValues("miss").Inc()
	}

	body, err := p.fn(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, body, p.ttl); err != nil {
			s.logger.Debug().Err(err).Str("card", string(id)).Msg("card cache write failed")
		}
	}
	return body, nil
}
