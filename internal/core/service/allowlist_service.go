package service

import (
	"context"
	"fmt"
	"net/netip"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

// AllowlistService manages the admin-edited IP allow-list. Entries live in
// the store; a parsed copy sits behind an RWMutex so the enforcement
// middleware never touches the database on the request path.
type AllowlistService struct {
	repo    ports.AllowlistRepository
	enforce bool
	logger  zerolog.Logger

	mu       sync.RWMutex
	prefixes []netip.Prefix
}

func NewAllowlistService(repo ports.AllowlistRepository, enforce bool, logger zerolog.Logger) *AllowlistService {
	return &AllowlistService{repo: repo, enforce: enforce, logger: logger}
}

func (s *AllowlistService) List(ctx context.Context) ([]domain.AllowlistEntry, error) {
	return s.repo.Load(ctx)
}

// Replace validates every CIDR, persists the new list wholesale, and swaps
// the in-memory matcher. A single bad entry rejects the whole request so the
// stored list is never half-valid.
func (s *AllowlistService) Replace(ctx context.Context, entries []ports.AllowlistInput, addedBy string) ([]domain.AllowlistEntry, error) {
	now := time.Now().UTC()
	parsed := make([]netip.Prefix, 0, len(entries))
	stored := make([]domain.AllowlistEntry, 0, len(entries))
	for _, in := range entries {
		p, err := netip.ParsePrefix(in.CIDR)
		if err != nil {
			// Accept bare addresses too; the settings UI sends both.
			addr, addrErr := netip.ParseAddr(in.CIDR)
			if addrErr != nil {
				return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCIDR, in.CIDR)
			}
			p = netip.PrefixFrom(addr, addr.BitLen())
		}
		parsed = append(parsed, p)
		stored = append(stored, domain.AllowlistEntry{
			CIDR:      p.String(),
			Note:      in.Note,
			AddedBy:   addedBy,
			CreatedAt: now,
		})
	}

	if err := s.repo.Replace(ctx, stored); err != nil {
		s.logger.Error().Err(err).Msg("failed to replace allowlist")
		return nil, err
	}

	s.mu.Lock()
	s.prefixes = parsed
	s.mu.Unlock()

	s.logger.Info().Int("entries", len(stored)).Str("added_by", addedBy).Msg("allowlist replaced")
	return stored, nil
}

// Allowed reports whether addr may reach the API. Fail-open rules prevent an
// admin from locking everyone out: an empty list allows all traffic, and
// loopback is always allowed.
func (s *AllowlistService) Allowed(addr netip.Addr) bool {
	if addr.IsLoopback() {
		return true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.prefixes) == 0 {
		return true
	}
	addr = addr.Unmap()
	for _, p := range s.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

func (s *AllowlistService) Enforced() bool {
	return s.enforce
}

// Refresh reloads the matcher from the store. Called at startup and after
// writes; a failure keeps the previous matcher in place.
func (s *AllowlistService) Refresh(ctx context.Context) error {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("allowlist refresh: %w", err)
	}

	parsed := make([]netip.Prefix, 0, len(entries))
	for _, e := range entries {
		p, err := netip.ParsePrefix(e.CIDR)
		if err != nil {
			s.logger.Warn().Str("cidr", e.CIDR).Msg("skipping unparseable allowlist entry")
			continue
		}
		parsed = append(parsed, p)
	}

	s.mu.Lock()
	s.prefixes = parsed
	s.mu.Unlock()
	return nil
}
