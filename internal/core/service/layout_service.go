package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/accesscast/studio-admin/internal/api/metrics"
	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

const (
	defaultSaveDebounce = 5 * time.Second
	flushTimeout        = 10 * time.Second
)

// layoutSession is one user's in-memory layout state. The session is the
// single mutable copy during a sitting; the repository is the source of
// truth only when the session is (re)initialised.
type layoutSession struct {
	mu        sync.Mutex
	role      domain.Role
	order     []domain.CardID
	visible   map[domain.CardID]struct{}
	collapsed map[domain.CardID]struct{}

	source  ports.LayoutSource
	warning string

	dirty       bool
	seq         uint64 // bumped on every mutation; stamps save snapshots
	saveState   ports.SaveState
	lastSaveErr string
	timer       *time.Timer
}

// LayoutService owns every layout session and the debounced write-back of
// mutations to the preferences repository.
type LayoutService struct {
	registry *domain.CardRegistry
	repo     ports.PreferencesRepository
	debounce time.Duration
	logger   zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*layoutSession
}

func NewLayoutService(registry *domain.CardRegistry, repo ports.PreferencesRepository, debounce time.Duration, logger zerolog.Logger) *LayoutService {
	if debounce <= 0 {
		debounce = defaultSaveDebounce
	}
	return &LayoutService{
		registry: registry,
		repo:     repo,
		debounce: debounce,
		logger:   logger,
		sessions: make(map[string]*layoutSession),
	}
}

// Initialize builds (or rebuilds) the session for userID from the registry
// and the persisted preferences. A missing record or a load failure falls
// back to registry defaults; only the latter carries a warning. Neither is
// an error - a first-time user with no saved layout is the expected path.
func (s *LayoutService) Initialize(ctx context.Context, userID string, role domain.Role) (*ports.LayoutView, error) {
	available := s.registry.AvailableCards(role)
	availSet := make(map[domain.CardID]struct{}, len(available))
	for _, d := range available {
		availSet[d.ID] = struct{}{}
	}

	sess := &layoutSession{
		role:      role,
		visible:   make(map[domain.CardID]struct{}),
		collapsed: make(map[domain.CardID]struct{}),
		source:    ports.LayoutSourceDefault,
		saveState: ports.SaveStateSaved,
	}

	prefs, err := s.repo.Load(ctx, userID)
	switch {
	case err == nil:
		clean := prefs.Sanitize(availSet)
		// Persisted order first, then any card the registry gained since the
		// layout was last saved, appended in registry order.
		sess.order = append(sess.order, clean.CardOrder...)
		inOrder := make(map[domain.CardID]struct{}, len(clean.CardOrder))
		for _, id := range clean.CardOrder {
			inOrder[id] = struct{}{}
		}
		for _, d := range available {
			if _, ok := inOrder[d.ID]; !ok {
				sess.order = append(sess.order, d.ID)
			}
		}
		for _, id := range clean.VisibleCards {
			sess.visible[id] = struct{}{}
		}
		for _, id := range clean.CollapsedCards {
			sess.collapsed[id] = struct{}{}
		}
		sess.source = ports.LayoutSourceSaved
		// A layout with nothing visible cannot be rendered; fall back to the
		// registry's default-visible set rather than rejecting the record.
		if len(sess.visible) == 0 {
			applyDefaultVisible(sess, available)
		}
	case errors.Is(err, domain.ErrPreferencesNotFound):
		applyRegistryDefaults(sess, available)
	default:
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("layout load failed, using defaults")
		applyRegistryDefaults(sess, available)
		sess.warning = "saved layout could not be loaded; showing defaults"
	}

	s.mu.Lock()
	if old, ok := s.sessions[userID]; ok {
		old.mu.Lock()
		if old.timer != nil {
			old.timer.Stop()
		}
		old.mu.Unlock()
	} else {
		metrics.LayoutSessionsActive.Inc()
	}
	s.sessions[userID] = sess
	s.mu.Unlock()

	return snapshotView(sess), nil
}

func applyRegistryDefaults(sess *layoutSession, available []domain.CardDefinition) {
	sess.order = sess.order[:0]
	for _, d := range available {
		sess.order = append(sess.order, d.ID)
	}
	sess.collapsed = make(map[domain.CardID]struct{})
	applyDefaultVisible(sess, available)
	sess.source = ports.LayoutSourceDefault
}

func applyDefaultVisible(sess *layoutSession, available []domain.CardDefinition) {
	sess.visible = make(map[domain.CardID]struct{})
	for _, d := range available {
		if d.DefaultVisible {
			sess.visible[d.ID] = struct{}{}
		}
	}
}

// Reorder replaces the card order wholesale. Ids the session does not know
// are ignored; after that filtering the input must still cover every known
// card exactly once, otherwise nothing changes.
func (s *LayoutService) Reorder(ctx context.Context, userID string, newOrder []domain.CardID) (*ports.LayoutView, error) {
	sess, err := s.session(userID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	known := make(map[domain.CardID]struct{}, len(sess.order))
	for _, id := range sess.order {
		known[id] = struct{}{}
	}

	filtered := make([]domain.CardID, 0, len(sess.order))
	seen := make(map[domain.CardID]struct{}, len(newOrder))
	for _, id := range newOrder {
		if _, ok := known[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		filtered = append(filtered, id)
	}
	if len(filtered) != len(sess.order) {
		return nil, domain.ErrNotPermutation
	}

	sess.order = filtered
	s.markDirty(userID, sess)
	metrics.LayoutMutationsTotal.WithLabelValues("reorder").Inc()
	return snapshotView(sess), nil
}

// MoveCard moves cardID delta positions among its visible siblings. Hidden
// cards keep their relative position around the moved card, so the insertion
// point is computed against the full order. A move that lands where the card
// already is schedules nothing.
func (s *LayoutService) MoveCard(ctx context.Context, userID string, cardID domain.CardID, delta int) (*ports.LayoutView, error) {
	sess, err := s.session(userID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if _, ok := sess.visible[cardID]; !ok {
		return nil, domain.ErrUnknownCard
	}

	visibleOrder := make([]domain.CardID, 0, len(sess.order))
	for _, id := range sess.order {
		if _, ok := sess.visible[id]; ok {
			visibleOrder = append(visibleOrder, id)
		}
	}

	from := -1
	for i, id := range visibleOrder {
		if id == cardID {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, domain.ErrUnknownCard
	}

	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(visibleOrder)-1 {
		to = len(visibleOrder) - 1
	}
	if to == from {
		return snapshotView(sess), nil
	}

	// Rebuild the full order: pull the card out, then re-insert it next to
	// the visible sibling that occupies the target slot.
	anchor := visibleOrder[to]
	without := make([]domain.CardID, 0, len(sess.order)-1)
	for _, id := range sess.order {
		if id != cardID {
			without = append(without, id)
		}
	}

	rebuilt := make([]domain.CardID, 0, len(sess.order))
	for _, id := range without {
		if id == anchor && to < from {
			rebuilt = append(rebuilt, cardID)
		}
		rebuilt = append(rebuilt, id)
		if id == anchor && to > from {
			rebuilt = append(rebuilt, cardID)
		}
	}

	sess.order = rebuilt
	s.markDirty(userID, sess)
	metrics.LayoutMutationsTotal.WithLabelValues("move").Inc()
	return snapshotView(sess), nil
}

// ToggleVisibility flips cardID in or out of the visible set. The last
// visible card can never be hidden.
func (s *LayoutService) ToggleVisibility(ctx context.Context, userID string, cardID domain.CardID) (*ports.LayoutView, error) {
	sess, err := s.session(userID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !containsCard(sess.order, cardID) {
		return nil, domain.ErrUnknownCard
	}

	if _, shown := sess.visible[cardID]; shown {
		if len(sess.visible) == 1 {
			return nil, domain.ErrLastVisibleCard
		}
		delete(sess.visible, cardID)
	} else {
		sess.visible[cardID] = struct{}{}
	}

	s.markDirty(userID, sess)
	metrics.LayoutMutationsTotal.WithLabelValues("visibility").Inc()
	return snapshotView(sess), nil
}

// ToggleCollapse flips cardID's collapsed state, or force-sets it when
// explicit is non-nil.
func (s *LayoutService) ToggleCollapse(ctx context.Context, userID string, cardID domain.CardID, explicit *bool) (*ports.LayoutView, error) {
	sess, err := s.session(userID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !containsCard(sess.order, cardID) {
		return nil, domain.ErrUnknownCard
	}

	_, collapsed := sess.collapsed[cardID]
	want := !collapsed
	if explicit != nil {
		want = *explicit
	}
	if want == collapsed {
		return snapshotView(sess), nil
	}
	if want {
		sess.collapsed[cardID] = struct{}{}
	} else {
		delete(sess.collapsed, cardID)
	}

	s.markDirty(userID, sess)
	metrics.LayoutMutationsTotal.WithLabelValues("collapse").Inc()
	return snapshotView(sess), nil
}

// ResetToDefaults re-derives the session from registry defaults for its
// role. Like any other mutation, the reset reaches the store through the
// debounce; it survives a reload only if a save runs before teardown.
func (s *LayoutService) ResetToDefaults(ctx context.Context, userID string) (*ports.LayoutView, error) {
	sess, err := s.session(userID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	applyRegistryDefaults(sess, s.registry.AvailableCards(sess.role))
	s.markDirty(userID, sess)
	metrics.LayoutMutationsTotal.WithLabelValues("reset").Inc()
	return snapshotView(sess), nil
}

// Save persists the current state immediately, bypassing the debounce. A
// write failure is recorded on the view (saveState "failed" plus the error
// message), not returned: persistence trouble must never block the dashboard.
func (s *LayoutService) Save(ctx context.Context, userID string) (*ports.LayoutView, error) {
	sess, err := s.session(userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.timer != nil {
		sess.timer.Stop()
		sess.timer = nil
	}
	prefs, seq := snapshotPrefs(userID, sess)
	sess.mu.Unlock()

	s.persist(ctx, sess, prefs, seq, "explicit")

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return snapshotView(sess), nil
}

// Replace installs a complete client-supplied layout and persists it
// immediately. Unknown ids are dropped; cards the client omitted from the
// order are appended in registry order so the permutation invariant holds.
func (s *LayoutService) Replace(ctx context.Context, userID string, prefs domain.LayoutPreferences) (*ports.LayoutView, error) {
	sess, err := s.session(userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	available := s.registry.AvailableCards(sess.role)
	availSet := make(map[domain.CardID]struct{}, len(available))
	for _, d := range available {
		availSet[d.ID] = struct{}{}
	}
	clean := prefs.Sanitize(availSet)
	if len(clean.VisibleCards) == 0 {
		sess.mu.Unlock()
		return nil, domain.ErrLastVisibleCard
	}

	sess.order = clean.CardOrder
	inOrder := make(map[domain.CardID]struct{}, len(clean.CardOrder))
	for _, id := range clean.CardOrder {
		inOrder[id] = struct{}{}
	}
	for _, d := range available {
		if _, ok := inOrder[d.ID]; !ok {
			sess.order = append(sess.order, d.ID)
		}
	}
	sess.visible = make(map[domain.CardID]struct{}, len(clean.VisibleCards))
	for _, id := range clean.VisibleCards {
		sess.visible[id] = struct{}{}
	}
	sess.collapsed = make(map[domain.CardID]struct{}, len(clean.CollapsedCards))
	for _, id := range clean.CollapsedCards {
		sess.collapsed[id] = struct{}{}
	}
	s.markDirty(userID, sess)
	metrics.LayoutMutationsTotal.WithLabelValues("replace").Inc()

	if sess.timer != nil {
		sess.timer.Stop()
		sess.timer = nil
	}
	snap, seq := snapshotPrefs(userID, sess)
	sess.mu.Unlock()

	s.persist(ctx, sess, snap, seq, "replace")

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return snapshotView(sess), nil
}

// View returns the current snapshot without mutating anything.
func (s *LayoutService) View(userID string) (*ports.LayoutView, error) {
	sess, err := s.session(userID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return snapshotView(sess), nil
}

// Teardown drops the session and cancels its pending timer without flushing.
// Navigating away does not guarantee a pending save fires; only an explicit
// Save does.
func (s *LayoutService) Teardown(userID string) {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if ok {
		delete(s.sessions, userID)
		metrics.LayoutSessionsActive.Dec()
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	sess.mu.Lock()
	if sess.timer != nil {
		sess.timer.Stop()
		sess.timer = nil
	}
	sess.mu.Unlock()
}

// Close flushes every dirty session. Called once at process shutdown.
func (s *LayoutService) Close(ctx context.Context) error {
	s.mu.Lock()
	dirty := make(map[string]*layoutSession)
	for id, sess := range s.sessions {
		dirty[id] = sess
	}
	s.mu.Unlock()

	var firstErr error
	for userID, sess := range dirty {
		sess.mu.Lock()
		if sess.timer != nil {
			sess.timer.Stop()
			sess.timer = nil
		}
		if !sess.dirty {
			sess.mu.Unlock()
			continue
		}
		prefs, seq := snapshotPrefs(userID, sess)
		sess.mu.Unlock()

		if err := s.repo.Save(ctx, prefs); err != nil {
			metrics.LayoutSavesTotal.WithLabelValues("shutdown", "error").Inc()
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("layout flush failed at shutdown")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		metrics.LayoutSavesTotal.WithLabelValues("shutdown", "ok").Inc()
		sess.mu.Lock()
		if sess.seq == seq {
			sess.dirty = false
			sess.saveState = ports.SaveStateSaved
			sess.lastSaveErr = ""
		}
		sess.mu.Unlock()
	}
	return firstErr
}

// ── internals ─────────────────────────────────────────────────────────────────

func (s *LayoutService) session(userID string) (*layoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return nil, domain.ErrNoLayoutSession
	}
	return sess, nil
}

// markDirty records a mutation and (re)arms the debounce timer. Must be
// called with sess.mu held. Each mutation inside the quiet window pushes the
// write out again, so a burst persists exactly once, with the final state.
func (s *LayoutService) markDirty(userID string, sess *layoutSession) {
	sess.dirty = true
	sess.seq++
	sess.saveState = ports.SaveStatePending
	if sess.timer != nil {
		sess.timer.Stop()
	}
	sess.timer = time.AfterFunc(s.debounce, func() { s.flush(userID, sess) })
}

// flush runs on the debounce timer's goroutine: snapshot the latest state
// under the session lock, then write it.
func (s *LayoutService) flush(userID string, sess *layoutSession) {
	sess.mu.Lock()
	if !sess.dirty {
		sess.mu.Unlock()
		return
	}
	prefs, seq := snapshotPrefs(userID, sess)
	sess.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	s.persist(ctx, sess, prefs, seq, "debounce")
}

// persist writes one snapshot and records the outcome on the session. The
// result only counts as "saved" when no newer mutation arrived while the
// write was in flight. Failures keep the in-memory state untouched - the
// next mutation's debounced save is the retry.
func (s *LayoutService) persist(ctx context.Context, sess *layoutSession, prefs *domain.LayoutPreferences, seq uint64, trigger string) {
	err := s.repo.Save(ctx, prefs)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err != nil {
		metrics.LayoutSavesTotal.WithLabelValues(trigger, "error").Inc()
		s.logger.Warn().Err(err).Str("user_id", prefs.UserID).Str("trigger", trigger).Msg("layout save failed")
		sess.saveState = ports.SaveStateFailed
		sess.lastSaveErr = err.Error()
		return
	}
	metrics.LayoutSavesTotal.WithLabelValues(trigger, "ok").Inc()
	if sess.seq == seq {
		sess.dirty = false
		sess.saveState = ports.SaveStateSaved
		sess.lastSaveErr = ""
	}
}

// snapshotPrefs copies the session state into a persistable record. Must be
// called with sess.mu held.
func snapshotPrefs(userID string, sess *layoutSession) (*domain.LayoutPreferences, uint64) {
	prefs := &domain.LayoutPreferences{
		UserID:         userID,
		CardOrder:      append([]domain.CardID(nil), sess.order...),
		VisibleCards:   setToOrdered(sess.order, sess.visible),
		CollapsedCards: setToOrdered(sess.order, sess.collapsed),
		UpdatedAt:      time.Now().UTC(),
	}
	return prefs, sess.seq
}

// snapshotView copies the session state into a read-only view. Must be
// called with sess.mu held (Initialize calls it before the session is shared).
func snapshotView(sess *layoutSession) *ports.LayoutView {
	return &ports.LayoutView{
		CardOrder:      append([]domain.CardID(nil), sess.order...),
		VisibleCards:   setToOrdered(sess.order, sess.visible),
		CollapsedCards: setToOrdered(sess.order, sess.collapsed),
		Source:         sess.source,
		SaveState:      sess.saveState,
		Warning:        sess.warning,
		LastSaveError:  sess.lastSaveErr,
	}
}

// setToOrdered renders a card set as a slice following the session order,
// keeping the wire shape deterministic.
func setToOrdered(order []domain.CardID, set map[domain.CardID]struct{}) []domain.CardID {
	out := make([]domain.CardID, 0, len(set))
	for _, id := range order {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func containsCard(order []domain.CardID, id domain.CardID) bool {
	for _, o := range order {
		if o == id {
			return true
		}
	}
	return false
}
