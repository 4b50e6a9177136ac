package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

// stubLayoutService lets each test wire only the calls it expects.
type stubLayoutService struct {
	initializeFn func(ctx context.Context, userID string, role domain.Role) (*ports.LayoutView, error)
	reorderFn    func(ctx context.Context, userID string, newOrder []domain.CardID) (*ports.LayoutView, error)
	moveFn       func(ctx context.Context, userID string, cardID domain.CardID, delta int) (*ports.LayoutView, error)
	visibilityFn func(ctx context.Context, userID string, cardID domain.CardID) (*ports.LayoutView, error)
	collapseFn   func(ctx context.Context, userID string, cardID domain.CardID, explicit *bool) (*ports.LayoutView, error)
	resetFn      func(ctx context.Context, userID string) (*ports.LayoutView, error)
	saveFn       func(ctx context.Context, userID string) (*ports.LayoutView, error)
	replaceFn    func(ctx context.Context, userID string, prefs domain.LayoutPreferences) (*ports.LayoutView, error)
	viewFn       func(userID string) (*ports.LayoutView, error)
}

func (s *stubLayoutService) Initialize(ctx context.Context, userID string, role domain.Role) (*ports.LayoutView, error) {
	return s.initializeFn(ctx, userID, role)
}

func (s *stubLayoutService) Reorder(ctx context.Context, userID string, newOrder []domain.CardID) (*ports.LayoutView, error) {
	return s.reorderFn(ctx, userID, newOrder)
}

func (s *stubLayoutService) MoveCard(ctx context.Context, userID string, cardID domain.CardID, delta int) (*ports.LayoutView, error) {
	return s.moveFn(ctx, userID, cardID, delta)
}

func (s *stubLayoutService) ToggleVisibility(ctx context.Context, userID string, cardID domain.CardID) (*ports.LayoutView, error) {
	return s.visibilityFn(ctx, userID, cardID)
}

func (s *stubLayoutService) ToggleCollapse(ctx context.Context, userID string, cardID domain.CardID, explicit *bool) (*ports.LayoutView, error) {
	return s.collapseFn(ctx, userID, cardID, explicit)
}

func (s *stubLayoutService) ResetToDefaults(ctx context.Context, userID string) (*ports.LayoutView, error) {
	return s.resetFn(ctx, userID)
}

func (s *stubLayoutService) Save(ctx context.Context, userID string) (*ports.LayoutView, error) {
	return s.saveFn(ctx, userID)
}

func (s *stubLayoutService) Replace(ctx context.Context, userID string, prefs domain.LayoutPreferences) (*ports.LayoutView, error) {
	return s.replaceFn(ctx, userID, prefs)
}

func (s *stubLayoutService) View(userID string) (*ports.LayoutView, error) {
	return s.viewFn(userID)
}

func (s *stubLayoutService) Teardown(string) {}

func (s *stubLayoutService) Close(context.Context) error { return nil }

func sampleView() *ports.LayoutView {
	return &ports.LayoutView{
		CardOrder:      []domain.CardID{"profile", "movie", "distributor"},
		VisibleCards:   []domain.CardID{"profile", "movie", "distributor"},
		CollapsedCards: []domain.CardID{"distributor"},
		Source:         ports.LayoutSourceSaved,
		SaveState:      ports.SaveStateSaved,
	}
}

func newLayoutContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("username", "ana")
	c.Set("role", "editor")
	return c, rec
}

func TestLayoutGet_CamelCaseWireShape(t *testing.T) {
	h := NewLayoutHandler(&stubLayoutService{
		viewFn: func(string) (*ports.LayoutView, error) { return sampleView(), nil },
	})

	c, rec := newLayoutContext(t, http.MethodGet, "/v1/dashboard/layout", "")
	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	// The dashboard client expects camelCase keys on layout payloads.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	for _, key := range []string{"cardOrder", "visibleCards", "collapsedCards", "source", "saveState"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("response missing key %q: %s", key, rec.Body.String())
		}
	}
	for _, key := range []string{"card_order", "visible_cards", "save_state"} {
		if _, ok := raw[key]; ok {
			t.Errorf("response must not use snake_case key %q", key)
		}
	}
}

func TestLayoutGet_InitializesMissingSession(t *testing.T) {
	initialized := false
	calls := 0
	h := NewLayoutHandler(&stubLayoutService{
		viewFn: func(string) (*ports.LayoutView, error) {
			calls++
			if !initialized {
				return nil, domain.ErrNoLayoutSession
			}
			return sampleView(), nil
		},
		initializeFn: func(_ context.Context, userID string, role domain.Role) (*ports.LayoutView, error) {
			if userID != "u1" || role != domain.RoleEditor {
				t.Fatalf("Initialize(%s, %s)", userID, role)
			}
			initialized = true
			return sampleView(), nil
		},
	})

	c, rec := newLayoutContext(t, http.MethodGet, "/v1/dashboard/layout", "")
	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !initialized {
		t.Fatalf("missing session should trigger Initialize")
	}
	if calls != 2 {
		t.Errorf("View called %d times, want 2 (before and after Initialize)", calls)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestLayoutMove_DirectionResolvesToDelta(t *testing.T) {
	var gotCard domain.CardID
	var gotDelta int
	h := NewLayoutHandler(&stubLayoutService{
		moveFn: func(_ context.Context, _ string, cardID domain.CardID, delta int) (*ports.LayoutView, error) {
			gotCard, gotDelta = cardID, delta
			return sampleView(), nil
		},
	})

	c, _ := newLayoutContext(t, http.MethodPost, "/v1/dashboard/layout/cards/movie/move",
		`{"direction":"up","steps":2}`)
	c.SetParamNames("id")
	c.SetParamValues("movie")

	if err := h.Move(c); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if gotCard != "movie" || gotDelta != -2 {
		t.Errorf("MoveCard(%s, %d), want (movie, -2)", gotCard, gotDelta)
	}
}

func TestLayoutMove_DefaultsToOneStep(t *testing.T) {
	var gotDelta int
	h := NewLayoutHandler(&stubLayoutService{
		moveFn: func(_ context.Context, _ string, _ domain.CardID, delta int) (*ports.LayoutView, error) {
			gotDelta = delta
			return sampleView(), nil
		},
	})

	c, _ := newLayoutContext(t, http.MethodPost, "/v1/dashboard/layout/cards/movie/move",
		`{"direction":"down"}`)
	c.SetParamNames("id")
	c.SetParamValues("movie")

	if err := h.Move(c); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if gotDelta != 1 {
		t.Errorf("delta = %d, want 1", gotDelta)
	}
}

func TestLayoutMove_ToIndexCountsVisibleSiblingsOnly(t *testing.T) {
	view := &ports.LayoutView{
		// "movie" is hidden, so among visible cards "asset" sits at index 1.
		CardOrder:    []domain.CardID{"profile", "movie", "asset", "workflow"},
		VisibleCards: []domain.CardID{"profile", "asset", "workflow"},
		Source:       ports.LayoutSourceSaved,
		SaveState:    ports.SaveStateSaved,
	}
	var gotDelta int
	h := NewLayoutHandler(&stubLayoutService{
		viewFn: func(string) (*ports.LayoutView, error) { return view, nil },
		moveFn: func(_ context.Context, _ string, _ domain.CardID, delta int) (*ports.LayoutView, error) {
			gotDelta = delta
			return view, nil
		},
	})

	c, _ := newLayoutContext(t, http.MethodPost, "/v1/dashboard/layout/cards/asset/move",
		`{"toIndex":0}`)
	c.SetParamNames("id")
	c.SetParamValues("asset")

	if err := h.Move(c); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if gotDelta != -1 {
		t.Errorf("delta = %d, want -1 (index 1 to index 0)", gotDelta)
	}
}

func TestLayoutMove_RequiresDirectionOrIndex(t *testing.T) {
	h := NewLayoutHandler(&stubLayoutService{})

	c, _ := newLayoutContext(t, http.MethodPost, "/v1/dashboard/layout/cards/movie/move", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("movie")

	err := h.Move(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("err = %v, want 422", err)
	}
}

func TestLayoutPut_ReplacesAndReportsSuccess(t *testing.T) {
	var gotPrefs domain.LayoutPreferences
	h := NewLayoutHandler(&stubLayoutService{
		replaceFn: func(_ context.Context, _ string, prefs domain.LayoutPreferences) (*ports.LayoutView, error) {
			gotPrefs = prefs
			return sampleView(), nil
		},
	})

	body := `{"cardOrder":["movie","profile"],"visibleCards":["movie"],"collapsedCards":[]}`
	c, rec := newLayoutContext(t, http.MethodPut, "/v1/dashboard/layout", body)

	if err := h.Put(c); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if gotPrefs.UserID != "u1" {
		t.Errorf("prefs.UserID = %s", gotPrefs.UserID)
	}
	if len(gotPrefs.CardOrder) != 2 || gotPrefs.CardOrder[0] != "movie" {
		t.Errorf("prefs.CardOrder = %v", gotPrefs.CardOrder)
	}

	var resp struct {
		Success   bool   `json:"success"`
		SaveState string `json:"saveState"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if !resp.Success || resp.SaveState != "saved" {
		t.Errorf("response = %+v", resp)
	}
}

func TestLayoutPut_MissingOrderRejected(t *testing.T) {
	h := NewLayoutHandler(&stubLayoutService{})

	c, _ := newLayoutContext(t, http.MethodPut, "/v1/dashboard/layout", `{"visibleCards":["movie"]}`)

	err := h.Put(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("err = %v, want 422", err)
	}
}

func TestLayoutReorder_DomainErrorPassesThrough(t *testing.T) {
	h := NewLayoutHandler(&stubLayoutService{
		reorderFn: func(context.Context, string, []domain.CardID) (*ports.LayoutView, error) {
			return nil, domain.ErrNotPermutation
		},
	})

	c, _ := newLayoutContext(t, http.MethodPost, "/v1/dashboard/layout/reorder",
		`{"cardOrder":["movie"]}`)

	// The central error handler maps this to 422; the handler returns it as is.
	if err := h.Reorder(c); err != domain.ErrNotPermutation {
		t.Fatalf("err = %v, want ErrNotPermutation", err)
	}
}

func TestLayoutHandlers_MissingClaims(t *testing.T) {
	h := NewLayoutHandler(&stubLayoutService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard/layout", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Get(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
}
