package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

type stubAllowlist struct {
	enforced bool
	allowed  map[string]bool
}

func (s *stubAllowlist) List(context.Context) ([]domain.AllowlistEntry, error) { return nil, nil }
func (s *stubAllowlist) Replace(context.Context, []ports.AllowlistInput, string) ([]domain.AllowlistEntry, error) {
	return nil, nil
}
func (s *stubAllowlist) Allowed(addr netip.Addr) bool { return s.allowed[addr.String()] }
func (s *stubAllowlist) Enforced() bool               { return s.enforced }
func (s *stubAllowlist) Refresh(context.Context) error {
	return nil
}

func allowlistContext(remote string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAllowlist_NotEnforcedPassesThrough(t *testing.T) {
	c, _ := allowlistContext("203.0.113.9:1234")
	svc := &stubAllowlist{enforced: false}

	called := false
	mw := Allowlist(svc, zerolog.Nop())
	if err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called with enforcement off")
	}
}

func TestAllowlist_AllowsListedAddress(t *testing.T) {
	c, _ := allowlistContext("203.0.113.9:1234")
	svc := &stubAllowlist{
		enforced: true,
		allowed:  map[string]bool{"203.0.113.9": true},
	}

	called := false
	mw := Allowlist(svc, zerolog.Nop())
	if err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("listed address should pass")
	}
}

func TestAllowlist_RejectsUnlistedAddress(t *testing.T) {
	c, rec := allowlistContext("198.51.100.4:9999")
	svc := &stubAllowlist{enforced: true, allowed: map[string]bool{}}

	mw := Allowlist(svc, zerolog.Nop())
	if err := mw(func(c echo.Context) error {
		t.Fatalf("next should not be called")
		return nil
	})(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
