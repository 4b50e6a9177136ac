package service

import (
	"context"
	"errors"
	"net/netip"
	"testing"

	"github.com/rs/zerolog"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

type stubAllowlistRepo struct {
	entries    []domain.AllowlistEntry
	loadErr    error
	replaceErr error
}

func (r *stubAllowlistRepo) Load(context.Context) ([]domain.AllowlistEntry, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return append([]domain.AllowlistEntry(nil), r.entries...), nil
}

func (r *stubAllowlistRepo) Replace(_ context.Context, entries []domain.AllowlistEntry) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.entries = append([]domain.AllowlistEntry(nil), entries...)
	return nil
}

func mustAddr(t *testing.T, s string) netip.Addr {
	t.Helper()
	addr, err := netip.ParseAddr(s)
	if err != nil {
		t.Fatalf("parsing %q: %v", s, err)
	}
	return addr
}

func TestAllowlist_EmptyListAllowsEveryone(t *testing.T) {
	svc := NewAllowlistService(&stubAllowlistRepo{}, true, zerolog.Nop())
	if !svc.Allowed(mustAddr(t, "198.51.100.7")) {
		t.Fatal("empty allowlist must not lock anyone out")
	}
}

func TestAllowlist_LoopbackAlwaysAllowed(t *testing.T) {
	repo := &stubAllowlistRepo{}
	svc := NewAllowlistService(repo, true, zerolog.Nop())
	if _, err := svc.Replace(context.Background(), []ports.AllowlistInput{{CIDR: "10.0.0.0/8"}}, "admin"); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if !svc.Allowed(mustAddr(t, "127.0.0.1")) {
		t.Error("loopback must always pass")
	}
	if !svc.Allowed(mustAddr(t, "::1")) {
		t.Error("IPv6 loopback must always pass")
	}
}

func TestAllowlist_ReplaceSwapsMatcher(t *testing.T) {
	repo := &stubAllowlistRepo{}
	svc := NewAllowlistService(repo, true, zerolog.Nop())

	entries, err := svc.Replace(context.Background(), []ports.AllowlistInput{
		{CIDR: "10.0.0.0/8", Note: "office"},
		{CIDR: "192.0.2.17", Note: "vpn gateway"}, // bare address, no prefix
	}, "admin")
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if len(entries) != 2 || entries[0].AddedBy != "admin" {
		t.Errorf("entries = %+v", entries)
	}
	if entries[1].CIDR != "192.0.2.17/32" {
		t.Errorf("bare address should be stored as /32, got %s", entries[1].CIDR)
	}

	if !svc.Allowed(mustAddr(t, "10.20.30.40")) {
		t.Error("in-range address rejected")
	}
	if !svc.Allowed(mustAddr(t, "192.0.2.17")) {
		t.Error("bare-address entry rejected its own address")
	}
	if svc.Allowed(mustAddr(t, "198.51.100.7")) {
		t.Error("out-of-range address allowed")
	}
}

func TestAllowlist_ReplaceRejectsBadEntryWholesale(t *testing.T) {
	repo := &stubAllowlistRepo{}
	svc := NewAllowlistService(repo, true, zerolog.Nop())

	_, err := svc.Replace(context.Background(), []ports.AllowlistInput{
		{CIDR: "10.0.0.0/8"},
		{CIDR: "not-a-network"},
	}, "admin")
	if !errors.Is(err, domain.ErrInvalidCIDR) {
		t.Fatalf("err = %v, want ErrInvalidCIDR", err)
	}
	if len(repo.entries) != 0 {
		t.Errorf("a rejected replace must not persist anything: %v", repo.entries)
	}
}

func TestAllowlist_RefreshLoadsStoreAndSkipsBadRows(t *testing.T) {
	repo := &stubAllowlistRepo{entries: []domain.AllowlistEntry{
		{CIDR: "10.0.0.0/8"},
		{CIDR: "garbage"},
	}}
	svc := NewAllowlistService(repo, true, zerolog.Nop())

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if !svc.Allowed(mustAddr(t, "10.1.2.3")) {
		t.Error("refreshed matcher rejects in-range address")
	}
	if svc.Allowed(mustAddr(t, "203.0.113.5")) {
		t.Error("refreshed matcher allows out-of-range address")
	}
}

func TestAllowlist_RefreshFailureKeepsMatcher(t *testing.T) {
	repo := &stubAllowlistRepo{}
	svc := NewAllowlistService(repo, true, zerolog.Nop())
	if _, err := svc.Replace(context.Background(), []ports.AllowlistInput{{CIDR: "10.0.0.0/8"}}, "admin"); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	repo.loadErr = errors.New("mongo down")
	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh should report the load failure")
	}
	if !svc.Allowed(mustAddr(t, "10.1.2.3")) {
		t.Error("failed refresh must keep the previous matcher")
	}
}
