package middleware

import (
	"net/http"
	"net/netip"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/accesscast/studio-admin/internal/api/metrics"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

// Allowlist rejects requests from addresses outside the IP allow-list when
// enforcement is on. An unparseable client address is rejected too: with
// enforcement active, "unknown caller" must not mean "allowed caller".
func Allowlist(svc ports.AllowlistService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !svc.Enforced() {
				return next(c)
			}

			addr, err := netip.ParseAddr(c.RealIP())
			if err != nil {
				metrics.AllowlistRejectedTotal.Inc()
				log.Warn().Str("remote", c.RealIP()).Msg("allowlist: unparseable client address")
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			if !svc.Allowed(addr) {
				metrics.AllowlistRejectedTotal.Inc()
				log.Warn().Str("remote", addr.String()).Str("path", c.Path()).Msg("allowlist: address rejected")
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
