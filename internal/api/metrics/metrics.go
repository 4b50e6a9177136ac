// Package metrics defines and registers all custom Prometheus metrics for the
// studio admin API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry via promauto at package
// initialisation; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "studio"

// ── Layout metrics ────────────────────────────────────────────────────────────

// LayoutMutationsTotal counts layout session mutations.
// Label:
//   - op: "reorder", "move", "visibility", "collapse", "reset", "replace"
var LayoutMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "layout_mutations_total",
		Help:      "Total number of dashboard layout mutations, by operation.",
	},
	[]string{"op"},
)

// LayoutSavesTotal counts layout persistence attempts.
// Labels:
//   - trigger: "debounce", "explicit", "replace", "shutdown"
//   - result: "ok" or "error"
var LayoutSavesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "layout_saves_total",
		Help:      "Total number of layout preference writes, by trigger and result.",
	},
	[]string{"trigger", "result"},
)

// LayoutSessionsActive tracks the number of in-memory layout sessions.
var LayoutSessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "layout_sessions_active",
		Help:      "Current number of in-memory dashboard layout sessions.",
	},
)

// ── Board metrics ─────────────────────────────────────────────────────────────

// BoardTransitionsTotal counts accepted stage moves on the production board.
// Labels:
//   - from, to: the stage pair of the move
var BoardTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "board_transitions_total",
		Help:      "Total number of accepted board stage transitions, by stage pair.",
	},
	[]string{"from", "to"},
)

// BoardTransitionsRejectedTotal counts stage moves rejected by the
// transition table.
var BoardTransitionsRejectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "board_transitions_rejected_total",
		Help:      "Total number of board stage transitions rejected as invalid.",
	},
)

// ── Dashboard metrics ─────────────────────────────────────────────────────────

// DashboardCacheTotal counts card content cache lookups.
// Label:
//   - result: "hit" or "miss"
var DashboardCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dashboard_cache_total",
		Help:      "Total number of card content cache lookups, by result.",
	},
	[]string{"result"},
)

// ── Backup metrics ────────────────────────────────────────────────────────────

// BackupRunsTotal counts backup runs.
// Label:
//   - result: "ok" or "error"
var BackupRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backup_runs_total",
		Help:      "Total number of database backup runs, by result.",
	},
	[]string{"result"},
)

// BackupLastSuccessTimestamp records when the last successful backup finished.
var BackupLastSuccessTimestamp = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "backup_last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last successful backup.",
	},
)

// BackupLastArchiveBytes records the size of the most recent archive.
var BackupLastArchiveBytes = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "backup_last_archive_bytes",
		Help:      "Size in bytes of the most recently written backup archive.",
	},
)

// ── Security metrics ──────────────────────────────────────────────────────────

// AllowlistRejectedTotal counts requests rejected by the IP allow-list.
var AllowlistRejectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "allowlist_rejected_total",
		Help:      "Total number of requests rejected by the IP allow-list.",
	},
)
