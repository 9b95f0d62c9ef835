// Package metrics defines and registers all custom Prometheus metrics for
// the media catalog API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "invalid" (wrong email and wrong password are
//     deliberately indistinguishable and share the "invalid" value)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer-token checks in the auth middleware.
// Label:
//   - result: "valid", "missing", "malformed", "expired", or "revoked"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogMutationsTotal counts catalog write operations that passed the
// middleware chain and completed.
// Labels:
//   - entity: "song", "album", or "playlist"
//   - action: "add" or "remove"
var CatalogMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of completed catalog mutations, by entity and action.",
	},
	[]string{"entity", "action"},
)

// MediaPurgesTotal counts background media-asset deletions.
// Label:
//   - result: "ok" or "error"
var MediaPurgesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_purges_total",
		Help:      "Total number of background media purge attempts, by result.",
	},
	[]string{"result"},
)

// PurgeQueueDepth tracks the current number of purge tasks waiting in each
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var PurgeQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "purge_queue_depth",
		Help:      "Current number of purge tasks pending in each worker channel.",
	},
	[]string{"worker_id"},
)
