// Package metrics defines and registers all custom Prometheus metrics for
// the Wanderlust marketplace. It is the single source of truth for metric
// names, labels, and help strings; metrics register with the default
// registry at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wanderlust"

// ListingsCreatedTotal counts newly created listings.
var ListingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of listings created.",
	},
)

// ListingsDeletedTotal counts deleted listings.
var ListingsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_deleted_total",
		Help:      "Total number of listings deleted.",
	},
)

// ReviewsCreatedTotal counts created reviews, labelled by rating so the
// rating distribution is visible without a histogram.
var ReviewsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_created_total",
		Help:      "Total number of reviews created, by rating.",
	},
	[]string{"rating"},
)

// ReviewsDeletedTotal counts review deletions.
// Label:
//   - cause: "request" (author/owner deleted it) or "cascade" (listing delete)
var ReviewsDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_deleted_total",
		Help:      "Total number of reviews deleted, by cause.",
	},
	[]string{"cause"},
)

// GateDenialsTotal counts requests diverted by an authorization gate.
// Label:
//   - gate: "login", "owner", or "review"
var GateDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_denials_total",
		Help:      "Total number of requests diverted by an authorization gate.",
	},
	[]string{"gate"},
)

// LoginFailuresTotal counts rejected login attempts.
var LoginFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Total number of failed login attempts.",
	},
)
