// Package metrics defines and registers the custom Prometheus metrics of the
// social API. HTTP request metrics come from the echoprometheus middleware;
// this package covers authentication, posts and background notification.
//
// Metrics are registered with the default registry on package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "social"

// ── Auth metrics ─────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts signup and login attempts.
// Labels:
//   - operation: "signup" or "login"
//   - result: "success", or the failing error kind (e.g. "validation", "conflict", "auth", "internal")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of signup and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// TokenChecksTotal counts outcomes of the per-request authorization gate.
// Label:
//   - result: "authorized", "no_token", "invalid", "expired", "user_not_found", "error"
var TokenChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_checks_total",
		Help:      "Total number of bearer token checks, by outcome.",
	},
	[]string{"result"},
)

// ── Post metrics ─────────────────────────────────────────────────────────────

// PostActionsTotal counts successful post interactions.
// Label:
//   - action: "create", "delete", "comment", "delete_comment", "like", "unlike"
var PostActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_actions_total",
		Help:      "Total number of successful post interactions, by action.",
	},
	[]string{"action"},
)

// ── Notification metrics ─────────────────────────────────────────────────────

// WelcomeNotificationsTotal counts welcome email outcomes.
// Label:
//   - result: "sent", "failed", "duplicate", "dropped"
var WelcomeNotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "welcome_notifications_total",
		Help:      "Total number of welcome notifications, by outcome.",
	},
	[]string{"result"},
)

// NotificationQueueDepth tracks the number of messages waiting per worker.
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of welcome messages pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
