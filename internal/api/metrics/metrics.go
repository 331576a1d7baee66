// Package metrics defines all custom Prometheus metrics for the food
// ordering API. It is the single source of truth for metric names, labels,
// and help strings; registration happens implicitly through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "food_ordering"

// --- Order metrics ---

// OrdersCreatedTotal counts orders placed through checkout.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders placed.",
	},
)

// OrderStatusUpdatesTotal counts accepted status transitions.
// Label:
//   - status: the new status applied (e.g. "preparing")
var OrderStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_updates_total",
		Help:      "Total number of accepted order status updates.",
	},
	[]string{"status"},
)

// --- Restaurant metrics ---

// RestaurantSearchesTotal counts search requests.
var RestaurantSearchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "restaurant_searches_total",
		Help:      "Total number of restaurant search requests.",
	},
)

// ImageUploadDuration measures the round trip to the image host.
var ImageUploadDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "image_upload_duration_seconds",
		Help:      "Duration of image uploads to the object store.",
		Buckets:   prometheus.DefBuckets,
	},
)

// --- Notification metrics ---

// NotificationsSentTotal counts delivered status notification emails.
// Label:
//   - status: the order status that triggered the notification
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of order notifications delivered.",
	},
	[]string{"status"},
)

// NotificationsErrorsTotal counts failed notification deliveries.
var NotificationsErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_errors_total",
		Help:      "Total number of order notifications that failed to deliver.",
	},
)

// NotificationsDroppedTotal counts notifications dropped on a full queue.
var NotificationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of order notifications dropped because the queue was full.",
	},
)
