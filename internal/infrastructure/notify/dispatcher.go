// Package notify delivers order status notifications to customers
// asynchronously, off the request path.
package notify

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/quickplate/food-ordering-api/internal/api/metrics"
	"github.com/quickplate/food-ordering-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the order id, so a customer never receives a later status email
// before an earlier one for the same order.
type Dispatcher struct {
	workers []chan ports.OrderNotification
	mailer  ports.Mailer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.OrderNotification, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.OrderNotification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Notify enqueues a notification for the worker owning its order id. A full
// worker channel drops the notification rather than stalling the caller —
// status emails are best-effort.
func (d *Dispatcher) Notify(n ports.OrderNotification) {
	select {
	case d.workers[d.shardIndex(n.OrderID)] <- n:
	default:
		metrics.NotificationsDroppedTotal.Inc()
		d.log.Warn().Str("order_id", n.OrderID).Msg("notification queue full, dropping")
	}
}

func (d *Dispatcher) shardIndex(orderID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.OrderNotification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			if err := d.mailer.Send(ctx, n.CustomerEmail, subject(n), body(n)); err != nil {
				metrics.NotificationsErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("order_id", n.OrderID).
					Int("worker_id", id).
					Msg("notification delivery failed")
				continue
			}
			metrics.NotificationsSentTotal.WithLabelValues(n.Status).Inc()
		}
	}
}

func subject(n ports.OrderNotification) string {
	return fmt.Sprintf("Your order from %s is %s", n.Restaurant, humanStatus(n.Status))
}

func body(n ports.OrderNotification) string {
	return fmt.Sprintf("Hi %s,\n\nYour order from %s is now %s.\n\nOrder reference: %s",
		n.CustomerName, n.Restaurant, humanStatus(n.Status), n.OrderID)
}

func humanStatus(status string) string {
	return strings.ReplaceAll(status, "_", " ")
}
