// Package tracking looks up order status.
package tracking

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

// ErrOrderIDRequired is returned for a blank order ID.
var ErrOrderIDRequired = errors.New("order id is required")

// Tracker reports the status of an order.
type Tracker interface {
	Lookup(ctx context.Context, orderID string) (domain.TrackingInfo, error)
}

// Statuses are the outcomes the simulated backend picks from.
var Statuses = []domain.TrackingInfo{
	{Status: "Processing", Details: "Your order is being prepared for shipment."},
	{Status: "Shipped", Details: "Your order has left our warehouse and is on its way."},
	{Status: "In Transit", Details: "Your package is moving through the carrier network."},
	{Status: "Out for Delivery", Details: "Your package is with the courier and will arrive today."},
	{Status: "Delivered", Details: "Your package was delivered. Thank you for shopping with us!"},
}

// MockTracker simulates an order system by picking a status uniformly at random.
// Repeated lookups of the same order may disagree.
type MockTracker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewMockTracker creates a simulated tracker. A nil source seeds from the clock.
func NewMockTracker(src rand.Source) *MockTracker {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &MockTracker{rnd: rand.New(src)}
}

var _ Tracker = (*MockTracker)(nil)

// Lookup returns a random status for orderID.
func (t *MockTracker) Lookup(ctx context.Context, orderID string) (domain.TrackingInfo, error) {
	if strings.TrimSpace(orderID) == "" {
		return domain.TrackingInfo{}, ErrOrderIDRequired
	}
	if err := ctx.Err(); err != nil {
		return domain.TrackingInfo{}, err
	}
	t.mu.Lock()
	i := t.rnd.Intn(len(Statuses))
	t.mu.Unlock()
	return Statuses[i], nil
}
