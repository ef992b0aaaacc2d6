// Package client holds the pieces a front end keeps in memory: the cached
// day view with optimistic flag toggles, and the order-creation draft.
package client

import (
	"context"
	"sync"
	"time"

	"github.com/matthews-code/yummybitest3/apperrors"
	"github.com/matthews-code/yummybitest3/models"
)

// OrderService is the slice of the API the day cache talks to. Satisfied by
// an HTTP client in the UI, or directly by the order controllers in tests.
type OrderService interface {
	OrdersForDay(ctx context.Context, day time.Time) ([]models.Order, error)
	TogglePaid(ctx context.Context, orderUID string, current bool) (models.Order, error)
	ToggleCollected(ctx context.Context, orderUID string, current bool) (models.Order, error)
}

// DayCache caches one day's order list and lets callers flip paid/collected
// flags with instant local feedback while the authoritative write is in
// flight. State is explicit: confirmed is the last authoritative fetch,
// optimistic is the locally displayed overlay while writes are pending, and
// pending counts in-flight toggles.
//
// Two back-to-back toggles on the same order are not guaranteed to serialize:
// the second flip is computed against the first's unconfirmed optimistic
// value, and the server's blind invert makes the outcome last-write-wins.
type DayCache struct {
	svc OrderService
	day time.Time

	mu         sync.Mutex
	confirmed  []models.Order
	optimistic []models.Order // nil when no optimistic overlay is displayed
	pending    int
	stale      bool
	loaded     bool
}

func NewDayCache(svc OrderService, day time.Time) *DayCache {
	return &DayCache{svc: svc, day: day.UTC()}
}

// Refresh replaces the confirmed state with an authoritative fetch and drops
// any optimistic overlay.
func (c *DayCache) Refresh(ctx context.Context) error {
	orders, err := c.svc.OrdersForDay(ctx, c.day)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.confirmed = orders
	c.optimistic = nil
	c.stale = false
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// Orders returns the displayed list: the optimistic overlay when one is
// active, otherwise the confirmed state, re-fetched when it has been
// invalidated by a settled toggle.
func (c *DayCache) Orders(ctx context.Context) ([]models.Order, error) {
	c.mu.Lock()
	needsFetch := !c.loaded || (c.stale && c.pending == 0)
	c.mu.Unlock()

	if needsFetch {
		if err := c.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return copyOrders(c.view()), nil
}

// TogglePaid flips the paid flag optimistically and issues the authoritative
// write in the background. done, when non-nil, fires after the write settles.
func (c *DayCache) TogglePaid(ctx context.Context, orderUID string, done func(error)) {
	c.toggle(ctx, orderUID, done,
		func(o models.Order) bool { return o.Paid },
		func(o *models.Order, v bool) { o.Paid = v },
		c.svc.TogglePaid,
	)
}

// ToggleCollected is TogglePaid for the collected flag.
func (c *DayCache) ToggleCollected(ctx context.Context, orderUID string, done func(error)) {
	c.toggle(ctx, orderUID, done,
		func(o models.Order) bool { return o.Collected },
		func(o *models.Order, v bool) { o.Collected = v },
		c.svc.ToggleCollected,
	)
}

// toggle implements the five-step protocol: snapshot the displayed list,
// apply the flip locally as an immutable replace, issue the write, invalidate
// on success, restore the snapshot on failure.
func (c *DayCache) toggle(
	ctx context.Context,
	orderUID string,
	done func(error),
	get func(models.Order) bool,
	set func(*models.Order, bool),
	call func(context.Context, string, bool) (models.Order, error),
) {
	c.mu.Lock()

	view := c.view()
	idx := -1
	for i := range view {
		if view[i].OrderUID == orderUID {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		if done != nil {
			done(apperrors.NotFoundf("order %s not in cached day", orderUID))
		}
		return
	}

	snapshot := copyOrders(view)
	current := get(view[idx])

	flipped := copyOrders(view)
	set(&flipped[idx], !current)
	c.optimistic = flipped
	c.pending++
	c.mu.Unlock()

	go func() {
		_, err := call(ctx, orderUID, current)

		c.mu.Lock()
		c.pending--
		if err != nil {
			// discard the optimistic change, show the pre-flip state
			c.optimistic = snapshot
		} else if c.pending == 0 {
			// reconcile with authoritative state on the next read
			c.optimistic = nil
			c.stale = true
		}
		c.mu.Unlock()

		if done != nil {
			done(err)
		}
	}()
}

// view returns the currently displayed slice. Callers hold c.mu.
func (c *DayCache) view() []models.Order {
	if c.optimistic != nil {
		return c.optimistic
	}
	return c.confirmed
}

func copyOrders(orders []models.Order) []models.Order {
	out := make([]models.Order, len(orders))
	copy(out, orders)
	return out
}
