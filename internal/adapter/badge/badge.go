package badge

import (
	"sync/atomic"

	"github.com/voyago/storefront/internal/core/port"
)

var _ port.BadgePublisher = (*Counter)(nil)

// A Counter is the header cart badge: it holds the last published
// total-quantity count for display. A zero count hides the badge.
type Counter struct {
	n atomic.Int64
}

func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) PublishCartCount(n int) {
	c.n.Store(int64(n))
}

func (c *Counter) Count() int {
	return int(c.n.Load())
}

// Visible reports whether the badge should be rendered at all.
func (c *Counter) Visible() bool {
	return c.Count() > 0
}
