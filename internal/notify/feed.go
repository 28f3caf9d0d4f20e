package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// BannerEvent is one in-app message kept for the page to display.
type BannerEvent struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	Sound   bool      `json:"sound"`
	At      time.Time `json:"at"`
}

// Feed keeps the most recent banner events, oldest first.
type Feed struct {
	mu       sync.Mutex
	events   []BannerEvent
	capacity int
	now      func() time.Time
}

// NewFeed returns a feed that retains at most capacity events.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = 50
	}
	return &Feed{capacity: capacity, now: time.Now}
}

func (f *Feed) Show(message string, sound bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, BannerEvent{
		ID:      uuid.NewString(),
		Message: message,
		Sound:   sound,
		At:      f.now(),
	})
	if over := len(f.events) - f.capacity; over > 0 {
		f.events = append([]BannerEvent(nil), f.events[over:]...)
	}
}

// Recent returns a copy of the retained events.
func (f *Feed) Recent() []BannerEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]BannerEvent{}, f.events...)
}

var _ Banner = (*Feed)(nil)
