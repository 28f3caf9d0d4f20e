// Package notify delivers reminder events and user feedback: external sinks
// (WhatsApp, logs) receive a title and body, banners receive a one-line message.
package notify

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// Notification is one user-facing event.
type Notification struct {
	Title  string
	Body   string
	Banner string
	Sound  bool
}

// Sink delivers a system-level notification.
type Sink interface {
	Notify(ctx context.Context, title, body string) error
}

// Banner shows an in-app message.
type Banner interface {
	Show(message string, sound bool)
}

// Dispatcher fans a notification out to every sink and banner. Sinks run on
// their own goroutines so a slow sink never holds up the caller.
type Dispatcher struct {
	sinks   []Sink
	banners []Banner
	timeout time.Duration
	logger  *log.Logger
}

// NewDispatcher returns a Dispatcher; sinks and banners may be added later.
func NewDispatcher(logger *log.Logger) *Dispatcher {
	return &Dispatcher{
		timeout: 15 * time.Second,
		logger:  logger,
	}
}

// AddSink registers a system notification sink.
func (d *Dispatcher) AddSink(s Sink) {
	d.sinks = append(d.sinks, s)
}

// AddBanner registers an in-app banner target.
func (d *Dispatcher) AddBanner(b Banner) {
	d.banners = append(d.banners, b)
}

// Dispatch shows the banner immediately and sends title/body to each sink in
// the background. Failures are logged, never returned.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) {
	if n.Banner != "" {
		d.Announce(n.Banner, n.Sound)
	}
	for _, sink := range d.sinks {
		go d.deliver(context.WithoutCancel(ctx), sink, n)
	}
}

// Announce shows message on every banner without contacting sinks.
func (d *Dispatcher) Announce(message string, sound bool) {
	for _, b := range d.banners {
		b.Show(message, sound)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, sink Sink, n Notification) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := sink.Notify(ctx, n.Title, n.Body); err != nil {
		d.logger.Warn("notify: sink failed", "title", n.Title, "err", err)
	}
}
