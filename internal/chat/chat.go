// Package chat implements the room's participant registry, message log and
// presence sweeper on top of a record store.
package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"batepapo/internal/model"
)

// Notifier receives an event after every successful write.
type Notifier interface {
	Publish(event model.Event)
}

type nopNotifier struct{}

func (nopNotifier) Publish(model.Event) {}

type options struct {
	now      func() time.Time
	notifier Notifier
}

// Option configures a Registry, MessageLog or Sweeper.
type Option func(*options)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithNotifier publishes events to n.
func WithNotifier(n Notifier) Option {
	return func(o *options) { o.notifier = n }
}

func newOptions(opts []Option) options {
	o := options{now: time.Now, notifier: nopNotifier{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func statusMessage(name, text string, at time.Time) model.Message {
	return model.Message{
		ID:   uuid.NewString(),
		From: name,
		To:   model.Broadcast,
		Text: text,
		Type: model.TypeStatus,
		Time: at.Format(model.TimeLayout),
	}
}

// identity normalizes a participant name supplied by a caller. Every
// operation applies it, so one header value names the same participant
// throughout.
func identity(name string) string {
	return strings.TrimSpace(name)
}
