// Package notify provides the default NotificationAdapter: a fan-out to
// registered subscriber functions. No transport is prescribed (spec §4.6)
// — subscribers decide what to do with an event (log it, forward it to a
// message bus, etc).
package notify

import (
	"context"
	"sync"

	"github.com/ruleforge/ruleforge/engine"
)

// Subscriber receives every notification event.
type Subscriber func(ctx context.Context, event engine.NotificationEvent)

// FanoutNotifier is the default NotificationAdapter.
type FanoutNotifier struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

// NewFanoutNotifier builds an empty FanoutNotifier.
func NewFanoutNotifier() *FanoutNotifier {
	return &FanoutNotifier{}
}

// Subscribe registers sub to receive future events.
func (f *FanoutNotifier) Subscribe(sub Subscriber) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribers = append(f.subscribers, sub)
}

// Notify delivers event to every subscriber in registration order. A
// subscriber is expected not to block; Notify itself never returns an
// error (there is nothing transport-level to fail here).
func (f *FanoutNotifier) Notify(ctx context.Context, event engine.NotificationEvent) error {
	f.mu.RLock()
	subs := append([]Subscriber{}, f.subscribers...)
	f.mu.RUnlock()

	for _, sub := range subs {
		sub(ctx, event)
	}
	return nil
}
