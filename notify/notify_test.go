package notify

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ruleforge/ruleforge/engine"
)

func TestFanoutNotifierDeliversToAllSubscribersInOrder(t *testing.T) {
	n := NewFanoutNotifier()

	var mu sync.Mutex
	var order []string

	n.Subscribe(func(_ context.Context, event engine.NotificationEvent) {
		mu.Lock()
		order = append(order, "first:"+event.Type)
		mu.Unlock()
	})
	n.Subscribe(func(_ context.Context, event engine.NotificationEvent) {
		mu.Lock()
		order = append(order, "second:"+event.Type)
		mu.Unlock()
	})

	err := n.Notify(context.Background(), engine.NotificationEvent{Type: "info"})
	require.NoError(t, err)

	require.Equal(t, []string{"first:info", "second:info"}, order)
}

func TestFanoutNotifierWithNoSubscribersNeverErrors(t *testing.T) {
	n := NewFanoutNotifier()
	require.NoError(t, n.Notify(context.Background(), engine.NotificationEvent{Type: "error"}))
}
