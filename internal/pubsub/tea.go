package pubsub

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd waits for the next event on ch and delivers it as a tea.Msg.
// The message is nil once ctx is done or ch is closed.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			return event
		}
	}
}

// ContinuousListener owns one subscription for as long as it is open.
// Update handlers re-issue Listen after each event they receive. Copies of a
// tea.Model share the listener through its pointer, so Close from any copy
// ends the subscription.
type ContinuousListener[T any] struct {
	ctx       context.Context
	cancel    context.CancelFunc
	ch        <-chan Event[T]
	closeOnce sync.Once
}

// NewContinuousListener subscribes to broker until Close is called or
// parent is done.
func NewContinuousListener[T any](parent context.Context, broker *Broker[T]) *ContinuousListener[T] {
	ctx, cancel := context.WithCancel(parent)
	return &ContinuousListener[T]{
		ctx:    ctx,
		cancel: cancel,
		ch:     broker.Subscribe(ctx),
	}
}

// Listen returns a command delivering the next event.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	return ListenCmd(l.ctx, l.ch)
}

// Close unsubscribes. Pending Listen commands return nil. Safe on nil.
func (l *ContinuousListener[T]) Close() {
	if l == nil {
		return
	}
	l.closeOnce.Do(l.cancel)
}
