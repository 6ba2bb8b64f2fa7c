// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"sync"
)

// changeNotifier fans a coalesced change signal out to every live watch
// stream. One notifier is shared by the account and transaction
// repositories, since account deletes cascade into transactions and any
// write can invalidate any open query.
type changeNotifier struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newChangeNotifier() *changeNotifier {
	return &changeNotifier{
		subs: make(map[chan struct{}]struct{}),
	}
}

// subscribe registers a signal channel that fires after every committed
// write. The subscription is removed when ctx is cancelled. Signals are
// coalesced: a subscriber that has not consumed the pending tick does not
// accumulate further ones.
func (n *changeNotifier) subscribe(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.subs[ch] = struct{}{}
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		n.mu.Lock()
		delete(n.subs, ch)
		n.mu.Unlock()
	}()
	return ch
}

// broadcast signals every subscriber that underlying data changed.
func (n *changeNotifier) broadcast() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
