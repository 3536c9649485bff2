package feed

import (
	"context"
	"sync"
)

// Ticket identifies one fetch issued by a Loader.
type Ticket struct {
	Gen uint64
	Ctx context.Context
}

// Loader hands out fetch tickets. Starting a new fetch cancels the previous one, and only
// the latest ticket is accepted, so a slow stale response can never overwrite newer data.
type Loader struct {
	parent context.Context

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func NewLoader(parent context.Context) *Loader {
	if parent == nil {
		parent = context.Background()
	}
	return &Loader{parent: parent}
}

// Begin cancels any in-flight fetch and returns the ticket for a new one.
func (l *Loader) Begin() Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(l.parent)
	l.cancel = cancel
	l.gen++
	return Ticket{Gen: l.gen, Ctx: ctx}
}

// Accept reports whether t is still the live fetch. Accepting releases its context.
func (l *Loader) Accept(t Ticket) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if t.Gen != l.gen || t.Ctx == nil || t.Ctx.Err() != nil {
		return false
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	return true
}

// Close cancels the in-flight fetch and invalidates every outstanding ticket.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}
