package booking

import "sync"

// Ticket identifies one dispatched fetch.
type Ticket struct {
	scope string
	key   string
	seq   uint64
}

func (t Ticket) Key() string {
	return t.key
}

// SequenceGuard lets the last dispatched fetch win. Each Begin supersedes
// every earlier ticket with the same scope and key; Accept tells the caller
// whether its response may still be applied. Every Begin must be paired with
// a Release, usually deferred, so abandoned fetches do not stay pending.
type SequenceGuard struct {
	mu     sync.Mutex
	next   uint64
	latest map[guardKey]uint64
}

type guardKey struct {
	scope string
	key   string
}

func NewSequenceGuard() *SequenceGuard {
	return &SequenceGuard{
		latest: make(map[guardKey]uint64),
	}
}

func (g *SequenceGuard) Begin(scope, key string) Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.next++
	g.latest[guardKey{scope, key}] = g.next

	return Ticket{scope: scope, key: key, seq: g.next}
}

// Accept reports whether t is the newest ticket for its scope and key.
// A ticket is accepted at most once.
func (g *SequenceGuard) Accept(t Ticket) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	k := guardKey{t.scope, t.key}
	if g.latest[k] != t.seq {
		return false
	}

	delete(g.latest, k)

	return true
}

// Release forgets t if it is still the newest ticket for its scope and key.
// It is a no-op after Accept or once t has been superseded.
func (g *SequenceGuard) Release(t Ticket) {
	g.mu.Lock()
	defer g.mu.Unlock()

	k := guardKey{t.scope, t.key}
	if g.latest[k] == t.seq {
		delete(g.latest, k)
	}
}

// Pending returns the number of fetches still in flight.
func (g *SequenceGuard) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.latest)
}
