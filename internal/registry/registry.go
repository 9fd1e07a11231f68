package registry

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/deluca-mike/bang-game/internal/game"
)

// Clock abstracts time for TTL eviction so tests can advance it directly.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Entry is one resident match. The embedded mutex serializes all access to
// the game; the game core itself is not safe for concurrent use.
type Entry struct {
	mu   sync.Mutex
	Game *game.Game

	lastTouch time.Time
}

// Lock takes the per-match lock. Callers hold it for the full duration of a
// read or mutation.
func (e *Entry) Lock() { e.mu.Lock() }

func (e *Entry) Unlock() { e.mu.Unlock() }

// Registry is the in-memory match map. Matches idle past the TTL are evicted
// by Purge; their snapshots outlive them in the store.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*Entry

	ttl    time.Duration
	clock  Clock
	logger *zap.Logger
}

func New(ttl time.Duration, clock Clock, logger *zap.Logger) *Registry {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		entries: map[string]*Entry{},
		ttl:     ttl,
		clock:   clock,
		logger:  logger,
	}
}

// Put registers a match, replacing any resident entry with the same ID.
func (r *Registry) Put(g *game.Game) *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := &Entry{Game: g, lastTouch: r.clock.Now()}
	r.entries[g.ID] = entry
	return entry
}

// Get returns a resident match and refreshes its idle timer.
func (r *Registry) Get(id string) (*Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	entry.lastTouch = r.clock.Now()
	return entry, true
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// Len reports resident match count.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Purge evicts matches idle past the TTL and returns how many were removed.
func (r *Registry) Purge() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	evicted := 0
	for id, entry := range r.entries {
		if entry.lastTouch.Add(r.ttl).After(now) {
			continue
		}
		delete(r.entries, id)
		evicted++
		r.logger.Info("match evicted from memory", zap.String("game", id))
	}
	return evicted
}

// Run purges on the given interval until the context is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Purge()
		}
	}
}
