package guard

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	state     State
	expiresAt time.Time
}

// Memory хранит состояние отправок в памяти процесса.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory создаёт Guard в памяти процесса.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// current возвращает живую запись; вызывается под mu.
func (g *Memory) current(key string) (entry, bool) {
	e, ok := g.entries[key]
	if !ok {
		return entry{}, false
	}
	if !g.now().Before(e.expiresAt) {
		delete(g.entries, key)
		return entry{}, false
	}
	return e, true
}

func (g *Memory) Acquire(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.current(key); ok {
		return false, nil
	}
	g.entries[key] = entry{state: Submitting, expiresAt: g.now().Add(g.ttl)}
	return true, nil
}

func (g *Memory) MarkNavigating(_ context.Context, key string, d time.Duration) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.current(key); !ok {
		return ErrNotHeld
	}
	if d <= 0 {
		delete(g.entries, key)
		return nil
	}
	g.entries[key] = entry{state: Navigating, expiresAt: g.now().Add(d)}
	return nil
}

func (g *Memory) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.entries, key)
	return nil
}

func (g *Memory) State(_ context.Context, key string) (State, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.current(key)
	if !ok {
		return Idle, nil
	}
	return e.state, nil
}
