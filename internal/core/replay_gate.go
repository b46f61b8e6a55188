package core

import "sync"

// ReplayGate sits between a room and a freshly subscribed connection. Live
// frames for that room are held until Release puts the history payload on the
// wire first, then the held frames in arrival order.
type ReplayGate struct {
	conn SignalConnection

	mu      sync.Mutex
	held    bool
	pending []Frame
	limit   int
}

func NewReplayGate(conn SignalConnection, limit int) *ReplayGate {
	if limit <= 0 {
		limit = 64
	}
	return &ReplayGate{conn: conn, held: true, limit: limit}
}

func (g *ReplayGate) TrySend(f Frame) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.held {
		return g.conn.TrySend(f)
	}
	if len(g.pending) >= g.limit {
		return ErrBackpressure
	}
	g.pending = append(g.pending, f)
	return nil
}

// Release sends first (if any) followed by everything held, then switches the
// gate to pass-through. It returns the first delivery error, if any.
func (g *ReplayGate) Release(first Frame) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	var firstErr error
	if first != nil {
		firstErr = g.conn.TrySend(first)
	}
	for _, f := range g.pending {
		if err := g.conn.TrySend(f); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	g.pending = nil
	g.held = false
	return firstErr
}

func (g *ReplayGate) Close() { g.conn.Close() }
