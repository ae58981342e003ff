package game

import (
	"context"
	"sync"
	"time"
)

// DefaultNopeWindow is how long opponents get to veto a played combo.
const DefaultNopeWindow = 5 * time.Second

// NopeRace is a single-assignment cell for one veto round. Every eligible
// opponent races to Offer; the first offer wins and all later ones are
// no-ops. Wait closes the race, so offers arriving after the deadline are
// discarded rather than leaking into the next round.
type NopeRace struct {
	deadline time.Time

	mu     sync.Mutex
	winner *Player
	closed bool
	done   chan struct{}
}

func NewNopeRace(window time.Duration) *NopeRace {
	return &NopeRace{
		deadline: time.Now().Add(window),
		done:     make(chan struct{}),
	}
}

// Remaining returns how much of the veto window is left. It can go
// negative once the deadline has passed.
func (r *NopeRace) Remaining() time.Duration {
	return time.Until(r.deadline)
}

// Offer registers the player as the vetoer. It reports whether this
// offer won the race; losing offers leave the cell untouched.
func (r *NopeRace) Offer(player *Player) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.winner != nil {
		return false
	}
	r.winner = player
	close(r.done)
	return true
}

// Wait blocks until a veto arrives, the window expires, or the context
// is canceled, then closes the race. A nil result means no veto.
func (r *NopeRace) Wait(ctx context.Context) *Player {
	timer := time.NewTimer(r.Remaining())
	defer timer.Stop()

	select {
	case <-r.done:
	case <-timer.C:
	case <-ctx.Done():
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return r.winner
}
