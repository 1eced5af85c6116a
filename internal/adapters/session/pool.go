// Package session pools connected backend sessions so repeated commands
// skip the connect/authenticate round trip.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/p4runner/internal/domain"
	"github.com/bnema/p4runner/internal/ports"
	"github.com/rs/zerolog"
)

// Capacity bounds the idle collection. Returned sessions beyond this are
// torn down instead of queued.
const Capacity = 16

// Pool keeps idle sessions of a single protocol variant. The variant must
// be set before a session connects and cannot change afterwards, so plain
// and tagged sessions live in separate pools.
//
// The mutex guards only the idle slice; dialing, connecting and running
// commands all happen outside it, so a slow connect on one goroutine never
// blocks acquisition on another.
type Pool struct {
	dial    ports.Dialer
	variant domain.ProtocolVariant
	log     zerolog.Logger

	mu   sync.Mutex
	idle []ports.Session
}

func NewPool(dial ports.Dialer, variant domain.ProtocolVariant, log zerolog.Logger) *Pool {
	return &Pool{dial: dial, variant: variant, log: log}
}

func (p *Pool) Variant() domain.ProtocolVariant {
	return p.variant
}

// Acquire hands out an exclusive lease on a session. Idle sessions are
// served FIFO; when none are idle a fresh one is dialed, configured and
// connected. A connect failure is terminal for the caller's attempt.
func (p *Pool) Acquire(ctx context.Context) (*Lease, error) {
	start := time.Now()

	p.mu.Lock()
	if len(p.idle) > 0 {
		s := p.idle[0]
		p.idle = p.idle[1:]
		p.mu.Unlock()
		return &Lease{session: s, pool: p}, nil
	}
	p.mu.Unlock()

	s := p.dial.Dial()
	s.SetCharset(domain.Charset)
	s.SetProtocol(p.variant)
	if err := s.Connect(ctx); err != nil {
		return nil, fmt.Errorf("error initializing %s session: %w", p.variant, err)
	}

	elapsed := time.Since(start)
	p.log.Debug().
		Str("variant", string(p.variant)).
		Dur("connect", elapsed).
		Msg("connected fresh session")

	return &Lease{session: s, pool: p, fresh: true, initElapsed: elapsed}, nil
}

// Idle reports the current idle count.
func (p *Pool) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

// put returns a session to the idle collection if there is room.
func (p *Pool) put(s ports.Session) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.idle) >= Capacity {
		return false
	}
	p.idle = append(p.idle, s)
	return true
}

// Lease is the temporary exclusive right to use one session. Exactly one
// of Release or Discard must run on every exit path of the holder; both
// are safe to call more than once.
type Lease struct {
	session     ports.Session
	pool        *Pool
	fresh       bool
	initElapsed time.Duration
	done        bool
}

func (l *Lease) Session() ports.Session {
	return l.session
}

// Fresh reports whether the session was constructed for this lease rather
// than reused from the pool.
func (l *Lease) Fresh() bool {
	return l.fresh
}

// InitElapsed is the time spent dialing and connecting a fresh session.
// Zero for reused sessions.
func (l *Lease) InitElapsed() time.Duration {
	return l.initElapsed
}

// Release hands the session back to its origin pool. Dropped sessions and
// overflow beyond the pool's capacity are torn down instead.
func (l *Lease) Release() {
	if l.done {
		return
	}
	l.done = true

	if !l.session.Dropped() && l.pool.put(l.session) {
		return
	}
	if err := l.session.Finalize(); err != nil {
		l.pool.log.Warn().Err(err).Msg("finalizing surplus session")
	}
}

// Discard tears the session down without returning it, reporting the
// finalize error. Used when the holder already knows the session is stale.
func (l *Lease) Discard() error {
	if l.done {
		return nil
	}
	l.done = true
	return l.session.Finalize()
}
