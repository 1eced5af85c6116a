package application

import (
	"context"
	"time"

	"github.com/bnema/p4runner/internal/adapters/session"
	"github.com/bnema/p4runner/internal/adapters/stream"
	"github.com/bnema/p4runner/internal/domain"
	"github.com/bnema/p4runner/internal/ports"
	"github.com/rs/zerolog"
)

const droppedContext = "p4 connection dropped: "

// Executor runs backend commands against pooled sessions. It owns the
// retry discipline: a session dropped mid-command is finalized and the
// unchanged request runs again on a fresh lease, invisibly to the caller
// except for a retry notice on the event stream.
//
// Safe for concurrent use; the pools are the only shared state.
type Executor struct {
	plain   *session.Pool
	tagged  *session.Pool
	events  ports.EventSink
	history ports.CommandLog
	clock   ports.Clock
	log     zerolog.Logger
}

// NewExecutor wires the two long-lived pools to the boundary event sink.
// history may be nil when no command log is configured.
func NewExecutor(plain, tagged *session.Pool, events ports.EventSink, history ports.CommandLog, clock ports.Clock, log zerolog.Logger) *Executor {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Executor{
		plain:   plain,
		tagged:  tagged,
		events:  events,
		history: history,
		clock:   clock,
		log:     log,
	}
}

// Run is the boundary entry point: one backend command described by its
// packed positional arguments, optional credential override and optional
// input payload. It returns the microseconds spent constructing fresh
// sessions during this call, zero when every lease was a reuse.
func (e *Executor) Run(ctx context.Context, command, user, password string, input, packedArgs []byte, argSizes []int, id domain.CorrelationID, tagged bool) int64 {
	return e.Execute(ctx, domain.Request{
		Command:       command,
		User:          user,
		Password:      password,
		Input:         input,
		Args:          packedArgs,
		ArgSizes:      argSizes,
		CorrelationID: id,
		Tagged:        tagged,
	})
}

// Execute runs one request, streaming results to the executor's event
// sink. All failures surface as events; nothing is returned but timing.
func (e *Executor) Execute(ctx context.Context, req domain.Request) int64 {
	return e.ExecuteWith(ctx, req, e.events)
}

// ExecuteWith is Execute with a per-call event sink. Typed queries use it
// to collect results in memory instead of crossing the boundary.
func (e *Executor) ExecuteWith(ctx context.Context, req domain.Request, events ports.EventSink) int64 {
	started := e.clock.Now()
	relay := stream.NewRelay(events, req.CorrelationID, req.Input)

	var initMicros int64
	retries := 0
	failed := false

	defer func() {
		e.record(ctx, req, started, initMicros, retries, failed)
	}()

	args, err := req.SplitArgs()
	if err != nil {
		relay.Error(err.Error())
		failed = true
		return initMicros
	}

	pool := e.poolFor(req.Variant())
	override := req.Overrides()

	for {
		lease, err := pool.Acquire(ctx)
		if err != nil {
			// No session means no attempt; this is terminal, not retried.
			relay.Error(err.Error())
			failed = true
			return initMicros
		}
		initMicros += lease.InitElapsed().Microseconds()

		s := lease.Session()
		var saved domain.Credentials
		if override.Override() {
			saved = domain.Credentials{User: s.User(), Password: s.Password()}
			s.SetUser(override.User)
			s.SetPassword(override.Password)
		}

		for _, arg := range args {
			s.SetArg(arg)
		}
		s.Run(ctx, req.Command, relay)

		if !s.Dropped() {
			if override.Override() {
				s.SetUser(saved.User)
				s.SetPassword(saved.Password)
			}
			lease.Release()
			return initMicros
		}

		// The session died under the command. Tear it down, tell the
		// caller, and run the same request on a fresh lease.
		finalizeErr := lease.Discard()
		relay.Retry(droppedContext, finalizeErr)
		retries++
		e.log.Info().
			Str("command", req.Command).
			Int("retries", retries).
			AnErr("finalize", finalizeErr).
			Msg("session dropped mid-command, retrying")
	}
}

func (e *Executor) poolFor(variant domain.ProtocolVariant) *session.Pool {
	if variant == domain.VariantTagged {
		return e.tagged
	}
	return e.plain
}

func (e *Executor) record(ctx context.Context, req domain.Request, started time.Time, initMicros int64, retries int, failed bool) {
	if e.history == nil {
		return
	}
	rec := domain.CommandRecord{
		Command:       req.Command,
		CorrelationID: req.CorrelationID,
		Tagged:        req.Tagged,
		DurationUS:    e.clock.Now().Sub(started).Microseconds(),
		InitUS:        initMicros,
		Retries:       retries,
		Failed:        failed,
		StartedAt:     started,
	}
	if err := e.history.Record(ctx, rec); err != nil {
		e.log.Warn().Err(err).Str("command", req.Command).Msg("recording command history")
	}
}
