package application

import (
	"context"
	"fmt"

	"github.com/bnema/p4runner/internal/adapters/parse"
	"github.com/bnema/p4runner/internal/domain"
	"github.com/google/uuid"
)

// QueryService layers typed commands over the executor: each query runs a
// backend command through the normal pooled path, collects the event
// stream in memory and parses it into domain types.
type QueryService struct {
	exec *Executor
}

func NewQueryService(exec *Executor) *QueryService {
	return &QueryService{exec: exec}
}

// Changes runs `changes` with the given extra arguments.
func (s *QueryService) Changes(ctx context.Context, args ...string) ([]domain.Change, error) {
	out, err := s.run(ctx, "changes", args...)
	if err != nil {
		return nil, fmt.Errorf("changes: %w", err)
	}
	return parse.Changes(out), nil
}

// Info reports server and connection details.
func (s *QueryService) Info(ctx context.Context) (domain.ServerInfo, error) {
	out, err := s.run(ctx, "info")
	if err != nil {
		return domain.ServerInfo{}, fmt.Errorf("info: %w", err)
	}
	return parse.Info(out), nil
}

// Tickets lists held authentication tickets.
func (s *QueryService) Tickets(ctx context.Context) ([]domain.Ticket, error) {
	out, err := s.run(ctx, "tickets")
	if err != nil {
		return nil, fmt.Errorf("tickets: %w", err)
	}
	return parse.Tickets(out), nil
}

func (s *QueryService) run(ctx context.Context, command string, args ...string) (string, error) {
	packed, sizes := domain.PackArgs(args...)
	req := domain.Request{
		Command:       command,
		Args:          packed,
		ArgSizes:      sizes,
		CorrelationID: domain.CorrelationID(uuid.NewString()),
	}

	sink := &collector{}
	s.exec.ExecuteWith(ctx, req, sink)
	if err := sink.err(); err != nil {
		return "", err
	}
	return sink.output(), nil
}
