// Package chain tries one credential backend and falls back to a second
// when the first cannot serve, so pass-managed hosts and bare hosts use
// the same wiring.
package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/p4runner/internal/adapters/credstore/file"
	passstore "github.com/bnema/p4runner/internal/adapters/credstore/pass"
	"github.com/bnema/p4runner/internal/ports"
)

type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore) (*Store, error) {
	if primary == nil {
		return nil, errors.New("primary credential store is nil")
	}
	if fallback == nil {
		return nil, errors.New("fallback credential store is nil")
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

// NewPassFirst prefers the pass command and falls back to plain files
// rooted at fileRoot.
func NewPassFirst(fileRoot string) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, ref string, password string) error {
	err := s.primary.Put(ctx, ref, password)
	if err == nil {
		return nil
	}
	if skipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, ref, password)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary put failed: %w; fallback put failed: %w", err, fallbackErr)
}

func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	password, err := s.primary.Get(ctx, ref)
	if err == nil {
		return password, nil
	}
	if skipFallback(err) {
		return "", err
	}

	fallbackPassword, fallbackErr := s.fallback.Get(ctx, ref)
	if fallbackErr == nil {
		return fallbackPassword, nil
	}

	return "", fmt.Errorf("primary get failed: %w; fallback get failed: %w", err, fallbackErr)
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	err := s.primary.Delete(ctx, ref)
	if err == nil {
		return nil
	}
	if skipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, ref)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary delete failed: %w; fallback delete failed: %w", err, fallbackErr)
}

// Cancellation is not a backend failure, so it never triggers fallback.
func skipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
