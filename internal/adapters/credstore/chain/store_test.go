package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	password string
	err      error
	gets     int
	puts     int
	deletes  int
}

func (s *stubStore) Get(_ context.Context, _ string) (string, error) {
	s.gets++
	return s.password, s.err
}

func (s *stubStore) Put(_ context.Context, _ string, _ string) error {
	s.puts++
	return s.err
}

func (s *stubStore) Delete(_ context.Context, _ string) error {
	s.deletes++
	return s.err
}

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := &stubStore{password: "from-pass"}
	fallback := &stubStore{password: "from-file"}
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	password, err := store.Get(context.Background(), "p4runner/prod")
	require.NoError(t, err)
	assert.Equal(t, "from-pass", password)
	assert.Zero(t, fallback.gets)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := &stubStore{err: errors.New("pass unavailable")}
	fallback := &stubStore{password: "from-file"}
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	password, err := store.Get(context.Background(), "p4runner/prod")
	require.NoError(t, err)
	assert.Equal(t, "from-file", password)
}

func TestStoreGetReportsBothFailures(t *testing.T) {
	t.Parallel()

	store, err := NewStore(&stubStore{err: errors.New("pass failed")}, &stubStore{err: errors.New("file failed")})
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "p4runner/prod")
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStorePutSkipsFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary := &stubStore{}
	fallback := &stubStore{}
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "p4runner/prod", "hunter2"))
	assert.Equal(t, 1, primary.puts)
	assert.Zero(t, fallback.puts)
}

func TestStoreDeleteFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := &stubStore{err: errors.New("pass failed")}
	fallback := &stubStore{}
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "p4runner/prod"))
	assert.Equal(t, 1, fallback.deletes)
}

func TestStoreDoesNotFallBackOnCancellation(t *testing.T) {
	t.Parallel()

	primary := &stubStore{err: context.Canceled}
	fallback := &stubStore{}
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "p4runner/prod")
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, fallback.gets)
}

func TestNewStoreRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStore(nil, &stubStore{})
	require.Error(t, err)

	_, err = NewStore(&stubStore{}, nil)
	require.Error(t, err)
}
