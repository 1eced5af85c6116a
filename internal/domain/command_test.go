package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestSplitArgs(t *testing.T) {
	t.Parallel()

	req := Request{
		Command:  "fstat",
		Args:     []byte("foobarbaz"),
		ArgSizes: []int{3, 3, 3},
	}

	args, err := req.SplitArgs()
	require.NoError(t, err)
	require.Len(t, args, 3)
	assert.Equal(t, []byte("foo"), args[0])
	assert.Equal(t, []byte("bar"), args[1])
	assert.Equal(t, []byte("baz"), args[2])
}

func TestRequestSplitArgsEmpty(t *testing.T) {
	t.Parallel()

	args, err := Request{Command: "info"}.SplitArgs()
	require.NoError(t, err)
	assert.Empty(t, args)
}

func TestRequestValidateRejectsShortTable(t *testing.T) {
	t.Parallel()

	err := Request{
		Command:  "print",
		Args:     []byte("foobar"),
		ArgSizes: []int{3},
	}.Validate()
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestRequestValidateRejectsNegativeSize(t *testing.T) {
	t.Parallel()

	err := Request{
		Command:  "print",
		Args:     []byte("foo"),
		ArgSizes: []int{6, -3},
	}.Validate()
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestRequestValidateRejectsEmptyCommand(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Request{}.Validate(), ErrInvalidRequest)
}

func TestPackArgsRoundTrip(t *testing.T) {
	t.Parallel()

	packed, sizes := PackArgs("foo", "", "barbaz")
	req := Request{Command: "sync", Args: packed, ArgSizes: sizes}

	args, err := req.SplitArgs()
	require.NoError(t, err)
	require.Len(t, args, 3)
	assert.Equal(t, "foo", string(args[0]))
	assert.Empty(t, args[1])
	assert.Equal(t, "barbaz", string(args[2]))
}

func TestRequestVariant(t *testing.T) {
	t.Parallel()

	assert.Equal(t, VariantPlain, Request{Command: "info"}.Variant())
	assert.Equal(t, VariantTagged, Request{Command: "info", Tagged: true}.Variant())
}

func TestCredentialsOverride(t *testing.T) {
	t.Parallel()

	assert.False(t, Credentials{}.Override())
	assert.False(t, Credentials{User: "alice"}.Override())
	assert.False(t, Credentials{Password: "hunter2"}.Override())
	assert.True(t, Credentials{User: "alice", Password: "hunter2"}.Override())
}

func TestStatRecordSplit(t *testing.T) {
	t.Parallel()

	rec := StatRecord{
		{Key: "depotFile", Value: "//depot/a.txt"},
		{Key: "headRev", Value: "4"},
	}

	keys, values := rec.Split()
	assert.Equal(t, []string{"depotFile", "headRev"}, keys)
	assert.Equal(t, []string{"//depot/a.txt", "4"}, values)

	value, ok := rec.Get("headRev")
	require.True(t, ok)
	assert.Equal(t, "4", value)

	_, ok = rec.Get("missing")
	assert.False(t, ok)
}
