package p4cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/bnema/p4runner/internal/domain"
	"github.com/bnema/p4runner/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRun struct {
	binary string
	args   []string
	stdin  []byte
}

type captureSink struct {
	errs  []string
	infos []string
	stats []domain.StatRecord
	input []byte
}

var _ ports.OutputSink = (*captureSink)(nil)

func (c *captureSink) HandleError(err error)            { c.errs = append(c.errs, err.Error()) }
func (c *captureSink) OutputBinary([]byte)              {}
func (c *captureSink) OutputText([]byte)                {}
func (c *captureSink) OutputInfo(_ byte, line string)   { c.infos = append(c.infos, line) }
func (c *captureSink) OutputStat(r domain.StatRecord)   { c.stats = append(c.stats, r) }
func (c *captureSink) InputData(buf *bytes.Buffer)      { buf.Write(c.input) }

func newScriptedSession(stdout, stderr string, runs *[]capturedRun) *Session {
	s := Dialer{Address: "perforce:1666", User: "svc"}.Dial().(*Session)
	s.run = func(_ context.Context, binary string, args []string, stdin []byte) ([]byte, []byte, error) {
		*runs = append(*runs, capturedRun{binary: binary, args: args, stdin: stdin})
		return []byte(stdout), []byte(stderr), nil
	}
	return s
}

func TestSessionRunBuildsGlobalFlags(t *testing.T) {
	t.Parallel()

	var runs []capturedRun
	s := newScriptedSession("", "", &runs)
	s.SetCharset(domain.Charset)
	s.SetProtocol(domain.VariantTagged)
	s.SetPassword("ticket")
	s.SetArg([]byte("//depot/..."))
	s.SetArg([]byte("-m"))

	s.Run(context.Background(), "fstat", &captureSink{})

	require.Len(t, runs, 1)
	assert.Equal(t, []string{
		"-C", "utf8",
		"-p", "perforce:1666",
		"-u", "svc",
		"-P", "ticket",
		"-Ztag",
		"fstat",
		"//depot/...", "-m",
	}, runs[0].args)
}

func TestSessionRunClearsArgsBetweenRuns(t *testing.T) {
	t.Parallel()

	var runs []capturedRun
	s := newScriptedSession("", "", &runs)
	s.SetArg([]byte("first"))
	s.Run(context.Background(), "sync", &captureSink{})
	s.Run(context.Background(), "sync", &captureSink{})

	require.Len(t, runs, 2)
	assert.Contains(t, runs[0].args, "first")
	assert.NotContains(t, runs[1].args, "first")
}

func TestSessionRunEmitsInfoLines(t *testing.T) {
	t.Parallel()

	var runs []capturedRun
	s := newScriptedSession("line one\nline two\n", "", &runs)
	sink := &captureSink{}

	s.Run(context.Background(), "info", sink)

	assert.Equal(t, []string{"line one", "line two"}, sink.infos)
	assert.Empty(t, sink.errs)
}

func TestSessionRunParsesTaggedOutput(t *testing.T) {
	t.Parallel()

	out := "... depotFile //depot/a.txt\n" +
		"... headRev 3\n" +
		"\n" +
		"... depotFile //depot/b.txt\n" +
		"... headRev 1\n"

	var runs []capturedRun
	s := newScriptedSession(out, "", &runs)
	s.SetProtocol(domain.VariantTagged)
	sink := &captureSink{}

	s.Run(context.Background(), "fstat", sink)

	require.Len(t, sink.stats, 2)
	file, ok := sink.stats[0].Get("depotFile")
	require.True(t, ok)
	assert.Equal(t, "//depot/a.txt", file)
	rev, _ := sink.stats[1].Get("headRev")
	assert.Equal(t, "1", rev)
	assert.Empty(t, sink.infos)
}

func TestSessionRunSurfacesStderr(t *testing.T) {
	t.Parallel()

	var runs []capturedRun
	s := newScriptedSession("", "//depot/nope - no such file(s).\n", &runs)
	sink := &captureSink{}

	s.Run(context.Background(), "files", sink)

	require.Len(t, sink.errs, 1)
	assert.Equal(t, "//depot/nope - no such file(s).", sink.errs[0])
}

func TestSessionRunForwardsInput(t *testing.T) {
	t.Parallel()

	var runs []capturedRun
	s := newScriptedSession("", "", &runs)
	sink := &captureSink{input: []byte("Client: demo\n")}

	s.Run(context.Background(), "client", sink)

	require.Len(t, runs, 1)
	assert.Equal(t, "Client: demo\n", string(runs[0].stdin))
}

func TestSessionNeverDrops(t *testing.T) {
	t.Parallel()

	s := Dialer{}.Dial().(*Session)
	assert.False(t, s.Dropped())
	assert.NoError(t, s.Finalize())
}
