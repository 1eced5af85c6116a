package ports

import (
	"bytes"
	"context"

	"github.com/bnema/p4runner/internal/domain"
)

// Session is one stateful connection to the version-control backend. It is
// consumed as an opaque capability: this repository never implements the
// wire protocol, only drives sessions through this surface.
//
// SetCharset and SetProtocol must be called before Connect; the protocol
// variant cannot change on a live connection. A Session is owned by exactly
// one pool or one in-flight lease at a time and is never used concurrently.
type Session interface {
	SetCharset(charset string)
	SetProtocol(variant domain.ProtocolVariant)
	Connect(ctx context.Context) error

	User() string
	SetUser(user string)
	Password() string
	SetPassword(password string)

	// SetArg queues one unnamed positional argument for the next Run.
	// The session copies the bytes; the caller keeps ownership.
	SetArg(arg []byte)

	// Run executes the named command, delivering all output through sink
	// before it returns. Command failures are reported via the sink, not
	// returned; a severed connection is discovered through Dropped.
	Run(ctx context.Context, command string, sink OutputSink)

	// Dropped reports whether the backend severed this session. Meaningful
	// only after a Run attempt.
	Dropped() bool

	// Finalize tears the connection down. Required before discarding a
	// dropped session so the transport can release its end.
	Finalize() error
}

// Dialer constructs unconnected Sessions. One implementation per transport.
type Dialer interface {
	Dial() Session
}

// OutputSink is the backend's output capability set: a running command
// pushes heterogeneous results through it. Implementations must copy any
// byte slice they keep; the buffers belong to the session.
type OutputSink interface {
	// HandleError receives a structured command error. Implementations may
	// ignore errors without content.
	HandleError(err error)
	OutputBinary(data []byte)
	OutputText(data []byte)
	// OutputInfo carries a leveled informational line. The level is the
	// backend's single-digit encoding ('0'..'9').
	OutputInfo(level byte, line string)
	OutputStat(record domain.StatRecord)
	// InputData is invoked when the command wants input (spec forms,
	// passwords). Implementations append their payload to buf, or leave it
	// untouched when they have none.
	InputData(buf *bytes.Buffer)
}
