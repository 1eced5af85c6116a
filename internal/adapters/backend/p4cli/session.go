// Package p4cli adapts the installed p4 command line to the backend
// session contract. Each Run spawns one p4 process, so sessions here never
// drop mid-command; the pooling and retry machinery above stays identical
// for transports that do hold live connections.
package p4cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/p4runner/internal/domain"
	"github.com/bnema/p4runner/internal/ports"
)

const defaultBinary = "p4"

type runFunc func(ctx context.Context, binary string, args []string, stdin []byte) (stdout, stderr []byte, err error)

// Dialer constructs CLI-backed sessions for one server target.
type Dialer struct {
	Binary   string
	Address  string
	Client   string
	User     string
	Password string
}

var _ ports.Dialer = Dialer{}

func (d Dialer) Dial() ports.Session {
	binary := d.Binary
	if binary == "" {
		binary = defaultBinary
	}
	return &Session{
		binary:   binary,
		address:  d.Address,
		client:   d.Client,
		user:     d.User,
		password: d.Password,
		run:      runP4,
	}
}

// Session drives p4 invocations. One process per Run; the "connection" is
// only the resolved binary plus the flag set derived from its settings.
type Session struct {
	binary   string
	address  string
	client   string
	charset  string
	variant  domain.ProtocolVariant
	user     string
	password string

	connected bool
	args      [][]byte
	run       runFunc
}

var _ ports.Session = (*Session)(nil)

func (s *Session) SetCharset(charset string) { s.charset = charset }

func (s *Session) SetProtocol(variant domain.ProtocolVariant) { s.variant = variant }

func (s *Session) Connect(_ context.Context) error {
	path, err := exec.LookPath(s.binary)
	if err != nil {
		return fmt.Errorf("locate %s binary: %w", s.binary, err)
	}
	s.binary = path
	s.connected = true
	return nil
}

func (s *Session) User() string             { return s.user }
func (s *Session) SetUser(user string)      { s.user = user }
func (s *Session) Password() string         { return s.password }
func (s *Session) SetPassword(password string) { s.password = password }

func (s *Session) SetArg(arg []byte) {
	s.args = append(s.args, append([]byte(nil), arg...))
}

func (s *Session) Run(ctx context.Context, command string, sink ports.OutputSink) {
	args := s.globalArgs()
	args = append(args, command)
	for _, arg := range s.args {
		args = append(args, string(arg))
	}
	s.args = nil

	var input bytes.Buffer
	sink.InputData(&input)

	stdout, stderr, err := s.run(ctx, s.binary, args, input.Bytes())
	if len(stderr) > 0 {
		sink.HandleError(errors.New(strings.TrimRight(string(stderr), "\n")))
	} else if err != nil {
		sink.HandleError(err)
	}
	if len(stdout) == 0 {
		return
	}

	if s.variant == domain.VariantTagged {
		for _, record := range parseTagged(string(stdout)) {
			sink.OutputStat(record)
		}
		return
	}
	for _, line := range strings.Split(strings.TrimRight(string(stdout), "\n"), "\n") {
		sink.OutputInfo('0', line)
	}
}

func (s *Session) Dropped() bool { return false }

func (s *Session) Finalize() error {
	s.connected = false
	return nil
}

func (s *Session) globalArgs() []string {
	var args []string
	if s.charset != "" {
		args = append(args, "-C", s.charset)
	}
	if s.address != "" {
		args = append(args, "-p", s.address)
	}
	if s.client != "" {
		args = append(args, "-c", s.client)
	}
	if s.user != "" {
		args = append(args, "-u", s.user)
	}
	if s.password != "" {
		args = append(args, "-P", s.password)
	}
	if s.variant == domain.VariantTagged {
		args = append(args, "-Ztag")
	}
	return args
}

// parseTagged splits -Ztag output into records: "... key value" lines,
// records separated by blank lines.
func parseTagged(out string) []domain.StatRecord {
	var records []domain.StatRecord
	var current domain.StatRecord
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			if len(current) > 0 {
				records = append(records, current)
				current = nil
			}
			continue
		}
		rest, found := strings.CutPrefix(line, "... ")
		if !found {
			continue
		}
		key, value, _ := strings.Cut(rest, " ")
		current = append(current, domain.StatField{Key: key, Value: value})
	}
	if len(current) > 0 {
		records = append(records, current)
	}
	return records
}

func runP4(ctx context.Context, binary string, args []string, stdin []byte) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	if len(stdin) > 0 {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
