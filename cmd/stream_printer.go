package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/bnema/p4runner/internal/domain"
	"github.com/bnema/p4runner/internal/ports"
)

// streamPrinter writes command result events to the terminal: payloads on
// stdout, errors and retry notices on stderr. It also counts errors so
// the command can exit non-zero.
type streamPrinter struct {
	out    io.Writer
	errOut io.Writer
	errors int
}

var _ ports.EventSink = (*streamPrinter)(nil)

func newStreamPrinter(out, errOut io.Writer) *streamPrinter {
	return &streamPrinter{out: out, errOut: errOut}
}

func (p *streamPrinter) OnError(_ domain.CorrelationID, text string) {
	p.errors++
	_, _ = fmt.Fprintln(p.errOut, text)
}

func (p *streamPrinter) OnBinary(_ domain.CorrelationID, data []byte) {
	_, _ = p.out.Write(data)
}

func (p *streamPrinter) OnText(_ domain.CorrelationID, data []byte) {
	_, _ = p.out.Write(data)
}

func (p *streamPrinter) OnInfo(_ domain.CorrelationID, level int, line string) {
	if level < 0 {
		level = 0
	}
	_, _ = fmt.Fprintf(p.out, "%s%s\n", strings.Repeat("... ", level), line)
}

func (p *streamPrinter) OnStat(_ domain.CorrelationID, keys, values []string) {
	for i, key := range keys {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		_, _ = fmt.Fprintf(p.out, "... %s %s\n", key, value)
	}
	_, _ = fmt.Fprintln(p.out)
}

func (p *streamPrinter) OnRetry(_ domain.CorrelationID, context, errText string) {
	if errText == "" {
		_, _ = fmt.Fprintf(p.errOut, "%sretrying\n", context)
		return
	}
	_, _ = fmt.Fprintf(p.errOut, "%s%s, retrying\n", context, errText)
}
