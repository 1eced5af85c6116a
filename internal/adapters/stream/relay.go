// Package stream bridges a running command's output callbacks onto the
// boundary event surface.
package stream

import (
	"bytes"

	"github.com/bnema/p4runner/internal/domain"
	"github.com/bnema/p4runner/internal/ports"
)

// Keys the backend uses for its own routing and spec-form bookkeeping.
// They never reach the caller.
var reservedStatKeys = map[string]struct{}{
	"func":          {},
	"specFormatted": {},
}

// Relay implements ports.OutputSink for a single command execution. Every
// event it forwards carries the execution's correlation id so the calling
// runtime can demultiplex concurrent commands.
type Relay struct {
	sink  ports.EventSink
	id    domain.CorrelationID
	input []byte
}

var _ ports.OutputSink = (*Relay)(nil)

// NewRelay builds the per-execution adapter. input is the payload handed
// to the command when it requests data (spec forms, passwords); nil means
// the command gets none.
func NewRelay(sink ports.EventSink, id domain.CorrelationID, input []byte) *Relay {
	return &Relay{sink: sink, id: id, input: input}
}

func (r *Relay) HandleError(err error) {
	if err == nil {
		return
	}
	text := err.Error()
	if text == "" {
		return
	}
	r.sink.OnError(r.id, text)
}

// Error forwards a failure that happened outside the backend callback
// path, such as a session that could not be acquired.
func (r *Relay) Error(text string) {
	r.sink.OnError(r.id, text)
}

func (r *Relay) OutputBinary(data []byte) {
	r.sink.OnBinary(r.id, data)
}

func (r *Relay) OutputText(data []byte) {
	r.sink.OnText(r.id, data)
}

func (r *Relay) OutputInfo(level byte, line string) {
	r.sink.OnInfo(r.id, int(level-'0'), line)
}

func (r *Relay) OutputStat(record domain.StatRecord) {
	filtered := make(domain.StatRecord, 0, len(record))
	for _, field := range record {
		if _, reserved := reservedStatKeys[field.Key]; reserved {
			continue
		}
		filtered = append(filtered, field)
	}
	keys, values := filtered.Split()
	r.sink.OnStat(r.id, keys, values)
}

func (r *Relay) InputData(buf *bytes.Buffer) {
	if len(r.input) == 0 {
		return
	}
	buf.Write(r.input)
	buf.WriteByte('\n')
}

// Retry notifies the caller that the session dropped mid-command and the
// command is about to run again on a fresh one.
func (r *Relay) Retry(context string, err error) {
	text := ""
	if err != nil {
		text = err.Error()
	}
	r.sink.OnRetry(r.id, context, text)
}
