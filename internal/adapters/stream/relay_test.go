package stream

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bnema/p4runner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	kind    string
	id      domain.CorrelationID
	text    string
	data    []byte
	level   int
	keys    []string
	values  []string
	context string
}

type recorderSink struct {
	events []recordedEvent
}

func (r *recorderSink) OnError(id domain.CorrelationID, text string) {
	r.events = append(r.events, recordedEvent{kind: "error", id: id, text: text})
}

func (r *recorderSink) OnBinary(id domain.CorrelationID, data []byte) {
	r.events = append(r.events, recordedEvent{kind: "binary", id: id, data: append([]byte(nil), data...)})
}

func (r *recorderSink) OnText(id domain.CorrelationID, data []byte) {
	r.events = append(r.events, recordedEvent{kind: "text", id: id, data: append([]byte(nil), data...)})
}

func (r *recorderSink) OnInfo(id domain.CorrelationID, level int, line string) {
	r.events = append(r.events, recordedEvent{kind: "info", id: id, level: level, text: line})
}

func (r *recorderSink) OnStat(id domain.CorrelationID, keys, values []string) {
	r.events = append(r.events, recordedEvent{kind: "stat", id: id, keys: keys, values: values})
}

func (r *recorderSink) OnRetry(id domain.CorrelationID, context, errText string) {
	r.events = append(r.events, recordedEvent{kind: "retry", id: id, context: context, text: errText})
}

func TestRelayHandleErrorForwardsContent(t *testing.T) {
	t.Parallel()

	sink := &recorderSink{}
	relay := NewRelay(sink, "cb-1", nil)

	relay.HandleError(errors.New("no such file"))

	require.Len(t, sink.events, 1)
	assert.Equal(t, "error", sink.events[0].kind)
	assert.Equal(t, domain.CorrelationID("cb-1"), sink.events[0].id)
	assert.Equal(t, "no such file", sink.events[0].text)
}

func TestRelayHandleErrorIgnoresEmpty(t *testing.T) {
	t.Parallel()

	sink := &recorderSink{}
	relay := NewRelay(sink, "cb-1", nil)

	relay.HandleError(nil)
	relay.HandleError(errors.New(""))

	assert.Empty(t, sink.events)
}

func TestRelayForwardsBinaryAndTextVerbatim(t *testing.T) {
	t.Parallel()

	sink := &recorderSink{}
	relay := NewRelay(sink, "cb-2", nil)

	binary := []byte{0x00, 0xff, 0x10, 0x00}
	text := []byte("line one\nline two\x00tail")
	relay.OutputBinary(binary)
	relay.OutputText(text)

	require.Len(t, sink.events, 2)
	assert.Equal(t, binary, sink.events[0].data)
	assert.Equal(t, text, sink.events[1].data)
	assert.Len(t, sink.events[1].data, len(text))
}

func TestRelayDecodesInfoLevel(t *testing.T) {
	t.Parallel()

	sink := &recorderSink{}
	relay := NewRelay(sink, "cb-3", nil)

	relay.OutputInfo('0', "opened for edit")
	relay.OutputInfo('2', "must sync first")

	require.Len(t, sink.events, 2)
	assert.Equal(t, 0, sink.events[0].level)
	assert.Equal(t, "opened for edit", sink.events[0].text)
	assert.Equal(t, 2, sink.events[1].level)
}

func TestRelayFiltersReservedStatKeys(t *testing.T) {
	t.Parallel()

	sink := &recorderSink{}
	relay := NewRelay(sink, "cb-4", nil)

	relay.OutputStat(domain.StatRecord{
		{Key: "func", Value: "x"},
		{Key: "specFormatted", Value: "y"},
		{Key: "client", Value: "z"},
	})

	require.Len(t, sink.events, 1)
	assert.Equal(t, []string{"client"}, sink.events[0].keys)
	assert.Equal(t, []string{"z"}, sink.events[0].values)
}

func TestRelayStatPreservesOrder(t *testing.T) {
	t.Parallel()

	sink := &recorderSink{}
	relay := NewRelay(sink, "cb-5", nil)

	relay.OutputStat(domain.StatRecord{
		{Key: "depotFile", Value: "//depot/a"},
		{Key: "func", Value: "client-FstatInfo"},
		{Key: "headRev", Value: "7"},
		{Key: "headAction", Value: "edit"},
	})

	require.Len(t, sink.events, 1)
	assert.Equal(t, []string{"depotFile", "headRev", "headAction"}, sink.events[0].keys)
	assert.Equal(t, []string{"//depot/a", "7", "edit"}, sink.events[0].values)
	assert.Len(t, sink.events[0].keys, len(sink.events[0].values))
}

func TestRelayInputDataAppendsPayload(t *testing.T) {
	t.Parallel()

	relay := NewRelay(&recorderSink{}, "cb-6", []byte("Client: demo"))

	var buf bytes.Buffer
	relay.InputData(&buf)

	assert.Equal(t, "Client: demo\n", buf.String())
}

func TestRelayInputDataWithoutPayload(t *testing.T) {
	t.Parallel()

	relay := NewRelay(&recorderSink{}, "cb-7", nil)

	var buf bytes.Buffer
	relay.InputData(&buf)

	assert.Zero(t, buf.Len())
}

func TestRelayRetry(t *testing.T) {
	t.Parallel()

	sink := &recorderSink{}
	relay := NewRelay(sink, "cb-8", nil)

	relay.Retry("connection dropped: ", errors.New("TCP receive failed"))
	relay.Retry("connection dropped: ", nil)

	require.Len(t, sink.events, 2)
	assert.Equal(t, "retry", sink.events[0].kind)
	assert.Equal(t, "connection dropped: ", sink.events[0].context)
	assert.Equal(t, "TCP receive failed", sink.events[0].text)
	assert.Empty(t, sink.events[1].text)
}
