package ports

import "github.com/bnema/p4runner/internal/domain"

// EventSink is the boundary callback surface: every result event of a
// command execution crosses to the calling runtime through it, tagged with
// the correlation id of the originating request. Calls happen strictly
// before Execute returns, in command output order. Payload slices are only
// valid for the duration of the call.
type EventSink interface {
	OnError(id domain.CorrelationID, text string)
	OnBinary(id domain.CorrelationID, data []byte)
	OnText(id domain.CorrelationID, data []byte)
	OnInfo(id domain.CorrelationID, level int, line string)
	OnStat(id domain.CorrelationID, keys, values []string)
	OnRetry(id domain.CorrelationID, context, errText string)
}
