package domain

import "time"

// CommandRecord is one completed command execution as kept in the history
// log: what ran, how long it took end to end, how much of that went into
// establishing fresh sessions, and how many times a dropped session forced
// a retry.
type CommandRecord struct {
	ID            int64
	Command       string
	CorrelationID CorrelationID
	Tagged        bool
	DurationUS    int64
	InitUS        int64
	Retries       int
	Failed        bool
	StartedAt     time.Time
}
