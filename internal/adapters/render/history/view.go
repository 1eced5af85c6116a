package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/p4runner/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now time.Time
}

func renderView(records []domain.CommandRecord, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Recent Commands"),
		s.header.Render(fmt.Sprintf("records: %d", len(records))),
	}

	if len(records) == 0 {
		lines = append(lines, s.empty.Render("No commands recorded yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, record := range records {
		lines = append(lines, renderRecord(record, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRecord(record domain.CommandRecord, opts RenderOptions, s styles) string {
	parts := []string{
		s.meta.Render(formatStartedAt(record.StartedAt, opts.Now)),
		s.command.Render(commandLabel(record)),
		s.detail.Render(formatDuration(record.DurationUS)),
	}

	if record.InitUS > 0 {
		parts = append(parts, s.meta.Render(fmt.Sprintf("init %s", formatDuration(record.InitUS))))
	}
	if record.Retries > 0 {
		parts = append(parts, s.warning.Render(fmt.Sprintf("%d %s", record.Retries, pluralize("retry", "retries", record.Retries))))
	}
	if record.Failed {
		parts = append(parts, s.warning.Render("failed"))
	}
	if record.CorrelationID != "" {
		parts = append(parts, s.meta.Render(string(record.CorrelationID)))
	}

	sep := s.separator.Render("  ")
	return strings.Join(parts, sep)
}

func commandLabel(record domain.CommandRecord) string {
	if record.Tagged {
		return record.Command + " (tagged)"
	}
	return record.Command
}

func formatDuration(micros int64) string {
	d := time.Duration(micros) * time.Microsecond
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%dµs", micros)
	}
}

func formatStartedAt(startedAt, now time.Time) string {
	if startedAt.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		return startedAt.Format("15:04:05 02 Jan")
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := startedAt.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return startedAt.Format("15:04:05")
	}

	return startedAt.Format("15:04:05 02 Jan")
}

func pluralize(singular, plural string, n int) string {
	if n == 1 {
		return singular
	}
	return plural
}
