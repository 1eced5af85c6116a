package application

import (
	"bytes"
	"errors"
	"strings"

	"github.com/bnema/p4runner/internal/domain"
	"github.com/bnema/p4runner/internal/ports"
)

// collector is an in-memory event sink for typed queries: it gathers one
// command's event stream so the caller can parse it after Execute returns.
type collector struct {
	errs    []string
	lines   []string
	text    bytes.Buffer
	binary  bytes.Buffer
	stats   []domain.StatRecord
	retries int
}

var _ ports.EventSink = (*collector)(nil)

func (c *collector) OnError(_ domain.CorrelationID, text string) {
	c.errs = append(c.errs, text)
}

func (c *collector) OnBinary(_ domain.CorrelationID, data []byte) {
	c.binary.Write(data)
}

func (c *collector) OnText(_ domain.CorrelationID, data []byte) {
	c.text.Write(data)
}

func (c *collector) OnInfo(_ domain.CorrelationID, _ int, line string) {
	c.lines = append(c.lines, line)
}

func (c *collector) OnStat(_ domain.CorrelationID, keys, values []string) {
	record := make(domain.StatRecord, 0, len(keys))
	for i := range keys {
		record = append(record, domain.StatField{Key: keys[i], Value: values[i]})
	}
	c.stats = append(c.stats, record)
}

func (c *collector) OnRetry(domain.CorrelationID, string, string) {
	c.retries++
}

// output joins the command's info lines, the shape the line parsers take.
func (c *collector) output() string {
	return strings.Join(c.lines, "\n")
}

func (c *collector) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return errors.New(strings.Join(c.errs, " : "))
}
