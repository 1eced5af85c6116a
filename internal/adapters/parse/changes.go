// Package parse turns the backend's line-oriented command output into
// domain types.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bnema/p4runner/internal/domain"
)

// Change lines come in short and long form; short form carries a quoted,
// truncated description on the same line, long form continues on
// tab-indented lines below. Example short form:
//
//	Change 9395 on 2020/06/20 by alice@alice-ws *pending* 'fix the build '
var changeRx = regexp.MustCompile(`^Change\s+(\d+)\s+on\s+([\d/]+(?: [\d:]+)?)\s+by\s+(\S+)@(\S+)\s*(?:\*(\S+)\*)?\s*(?:'(.*)')?$`)

// Changes parses `changes` output into changelists in listing order.
func Changes(out string) []domain.Change {
	var changes []domain.Change
	var current domain.Change
	pending := false

	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		if groups := changeRx.FindStringSubmatch(line); groups != nil {
			if pending {
				changes = append(changes, current)
			}
			pending = true
			number, _ := strconv.Atoi(groups[1])
			current = domain.Change{
				Number:      number,
				Date:        groups[2],
				User:        groups[3],
				Client:      groups[4],
				Status:      groups[5],
				Description: strings.TrimRight(groups[6], " "),
			}
			continue
		}
		// Long-form description lines are tab indented.
		if line[0] == '\t' && pending {
			if current.Description != "" {
				current.Description += "\n"
			}
			current.Description += line[1:]
		}
	}
	if pending {
		changes = append(changes, current)
	}
	return changes
}
