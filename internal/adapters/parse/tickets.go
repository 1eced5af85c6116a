package parse

import (
	"regexp"
	"strings"

	"github.com/bnema/p4runner/internal/domain"
)

// Example: localhost:1666 (alice) 64578C65C39CB79DB7DD1B86016F25A7
var ticketRx = regexp.MustCompile(`^(\S+)\s\((\S+)\)\s(\S+)`)

// Tickets parses `tickets` output into held authentication tickets.
func Tickets(out string) []domain.Ticket {
	var tickets []domain.Ticket
	for _, line := range strings.Split(out, "\n") {
		groups := ticketRx.FindStringSubmatch(line)
		if groups == nil {
			continue
		}
		tickets = append(tickets, domain.Ticket{
			Name: groups[1],
			User: groups[2],
			ID:   groups[3],
		})
	}
	return tickets
}
