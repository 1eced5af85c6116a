package parse

import (
	"strings"

	"github.com/bnema/p4runner/internal/domain"
)

// Info parses `info` output, "Key: value" per line.
func Info(out string) domain.ServerInfo {
	var info domain.ServerInfo
	for _, line := range strings.Split(out, "\n") {
		key, value, found := strings.Cut(line, ": ")
		if !found {
			continue
		}
		switch key {
		case "User name":
			info.UserName = value
		case "Client name":
			info.ClientName = value
		case "Client root":
			info.ClientRoot = value
		case "Server address":
			info.ServerAddress = value
		case "Server version":
			info.ServerVersion = value
		case "Server uptime":
			info.ServerUptime = value
		case "Case Handling":
			info.CaseHandling = value
		}
	}
	return info
}
