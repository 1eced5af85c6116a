package domain

// Change is one submitted or pending changelist as reported by the backend.
type Change struct {
	Number      int
	User        string
	Client      string
	Date        string
	Status      string
	Description string
}

// ServerInfo is the subset of server/connection details surfaced by the
// info command that callers here care about.
type ServerInfo struct {
	UserName      string
	ClientName    string
	ClientRoot    string
	ServerAddress string
	ServerVersion string
	ServerUptime  string
	CaseHandling  string
}

// Ticket is one authentication ticket held for a server/user pair.
type Ticket struct {
	Name string
	User string
	ID   string
}
