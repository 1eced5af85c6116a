package domain

// Charset is fixed for every backend session. The server is asked to
// translate all command output to UTF-8 regardless of its own encoding.
const Charset = "utf8"

// ProtocolVariant selects how the backend encodes structured results.
// It must be declared before a session connects and cannot be changed on
// a live connection.
type ProtocolVariant string

const (
	VariantPlain  ProtocolVariant = "plain"
	VariantTagged ProtocolVariant = "tagged"
)

func (v ProtocolVariant) Valid() bool {
	return v == VariantPlain || v == VariantTagged
}

// Credentials is the user/password pair carried by a session. A command may
// override it for the duration of a single lease; the pair captured before
// the override is restored before the session returns to its pool.
type Credentials struct {
	User     string
	Password string
}

// Override reports whether the pair should replace a session's credentials
// for one command. Both halves must be present, matching the backend's
// requirement that a ticket is issued against an explicit user.
func (c Credentials) Override() bool {
	return c.User != "" && c.Password != ""
}
