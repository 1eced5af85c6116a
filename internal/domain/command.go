package domain

import "fmt"

// CorrelationID links one Execute call to the stream of events it produces
// on the boundary. Opaque to this package.
type CorrelationID string

// Request describes one backend command. It stays immutable for the whole
// execution, including any retries after a dropped session.
//
// Positional arguments travel packed: Args holds every argument's bytes
// back to back and ArgSizes gives each argument's length in order, the
// layout the boundary hands us.
type Request struct {
	Command       string
	User          string
	Password      string
	Input         []byte
	Args          []byte
	ArgSizes      []int
	CorrelationID CorrelationID
	Tagged        bool
}

func (r Request) Validate() error {
	if r.Command == "" {
		return fmt.Errorf("%w: command name is empty", ErrInvalidRequest)
	}
	total := 0
	for i, size := range r.ArgSizes {
		if size < 0 {
			return fmt.Errorf("%w: argument %d has negative size %d", ErrInvalidRequest, i, size)
		}
		total += size
	}
	if total != len(r.Args) {
		return fmt.Errorf("%w: argument sizes cover %d bytes, packed buffer holds %d", ErrInvalidRequest, total, len(r.Args))
	}
	return nil
}

// Variant maps the request's tagged flag onto the pool selector.
func (r Request) Variant() ProtocolVariant {
	if r.Tagged {
		return VariantTagged
	}
	return VariantPlain
}

// Overrides returns the credential override pair carried by the request.
func (r Request) Overrides() Credentials {
	return Credentials{User: r.User, Password: r.Password}
}

// SplitArgs slices the packed argument buffer per the length table. The
// returned slices alias Args; callers that outlive the request must copy.
func (r Request) SplitArgs() ([][]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	args := make([][]byte, 0, len(r.ArgSizes))
	next := 0
	for _, size := range r.ArgSizes {
		args = append(args, r.Args[next:next+size:next+size])
		next += size
	}
	return args, nil
}

// PackArgs builds the packed buffer and length table from ordinary string
// arguments. Convenience for callers on this side of the boundary.
func PackArgs(args ...string) ([]byte, []int) {
	sizes := make([]int, len(args))
	total := 0
	for i, arg := range args {
		sizes[i] = len(arg)
		total += len(arg)
	}
	packed := make([]byte, 0, total)
	for _, arg := range args {
		packed = append(packed, arg...)
	}
	return packed, sizes
}
