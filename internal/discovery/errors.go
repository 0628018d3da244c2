package discovery

import "fmt"

// ConfigError reports a failure to set up the discovery socket: a bad
// local bind, a group address outside the multicast range, or a failed
// multicast join. It is fatal; no session starts.
type ConfigError struct {
	// Op is the setup step that failed (e.g. "bind", "join group")
	Op string

	// Err is the underlying cause
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("discovery setup: %s: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// SendError reports that the outbound search query could not be sent.
// It aborts the Discover call that attempted it.
type SendError struct {
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send search query: %v", e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// FieldError reports a required advertisement field that was either
// absent from the header map or present but unparseable. The first
// FieldError aborts the decode of that advertisement; the session as a
// whole continues.
type FieldError struct {
	// Field is the header name of the offending field
	Field string

	// Raw is the received value; empty when the field was missing
	Raw string

	// Missing is true when the field was absent rather than invalid
	Missing bool

	// Err is the parse failure cause, nil when Missing
	Err error
}

func (e *FieldError) Error() string {
	if e.Missing {
		return fmt.Sprintf("field %q missing from advertisement", e.Field)
	}
	return fmt.Sprintf("field %q has invalid value %q: %v", e.Field, e.Raw, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
