package protocol

import (
	"fmt"
	"strings"
)

const (
	// MaxHeaders is the maximum number of header lines accepted in a
	// single advertisement. Datagrams carrying more are rejected.
	MaxHeaders = 17

	// StatusPrefix is the protocol version every advertisement status
	// line must carry.
	StatusPrefix = "HTTP/1.1"
)

// Advertisement is one parsed discovery response: the status line plus
// the header block that follows it.
//
// Header names are kept exactly as received (case-sensitive). When a
// name appears more than once, the last occurrence wins.
type Advertisement struct {
	// Status is the full status line (e.g. "HTTP/1.1 200 OK")
	Status string

	// Headers maps header name to value
	Headers map[string]string
}

// ParseError reports a datagram whose framing could not be parsed.
// It is non-fatal to a discovery session: the caller discards the
// datagram and keeps listening.
type ParseError struct {
	// Reason describes what made the datagram unparseable
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed advertisement: %s", e.Reason)
}

// ParseAdvertisement parses the raw bytes of one received datagram into
// an Advertisement.
//
// The buffer is decoded as UTF-8 lossily (invalid sequences become the
// replacement rune, never an error) and trailing NUL padding left over
// from a fixed-size receive buffer is stripped before parsing.
func ParseAdvertisement(buf []byte) (*Advertisement, error) {
	text := strings.ToValidUTF8(string(buf), "�")
	text = strings.TrimRight(text, "\x00")
	text = strings.TrimSpace(text)

	if text == "" {
		return nil, &ParseError{Reason: "empty datagram"}
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}

	status := lines[0]
	if err := validateStatusLine(status); err != nil {
		return nil, err
	}

	headers := make(map[string]string)
	count := 0
	for _, line := range lines[1:] {
		if line == "" {
			// blank line terminates the header block
			break
		}

		count++
		if count > MaxHeaders {
			return nil, &ParseError{Reason: fmt.Sprintf("more than %d headers", MaxHeaders)}
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok || name == "" {
			// header lines without a name are skipped, not fatal
			continue
		}
		headers[name] = strings.TrimSpace(value)
	}

	return &Advertisement{Status: status, Headers: headers}, nil
}

// validateStatusLine checks that the first line of a datagram is an
// HTTP/1.1 response status line ("HTTP/1.1 200 OK").
func validateStatusLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != StatusPrefix {
		return &ParseError{Reason: fmt.Sprintf("invalid status line %q", line)}
	}

	code := fields[1]
	if len(code) != 3 {
		return &ParseError{Reason: fmt.Sprintf("invalid status code %q", code)}
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return &ParseError{Reason: fmt.Sprintf("invalid status code %q", code)}
		}
	}

	return nil
}
