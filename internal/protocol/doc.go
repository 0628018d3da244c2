// Package protocol parses the wire format of Yeelight discovery responses.
//
// Lights answer a multicast search with an HTTP/1.1-style datagram: a
// status line followed by "Name: value" header lines. This package
// turns the raw bytes of one such datagram into an Advertisement
// carrying the status line and a header map. It knows nothing about
// which headers a light is supposed to send; field extraction and
// validation live in the discovery package.
//
// # Wire Format
//
// A typical advertisement looks like:
//
//	HTTP/1.1 200 OK
//	Location: yeelight://192.168.0.42:55443
//	id: 0x000000000015243f
//	model: color
//	fw_ver: 18
//	power: on
//	...
//
// # Parsing Rules
//
//   - Bytes are decoded as UTF-8 lossily; invalid sequences become the
//     replacement rune and never fail the parse.
//   - Trailing NUL padding from the fixed-size receive buffer is stripped.
//   - Header names are case-sensitive; duplicate names keep the last value.
//   - At most MaxHeaders header lines are accepted; beyond that the
//     datagram is rejected with a *ParseError.
//
// A *ParseError is never fatal to a discovery session: the caller drops
// the offending datagram and keeps listening.
//
// # Thread Safety
//
// All functions are stateless and safe for concurrent use.
package protocol
