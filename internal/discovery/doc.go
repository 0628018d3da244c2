// Package discovery finds Yeelight devices on the local network.
//
// Yeelights answer an SSDP-style multicast search: the client sends one
// M-SEARCH query to the fixed group 239.255.255.250:1982 and each light
// replies with a UDP advertisement describing its identity and current
// state. This package owns that exchange end to end: the
// multicast-joined socket, the timed receive loop, validation of each
// advertisement into a Device, and per-session deduplication.
//
// # Discovery Process
//
//  1. Bind a wildcard UDP socket and join the multicast group
//  2. Send exactly one search query per session
//  3. Drain response datagrams until the session timeout elapses
//  4. Parse and validate each datagram; drop the ones that fail
//  5. Dedupe by device ID (first response wins) and return the set
//
// # Usage Example
//
//	client, err := discovery.NewClient()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	devices, err := client.Discover(3 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, device := range devices {
//	    fmt.Printf("Found: %s at %s\n", device.DisplayName(), device.Location)
//	}
//
// # Error Handling
//
// Only two things are fatal: socket setup (*ConfigError, from the
// constructors) and the outbound query send (*SendError, from
// Discover). Per-datagram trouble — nothing received within a poll,
// malformed framing (*protocol.ParseError), a missing or invalid field
// (*FieldError) — drops that datagram and the session continues. A
// session that hears only garbage simply returns fewer devices.
//
// # Device Identity
//
// Devices are deduplicated and compared by their firmware-assigned ID
// alone, never by network address: addresses change with DHCP leases,
// the ID does not. When the same ID is heard twice in one session the
// first advertisement wins, even if the later one carries newer state.
//
// # Concurrency
//
// A session runs synchronously on the caller's goroutine; the receive
// loop polls with short read deadlines against a monotonic clock. A
// Client must not be shared across goroutines, but independent clients
// can run concurrent sessions since each owns its socket and collector.
package discovery
