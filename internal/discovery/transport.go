package discovery

import (
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/ipv4"

	"github.com/muurk/yeelan/internal/logging"
	"github.com/muurk/yeelan/internal/protocol"
)

const (
	// MulticastAddr is the fixed discovery multicast group
	MulticastAddr = "239.255.255.250"

	// MulticastPort is the fixed discovery multicast port
	MulticastPort = 1982

	// DefaultLocalPort is the default local port the discovery socket
	// binds to; override it via NewClientWithAddr
	DefaultLocalPort = 7821

	// recvBufSize bounds one received advertisement. Larger datagrams
	// are truncated, which typically fails the parse.
	recvBufSize = 1024

	// pollInterval is the read deadline of one receive attempt
	pollInterval = 50 * time.Millisecond
)

// searchMessage is the fixed search query sent to the multicast group.
var searchMessage = []byte("M-SEARCH * HTTP/1.1\r\n" +
	"HOST: 239.255.255.250:1982\r\n" +
	"MAN: \"ssdp:discover\"\r\n" +
	"ST: wifi_bulb")

// Client owns the multicast-joined UDP socket used to discover lights.
// The socket is held for the client's entire lifetime and released by
// Close. A Client supports any number of sequential Discover sessions;
// it is not safe for concurrent use.
type Client struct {
	conn  *net.UDPConn
	group *net.UDPAddr
}

// NewClient creates a discovery client against the standard Yeelight
// multicast group, bound to the default local port.
func NewClient() (*Client, error) {
	group := &net.UDPAddr{IP: net.ParseIP(MulticastAddr), Port: MulticastPort}
	return NewClientWithAddr(group, DefaultLocalPort)
}

// NewClientWithAddr creates a discovery client against a custom group
// address and local port. localPort 0 binds an ephemeral port.
//
// The group address must be an IPv4 multicast address
// (224.0.0.0-239.255.255.255); anything else fails with a *ConfigError,
// as does a failed bind or group join.
func NewClientWithAddr(group *net.UDPAddr, localPort int) (*Client, error) {
	if group == nil || group.IP == nil {
		return nil, &ConfigError{Op: "validate group", Err: fmt.Errorf("no group address")}
	}

	ip4 := group.IP.To4()
	if ip4 == nil || !ip4.IsMulticast() {
		return nil, &ConfigError{Op: "validate group", Err: fmt.Errorf("%s is not an IPv4 multicast address", group.IP)}
	}

	// lights answer from their own addresses, so listen on the wildcard
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: localPort})
	if err != nil {
		return nil, &ConfigError{Op: "bind", Err: err}
	}

	if err := ipv4.NewPacketConn(conn).JoinGroup(nil, &net.UDPAddr{IP: ip4}); err != nil {
		conn.Close()
		return nil, &ConfigError{Op: "join group", Err: err}
	}

	logging.Debug("discovery socket ready",
		zap.Stringer("group", group),
		zap.Stringer("local", conn.LocalAddr()),
	)

	return &Client{conn: conn, group: group}, nil
}

// Group returns the multicast group the client queries.
func (c *Client) Group() *net.UDPAddr {
	return c.group
}

// LocalAddr returns the local address of the discovery socket.
func (c *Client) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// Close releases the discovery socket.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Discover runs one discovery session: it sends exactly one search
// query to the multicast group, then drains responses until timeout has
// elapsed, measured against the monotonic clock from the moment the
// query was sent.
//
// A failed send aborts the session with a *SendError. Everything that
// goes wrong per datagram afterwards (nothing received within a poll,
// unparseable framing, missing or invalid fields) drops that datagram
// and keeps the session going. Responses repeating an already-seen
// device ID are dropped; the first response for an ID wins.
//
// The returned slice holds one Device per distinct ID, unordered. A
// session that saw only malformed traffic returns an empty slice and no
// error.
func (c *Client) Discover(timeout time.Duration) ([]*Device, error) {
	if _, err := c.conn.WriteToUDP(searchMessage, c.group); err != nil {
		return nil, &SendError{Err: err}
	}
	start := time.Now()

	logging.Debug("search query sent", zap.Stringer("group", c.group))

	found := newCollector()
	buf := make([]byte, recvBufSize)

	for {
		remaining := timeout - time.Since(start)
		if remaining <= 0 {
			break
		}

		wait := pollInterval
		if remaining < wait {
			wait = remaining
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(wait))

		n, src, err := c.conn.ReadFromUDP(buf)
		if err != nil {
			// nothing arrived within this poll window
			continue
		}

		// a datagram read before the deadline is processed in full
		// even if the deadline passes meanwhile
		c.handleDatagram(buf[:n], src, found)
	}

	devices := found.devices()
	logging.Info("discovery session finished",
		zap.Int("devices", len(devices)),
		zap.Duration("timeout", timeout),
	)
	return devices, nil
}

// handleDatagram runs one received datagram through parse, decode and
// dedupe. Failures drop the datagram; they never abort the session.
func (c *Client) handleDatagram(raw []byte, src *net.UDPAddr, found *collector) {
	logging.LogDatagram("advertisement received", src.String(), raw)

	adv, err := protocol.ParseAdvertisement(raw)
	if err != nil {
		logging.Debug("dropping unparseable datagram",
			zap.String("from", src.String()),
			zap.Error(err),
		)
		return
	}

	device, err := DecodeDevice(adv.Headers, src)
	if err != nil {
		logging.Debug("dropping invalid advertisement",
			zap.String("from", src.String()),
			zap.Error(err),
		)
		return
	}

	if !found.offer(device) {
		logging.Debug("duplicate advertisement",
			zap.String("id", device.ID),
			zap.String("from", src.String()),
		)
		return
	}

	logging.Debug("light discovered",
		zap.String("id", device.ID),
		zap.String("model", device.Model),
		zap.Stringer("location", device.Location),
	)
}
