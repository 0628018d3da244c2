package control

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/yeelan/internal/logging"
)

const (
	// DefaultDialTimeout is the default timeout for opening the
	// control stream to a light
	DefaultDialTimeout = 5 * time.Second

	// DefaultWriteTimeout bounds one command write
	DefaultWriteTimeout = 5 * time.Second
)

// ConnError reports a failure to open or use the control stream. It has
// no effect on already-discovered device records.
type ConnError struct {
	// Addr is the control endpoint involved
	Addr string

	// Op is the operation that failed ("dial", "send")
	Op string

	// Err is the underlying cause
	Err error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("control %s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *ConnError) Unwrap() error {
	return e.Err
}

// Conn is an open control stream to one light. It owns the underlying
// TCP connection until Close.
type Conn struct {
	conn   net.Conn
	addr   string
	nextID int
}

// command is the wire form of one control request.
type command struct {
	ID     int    `json:"id"`
	Method string `json:"method"`
	Params []any  `json:"params"`
}

// Dial opens the control stream to a light's advertised location.
// Opening is always explicit and lazy: discovery never calls Dial, the
// caller does when it first needs to issue a command.
func Dial(addr *net.TCPAddr) (*Conn, error) {
	return DialTimeout(addr, DefaultDialTimeout)
}

// DialTimeout opens the control stream with a custom dial timeout.
func DialTimeout(addr *net.TCPAddr, timeout time.Duration) (*Conn, error) {
	if addr == nil {
		return nil, &ConnError{Op: "dial", Err: fmt.Errorf("no control endpoint")}
	}

	conn, err := net.DialTimeout("tcp", addr.String(), timeout)
	if err != nil {
		return nil, &ConnError{Addr: addr.String(), Op: "dial", Err: err}
	}

	logging.Debug("control stream opened", zap.String("addr", addr.String()))

	return &Conn{conn: conn, addr: addr.String(), nextID: 1}, nil
}

// RemoteAddr returns the control endpoint this connection is open to.
func (c *Conn) RemoteAddr() string {
	return c.addr
}

// Send writes one command to the light. Commands are JSON objects
// terminated by CRLF; request IDs increase per connection. Responses
// are not read.
func (c *Conn) Send(method string, params ...any) error {
	if params == nil {
		params = []any{}
	}

	payload, err := json.Marshal(command{ID: c.nextID, Method: method, Params: params})
	if err != nil {
		return &ConnError{Addr: c.addr, Op: "send", Err: err}
	}
	payload = append(payload, '\r', '\n')

	_ = c.conn.SetWriteDeadline(time.Now().Add(DefaultWriteTimeout))
	if _, err := c.conn.Write(payload); err != nil {
		return &ConnError{Addr: c.addr, Op: "send", Err: err}
	}
	c.nextID++

	logging.Debug("command sent",
		zap.String("addr", c.addr),
		zap.String("method", method),
	)
	return nil
}

// SetPower switches the light on or off. "on"/"off" are the only
// states the protocol knows; the transition is smoothed over 500ms.
func (c *Conn) SetPower(on bool) error {
	state := "off"
	if on {
		state = "on"
	}
	return c.Send("set_power", state, "smooth", 500)
}

// Toggle flips the light's power state.
func (c *Conn) Toggle() error {
	return c.Send("toggle")
}

// SetBrightness sets the brightness percentage (1-100).
func (c *Conn) SetBrightness(percent int) error {
	if percent < 1 || percent > 100 {
		return &ConnError{Addr: c.addr, Op: "send", Err: fmt.Errorf("brightness %d out of range 1-100", percent)}
	}
	return c.Send("set_bright", percent, "smooth", 500)
}

// Close releases the control stream.
func (c *Conn) Close() error {
	return c.conn.Close()
}
