package discovery

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"
)

// advertisement builds a complete, well-formed response datagram for a
// simulated light.
func advertisement(id string) []byte {
	return []byte(fmt.Sprintf("HTTP/1.1 200 OK\r\n"+
		"id: %s\r\n"+
		"model: color\r\n"+
		"fw_ver: 18\r\n"+
		"power: on\r\n"+
		"support: get_power set_power toggle\r\n"+
		"bright: 50\r\n"+
		"color_mode: 2\r\n"+
		"ct: 4000\r\n"+
		"rgb: 657930\r\n"+
		"hue: 100\r\n"+
		"sat: 35\r\n"+
		"name: test_light\r\n", id))
}

// newTestClient builds a client on an ephemeral local port and returns
// the loopback address simulated lights should answer to.
func newTestClient(t *testing.T) (*Client, *net.UDPAddr) {
	t.Helper()

	group := &net.UDPAddr{IP: net.ParseIP(MulticastAddr), Port: MulticastPort}
	client, err := NewClientWithAddr(group, 0)
	if err != nil {
		t.Fatalf("NewClientWithAddr() error = %v", err)
	}
	t.Cleanup(func() { client.Close() })

	port := client.LocalAddr().(*net.UDPAddr).Port
	return client, &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: port}
}

// sendDatagram delivers one simulated response to the client's socket.
func sendDatagram(t *testing.T, to *net.UDPAddr, payload []byte) {
	t.Helper()

	conn, err := net.DialUDP("udp4", nil, to)
	if err != nil {
		t.Fatalf("DialUDP() error = %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write(payload); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
}

func TestMulticastAddrIsMulticast(t *testing.T) {
	if !net.ParseIP(MulticastAddr).IsMulticast() {
		t.Errorf("MulticastAddr %s is not a multicast address", MulticastAddr)
	}
}

func TestNewClient(t *testing.T) {
	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer client.Close()

	if client.Group().IP.String() != MulticastAddr {
		t.Errorf("client.Group().IP = %v, want %s", client.Group().IP, MulticastAddr)
	}
	if client.Group().Port != MulticastPort {
		t.Errorf("client.Group().Port = %d, want %d", client.Group().Port, MulticastPort)
	}

	local := client.LocalAddr().(*net.UDPAddr)
	if !local.IP.IsUnspecified() {
		t.Errorf("local bind IP = %v, want wildcard", local.IP)
	}
	if local.Port != DefaultLocalPort {
		t.Errorf("local bind port = %d, want %d", local.Port, DefaultLocalPort)
	}
}

func TestNewClientWithAddr(t *testing.T) {
	group := &net.UDPAddr{IP: net.IPv4(237, 220, 1, 32), Port: 1235}

	client, err := NewClientWithAddr(group, 0)
	if err != nil {
		t.Fatalf("NewClientWithAddr() error = %v", err)
	}
	defer client.Close()

	if client.Group() != group {
		t.Errorf("client.Group() = %v, want %v", client.Group(), group)
	}
	if client.LocalAddr().(*net.UDPAddr).Port == 0 {
		t.Error("local port = 0, want an ephemeral port assigned")
	}
}

func TestNewClientWithAddr_NonMulticast(t *testing.T) {
	tests := []struct {
		name string
		ip   net.IP
	}{
		{"unicast", net.IPv4(223, 0, 0, 255)},
		{"loopback", net.IPv4(127, 0, 0, 1)},
		{"nil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClientWithAddr(&net.UDPAddr{IP: tt.ip, Port: 1982}, 0)
			if client != nil {
				client.Close()
				t.Fatal("NewClientWithAddr() returned a client, want error")
			}

			var configErr *ConfigError
			if !errors.As(err, &configErr) {
				t.Errorf("NewClientWithAddr() error = %v, want *ConfigError", err)
			}
		})
	}
}

func TestDiscover_DistinctDevices(t *testing.T) {
	client, respondTo := newTestClient(t)

	for _, id := range []string{"0x1", "0x2", "0x3"} {
		sendDatagram(t, respondTo, advertisement(id))
	}

	devices, err := client.Discover(500 * time.Millisecond)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(devices) != 3 {
		t.Fatalf("Discover() returned %d devices, want 3", len(devices))
	}

	seen := make(map[string]bool)
	for _, d := range devices {
		if seen[d.ID] {
			t.Errorf("Discover() returned duplicate id %q", d.ID)
		}
		seen[d.ID] = true
	}
}

func TestDiscover_DuplicatesCollapse(t *testing.T) {
	client, respondTo := newTestClient(t)

	for i := 0; i < 9; i++ {
		sendDatagram(t, respondTo, advertisement("0x1234"))
	}

	devices, err := client.Discover(500 * time.Millisecond)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(devices) != 1 {
		t.Fatalf("Discover() returned %d devices, want 1", len(devices))
	}
	if devices[0].ID != "0x1234" {
		t.Errorf("device.ID = %q, want %q", devices[0].ID, "0x1234")
	}
}

func TestDiscover_MalformedDatagramsSkipped(t *testing.T) {
	client, respondTo := newTestClient(t)

	sendDatagram(t, respondTo, []byte("not an advertisement"))
	sendDatagram(t, respondTo, []byte("HTTP/1.1 200 OK\r\nid: 0xbad\r\n")) // fields missing
	sendDatagram(t, respondTo, advertisement("0x1"))

	devices, err := client.Discover(500 * time.Millisecond)
	if err != nil {
		t.Fatalf("Discover() error = %v, malformed datagrams must not fail the session", err)
	}

	if len(devices) != 1 {
		t.Fatalf("Discover() returned %d devices, want 1", len(devices))
	}
	if devices[0].ID != "0x1" {
		t.Errorf("device.ID = %q, want %q", devices[0].ID, "0x1")
	}
}

func TestDiscover_NoResponses(t *testing.T) {
	client, _ := newTestClient(t)

	start := time.Now()
	devices, err := client.Discover(200 * time.Millisecond)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(devices) != 0 {
		t.Errorf("Discover() returned %d devices, want 0", len(devices))
	}
	if elapsed := time.Since(start); elapsed < 200*time.Millisecond {
		t.Errorf("Discover() returned after %v, want the full timeout", elapsed)
	}
}

func TestDiscover_SendsExactlyOneQuery(t *testing.T) {
	groupIP := net.ParseIP(MulticastAddr)

	// listen on the group at an ephemeral port to observe what the
	// client actually sends
	observer, err := net.ListenMulticastUDP("udp4", nil, &net.UDPAddr{IP: groupIP, Port: 0})
	if err != nil {
		t.Fatalf("ListenMulticastUDP() error = %v", err)
	}
	defer observer.Close()
	groupPort := observer.LocalAddr().(*net.UDPAddr).Port

	client, err := NewClientWithAddr(&net.UDPAddr{IP: groupIP, Port: groupPort}, 0)
	if err != nil {
		t.Fatalf("NewClientWithAddr() error = %v", err)
	}
	defer client.Close()

	// feed the client responses so the query count is checked against
	// a session that actually heard traffic
	respondTo := &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: client.LocalAddr().(*net.UDPAddr).Port}
	sendDatagram(t, respondTo, advertisement("0x1"))
	sendDatagram(t, respondTo, advertisement("0x2"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = client.Discover(300 * time.Millisecond)
	}()

	buf := make([]byte, 2048)
	_ = observer.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := observer.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("reading outbound query: %v", err)
	}

	want := "M-SEARCH * HTTP/1.1\r\n" +
		"HOST: 239.255.255.250:1982\r\n" +
		"MAN: \"ssdp:discover\"\r\n" +
		"ST: wifi_bulb"
	if got := strings.TrimSpace(string(buf[:n])); got != strings.TrimSpace(want) {
		t.Errorf("outbound query = %q, want %q", got, want)
	}

	<-done

	// the session is over; any further datagram would be a second query
	_ = observer.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if n, _, err := observer.ReadFromUDP(buf); err == nil {
		t.Errorf("observed a second outbound datagram (%d bytes), want exactly one query", n)
	}
}
