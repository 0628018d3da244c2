package discovery

import (
	"net"
	"strconv"
	"strings"
)

// locationScheme prefixes the Location header value when a light
// advertises its control endpoint explicitly.
const locationScheme = "yeelight://"

// header extracts the named field from an advertisement header map and
// runs it through parse. A missing name or a failed parse is reported
// as a *FieldError naming the field, so every field of the decoder
// shares one missing/invalid code path.
func header[T any](headers map[string]string, name string, parse func(string) (T, error)) (T, error) {
	raw, ok := headers[name]
	if !ok {
		var zero T
		return zero, &FieldError{Field: name, Missing: true}
	}

	value, err := parse(raw)
	if err != nil {
		var zero T
		return zero, &FieldError{Field: name, Raw: raw, Err: err}
	}
	return value, nil
}

// DecodeDevice validates an advertisement's header map and builds the
// Device it describes. The source address of the datagram supplies the
// control endpoint unless the light advertised one itself via the
// Location header.
//
// Decoding is fail-fast: the first missing or invalid field aborts the
// whole decode with a *FieldError and no Device is produced. A Device
// returned by DecodeDevice always has every field populated.
func DecodeDevice(headers map[string]string, source *net.UDPAddr) (*Device, error) {
	id, err := header(headers, "id", parseString)
	if err != nil {
		return nil, err
	}
	model, err := header(headers, "model", parseString)
	if err != nil {
		return nil, err
	}
	fwVer, err := header(headers, "fw_ver", parseUint8)
	if err != nil {
		return nil, err
	}
	power, err := header(headers, "power", parsePower)
	if err != nil {
		return nil, err
	}
	support, err := header(headers, "support", parseSupport)
	if err != nil {
		return nil, err
	}
	bright, err := header(headers, "bright", parseUint8)
	if err != nil {
		return nil, err
	}
	colorMode, err := header(headers, "color_mode", parseColorMode)
	if err != nil {
		return nil, err
	}
	ct, err := header(headers, "ct", parseUint16)
	if err != nil {
		return nil, err
	}
	rgb, err := header(headers, "rgb", parseRGB)
	if err != nil {
		return nil, err
	}
	hue, err := header(headers, "hue", parseUint16)
	if err != nil {
		return nil, err
	}
	sat, err := header(headers, "sat", parseUint8)
	if err != nil {
		return nil, err
	}
	name, err := header(headers, "name", parseString)
	if err != nil {
		return nil, err
	}

	return &Device{
		Location:        deviceLocation(headers, source),
		ID:              id,
		Model:           model,
		FirmwareVersion: fwVer,
		Support:         support,
		Power:           power,
		Brightness:      bright,
		ColorMode:       colorMode,
		ColorTemp:       ct,
		RGB:             rgb,
		Hue:             hue,
		Sat:             sat,
		Name:            name,
	}, nil
}

// deviceLocation resolves the control endpoint for a decoded device.
// The UDP source address is always available; a well-formed Location
// header ("yeelight://host:port") takes precedence over it. A malformed
// Location header is ignored rather than failing the decode, since the
// source address already gives a usable endpoint.
func deviceLocation(headers map[string]string, source *net.UDPAddr) *net.TCPAddr {
	if raw, ok := headers["Location"]; ok {
		if addr, ok := parseLocation(raw); ok {
			return addr
		}
	}
	return &net.TCPAddr{IP: source.IP, Port: source.Port}
}

// parseLocation parses a "yeelight://host:port" Location value.
func parseLocation(raw string) (*net.TCPAddr, bool) {
	rest, ok := strings.CutPrefix(raw, locationScheme)
	if !ok {
		return nil, false
	}

	host, portStr, err := net.SplitHostPort(rest)
	if err != nil {
		return nil, false
	}

	ip := net.ParseIP(host)
	if ip == nil || ip.To4() == nil {
		return nil, false
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return nil, false
	}

	return &net.TCPAddr{IP: ip, Port: port}, true
}
