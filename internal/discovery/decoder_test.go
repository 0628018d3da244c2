package discovery

import (
	"errors"
	"net"
	"testing"
)

// fixtureHeaders returns a complete, well-formed advertisement header
// map. Tests mutate their own copy.
func fixtureHeaders() map[string]string {
	return map[string]string{
		"id":         "0x1234",
		"model":      "floor",
		"fw_ver":     "40",
		"power":      "on",
		"support":    "get_power set_power get_rgb set_rgb",
		"bright":     "34",
		"color_mode": "2",
		"ct":         "0",
		"rgb":        "657930", // 0x0A0A0A
		"hue":        "314",
		"sat":        "12",
		"name":       "room_light",
	}
}

func fixtureSource() *net.UDPAddr {
	return &net.UDPAddr{IP: net.IPv4(192, 168, 0, 42), Port: 1234}
}

func TestDecodeDevice_AllFields(t *testing.T) {
	device, err := DecodeDevice(fixtureHeaders(), fixtureSource())
	if err != nil {
		t.Fatalf("DecodeDevice() error = %v", err)
	}

	if device.ID != "0x1234" {
		t.Errorf("device.ID = %q, want %q", device.ID, "0x1234")
	}
	if device.Model != "floor" {
		t.Errorf("device.Model = %q, want %q", device.Model, "floor")
	}
	if device.FirmwareVersion != 40 {
		t.Errorf("device.FirmwareVersion = %d, want 40", device.FirmwareVersion)
	}
	if device.Power != PowerOn {
		t.Errorf("device.Power = %v, want PowerOn", device.Power)
	}
	if device.Brightness != 34 {
		t.Errorf("device.Brightness = %d, want 34", device.Brightness)
	}
	if device.ColorMode != ModeColorTemperature {
		t.Errorf("device.ColorMode = %v, want ModeColorTemperature", device.ColorMode)
	}
	if device.ColorTemp != 0 {
		t.Errorf("device.ColorTemp = %d, want 0", device.ColorTemp)
	}
	if (device.RGB != RGB{Red: 10, Green: 10, Blue: 10}) {
		t.Errorf("device.RGB = %v, want {10 10 10}", device.RGB)
	}
	if device.Hue != 314 {
		t.Errorf("device.Hue = %d, want 314", device.Hue)
	}
	if device.Sat != 12 {
		t.Errorf("device.Sat = %d, want 12", device.Sat)
	}
	if device.Name != "room_light" {
		t.Errorf("device.Name = %q, want %q", device.Name, "room_light")
	}

	wantSupport := []string{"get_power", "get_rgb", "set_power", "set_rgb"}
	if len(device.Support) != len(wantSupport) {
		t.Errorf("device.Support has %d commands, want %d", len(device.Support), len(wantSupport))
	}
	for _, command := range wantSupport {
		if !device.Supports(command) {
			t.Errorf("device.Supports(%q) = false, want true", command)
		}
	}
}

func TestDecodeDevice_LocationFromSource(t *testing.T) {
	source := fixtureSource()

	device, err := DecodeDevice(fixtureHeaders(), source)
	if err != nil {
		t.Fatalf("DecodeDevice() error = %v", err)
	}

	if !device.Location.IP.Equal(source.IP) || device.Location.Port != source.Port {
		t.Errorf("device.Location = %v, want %v:%d", device.Location, source.IP, source.Port)
	}
}

func TestDecodeDevice_LocationHeaderWins(t *testing.T) {
	headers := fixtureHeaders()
	headers["Location"] = "yeelight://10.0.0.5:55443"

	device, err := DecodeDevice(headers, fixtureSource())
	if err != nil {
		t.Fatalf("DecodeDevice() error = %v", err)
	}

	if device.Location.String() != "10.0.0.5:55443" {
		t.Errorf("device.Location = %v, want 10.0.0.5:55443", device.Location)
	}
}

func TestDecodeDevice_MalformedLocationHeaderIgnored(t *testing.T) {
	tests := []string{
		"10.0.0.5:55443",          // missing scheme
		"yeelight://10.0.0.5",     // missing port
		"yeelight://nohost:55443", // not an IP
		"yeelight://fe80::1:1982", // not IPv4
		"yeelight://10.0.0.5:0",   // port out of range
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			headers := fixtureHeaders()
			headers["Location"] = raw
			source := fixtureSource()

			device, err := DecodeDevice(headers, source)
			if err != nil {
				t.Fatalf("DecodeDevice() error = %v", err)
			}

			if !device.Location.IP.Equal(source.IP) || device.Location.Port != source.Port {
				t.Errorf("device.Location = %v, want source address", device.Location)
			}
		})
	}
}

func TestDecodeDevice_MissingField(t *testing.T) {
	fields := []string{
		"id", "model", "fw_ver", "power", "support", "bright",
		"color_mode", "ct", "rgb", "hue", "sat", "name",
	}

	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			headers := fixtureHeaders()
			delete(headers, field)

			device, err := DecodeDevice(headers, fixtureSource())
			if device != nil {
				t.Fatalf("DecodeDevice() = %v, want nil device", device)
			}

			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("DecodeDevice() error = %v, want *FieldError", err)
			}
			if fieldErr.Field != field {
				t.Errorf("fieldErr.Field = %q, want %q", fieldErr.Field, field)
			}
			if !fieldErr.Missing {
				t.Errorf("fieldErr.Missing = false, want true")
			}
		})
	}
}

func TestDecodeDevice_InvalidField(t *testing.T) {
	tests := []struct {
		field string
		raw   string
	}{
		{"fw_ver", "256"},
		{"fw_ver", "-1"},
		{"fw_ver", "abc"},
		{"power", "On"},
		{"power", "ON"},
		{"power", "true"},
		{"bright", "256"},
		{"color_mode", "0"},
		{"color_mode", "4"},
		{"color_mode", "rgb"},
		{"ct", "65536"},
		{"rgb", "16777216"},
		{"rgb", "-1"},
		{"rgb", "0xA0A0A"},
		{"hue", "65536"},
		{"sat", "256"},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.raw, func(t *testing.T) {
			headers := fixtureHeaders()
			headers[tt.field] = tt.raw

			device, err := DecodeDevice(headers, fixtureSource())
			if device != nil {
				t.Fatalf("DecodeDevice() = %v, want nil device", device)
			}

			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("DecodeDevice() error = %v, want *FieldError", err)
			}
			if fieldErr.Field != tt.field {
				t.Errorf("fieldErr.Field = %q, want %q", fieldErr.Field, tt.field)
			}
			if fieldErr.Missing {
				t.Errorf("fieldErr.Missing = true, want false")
			}
			if fieldErr.Raw != tt.raw {
				t.Errorf("fieldErr.Raw = %q, want %q", fieldErr.Raw, tt.raw)
			}
		})
	}
}

func TestDecodeDevice_EmptySupport(t *testing.T) {
	headers := fixtureHeaders()
	headers["support"] = ""

	device, err := DecodeDevice(headers, fixtureSource())
	if err != nil {
		t.Fatalf("DecodeDevice() error = %v", err)
	}

	if len(device.Support) != 0 {
		t.Errorf("device.Support = %v, want empty set", device.Support)
	}
}

func TestDecodeDevice_SupportTokenization(t *testing.T) {
	headers := fixtureHeaders()
	headers["support"] = "a b c"

	device, err := DecodeDevice(headers, fixtureSource())
	if err != nil {
		t.Fatalf("DecodeDevice() error = %v", err)
	}

	if len(device.Support) != 3 {
		t.Errorf("device.Support has %d commands, want 3", len(device.Support))
	}
	for _, command := range []string{"a", "b", "c"} {
		if !device.Supports(command) {
			t.Errorf("device.Supports(%q) = false, want true", command)
		}
	}
}

func TestDecodeDevice_Idempotent(t *testing.T) {
	first, err := DecodeDevice(fixtureHeaders(), fixtureSource())
	if err != nil {
		t.Fatalf("DecodeDevice() error = %v", err)
	}
	second, err := DecodeDevice(fixtureHeaders(), fixtureSource())
	if err != nil {
		t.Fatalf("DecodeDevice() error = %v", err)
	}

	if !first.Equal(second) {
		t.Errorf("independently decoded devices with the same id do not compare equal")
	}
}
