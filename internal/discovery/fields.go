package discovery

import (
	"fmt"
	"strconv"
	"strings"
)

// PowerState is the reported on/off state of a light.
type PowerState int

const (
	PowerOff PowerState = iota
	PowerOn
)

// String returns the wire representation of the power state.
func (p PowerState) String() string {
	if p == PowerOn {
		return "on"
	}
	return "off"
}

// parsePower parses the "power" field. Only the exact strings "on" and
// "off" are accepted; matching is case-sensitive.
func parsePower(s string) (PowerState, error) {
	switch s {
	case "on":
		return PowerOn, nil
	case "off":
		return PowerOff, nil
	default:
		return 0, fmt.Errorf("power state must be \"on\" or \"off\", got %q", s)
	}
}

// ColorMode is the active color subsystem of a light. Advertisements
// carry it as a numeric code; the mapping is fixed by the Yeelight
// protocol and closed:
//
//	1 -> ModeColor (RGB)
//	2 -> ModeColorTemperature
//	3 -> ModeHSV
//
// Any other code is invalid.
type ColorMode int

const (
	ModeColor            ColorMode = 1
	ModeColorTemperature ColorMode = 2
	ModeHSV              ColorMode = 3
)

// String returns a human-readable name for the color mode.
func (m ColorMode) String() string {
	switch m {
	case ModeColor:
		return "color"
	case ModeColorTemperature:
		return "color temperature"
	case ModeHSV:
		return "hsv"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// parseColorMode parses the numeric "color_mode" field.
func parseColorMode(s string) (ColorMode, error) {
	code, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("color mode must be numeric: %w", err)
	}

	switch mode := ColorMode(code); mode {
	case ModeColor, ModeColorTemperature, ModeHSV:
		return mode, nil
	default:
		return 0, fmt.Errorf("unknown color mode code %d", code)
	}
}

// RGB is a decoded color value. Lights advertise it as a single packed
// 24-bit decimal integer (red in the high byte).
type RGB struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// String returns the color in #RRGGBB form.
func (c RGB) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.Red, c.Green, c.Blue)
}

// Packed returns the color re-packed into its 24-bit wire form.
func (c RGB) Packed() uint32 {
	return uint32(c.Red)<<16 | uint32(c.Green)<<8 | uint32(c.Blue)
}

// parseRGB parses the packed decimal "rgb" field
// (e.g. "657930" = 0x0A0A0A -> 10,10,10).
func parseRGB(s string) (RGB, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("rgb must be a decimal integer: %w", err)
	}
	if v > 0xFFFFFF {
		return RGB{}, fmt.Errorf("rgb value %d exceeds 24 bits", v)
	}

	return RGB{
		Red:   uint8(v >> 16),
		Green: uint8(v >> 8),
		Blue:  uint8(v),
	}, nil
}

// parseSupport tokenizes the whitespace-separated "support" capability
// list. An empty value is valid and yields an empty set.
func parseSupport(s string) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(s) {
		set[token] = struct{}{}
	}
	return set, nil
}

func parseUint8(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

func parseUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

// parseString accepts any value; strings have no further validation.
func parseString(s string) (string, error) {
	return s, nil
}
