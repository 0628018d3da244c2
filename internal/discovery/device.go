package discovery

import (
	"fmt"
	"net"
	"sort"

	"github.com/muurk/yeelan/internal/control"
)

// Device represents one discovered Yeelight on the network. It is a
// snapshot of the light's advertised state at discovery time and is not
// mutated after DecodeDevice returns it.
//
// A device's identity is its ID alone: the firmware-assigned ID is
// stable across reboots and DHCP lease changes while the network
// address is not. Two Device values with equal IDs describe the same
// light even when every other field differs.
type Device struct {
	// Location is the TCP endpoint for the control protocol
	Location *net.TCPAddr

	// ID is the firmware-assigned stable identity (e.g. "0x000000000015243f")
	ID string

	// Model is the device model name (e.g. "color", "mono", "stripe")
	Model string

	// FirmwareVersion is the advertised firmware revision
	FirmwareVersion uint8

	// Support is the set of control commands the light accepts
	Support map[string]struct{}

	// Power is the current on/off state
	Power PowerState

	// Brightness is the current brightness (1-100)
	Brightness uint8

	// ColorMode selects which of the color fields below is active
	ColorMode ColorMode

	// ColorTemp is the color temperature in Kelvin; meaningful only
	// when ColorMode is ModeColorTemperature
	ColorTemp uint16

	// RGB is the current color; meaningful only when ColorMode is ModeColor
	RGB RGB

	// Hue and Sat are the current HSV values; meaningful only when
	// ColorMode is ModeHSV
	Hue uint16
	Sat uint8

	// Name is the user-assigned display name (may be empty)
	Name string
}

// Key returns the dedupe and equality key for the device.
func (d *Device) Key() string {
	return d.ID
}

// Equal reports whether two devices have the same identity. Only the
// IDs are compared.
func (d *Device) Equal(other *Device) bool {
	return other != nil && d.ID == other.ID
}

// Supports reports whether the light advertises the named control command.
func (d *Device) Supports(command string) bool {
	_, ok := d.Support[command]
	return ok
}

// SupportedCommands returns the capability set as a sorted slice for display.
func (d *Device) SupportedCommands() []string {
	commands := make([]string, 0, len(d.Support))
	for command := range d.Support {
		commands = append(commands, command)
	}
	sort.Strings(commands)
	return commands
}

// DisplayName returns the user-assigned name, falling back to the ID
// for lights that were never named.
func (d *Device) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// String returns a human-readable string representation of the device.
func (d *Device) String() string {
	return fmt.Sprintf("Yeelight %s (%s) at %s", d.DisplayName(), d.Model, d.Location)
}

// Connect opens the control stream to the light. Discovery never
// connects on its own; callers open the stream lazily when they first
// need to issue a command, and own the returned handle.
func (d *Device) Connect() (*control.Conn, error) {
	return control.Dial(d.Location)
}
