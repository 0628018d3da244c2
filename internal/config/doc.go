// Package config provides user configuration management for yeelan.
//
// This package manages a YAML-based configuration file that stores
// user-defined metadata for known lights (nicknames, last-seen hints)
// and application preferences. The configuration follows OS-specific
// conventions for storage location.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/yeelan/config.yaml or $HOME/.config/yeelan/config.yaml
//   - macOS: $HOME/.config/yeelan/config.yaml
//   - Windows: %LOCALAPPDATA%\yeelan\config.yaml
//
// # What Is (and Is Not) Stored
//
// The registry is keyed by firmware device ID, the only stable identity
// a light has. Addresses are recorded purely as hints for display;
// discovery remains authoritative because DHCP reassigns addresses.
// Live light state (power, brightness, color) is never persisted.
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	registry.SetLightNickname("0x000000000015243f", "Desk Lamp")
//	registry.UpdateLightSeen("0x000000000015243f", "color", "192.168.0.42:55443")
//
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// Saves are atomic (write to temp file, rename) to prevent corruption.
package config
