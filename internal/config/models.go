package config

import "time"

// Registry represents the entire user configuration file.
// It stores user-defined metadata for known lights and application
// preferences. Live light state is never persisted; only what the user
// told us and where a light was last seen.
type Registry struct {
	Version     int               `yaml:"version"`
	Lights      map[string]*Light `yaml:"lights,omitempty"` // Keyed by device ID
	Preferences *Preferences      `yaml:"preferences,omitempty"`
}

// Light represents user-defined metadata for a single light.
// It is keyed by the light's firmware-assigned device ID in the
// Registry; the network address is merely a hint, since it changes
// with DHCP leases.
type Light struct {
	Nickname string    `yaml:"nickname,omitempty"`  // User-friendly name
	Model    string    `yaml:"model,omitempty"`     // Model name from the last advertisement
	LastAddr string    `yaml:"last_addr,omitempty"` // Last known control endpoint (host:port)
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last discovery time
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	ScanTimeout int `yaml:"scan_timeout"` // Discovery timeout in seconds
	LocalPort   int `yaml:"local_port"`   // Local UDP port for the discovery socket
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Lights:  make(map[string]*Light),
		Preferences: &Preferences{
			ScanTimeout: 3,
			LocalPort:   7821,
		},
	}
}

// GetLight retrieves light metadata by device ID.
// Returns nil if the light is not in the registry.
func (r *Registry) GetLight(id string) *Light {
	return r.Lights[id]
}

// EnsureLight ensures an entry exists for the device ID and returns it.
func (r *Registry) EnsureLight(id string) *Light {
	if r.Lights == nil {
		r.Lights = make(map[string]*Light)
	}

	if light, exists := r.Lights[id]; exists {
		return light
	}

	light := &Light{}
	r.Lights[id] = light
	return light
}

// UpdateLightSeen records where and when a light was last discovered.
func (r *Registry) UpdateLightSeen(id, model, addr string) {
	light := r.EnsureLight(id)
	light.Model = model
	light.LastAddr = addr
	light.LastSeen = time.Now()
}

// SetLightNickname sets a user-friendly nickname for a light.
func (r *Registry) SetLightNickname(id, nickname string) {
	light := r.EnsureLight(id)
	light.Nickname = nickname
}
