package discovery

// collector accumulates the devices decoded during one discovery
// session, keyed by device identity. One collector per session; it is
// not shared across goroutines.
type collector struct {
	byID map[string]*Device
}

func newCollector() *collector {
	return &collector{byID: make(map[string]*Device)}
}

// offer records the device unless one with the same identity was
// already seen this session ("first response wins"). It reports whether
// the device was kept.
func (c *collector) offer(d *Device) bool {
	if _, seen := c.byID[d.Key()]; seen {
		return false
	}
	c.byID[d.Key()] = d
	return true
}

// devices returns the accumulated devices, unordered, one per identity.
func (c *collector) devices() []*Device {
	out := make([]*Device, 0, len(c.byID))
	for _, d := range c.byID {
		out = append(out, d)
	}
	return out
}
