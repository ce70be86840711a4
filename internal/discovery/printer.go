package discovery

import (
	"fmt"
	"time"
)

// Printer represents a printer (or its print host) discovered on the
// local network.
type Printer struct {
	// ModelID is the canonical printer identifier derived from the
	// hostname (e.g. "elegoo_neptune_3_pro").
	ModelID string

	// Hostname is the mDNS hostname (e.g. "neptune3pro.local.")
	Hostname string

	// IP is the IPv4 address, or an IPv6 address if no IPv4 was announced
	IP string

	// Port is the advertised service port
	Port int

	// Metadata contains additional mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the printer was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the printer.
func (p *Printer) String() string {
	return fmt.Sprintf("%s (%s) at %s:%d", p.ModelID, p.Hostname, p.IP, p.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string
// if not found.
func (p *Printer) GetMetadata(key string) string {
	if p.Metadata == nil {
		return ""
	}
	return p.Metadata[key]
}
