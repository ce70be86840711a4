package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/jmolenaar/thumbcfg/internal/logging"
)

const (
	// ServiceType is the mDNS service type browsed for print hosts.
	// Networked Neptune printers advertise plain HTTP services.
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for printer discovery
	DefaultScanTimeout = 5 * time.Second
)

// hostPattern matches printer hostnames carrying a Neptune family name,
// e.g. "neptune3pro.local.", "elegoo-neptune-2s.local."
var hostPattern = regexp.MustCompile(`(?i)(?:elegoo[-_]?)?neptune[-_]?(\d)[-_]?(pro|plus|max|s)?`)

// Scanner handles mDNS printer discovery
type Scanner struct {
	// Timeout is the maximum time to wait for discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForPrinters discovers printers on the local network.
func (s *Scanner) ScanForPrinters() ([]*Printer, error) {
	return s.ScanForPrintersWithContext(context.Background())
}

// ScanForPrintersWithContext discovers printers with a custom context.
func (s *Scanner) ScanForPrintersWithContext(ctx context.Context) ([]*Printer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	results := collectPrinters(entries)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for context to complete (timeout or cancellation), then for the
	// collector to drain the entry channel, which the resolver closes.
	<-ctx.Done()
	return <-results, nil
}

// collectPrinters consumes service entries until the channel closes and
// then delivers the accumulated printers. Handing the slice over the
// channel keeps collection and the caller from touching it concurrently.
func collectPrinters(entries <-chan *zeroconf.ServiceEntry) <-chan []*Printer {
	results := make(chan []*Printer, 1)
	go func() {
		printers := make([]*Printer, 0)
		for entry := range entries {
			printer := parseServiceEntry(entry)
			if printer != nil {
				printers = append(printers, printer)
			}
		}
		results <- printers
	}()
	return results
}

// parseServiceEntry converts a zeroconf service entry to a Printer.
// Returns nil if the entry does not look like a Neptune printer.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Printer {
	hostname := entry.HostName
	if hostname == "" {
		hostname = entry.Instance
	}

	modelID := ModelIDFromHost(hostname)
	if modelID == "" {
		modelID = ModelIDFromHost(entry.Instance)
	}
	if modelID == "" {
		return nil
	}

	// Prefer IPv4
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Printer{
		ModelID:      modelID,
		Hostname:     hostname,
		IP:           ip,
		Port:         entry.Port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// ModelIDFromHost normalizes a hostname or instance name to a canonical
// printer identifier (e.g. "neptune3pro.local." -> "elegoo_neptune_3_pro").
// Returns an empty string if the name does not carry a Neptune family name.
func ModelIDFromHost(host string) string {
	matches := hostPattern.FindStringSubmatch(host)
	if matches == nil {
		return ""
	}

	id := "elegoo_neptune_" + matches[1]
	if matches[2] != "" {
		id += "_" + strings.ToLower(matches[2])
	}
	return id
}

// ScanForPrinters is a convenience function to scan with a custom timeout.
func ScanForPrinters(timeout time.Duration) ([]*Printer, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.ScanForPrinters()
}

// DetectPrinter scans the network and returns the identifier of the first
// printer found, or an empty string. It is shaped to be used as the file
// store's detector hook, so it swallows scan errors after logging them.
func DetectPrinter(timeout time.Duration) string {
	printers, err := ScanForPrinters(timeout)
	if err != nil {
		logging.Warn("Printer discovery failed",
			zap.Error(err),
		)
		return ""
	}
	if len(printers) == 0 {
		return ""
	}

	logging.Debug("Detected printer",
		zap.String("model_id", printers[0].ModelID),
		zap.String("hostname", printers[0].Hostname),
	)
	return printers[0].ModelID
}
