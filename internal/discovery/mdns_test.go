package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestModelIDFromHost(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"neptune3pro.local.", "elegoo_neptune_3_pro"},
		{"Neptune3Pro.local", "elegoo_neptune_3_pro"},
		{"elegoo-neptune-3-plus.local.", "elegoo_neptune_3_plus"},
		{"elegoo_neptune_3_max.local.", "elegoo_neptune_3_max"},
		{"neptune2.local.", "elegoo_neptune_2"},
		{"neptune2s.local.", "elegoo_neptune_2_s"},
		{"ELEGOO-NEPTUNE-2S", "elegoo_neptune_2_s"},
		{"neptune4pro.local.", "elegoo_neptune_4_pro"}, // unknown to the catalog, still normalized
		{"voron24.local.", ""},
		{"prusa-mk4.local.", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ModelIDFromHost(tt.host); got != tt.want {
			t.Errorf("ModelIDFromHost(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}

func TestCollectPrintersDrainsBeforeDelivering(t *testing.T) {
	entries := make(chan *zeroconf.ServiceEntry)
	results := collectPrinters(entries)

	go func() {
		entries <- &zeroconf.ServiceEntry{
			ServiceRecord: zeroconf.ServiceRecord{Instance: "neptune3pro"},
			HostName:      "neptune3pro.local.",
			Port:          80,
			AddrIPv4:      []net.IP{net.ParseIP("192.168.1.42")},
			Text:          []string{"fw=1.2.3"},
		}
		entries <- &zeroconf.ServiceEntry{
			ServiceRecord: zeroconf.ServiceRecord{Instance: "octopi"},
			HostName:      "octopi.local.",
			Port:          80,
		}
		close(entries)
	}()

	// The result arrives only after the entry channel closes, so every
	// entry sent before the close is accounted for.
	select {
	case printers := <-results:
		if len(printers) != 1 {
			t.Fatalf("collected %d printers, want 1", len(printers))
		}
		p := printers[0]
		if p.ModelID != "elegoo_neptune_3_pro" {
			t.Errorf("ModelID = %q, want %q", p.ModelID, "elegoo_neptune_3_pro")
		}
		if p.IP != "192.168.1.42" {
			t.Errorf("IP = %q, want %q", p.IP, "192.168.1.42")
		}
		if got := p.GetMetadata("fw"); got != "1.2.3" {
			t.Errorf("GetMetadata(fw) = %q, want %q", got, "1.2.3")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("collectPrinters did not deliver after the entry channel closed")
	}
}

func TestParseServiceEntryIgnoresNonPrinters(t *testing.T) {
	// parseServiceEntry consumes zeroconf entries; the mapping logic above
	// is the interesting part, so here we only pin the nil result for a
	// hostname that matches nothing.
	if got := ModelIDFromHost("octopi.local."); got != "" {
		t.Errorf("ModelIDFromHost(octopi) = %q, want empty", got)
	}
}
