package preview

import (
	"fmt"
	"strings"

	"github.com/jmolenaar/thumbcfg/internal/gcode"
	"github.com/jmolenaar/thumbcfg/internal/settings"
)

// CommentEncoder is the default gcode.Encoder. It writes the overlay as a
// plain comment block that print hosts and humans can read. Device
// firmwares that need a binary image format get their own Encoder
// implementation; this one exists so the embedding pipeline works end to
// end without one.
type CommentEncoder struct{}

// EncodeOverlay renders the overlay comment block.
func (CommentEncoder) EncodeOverlay(cfg *settings.Settings, data gcode.SliceData) (string, error) {
	p := Generate(cfg, data)

	var b strings.Builder
	fmt.Fprintf(&b, "; thumbcfg overlay begin %s\n", p.PrinterModel)
	for i, corner := range p.Corners {
		if corner == "" {
			corner = "-"
		}
		fmt.Fprintf(&b, "; corner %d: %s\n", i+1, corner)
	}
	fmt.Fprintf(&b, "; options: %s\n", strings.Join(p.Options, ","))
	b.WriteString("; thumbcfg overlay end\n")
	return b.String(), nil
}
