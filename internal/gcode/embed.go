package gcode

import (
	"fmt"
	"strings"

	"github.com/jmolenaar/thumbcfg/internal/settings"
)

// Encoder produces the overlay block that gets prepended to a G-code
// document. Implementations own the device-specific encoding; the
// embedder only places the result.
type Encoder interface {
	// EncodeOverlay renders the overlay block for the given settings and
	// slice data. The returned string must consist of complete G-code
	// comment lines.
	EncodeOverlay(cfg *settings.Settings, data SliceData) (string, error)
}

// Embedder rewrites G-code documents: it strips any pre-existing
// thumbnail blocks and prepends a freshly encoded overlay.
type Embedder struct {
	encoder Encoder
}

// NewEmbedder creates an embedder using the given encoder.
func NewEmbedder(encoder Encoder) *Embedder {
	return &Embedder{encoder: encoder}
}

// Embed returns a copy of src with old thumbnail blocks removed and, when
// thumbnails are enabled, the encoded overlay prepended. When thumbnails
// are disabled the result is just the stripped document.
func (e *Embedder) Embed(src string, cfg *settings.Settings, data SliceData) (string, error) {
	body := StripThumbnails(src)

	if !cfg.ThumbnailsEnabled {
		return body, nil
	}

	prefix, err := e.encoder.EncodeOverlay(cfg, data)
	if err != nil {
		return "", fmt.Errorf("failed to encode overlay: %w", err)
	}
	if prefix != "" && !strings.HasSuffix(prefix, "\n") {
		prefix += "\n"
	}
	return prefix + body, nil
}

// StripThumbnails removes pre-existing thumbnail content from a G-code
// document: single-line ";gimage:"/";simage:" payloads (the legacy Neptune
// format) and "; thumbnail begin"/"; thumbnail end" blocks (the Klipper
// and KP3S formats).
func StripThumbnails(src string) string {
	lines := strings.Split(src, "\n")
	kept := make([]string, 0, len(lines))

	// Block lines are buffered, not dropped outright: a "begin" with no
	// matching "end" is malformed, and the remainder of the document must
	// survive it.
	var pending []string
	inBlock := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if inBlock {
			if strings.HasPrefix(trimmed, "; thumbnail end") {
				inBlock = false
				pending = nil
				continue
			}
			pending = append(pending, line)
			continue
		}

		if strings.HasPrefix(trimmed, "; thumbnail begin") {
			inBlock = true
			pending = append(pending, line)
			continue
		}
		if strings.HasPrefix(trimmed, ";gimage:") || strings.HasPrefix(trimmed, ";simage:") {
			continue
		}

		kept = append(kept, line)
	}

	if inBlock {
		kept = append(kept, pending...)
	}

	return strings.Join(kept, "\n")
}
