// Package preview turns the current settings and slice metadata into the
// overlay content that renderers display.
//
// Generate computes the per-corner text lines and the effective option
// set; it is recomputed from live settings state on every re-render
// signal and never stored. CommentEncoder is the default gcode.Encoder:
// it writes the overlay as a readable comment block. Broadcaster pushes
// the preview as JSON to WebSocket clients so external renderers can
// follow the editing session live.
package preview
