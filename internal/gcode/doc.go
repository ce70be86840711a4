// Package gcode extracts slice metadata from G-code files and embeds the
// thumbnail overlay block into them.
//
// Slicers write print metadata as comment parameters in the file header
// (";TIME:2432", ";MAXZ:33", ...). ExtractParams reads the header with
// the known flavor mappings and ParseSliceData turns the raw values into
// a typed SliceData record. The overlay content itself is produced by an
// Encoder implementation; the device-specific image encoding lives behind
// that port and is not this package's concern.
package gcode
