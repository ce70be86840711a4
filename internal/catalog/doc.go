// Package catalog defines the static option catalogs for the thumbnail
// overlay configuration.
//
// Two ordered catalogs are provided:
//   - Content options: the categories of slice information that can be
//     shown in a corner of the overlay (time estimate, filament usage,
//     model height, ...). Index 0 is reserved and means "no content".
//   - Printer models: the supported Elegoo Neptune printer families. The
//     selected model determines the overlay embedding format.
//
// Catalog order is declaration order and is stable: persisted settings
// reference entries by index, so entries must never be reordered or
// removed. New entries are appended.
package catalog
