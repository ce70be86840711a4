// Package settings implements the thumbnail overlay configuration entity
// and its persistence contract.
//
// The package owns three things:
//
//   - Settings: the single mutable configuration record. It carries the
//     five persisted fields (thumbnails enabled, printer model index, the
//     four corner option indices, statistics enabled, use-current-model)
//     plus two construction-time values that are never persisted with
//     them: the immutable installation id and the read-only tool
//     descriptor.
//
//   - Store: the durable store port. The host environment provides an
//     opaque blob read/write pair, a one-shot installation id generator
//     and a best-effort active printer signal. See the store package for
//     the file-backed implementation.
//
//   - Manager: the only component allowed to create or reload the
//     Settings instance. It applies first-run defaults (including the
//     data-driven printer detection table), recovers from malformed
//     blobs by falling back to defaults, and defines the save/discard
//     transactions.
//
// A malformed persisted blob is never fatal: it is logged and treated as
// absent. Save failures are returned to the caller because silently
// losing edits would go unnoticed.
package settings
