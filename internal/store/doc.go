// Package store provides the file-backed durable store for thumbcfg.
//
// FileStore implements the settings.Store port on top of a YAML
// preferences file in the OS-appropriate configuration directory:
//   - Linux: $XDG_CONFIG_HOME/thumbcfg or $HOME/.config/thumbcfg
//   - macOS: $HOME/.config/thumbcfg (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\thumbcfg
//
// The settings blob is stored as an opaque string value; its schema is
// owned by the settings package. The installation id is a random UUID
// generated on first request and persisted immediately, so every later
// request returns the same value. Writes are atomic (temp file + rename)
// to prevent corruption on crash.
//
// The active printer signal is resolved in order: the active_printer
// preference, the THUMBCFG_PRINTER environment variable, then an optional
// detector hook (typically mDNS discovery). An empty result means the
// printer could not be determined.
package store
