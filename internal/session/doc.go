// Package session implements the editing session between a view and the
// settings manager.
//
// Every settings field gets a typed read accessor and a typed mutation
// method on Session; there is no string-keyed or reflective field lookup.
// Mutations follow one rule set: write the new value, and fire the
// re-render signal if and only if the value actually changed. The
// statistics toggle is the one exception because it has no visual effect.
//
// The re-render signal is the Renderer port: a fire-and-forget call into
// whatever regenerates the preview (the TUI preview pane, the WebSocket
// broadcaster, or both). The session also defines the two transactions of
// an edit surface: Commit persists the current state, and a visibility
// change to hidden discards all unsaved edits.
//
// Sessions are single-threaded by construction: all mutations arrive
// synchronously from the editing surface's event dispatch.
package session
