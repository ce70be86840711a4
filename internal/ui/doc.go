// Package ui implements the interactive settings editor.
//
// The editor is a Bubble Tea program over a session.Session: every
// keypress goes through the session's validated mutations, and the
// preview pane re-renders only when the session fires its re-render
// signal. Closing the editor without saving discards in-memory edits,
// matching the session's visibility discipline.
package ui
