package main

import "testing"

// The editor must never open a preview feed unless --listen was given:
// each command owns its own --listen flag instance, so the serve
// command's non-empty default cannot leak into the editor's.
func TestListenFlagDefaultsAreIndependent(t *testing.T) {
	rootFlag := rootCmd.Flags().Lookup("listen")
	if rootFlag == nil {
		t.Fatal("root command has no --listen flag")
	}
	if got := rootFlag.Value.String(); got != "" {
		t.Errorf("root --listen after init = %q, want empty", got)
	}

	editFlag := editCmd.Flags().Lookup("listen")
	if editFlag == nil {
		t.Fatal("edit command has no --listen flag")
	}
	if got := editFlag.Value.String(); got != "" {
		t.Errorf("edit --listen after init = %q, want empty", got)
	}

	serveFlag := serveCmd.Flags().Lookup("listen")
	if serveFlag == nil {
		t.Fatal("serve command has no --listen flag")
	}
	if got := serveFlag.Value.String(); got != "127.0.0.1:8845" {
		t.Errorf("serve --listen default = %q, want %q", got, "127.0.0.1:8845")
	}
}
