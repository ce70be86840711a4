package gcode

import (
	"errors"
	"strings"
	"testing"

	"github.com/jmolenaar/thumbcfg/internal/settings"
)

// stubEncoder returns a fixed overlay block.
type stubEncoder struct {
	overlay string
	err     error
}

func (e stubEncoder) EncodeOverlay(cfg *settings.Settings, data SliceData) (string, error) {
	return e.overlay, e.err
}

func enabledSettings() *settings.Settings {
	return &settings.Settings{ThumbnailsEnabled: true}
}

func TestStripThumbnailsLegacyLines(t *testing.T) {
	src := ";gimage:AAAA\n;simage:BBBB\nG28\nG1 X10\n"
	got := StripThumbnails(src)
	want := "G28\nG1 X10\n"
	if got != want {
		t.Errorf("StripThumbnails() = %q, want %q", got, want)
	}
}

func TestStripThumbnailsBlock(t *testing.T) {
	src := strings.Join([]string{
		"; thumbnail begin 200x200 5000",
		"; iVBORw0KGgo=",
		"; thumbnail end",
		"G28",
		"",
	}, "\n")

	got := StripThumbnails(src)
	want := "G28\n"
	if got != want {
		t.Errorf("StripThumbnails() = %q, want %q", got, want)
	}
}

func TestStripThumbnailsUnterminatedBlockKeepsTail(t *testing.T) {
	src := strings.Join([]string{
		";TIME:2432",
		"; thumbnail begin 200x200 5000",
		"; iVBORw0KGgo=",
		"G28",
		"G1 X10",
		"",
	}, "\n")

	// No "; thumbnail end" ever arrives: the document must survive intact
	// rather than losing everything after the begin marker.
	if got := StripThumbnails(src); got != src {
		t.Errorf("StripThumbnails() = %q, want input unchanged", got)
	}
}

func TestStripThumbnailsMultipleBlocks(t *testing.T) {
	src := strings.Join([]string{
		"; thumbnail begin 32x32 100",
		"; AAAA",
		"; thumbnail end",
		"G28",
		"; thumbnail begin 200x200 5000",
		"; BBBB",
		"; thumbnail end",
		"G1 X10",
		"",
	}, "\n")

	got := StripThumbnails(src)
	want := "G28\nG1 X10\n"
	if got != want {
		t.Errorf("StripThumbnails() = %q, want %q", got, want)
	}
}

func TestStripThumbnailsKeepsOrdinaryComments(t *testing.T) {
	src := ";TIME:2432\nG28\n; some note\n"
	if got := StripThumbnails(src); got != src {
		t.Errorf("StripThumbnails() = %q, want input unchanged", got)
	}
}

func TestEmbedPrependsOverlay(t *testing.T) {
	embedder := NewEmbedder(stubEncoder{overlay: "; overlay line\n"})
	src := ";gimage:OLD\nG28\n"

	got, err := embedder.Embed(src, enabledSettings(), SliceData{})
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	want := "; overlay line\nG28\n"
	if got != want {
		t.Errorf("Embed() = %q, want %q", got, want)
	}
}

func TestEmbedAddsMissingNewline(t *testing.T) {
	embedder := NewEmbedder(stubEncoder{overlay: "; overlay line"})

	got, err := embedder.Embed("G28\n", enabledSettings(), SliceData{})
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if !strings.HasPrefix(got, "; overlay line\nG28") {
		t.Errorf("Embed() = %q, want overlay terminated by a newline", got)
	}
}

func TestEmbedDisabledOnlyStrips(t *testing.T) {
	embedder := NewEmbedder(stubEncoder{overlay: "; overlay line\n"})
	cfg := &settings.Settings{ThumbnailsEnabled: false}

	got, err := embedder.Embed(";simage:OLD\nG28\n", cfg, SliceData{})
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	want := "G28\n"
	if got != want {
		t.Errorf("Embed() = %q, want %q (stripped, no overlay)", got, want)
	}
}

func TestEmbedSurfacesEncoderError(t *testing.T) {
	embedder := NewEmbedder(stubEncoder{err: errors.New("encoding failed")})

	_, err := embedder.Embed("G28\n", enabledSettings(), SliceData{})
	if err == nil {
		t.Fatal("Embed() = nil, want error")
	}
	if !strings.Contains(err.Error(), "encoding failed") {
		t.Errorf("Embed() error = %v, want wrapped encoder error", err)
	}
}
