package settings

import (
	"encoding/json"
	"fmt"

	"github.com/jmolenaar/thumbcfg/internal/catalog"
)

// NumCorners is the number of overlay corners. Each corner holds one
// content option index; index 0 means "no content".
const NumCorners = 4

// OptionThumbnail is the synthetic option identifier prepended to the
// effective option set when thumbnails are enabled.
const OptionThumbnail = "includeThumbnail"

// Descriptor is the read-only tool metadata attached to the settings at
// construction. It is never persisted with the settings blob.
type Descriptor struct {
	Name    string
	Version string
}

// Settings is the thumbnail overlay configuration record. There is one
// live instance per process, owned by the Manager.
type Settings struct {
	// ThumbnailsEnabled controls whether the overlay is embedded at all.
	ThumbnailsEnabled bool

	// PrinterModel is an index into the printer model catalog.
	PrinterModel int

	// CornerOptions holds one content option index per overlay corner.
	CornerOptions [NumCorners]int

	// StatisticsEnabled controls anonymous usage reporting. It has no
	// visual effect on the overlay.
	StatisticsEnabled bool

	// UseCurrentModel renders the preview from the currently loaded model
	// instead of the built-in sample.
	UseCurrentModel bool

	statisticsID string
	descriptor   Descriptor
}

// newSettings creates a Settings instance with the construction-time
// values that survive every load cycle.
func newSettings(statisticsID string, desc Descriptor) *Settings {
	return &Settings{
		statisticsID: statisticsID,
		descriptor:   desc,
	}
}

// StatisticsID returns the stable installation identifier. It never
// changes once assigned, even across repeated load cycles.
func (s *Settings) StatisticsID() string {
	return s.statisticsID
}

// Descriptor returns the read-only tool metadata.
func (s *Settings) Descriptor() Descriptor {
	return s.descriptor
}

// PrinterModelID returns the catalog identifier of the selected printer
// model.
func (s *Settings) PrinterModelID() string {
	return catalog.PrinterModelID(s.PrinterModel)
}

// IsLegacyThumbnail reports whether the selected printer model requires
// the old thumbnail embedding format (Neptune 2 family).
func (s *Settings) IsLegacyThumbnail() bool {
	id := s.PrinterModelID()
	return id == "elegoo_neptune_2" || id == "elegoo_neptune_2_s"
}

// CornerOptionIDs returns the effective option set: the ordered content
// option identifiers actually to be rendered. Corners set to "nothing"
// are dropped, duplicates are removed preserving first occurrence, and
// the synthetic thumbnail option is prepended when thumbnails are
// enabled. The result is recomputed from current state on every call.
func (s *Settings) CornerOptionIDs() []string {
	selected := make([]string, 0, NumCorners+1)
	seen := make(map[string]bool, NumCorners)

	for _, opt := range s.CornerOptions {
		if opt <= catalog.OptionNothing {
			continue
		}
		id := catalog.OptionID(opt)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		selected = append(selected, id)
	}

	if s.ThumbnailsEnabled {
		selected = append([]string{OptionThumbnail}, selected...)
	}
	return selected
}

// persistedSettings is the wire schema of the settings blob. Pointer
// fields distinguish missing keys from zero values so that a partial
// blob is rejected instead of silently defaulting single fields.
type persistedSettings struct {
	ThumbnailsEnabled *bool `json:"thumbnails_enabled"`
	PrinterModel      *int  `json:"printer_model"`
	CornerOptions     []int `json:"corner_options"`
	StatisticsEnabled *bool `json:"statistics_enabled"`
	UseCurrentModel   *bool `json:"use_current_model"`
}

// encodeBlob serializes the five persisted fields to the opaque blob.
// The installation id and the descriptor are deliberately excluded.
func (s *Settings) encodeBlob() (string, error) {
	p := persistedSettings{
		ThumbnailsEnabled: &s.ThumbnailsEnabled,
		PrinterModel:      &s.PrinterModel,
		CornerOptions:     s.CornerOptions[:],
		StatisticsEnabled: &s.StatisticsEnabled,
		UseCurrentModel:   &s.UseCurrentModel,
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", NewParseError("failed to encode settings blob", err)
	}
	return string(data), nil
}

// applyBlob deserializes a persisted blob into the five persisted fields.
// The blob is validated as a whole before any field is written, so a
// malformed blob leaves the settings unchanged.
func (s *Settings) applyBlob(blob string) error {
	var p persistedSettings
	if err := json.Unmarshal([]byte(blob), &p); err != nil {
		return NewParseError("settings blob is not valid JSON", err)
	}

	if p.ThumbnailsEnabled == nil || p.PrinterModel == nil ||
		p.StatisticsEnabled == nil || p.UseCurrentModel == nil {
		return NewParseError("settings blob is missing required fields", nil)
	}
	if len(p.CornerOptions) != NumCorners {
		return NewParseError(fmt.Sprintf("corner_options must have %d entries, got %d", NumCorners, len(p.CornerOptions)), nil)
	}
	if err := ValidatePrinterModel(*p.PrinterModel); err != nil {
		return NewParseError("settings blob has an invalid printer model", err)
	}
	for i, opt := range p.CornerOptions {
		if err := ValidateOptionIndex(opt); err != nil {
			return NewParseError(fmt.Sprintf("settings blob has an invalid option for corner %d", i), err)
		}
	}

	s.ThumbnailsEnabled = *p.ThumbnailsEnabled
	s.PrinterModel = *p.PrinterModel
	copy(s.CornerOptions[:], p.CornerOptions)
	s.StatisticsEnabled = *p.StatisticsEnabled
	s.UseCurrentModel = *p.UseCurrentModel
	return nil
}
