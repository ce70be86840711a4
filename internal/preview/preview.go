package preview

import (
	"fmt"
	"strings"

	"github.com/jmolenaar/thumbcfg/internal/catalog"
	"github.com/jmolenaar/thumbcfg/internal/gcode"
	"github.com/jmolenaar/thumbcfg/internal/settings"
)

// Preview is the rendered overlay content: one formatted line per corner
// plus the effective option set. It is a pure function of the current
// settings and slice data.
type Preview struct {
	PrinterModel      string                      `json:"printer_model"`
	ThumbnailsEnabled bool                        `json:"thumbnails_enabled"`
	UseCurrentModel   bool                        `json:"use_current_model"`
	Corners           [settings.NumCorners]string `json:"corners"`
	Options           []string                    `json:"options"`
}

// Generate computes the preview for the given settings and slice data.
func Generate(cfg *settings.Settings, data gcode.SliceData) Preview {
	p := Preview{
		PrinterModel:      cfg.PrinterModelID(),
		ThumbnailsEnabled: cfg.ThumbnailsEnabled,
		UseCurrentModel:   cfg.UseCurrentModel,
		Options:           cfg.CornerOptionIDs(),
	}
	for i, opt := range cfg.CornerOptions {
		p.Corners[i] = FormatOption(catalog.OptionID(opt), data)
	}
	return p
}

// FormatOption formats the value of a content option for display. Unknown
// or unavailable values render as "?" so the layout stays stable.
func FormatOption(optionID string, data gcode.SliceData) string {
	switch optionID {
	case "", "nothing":
		return ""
	case "includeTimeEstimate":
		return formatDuration(data.TimeSeconds)
	case "includeFilamentGramsEstimate":
		return formatUnit(data.FilamentGrams, "g", 0)
	case "includeLayerHeight":
		return formatUnit(data.LayerHeight, "mm", 2)
	case "includeModelHeight":
		return formatUnit(data.ModelHeight, "mm", 1)
	case "includeFilamentMetersEstimate":
		return formatUnit(data.FilamentMeters, "m", 2)
	case "includeCostEstimate":
		if data.FilamentCost < 0 {
			return "?"
		}
		return fmt.Sprintf("%.2f%s", data.FilamentCost, data.Currency)
	default:
		return "?"
	}
}

// SampleSliceData returns the built-in sample used for the settings
// preview when no sliced file is loaded.
func SampleSliceData() gcode.SliceData {
	return gcode.SliceData{
		LayerHeight:    0.2,
		TimeSeconds:    2432,
		FilamentMeters: 2.02,
		FilamentGrams:  6.02,
		ModelHeight:    33.0,
		FilamentCost:   -1,
		LineWidth:      0.4,
	}
}

// formatDuration renders seconds as "2h 11m". Negative means unknown.
func formatDuration(seconds int) string {
	if seconds < 0 {
		return "?"
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	return fmt.Sprintf("%dh %02dm", hours, minutes)
}

// formatUnit renders a measurement with a unit suffix. Negative means
// unknown.
func formatUnit(v float64, unit string, decimals int) string {
	if v < 0 {
		return "?"
	}
	return strings.TrimSpace(fmt.Sprintf("%.*f%s", decimals, v, unit))
}
