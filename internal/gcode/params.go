package gcode

import (
	"bufio"
	"strconv"
	"strings"
)

// paramMappings maps header comment keys to canonical parameter names,
// per slicer flavor. All flavors are always applied; later matches of the
// same canonical name overwrite earlier ones.
var paramMappings = map[string]map[string]string{
	"elegoo": {
		"flavor":              "flavor",
		"time":                "time",
		"filament used":       "filament_used",
		"layer height":        "layer_height",
		"minx":                "minx",
		"miny":                "miny",
		"minz":                "minz",
		"maxx":                "maxx",
		"maxy":                "maxy",
		"maxz":                "maxz",
		"target_machine.name": "machine_name",
	},
	"ultimaker": {
		"flavor":              "flavor",
		"print.time":          "time",
		"print.size.min.x":    "minx",
		"print.size.min.y":    "miny",
		"print.size.min.z":    "minz",
		"print.size.max.x":    "maxx",
		"print.size.max.y":    "maxy",
		"print.size.max.z":    "maxz",
		"target_machine.name": "machine_name",
	},
}

// SliceData carries the print metadata shown on the overlay. Values that
// could not be determined are negative (or empty for strings).
type SliceData struct {
	LayerHeight    float64 // mm
	TimeSeconds    int     // estimated print time
	FilamentMeters float64 // estimated filament length
	FilamentGrams  float64 // estimated filament weight
	ModelHeight    float64 // mm, from the bounding box
	FilamentCost   float64 // estimated cost, when the slicer provides it
	LineWidth      float64 // mm
	Currency       string  // currency symbol for FilamentCost
}

// filamentGramsPerMeter approximates the weight of one meter of 1.75 mm
// PLA filament (1.24 g/cm3).
const filamentGramsPerMeter = 2.98

// ExtractParams scans the comment header of a G-code document and returns
// the canonical parameters found there. Scanning stops at the first
// non-comment command line: slicers put all metadata before the first
// move.
func ExtractParams(src string) map[string]string {
	params := make(map[string]string)

	scanner := bufio.NewScanner(strings.NewReader(src))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ";") {
			break
		}

		lower := strings.ToLower(line)
		for _, mapping := range paramMappings {
			for key, name := range mapping {
				prefix := ";" + key + ":"
				if strings.HasPrefix(lower, prefix) {
					params[name] = strings.TrimSpace(line[len(prefix):])
				}
			}
		}
	}

	return params
}

// ParseSliceData converts raw header parameters into a SliceData record.
// Missing numeric parameters yield -1 so renderers can tell "absent" from
// a real zero.
func ParseSliceData(params map[string]string) SliceData {
	data := SliceData{
		LayerHeight:    parseFloat(params["layer_height"]),
		TimeSeconds:    parseSeconds(params["time"]),
		FilamentMeters: parseMeters(params["filament_used"]),
		ModelHeight:    parseFloat(params["maxz"]),
		FilamentCost:   -1,
		LineWidth:      -1,
		FilamentGrams:  -1,
	}

	if data.FilamentMeters > 0 {
		data.FilamentGrams = data.FilamentMeters * filamentGramsPerMeter
	}
	return data
}

// parseFloat parses a float parameter, returning -1 when absent or
// malformed.
func parseFloat(raw string) float64 {
	if raw == "" {
		return -1
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return -1
	}
	return v
}

// parseSeconds parses the time parameter (whole seconds), returning -1
// when absent or malformed.
func parseSeconds(raw string) int {
	if raw == "" {
		return -1
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return -1
	}
	return int(v)
}

// parseMeters parses a filament length like "2.02409m", returning -1 when
// absent or malformed.
func parseMeters(raw string) float64 {
	if raw == "" {
		return -1
	}
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "m")
	return parseFloat(raw)
}
