package gcode

import (
	"math"
	"testing"
)

const sampleHeader = `;FLAVOR:Marlin
;TIME:2432
;Filament used: 2.02409m
;Layer height: 0.2
;MINX:86.119
;MINY:93.9
;MINZ:0.2
;MAXX:133.881
;MAXY:126.1
;MAXZ:33
;TARGET_MACHINE.NAME:Elegoo Neptune 3 Pro
;Generated with Cura_SteamEngine 5.3.0
M140 S60
;This comment is past the header and must be ignored
;TIME:9999
`

func TestExtractParams(t *testing.T) {
	params := ExtractParams(sampleHeader)

	tests := []struct {
		name string
		want string
	}{
		{"flavor", "Marlin"},
		{"time", "2432"},
		{"filament_used", "2.02409m"},
		{"layer_height", "0.2"},
		{"maxz", "33"},
		{"machine_name", "Elegoo Neptune 3 Pro"},
	}
	for _, tt := range tests {
		if got := params[tt.name]; got != tt.want {
			t.Errorf("params[%q] = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestExtractParamsStopsAtFirstCommand(t *testing.T) {
	params := ExtractParams(sampleHeader)
	if got := params["time"]; got != "2432" {
		t.Errorf("params[\"time\"] = %q, want %q (comment after first command must be ignored)", got, "2432")
	}
}

func TestExtractParamsEmptyDocument(t *testing.T) {
	if params := ExtractParams(""); len(params) != 0 {
		t.Errorf("ExtractParams(\"\") = %v, want empty", params)
	}
	if params := ExtractParams("G28\n;TIME:100\n"); len(params) != 0 {
		t.Errorf("ExtractParams with leading command = %v, want empty", params)
	}
}

func TestParseSliceData(t *testing.T) {
	data := ParseSliceData(ExtractParams(sampleHeader))

	if data.TimeSeconds != 2432 {
		t.Errorf("TimeSeconds = %d, want 2432", data.TimeSeconds)
	}
	if data.LayerHeight != 0.2 {
		t.Errorf("LayerHeight = %v, want 0.2", data.LayerHeight)
	}
	if data.FilamentMeters != 2.02409 {
		t.Errorf("FilamentMeters = %v, want 2.02409", data.FilamentMeters)
	}
	if data.ModelHeight != 33 {
		t.Errorf("ModelHeight = %v, want 33", data.ModelHeight)
	}

	wantGrams := 2.02409 * filamentGramsPerMeter
	if math.Abs(data.FilamentGrams-wantGrams) > 1e-9 {
		t.Errorf("FilamentGrams = %v, want %v", data.FilamentGrams, wantGrams)
	}
}

func TestParseSliceDataMissingValues(t *testing.T) {
	data := ParseSliceData(map[string]string{})

	if data.TimeSeconds != -1 {
		t.Errorf("TimeSeconds = %d, want -1", data.TimeSeconds)
	}
	if data.LayerHeight != -1 {
		t.Errorf("LayerHeight = %v, want -1", data.LayerHeight)
	}
	if data.FilamentMeters != -1 {
		t.Errorf("FilamentMeters = %v, want -1", data.FilamentMeters)
	}
	if data.FilamentGrams != -1 {
		t.Errorf("FilamentGrams = %v, want -1", data.FilamentGrams)
	}
	if data.ModelHeight != -1 {
		t.Errorf("ModelHeight = %v, want -1", data.ModelHeight)
	}
}

func TestParseSliceDataMalformedValues(t *testing.T) {
	data := ParseSliceData(map[string]string{
		"time":          "soon",
		"layer_height":  "thick",
		"filament_used": "lots",
	})

	if data.TimeSeconds != -1 {
		t.Errorf("TimeSeconds = %d, want -1", data.TimeSeconds)
	}
	if data.LayerHeight != -1 {
		t.Errorf("LayerHeight = %v, want -1", data.LayerHeight)
	}
	if data.FilamentMeters != -1 {
		t.Errorf("FilamentMeters = %v, want -1", data.FilamentMeters)
	}
}
