package settings

import (
	"reflect"
	"testing"
)

func TestCornerOptionIDs(t *testing.T) {
	s := newSettings("", Descriptor{})
	s.ThumbnailsEnabled = true
	s.CornerOptions = [NumCorners]int{0, 0, 3, 1}

	got := s.CornerOptionIDs()
	want := []string{"includeThumbnail", "includeModelHeight", "includeTimeEstimate"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CornerOptionIDs() = %v, want %v", got, want)
	}
}

func TestCornerOptionIDsThumbnailsDisabled(t *testing.T) {
	s := newSettings("", Descriptor{})
	s.ThumbnailsEnabled = false
	s.CornerOptions = [NumCorners]int{0, 0, 3, 1}

	got := s.CornerOptionIDs()
	want := []string{"includeModelHeight", "includeTimeEstimate"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CornerOptionIDs() = %v, want %v", got, want)
	}
}

func TestCornerOptionIDsDeduplicates(t *testing.T) {
	s := newSettings("", Descriptor{})
	s.ThumbnailsEnabled = true
	s.CornerOptions = [NumCorners]int{2, 2, 2, 2}

	got := s.CornerOptionIDs()
	want := []string{"includeThumbnail", "includeFilamentGramsEstimate"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CornerOptionIDs() = %v, want %v", got, want)
	}
}

func TestCornerOptionIDsAllNothing(t *testing.T) {
	s := newSettings("", Descriptor{})
	s.CornerOptions = [NumCorners]int{0, 0, 0, 0}

	if got := s.CornerOptionIDs(); len(got) != 0 {
		t.Errorf("CornerOptionIDs() = %v, want empty", got)
	}
}

func TestBlobRoundTrip(t *testing.T) {
	s := newSettings("id-1", Descriptor{Name: "test", Version: "1.0"})
	s.ThumbnailsEnabled = true
	s.PrinterModel = 4
	s.CornerOptions = [NumCorners]int{1, 0, 5, 2}
	s.StatisticsEnabled = false
	s.UseCurrentModel = true

	blob, err := s.encodeBlob()
	if err != nil {
		t.Fatalf("encodeBlob() error = %v", err)
	}

	restored := newSettings("id-2", Descriptor{})
	if err := restored.applyBlob(blob); err != nil {
		t.Fatalf("applyBlob() error = %v", err)
	}

	if restored.ThumbnailsEnabled != s.ThumbnailsEnabled {
		t.Errorf("ThumbnailsEnabled = %v, want %v", restored.ThumbnailsEnabled, s.ThumbnailsEnabled)
	}
	if restored.PrinterModel != s.PrinterModel {
		t.Errorf("PrinterModel = %d, want %d", restored.PrinterModel, s.PrinterModel)
	}
	if restored.CornerOptions != s.CornerOptions {
		t.Errorf("CornerOptions = %v, want %v", restored.CornerOptions, s.CornerOptions)
	}
	if restored.StatisticsEnabled != s.StatisticsEnabled {
		t.Errorf("StatisticsEnabled = %v, want %v", restored.StatisticsEnabled, s.StatisticsEnabled)
	}
	if restored.UseCurrentModel != s.UseCurrentModel {
		t.Errorf("UseCurrentModel = %v, want %v", restored.UseCurrentModel, s.UseCurrentModel)
	}

	// The installation id is not part of the blob
	if restored.StatisticsID() != "id-2" {
		t.Errorf("StatisticsID() = %q, want %q", restored.StatisticsID(), "id-2")
	}
}

func TestApplyBlobRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"invalid json", "{not json"},
		{"empty object", "{}"},
		{"missing toggle", `{"printer_model":2,"corner_options":[0,0,3,1],"statistics_enabled":true,"use_current_model":false}`},
		{"too few corners", `{"thumbnails_enabled":true,"printer_model":2,"corner_options":[0,0,3],"statistics_enabled":true,"use_current_model":false}`},
		{"too many corners", `{"thumbnails_enabled":true,"printer_model":2,"corner_options":[0,0,3,1,1],"statistics_enabled":true,"use_current_model":false}`},
		{"printer model out of range", `{"thumbnails_enabled":true,"printer_model":99,"corner_options":[0,0,3,1],"statistics_enabled":true,"use_current_model":false}`},
		{"negative printer model", `{"thumbnails_enabled":true,"printer_model":-1,"corner_options":[0,0,3,1],"statistics_enabled":true,"use_current_model":false}`},
		{"corner option out of range", `{"thumbnails_enabled":true,"printer_model":2,"corner_options":[0,0,99,1],"statistics_enabled":true,"use_current_model":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSettings("", Descriptor{})
			s.ThumbnailsEnabled = true
			s.PrinterModel = 3
			s.CornerOptions = [NumCorners]int{1, 2, 3, 4}

			err := s.applyBlob(tt.blob)
			if err == nil {
				t.Fatalf("applyBlob(%q) = nil, want error", tt.blob)
			}
			if !IsParseError(err) {
				t.Errorf("applyBlob(%q) error type = %T, want parse error", tt.blob, err)
			}

			// A rejected blob must leave the state untouched
			if s.PrinterModel != 3 {
				t.Errorf("PrinterModel = %d, want 3 (unchanged)", s.PrinterModel)
			}
			if s.CornerOptions != [NumCorners]int{1, 2, 3, 4} {
				t.Errorf("CornerOptions = %v, want unchanged", s.CornerOptions)
			}
		})
	}
}

func TestIsLegacyThumbnail(t *testing.T) {
	tests := []struct {
		model int
		want  bool
	}{
		{0, true},  // elegoo_neptune_2
		{1, true},  // elegoo_neptune_2_s
		{2, false}, // elegoo_neptune_3_pro
		{3, false}, // elegoo_neptune_3_plus
		{4, false}, // elegoo_neptune_3_max
	}

	for _, tt := range tests {
		s := newSettings("", Descriptor{})
		s.PrinterModel = tt.model
		if got := s.IsLegacyThumbnail(); got != tt.want {
			t.Errorf("IsLegacyThumbnail() for model %d = %v, want %v", tt.model, got, tt.want)
		}
	}
}

func TestValidateCornerIndex(t *testing.T) {
	for corner := 0; corner < NumCorners; corner++ {
		if err := ValidateCornerIndex(corner); err != nil {
			t.Errorf("ValidateCornerIndex(%d) = %v, want nil", corner, err)
		}
	}
	for _, corner := range []int{-1, NumCorners, 100} {
		err := ValidateCornerIndex(corner)
		if err == nil {
			t.Errorf("ValidateCornerIndex(%d) = nil, want error", corner)
		} else if !IsValidationError(err) {
			t.Errorf("ValidateCornerIndex(%d) error type = %T, want validation error", corner, err)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := NewValidationError("inner")
	err := NewParseError("outer", inner)

	if err.Unwrap() != inner {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), inner)
	}
	if got := err.Error(); got == "" {
		t.Error("Error() returned an empty string")
	}
}
