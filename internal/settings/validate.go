package settings

import (
	"fmt"

	"github.com/jmolenaar/thumbcfg/internal/catalog"
)

// ValidateCornerIndex validates an overlay corner index.
// Valid range is [0, NumCorners).
func ValidateCornerIndex(corner int) error {
	if corner < 0 || corner >= NumCorners {
		return NewValidationError(fmt.Sprintf("corner index must be 0-%d, got %d", NumCorners-1, corner))
	}
	return nil
}

// ValidateOptionIndex validates a content option index against the
// content option catalog.
func ValidateOptionIndex(option int) error {
	if option < 0 || option >= catalog.NumOptions() {
		return NewValidationError(fmt.Sprintf("content option must be 0-%d, got %d", catalog.NumOptions()-1, option))
	}
	return nil
}

// ValidatePrinterModel validates a printer model index against the
// printer model catalog.
func ValidatePrinterModel(model int) error {
	if model < 0 || model >= catalog.NumPrinterModels() {
		return NewValidationError(fmt.Sprintf("printer model must be 0-%d, got %d", catalog.NumPrinterModels()-1, model))
	}
	return nil
}
