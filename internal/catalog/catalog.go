package catalog

// Entry is a single catalog entry: a stable string identifier paired with
// a human-readable display label.
type Entry struct {
	ID    string
	Label string
}

// OptionNothing is the content option index reserved for "no content".
const OptionNothing = 0

// contentOptions is the ordered content option catalog. The persisted
// corner option indices point into this slice.
var contentOptions = []Entry{
	{ID: "nothing", Label: "Nothing"},
	{ID: "includeTimeEstimate", Label: "Time Estimate"},
	{ID: "includeFilamentGramsEstimate", Label: "Filament Grams Estimate"},
	{ID: "includeLayerHeight", Label: "Layer Height"},
	{ID: "includeModelHeight", Label: "Model Height"},
	{ID: "includeFilamentMetersEstimate", Label: "Filament Meters Estimate"},
	// {ID: "includeCostEstimate", Label: "Cost Estimate"} is part of the
	// schema but disabled: cost data is too unreliable to display.
}

// printerModels is the ordered printer model catalog.
var printerModels = []Entry{
	{ID: "elegoo_neptune_2", Label: "Elegoo Neptune 2"},
	{ID: "elegoo_neptune_2_s", Label: "Elegoo Neptune 2S"},
	{ID: "elegoo_neptune_3_pro", Label: "Elegoo Neptune 3 Pro"},
	{ID: "elegoo_neptune_3_plus", Label: "Elegoo Neptune 3 Plus"},
	{ID: "elegoo_neptune_3_max", Label: "Elegoo Neptune 3 Max"},
}

// NumOptions returns the number of selectable content options.
func NumOptions() int {
	return len(contentOptions)
}

// NumPrinterModels returns the number of supported printer models.
func NumPrinterModels() int {
	return len(printerModels)
}

// OptionIDs returns the ordered content option identifiers.
func OptionIDs() []string {
	return ids(contentOptions)
}

// OptionLabels returns the ordered content option display labels, suitable
// for populating a choice control. Indices correspond to OptionIDs.
func OptionLabels() []string {
	return labels(contentOptions)
}

// OptionID returns the identifier of the content option at index i.
// Returns an empty string if the index is out of range.
func OptionID(i int) string {
	if i < 0 || i >= len(contentOptions) {
		return ""
	}
	return contentOptions[i].ID
}

// PrinterModelIDs returns the ordered printer model identifiers.
func PrinterModelIDs() []string {
	return ids(printerModels)
}

// PrinterModelLabels returns the ordered printer model display labels.
// Indices correspond to PrinterModelIDs.
func PrinterModelLabels() []string {
	return labels(printerModels)
}

// PrinterModelID returns the identifier of the printer model at index i.
// Returns an empty string if the index is out of range.
func PrinterModelID(i int) string {
	if i < 0 || i >= len(printerModels) {
		return ""
	}
	return printerModels[i].ID
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func labels(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label
	}
	return out
}
