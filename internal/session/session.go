package session

import (
	"github.com/jmolenaar/thumbcfg/internal/catalog"
	"github.com/jmolenaar/thumbcfg/internal/settings"
)

// Renderer is the external rendering pipeline. TriggerPreviewRender is
// fire-and-forget: the session consumes no result and expects the call to
// return promptly.
type Renderer interface {
	TriggerPreviewRender()
}

// noCornerSelected is the selected-corner cursor value before any corner
// has been picked by the view.
const noCornerSelected = -1

// Session is the live editing session over the settings. It owns the
// transient selected-corner cursor and the change-notification discipline;
// all field state lives in the settings manager's entity.
type Session struct {
	manager        *settings.Manager
	renderer       Renderer
	selectedCorner int
}

// New creates a session over the given manager. The renderer may be nil,
// in which case re-render signals are dropped.
func New(manager *settings.Manager, renderer Renderer) *Session {
	return &Session{
		manager:        manager,
		renderer:       renderer,
		selectedCorner: noCornerSelected,
	}
}

// Settings returns the live configuration entity, for read-only derived
// computations such as preview generation.
func (s *Session) Settings() *settings.Settings {
	return s.manager.Get()
}

// OptionLabels returns the ordered content option labels for populating a
// choice control.
func (s *Session) OptionLabels() []string {
	return catalog.OptionLabels()
}

// PrinterModelLabels returns the ordered printer model labels for
// populating a choice control.
func (s *Session) PrinterModelLabels() []string {
	return catalog.PrinterModelLabels()
}

// ThumbnailsEnabled reports whether the overlay is enabled.
func (s *Session) ThumbnailsEnabled() bool {
	return s.manager.Get().ThumbnailsEnabled
}

// SetThumbnailsEnabled updates the overlay toggle and re-renders on change.
func (s *Session) SetThumbnailsEnabled(enabled bool) {
	cfg := s.manager.Get()
	updated := cfg.ThumbnailsEnabled != enabled
	cfg.ThumbnailsEnabled = enabled
	if updated {
		s.render()
	}
}

// PrinterModel returns the selected printer model index.
func (s *Session) PrinterModel() int {
	return s.manager.Get().PrinterModel
}

// SelectPrinterModel updates the printer model and re-renders on change.
// An index outside the catalog is rejected and leaves the state unchanged.
func (s *Session) SelectPrinterModel(model int) error {
	if err := settings.ValidatePrinterModel(model); err != nil {
		return err
	}
	cfg := s.manager.Get()
	updated := cfg.PrinterModel != model
	cfg.PrinterModel = model
	if updated {
		s.render()
	}
	return nil
}

// CornerOption returns the content option index assigned to a corner.
func (s *Session) CornerOption(corner int) (int, error) {
	if err := settings.ValidateCornerIndex(corner); err != nil {
		return 0, err
	}
	return s.manager.Get().CornerOptions[corner], nil
}

// SetCornerOption assigns a content option to a corner and re-renders on
// change. Writing the same option twice in a row never fires the signal.
// Out-of-range indices are rejected, never clamped.
func (s *Session) SetCornerOption(corner, option int) error {
	if err := settings.ValidateCornerIndex(corner); err != nil {
		return err
	}
	if err := settings.ValidateOptionIndex(option); err != nil {
		return err
	}
	cfg := s.manager.Get()
	updated := cfg.CornerOptions[corner] != option
	cfg.CornerOptions[corner] = option
	if updated {
		s.render()
	}
	return nil
}

// SelectCorner moves the transient corner cursor. The cursor is not part
// of the configuration and is never persisted.
func (s *Session) SelectCorner(corner int) error {
	if err := settings.ValidateCornerIndex(corner); err != nil {
		return err
	}
	s.selectedCorner = corner
	return nil
}

// SelectedCorner returns the corner cursor, or -1 if none is selected.
func (s *Session) SelectedCorner() int {
	return s.selectedCorner
}

// SelectedCornerOption reads the option assigned to the corner under the
// cursor.
func (s *Session) SelectedCornerOption() (int, error) {
	if s.selectedCorner == noCornerSelected {
		return 0, settings.NewValidationError("no corner selected")
	}
	return s.CornerOption(s.selectedCorner)
}

// StatisticsEnabled reports whether anonymous usage reporting is enabled.
func (s *Session) StatisticsEnabled() bool {
	return s.manager.Get().StatisticsEnabled
}

// SetStatisticsEnabled updates the statistics toggle. It never triggers a
// re-render: the toggle has no visual effect on the overlay.
func (s *Session) SetStatisticsEnabled(enabled bool) {
	s.manager.Get().StatisticsEnabled = enabled
}

// UseCurrentModel reports whether the preview uses the currently loaded
// model.
func (s *Session) UseCurrentModel() bool {
	return s.manager.Get().UseCurrentModel
}

// SetUseCurrentModel updates the preview source toggle and re-renders on
// change.
func (s *Session) SetUseCurrentModel(enabled bool) {
	cfg := s.manager.Get()
	updated := cfg.UseCurrentModel != enabled
	cfg.UseCurrentModel = enabled
	if updated {
		s.render()
	}
}

// VisibilityChanged handles the editing surface opening or closing. A
// transition to hidden discards all unsaved edits by reloading from the
// durable store.
func (s *Session) VisibilityChanged(visible bool) error {
	if visible {
		return nil
	}
	return s.manager.Discard()
}

// Commit persists the current settings. The error is surfaced so the view
// can notify the user of a failed save.
func (s *Session) Commit() error {
	return s.manager.Save()
}

func (s *Session) render() {
	if s.renderer != nil {
		s.renderer.TriggerPreviewRender()
	}
}
