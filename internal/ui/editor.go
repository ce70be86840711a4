package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmolenaar/thumbcfg/internal/catalog"
	"github.com/jmolenaar/thumbcfg/internal/gcode"
	"github.com/jmolenaar/thumbcfg/internal/preview"
	"github.com/jmolenaar/thumbcfg/internal/session"
	"github.com/jmolenaar/thumbcfg/internal/settings"
)

// Editor fields in display order
const (
	fieldThumbnails = iota
	fieldPrinterModel
	fieldCorner1
	fieldCorner2
	fieldCorner3
	fieldCorner4
	fieldStatistics
	fieldUseCurrentModel
	numFields
)

// editorKeyMap defines key bindings for the settings editor
type editorKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Cycle  key.Binding
	Toggle key.Binding
	Save   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Cycle, k.Save, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Cycle, k.Toggle},
		{k.Save, k.Quit},
	}
}

// previewTracker records the session's re-render signal. The editor
// regenerates its preview pane only when the flag is set, so mutations
// that change nothing leave the pane untouched.
type previewTracker struct {
	dirty bool
}

func (t *previewTracker) TriggerPreviewRender() {
	t.dirty = true
}

// fanoutRenderer forwards the re-render signal to several renderers.
type fanoutRenderer []session.Renderer

func (f fanoutRenderer) TriggerPreviewRender() {
	for _, r := range f {
		r.TriggerPreviewRender()
	}
}

// EditorModel is the Bubble Tea model for the settings editor.
type EditorModel struct {
	Session *session.Session

	// Slice data feeding the preview pane
	Data gcode.SliceData

	// UI state
	Cursor  int
	Width   int
	Height  int
	Preview preview.Preview
	Status  string
	IsError bool
	Dirty   bool

	tracker *previewTracker

	// Help
	Help help.Model
	Keys editorKeyMap
}

// NewEditorModel creates an editor over the given settings manager. Extra
// renderers (such as a preview broadcaster) also receive the session's
// re-render signal.
func NewEditorModel(manager *settings.Manager, extra ...session.Renderer) EditorModel {
	tracker := &previewTracker{dirty: true}
	renderers := append(fanoutRenderer{tracker}, extra...)
	sess := session.New(manager, renderers)

	keys := editorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("left", "right", "h", "l"),
			key.WithHelp("←/→", "change"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "toggle"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}

	m := EditorModel{
		Session: sess,
		Data:    preview.SampleSliceData(),
		tracker: tracker,
		Help:    help.New(),
		Keys:    keys,
	}
	m.refreshPreview()
	return m
}

// SetSliceData replaces the sample data feeding the preview pane.
func (m *EditorModel) SetSliceData(data gcode.SliceData) {
	m.Data = data
	m.tracker.dirty = true
	m.refreshPreview()
}

// Init initializes the editor
func (m EditorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit

		case key.Matches(msg, m.Keys.Quit):
			// Closing without saving discards in-memory edits
			if err := m.Session.VisibilityChanged(false); err != nil {
				m.setError(err)
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, m.Keys.Up):
			m.moveCursor(-1)

		case key.Matches(msg, m.Keys.Down):
			m.moveCursor(1)

		case key.Matches(msg, m.Keys.Cycle):
			delta := 1
			if msg.String() == "left" || msg.String() == "h" {
				delta = -1
			}
			m.adjustField(delta)

		case key.Matches(msg, m.Keys.Toggle):
			m.adjustField(1)

		case key.Matches(msg, m.Keys.Save):
			if err := m.Session.Commit(); err != nil {
				m.setError(err)
			} else {
				m.Status = "Saved"
				m.IsError = false
				m.Dirty = false
			}
		}
	}

	m.refreshPreview()
	return m, nil
}

// moveCursor moves the field cursor with wrap-around and keeps the
// session's corner selection in sync.
func (m *EditorModel) moveCursor(delta int) {
	m.Cursor = (m.Cursor + delta + numFields) % numFields
	if corner, ok := cornerForField(m.Cursor); ok {
		if err := m.Session.SelectCorner(corner); err != nil {
			m.setError(err)
		}
	}
}

// adjustField mutates the focused field through the session. Toggles
// flip, indexed fields cycle with wrap-around.
func (m *EditorModel) adjustField(delta int) {
	var err error

	switch m.Cursor {
	case fieldThumbnails:
		m.Session.SetThumbnailsEnabled(!m.Session.ThumbnailsEnabled())
		m.markDirty()

	case fieldPrinterModel:
		n := catalog.NumPrinterModels()
		next := (m.Session.PrinterModel() + delta + n) % n
		if err = m.Session.SelectPrinterModel(next); err == nil {
			m.markDirty()
		}

	case fieldCorner1, fieldCorner2, fieldCorner3, fieldCorner4:
		corner, _ := cornerForField(m.Cursor)
		var current int
		current, err = m.Session.CornerOption(corner)
		if err == nil {
			n := catalog.NumOptions()
			next := (current + delta + n) % n
			if err = m.Session.SetCornerOption(corner, next); err == nil {
				m.markDirty()
			}
		}

	case fieldStatistics:
		m.Session.SetStatisticsEnabled(!m.Session.StatisticsEnabled())
		m.markDirty()

	case fieldUseCurrentModel:
		m.Session.SetUseCurrentModel(!m.Session.UseCurrentModel())
		m.markDirty()
	}

	if err != nil {
		m.setError(err)
	}
}

func (m *EditorModel) markDirty() {
	m.Dirty = true
	m.Status = ""
	m.IsError = false
}

func (m *EditorModel) setError(err error) {
	m.Status = err.Error()
	m.IsError = true
}

// refreshPreview regenerates the preview pane when the session fired its
// re-render signal since the last refresh.
func (m *EditorModel) refreshPreview() {
	if !m.tracker.dirty {
		return
	}
	m.tracker.dirty = false
	m.Preview = preview.Generate(m.Session.Settings(), m.Data)
}

// cornerForField maps an editor field index to a corner index.
func cornerForField(field int) (int, bool) {
	if field >= fieldCorner1 && field <= fieldCorner4 {
		return field - fieldCorner1, true
	}
	return 0, false
}

// View renders the editor
func (m EditorModel) View() string {
	content := m.buildContent()
	helpText := m.Help.View(m.Keys)
	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

// buildContent builds the editor screen content
func (m EditorModel) buildContent() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Settings"))
	b.WriteString("\n")

	modelLabels := m.Session.PrinterModelLabels()
	optionLabels := m.Session.OptionLabels()

	b.WriteString(RenderField("Thumbnails", formatToggle(m.Session.ThumbnailsEnabled()), m.Cursor == fieldThumbnails))
	b.WriteString("\n")

	modelLabel := ""
	if i := m.Session.PrinterModel(); i >= 0 && i < len(modelLabels) {
		modelLabel = modelLabels[i]
	}
	b.WriteString(RenderField("Printer model", ValueStyle.Render(modelLabel), m.Cursor == fieldPrinterModel))
	b.WriteString("\n")

	for corner := 0; corner < settings.NumCorners; corner++ {
		label := fmt.Sprintf("Corner %d", corner+1)
		value := ""
		if opt, err := m.Session.CornerOption(corner); err == nil && opt >= 0 && opt < len(optionLabels) {
			value = optionLabels[opt]
		}
		style := ValueStyle
		if !m.Session.ThumbnailsEnabled() {
			style = DimmedValueStyle
		}
		b.WriteString(RenderField(label, style.Render(value), m.Cursor == fieldCorner1+corner))
		b.WriteString("\n")
	}

	b.WriteString(RenderField("Send anonymous statistics", formatToggle(m.Session.StatisticsEnabled()), m.Cursor == fieldStatistics))
	b.WriteString("\n")
	b.WriteString(RenderField("Preview current model", formatToggle(m.Session.UseCurrentModel()), m.Cursor == fieldUseCurrentModel))
	b.WriteString("\n")

	b.WriteString(m.buildPreviewPane())
	b.WriteString("\n")
	b.WriteString(m.buildStatusLine())

	return b.String()
}

// buildPreviewPane renders the overlay preview box
func (m EditorModel) buildPreviewPane() string {
	var b strings.Builder

	b.WriteString("Preview (" + m.Preview.PrinterModel + ")\n\n")

	if !m.Preview.ThumbnailsEnabled {
		b.WriteString(DimmedValueStyle.Render("thumbnails disabled"))
		return PreviewBoxStyle.Render(b.String())
	}

	// Corner layout: 1 and 2 on the top edge, 3 and 4 on the bottom
	b.WriteString(fmt.Sprintf("%-16s %16s\n", placeholder(m.Preview.Corners[0]), placeholder(m.Preview.Corners[1])))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%-16s %16s", placeholder(m.Preview.Corners[2]), placeholder(m.Preview.Corners[3])))

	return PreviewBoxStyle.Render(b.String())
}

// buildStatusLine renders the save state or the last error
func (m EditorModel) buildStatusLine() string {
	switch {
	case m.IsError:
		return ErrorStyle.Render("✗ " + m.Status)
	case m.Status != "":
		return SavedStyle.Render("✓ " + m.Status)
	case m.Dirty:
		return DirtyStyle.Render("unsaved changes")
	default:
		return ""
	}
}

func formatToggle(on bool) string {
	if on {
		return ValueStyle.Render("on")
	}
	return DimmedValueStyle.Render("off")
}

func placeholder(s string) string {
	if s == "" {
		return "·"
	}
	return s
}

// Run starts the settings editor in the alternate screen. Extra renderers
// receive the session's re-render signal alongside the editor itself.
func Run(manager *settings.Manager, extra ...session.Renderer) error {
	p := tea.NewProgram(NewEditorModel(manager, extra...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
