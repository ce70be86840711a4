package settings

import (
	"go.uber.org/zap"

	"github.com/jmolenaar/thumbcfg/internal/logging"
)

// defaultPrinterModel is the catalog index used when no printer can be
// detected. The Neptune 3 Pro is the most commonly owned supported model.
const defaultPrinterModel = 2

// defaultCornerOptions is the out-of-box corner layout: model height in
// the third corner, time estimate in the fourth.
var defaultCornerOptions = [NumCorners]int{0, 0, 3, 1}

// deviceModelOverrides maps known printer identifiers to printer model
// catalog indices. It is consulted once during first-run defaulting; an
// identifier not listed here leaves the default model unchanged.
// Identifiers with no embedded thumbnail support (elegoo_neptune_1) are
// deliberately absent.
var deviceModelOverrides = map[string]int{
	"elegoo_neptune_2":      0,
	"elegoo_neptune_2s":     1,
	"elegoo_neptune_2_s":    1,
	"elegoo_neptune_3pro":   2,
	"elegoo_neptune_3_pro":  2,
	"elegoo_neptune_3plus":  3,
	"elegoo_neptune_3_plus": 3,
	"elegoo_neptune_3max":   4,
	"elegoo_neptune_3_max":  4,
}

// Manager owns the single live Settings instance and orchestrates
// load, save and discard against the durable store. It is the only
// component permitted to replace the instance's state wholesale.
type Manager struct {
	store      Store
	descriptor Descriptor
	settings   *Settings
}

// NewManager creates a settings manager backed by the given store. The
// descriptor is attached read-only to the settings at construction. The
// settings themselves are loaded lazily on first access.
func NewManager(store Store, desc Descriptor) *Manager {
	return &Manager{
		store:      store,
		descriptor: desc,
	}
}

// Get returns the current settings, loading them first if they do not
// exist yet. It never fails: load problems are logged and resolved to
// defaults.
func (m *Manager) Get() *Settings {
	if m.settings == nil {
		if err := m.Load(); err != nil {
			logging.Warn("Failed to load thumbnail settings, using defaults",
				zap.Error(err),
			)
		}
	}
	return m.settings
}

// Load (re)initializes the settings from the durable store. A present
// blob restores the five persisted fields; a missing or malformed blob
// falls through to defaults plus the printer detection heuristic. The
// installation id is resolved once per process and survives every
// subsequent Load.
func (m *Manager) Load() error {
	if m.settings == nil {
		id, err := m.store.InstallationID()
		if err != nil {
			// Proceed without an id rather than blocking the session;
			// statistics reporting checks for an empty id.
			logging.Warn("Failed to resolve installation id",
				zap.Error(err),
			)
		}
		m.settings = newSettings(id, m.descriptor)
	}

	blob, err := m.store.ReadBlob()
	if err != nil {
		logging.Warn("Failed to read settings blob, using defaults",
			zap.Error(err),
		)
		blob = ""
	}

	if blob != "" {
		err := m.settings.applyBlob(blob)
		if err == nil {
			return nil
		}
		logging.Warn("Stored settings blob is malformed, using defaults",
			zap.Error(err),
		)
	}

	m.applyDefaults()
	return nil
}

// Save serializes the five persisted fields to the durable store. Calling
// Save before any Load implicitly loads first. A store failure is
// returned to the caller: silently dropping edits would go unnoticed.
func (m *Manager) Save() error {
	if m.settings == nil {
		if err := m.Load(); err != nil {
			return err
		}
	}

	blob, err := m.settings.encodeBlob()
	if err != nil {
		return err
	}
	if err := m.store.WriteBlob(blob); err != nil {
		return NewStoreError("failed to persist settings", err)
	}
	return nil
}

// Discard replaces all in-memory edits with the last durably saved state,
// or with defaults if nothing was ever saved. This is the sole mechanism
// for cancelling edits.
func (m *Manager) Discard() error {
	return m.Load()
}

// applyDefaults writes the out-of-box configuration and then consults the
// best-effort printer signal to pre-select the detected model.
func (m *Manager) applyDefaults() {
	s := m.settings
	s.ThumbnailsEnabled = true
	s.PrinterModel = defaultPrinterModel
	s.CornerOptions = defaultCornerOptions
	s.StatisticsEnabled = true
	s.UseCurrentModel = false

	deviceID := m.store.ActiveDeviceID()
	if deviceID == "" {
		return
	}
	if model, ok := deviceModelOverrides[deviceID]; ok {
		logging.Debug("Detected printer, pre-selecting model",
			zap.String("device_id", deviceID),
			zap.Int("model", model),
		)
		s.PrinterModel = model
	}
}
