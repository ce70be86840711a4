package store

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jmolenaar/thumbcfg/internal/logging"
)

const (
	appName   = "thumbcfg"
	prefsFile = "preferences.yaml"

	// prefsVersion is the preferences file schema version.
	prefsVersion = 1
)

// PrinterEnvVar overrides printer detection when set to a known printer
// identifier (e.g. "elegoo_neptune_3_pro").
const PrinterEnvVar = "THUMBCFG_PRINTER"

// Detector resolves the identifier of the printer currently in use.
// Implementations return an empty string when no printer can be found.
type Detector func() string

// preferences is the on-disk schema of the preferences file. The settings
// blob is opaque here; the settings package owns its contents.
type preferences struct {
	Version           int    `yaml:"version"`
	ThumbnailSettings string `yaml:"thumbnail_settings,omitempty"`
	StatisticsID      string `yaml:"statistics_id,omitempty"`
	ActivePrinter     string `yaml:"active_printer,omitempty"`
}

// FileStore is a settings.Store backed by a YAML preferences file.
type FileStore struct {
	path     string
	detector Detector

	mu    sync.Mutex
	prefs *preferences
}

// GetConfigDir returns the OS-appropriate configuration directory for the
// application.
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// NewFileStore creates a file store at the default preferences path.
// The detector may be nil.
func NewFileStore(detector Detector) (*FileStore, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	return NewFileStoreAt(filepath.Join(configDir, prefsFile), detector), nil
}

// NewFileStoreAt creates a file store backed by the given file path.
// Useful for tests and non-standard layouts.
func NewFileStoreAt(path string, detector Detector) *FileStore {
	return &FileStore{
		path:     path,
		detector: detector,
	}
}

// Path returns the preferences file path.
func (f *FileStore) Path() string {
	return f.path
}

// ReadBlob returns the persisted settings blob, or an empty string if no
// blob has ever been written.
func (f *FileStore) ReadBlob() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	prefs, err := f.load()
	if err != nil {
		return "", err
	}
	return prefs.ThumbnailSettings, nil
}

// WriteBlob persists the settings blob, replacing any previous one.
func (f *FileStore) WriteBlob(blob string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prefs, err := f.load()
	if err != nil {
		return err
	}
	prefs.ThumbnailSettings = blob
	return f.save(prefs)
}

// InstallationID returns the stable random identifier for this
// installation, generating and persisting a fresh UUID on first call.
func (f *FileStore) InstallationID() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	prefs, err := f.load()
	if err != nil {
		return "", err
	}
	if prefs.StatisticsID != "" {
		return prefs.StatisticsID, nil
	}

	prefs.StatisticsID = uuid.NewString()
	if err := f.save(prefs); err != nil {
		return "", fmt.Errorf("failed to persist installation id: %w", err)
	}
	logging.Info("Generated new installation id",
		zap.String("path", f.path),
	)
	return prefs.StatisticsID, nil
}

// ActiveDeviceID returns the identifier of the printer currently in use,
// or an empty string if it cannot be determined.
func (f *FileStore) ActiveDeviceID() string {
	f.mu.Lock()
	prefs, err := f.load()
	f.mu.Unlock()
	if err == nil && prefs.ActivePrinter != "" {
		return normalizeDeviceID(prefs.ActivePrinter)
	}

	if env := os.Getenv(PrinterEnvVar); env != "" {
		return normalizeDeviceID(env)
	}

	if f.detector != nil {
		return normalizeDeviceID(f.detector())
	}
	return ""
}

// load reads and caches the preferences file. A missing file yields fresh
// defaults; a malformed file is an error so callers can decide how to
// recover.
func (f *FileStore) load() (*preferences, error) {
	if f.prefs != nil {
		return f.prefs, nil
	}

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		f.prefs = &preferences{Version: prefsVersion}
		return f.prefs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences file: %w", err)
	}

	var prefs preferences
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("failed to parse preferences file: %w", err)
	}
	if prefs.Version != prefsVersion {
		return nil, fmt.Errorf("unsupported preferences version: %d (expected %d)", prefs.Version, prefsVersion)
	}

	f.prefs = &prefs
	return f.prefs, nil
}

// save writes the preferences atomically (temp file + rename).
func (f *FileStore) save(prefs *preferences) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	header := []byte(`# thumbcfg preferences
# Stores the thumbnail overlay settings blob and the anonymous
# installation id. Edit active_printer to pin printer detection.

`)
	data = append(header, data...)

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary preferences file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save preferences file: %w", err)
	}

	f.prefs = prefs
	return nil
}

// normalizeDeviceID lowercases and trims a raw printer identifier so it
// can be matched against the detection table.
func normalizeDeviceID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
