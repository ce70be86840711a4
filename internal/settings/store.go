package settings

// Store is the durable store port: the persistence mechanism the host
// environment provides for the settings blob and the installation id.
//
// All operations are synchronous and assumed fast and local. The blob is
// opaque to the store; its schema is owned by this package.
type Store interface {
	// ReadBlob returns the persisted settings blob, or an empty string if
	// no blob has ever been written.
	ReadBlob() (string, error)

	// WriteBlob persists the settings blob, replacing any previous one.
	WriteBlob(blob string) error

	// InstallationID returns the stable random identifier for this
	// installation. The first call ever generates the identifier and
	// persists it immediately; every later call returns the same value.
	InstallationID() (string, error)

	// ActiveDeviceID returns the identifier of the printer currently in
	// use, or an empty string if it cannot be determined. This is a
	// best-effort signal consumed only during first-run defaulting.
	ActiveDeviceID() string
}
