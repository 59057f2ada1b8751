package driven

import "github.com/verity-labs/verity/internal/core/domain"

// SettingsStore persists application settings.
// Settings are loaded once at startup into an explicit domain.Settings
// value passed to service constructors; services never reach for a
// global configuration singleton.
type SettingsStore interface {
	// Load reads the stored settings, applying defaults for absent keys.
	Load() (domain.Settings, error)

	// Save writes the settings.
	Save(settings domain.Settings) error

	// Path returns the backing file path for diagnostics.
	Path() string
}
