package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ErrSettingsExist is returned by WriteDefaults when the file is already present.
var ErrSettingsExist = errors.New("settings file already exists")

// SettingsService manages reading/writing settings from disk.
type SettingsService struct {
	path string
}

// NewSettingsService returns a service for the settings file at path. An empty
// path selects themecoder.yml next to the executable.
func NewSettingsService(path string) *SettingsService {
	return &SettingsService{path: strings.TrimSpace(path)}
}

// Path returns the settings file location.
func (s *SettingsService) Path() (string, error) {
	if s.path != "" {
		return s.path, nil
	}
	return defaultSettingsFilePath()
}

// GetSettings returns the effective settings (defaults overlaid with file overrides if any).
func (s *SettingsService) GetSettings() (Settings, error) {
	settings := defaultSettings
	path, err := s.Path()
	if err != nil {
		return settings, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return defaults
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, err
	}
	settings, err = decode(b)
	if err != nil {
		return defaultSettings, fmt.Errorf("%s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return defaultSettings, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

// SaveSettings saves only the values that differ from defaults into YAML.
func (s *SettingsService) SaveSettings(in Settings) error {
	if err := in.Validate(); err != nil {
		return err
	}

	data := diff(in)
	if _, ok := data["instance_id"]; !ok {
		// Preserve the instance ID already on disk
		if old, err := s.GetSettings(); err == nil && old.InstanceID != "" {
			data["instance_id"] = old.InstanceID
		}
	}

	path, err := s.Path()
	if err != nil {
		return err
	}

	if len(data) == 0 {
		// If there is an existing file, remove it to reflect defaults-only state
		if _, statErr := os.Stat(path); statErr == nil {
			_ = os.Remove(path)
		}
		return nil
	}
	return writeYAML(path, data)
}

// EnsureInstanceID generates and saves a unique instance ID if one doesn't exist
func (s *SettingsService) EnsureInstanceID() (string, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return "", err
	}
	if id := strings.TrimSpace(settings.InstanceID); id != "" {
		return id, nil
	}

	settings.InstanceID = uuid.New().String()
	if err := s.SaveSettings(settings); err != nil {
		return "", err
	}
	return settings.InstanceID, nil
}

// WriteDefaults writes a fully populated settings file so every key is
// visible for editing. An existing file is left untouched unless force is set.
func (s *SettingsService) WriteDefaults(force bool) (string, error) {
	path, err := s.Path()
	if err != nil {
		return "", err
	}
	if !force {
		if _, statErr := os.Stat(path); statErr == nil {
			return path, ErrSettingsExist
		}
	}

	settings := defaultSettings
	settings.LogFile = settings.LogFilePath()
	settings.InstanceID = uuid.New().String()
	return path, writeYAML(path, settings)
}

func writeYAML(path string, v any) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
