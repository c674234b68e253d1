// Package storage provides file-backed persistence for user preferences.
// Chat history is deliberately not persisted; settings are the only durable
// state the client keeps.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"docchat/src/models"
)

// settingsFile is the storage key for the settings snapshot, kept in sync
// with the schema version of the record it holds.
const settingsFile = "docqa_settings_v1.json"

// SettingsRepository reads and writes one JSON settings record under a
// config directory.
type SettingsRepository struct {
	dir string
}

// NewSettingsRepository returns a repository rooted at dir.
func NewSettingsRepository(dir string) *SettingsRepository {
	return &SettingsRepository{dir: dir}
}

func (r *SettingsRepository) path() string {
	return filepath.Join(r.dir, settingsFile)
}

// Load unmarshals the persisted record over dst. Missing fields keep
// whatever dst already holds, so loading over the defaults gives a
// forward-compatible schema merge. A missing file leaves dst untouched.
func (r *SettingsRepository) Load(dst any) error {
	data, err := os.ReadFile(r.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &models.StorageError{Message: "failed to read settings file", Err: err}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &models.StorageError{Message: "failed to parse settings file", Err: err}
	}
	return nil
}

// Save overwrites the persisted record with v.
func (r *SettingsRepository) Save(v any) error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return &models.StorageError{Message: "failed to create config directory", Err: err}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &models.StorageError{Message: "failed to marshal settings", Err: err}
	}
	if err := os.WriteFile(r.path(), data, 0644); err != nil {
		return &models.StorageError{Message: "failed to write settings file", Err: err}
	}
	return nil
}
