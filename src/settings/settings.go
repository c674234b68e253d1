// Package settings holds the user preference record and its store. The
// persisted snapshot always reflects the last successful update; loading
// fills missing fields from the defaults so older snapshots keep working
// after the schema grows.
package settings

import (
	"docchat/src/services/storage"
)

// Answer style options.
const (
	StyleConcise  = "concise"
	StyleBalanced = "balanced"
	StyleDetailed = "detailed"
)

// Theme options.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Settings is the flat user-preferences record.
type Settings struct {
	AnswerStyle    string  `json:"answerStyle"`
	Temperature    float64 `json:"temperature"`
	TopK           int     `json:"topK"`
	ShowSources    bool    `json:"showSources"`
	AutoSummarize  bool    `json:"autoSummarize"`
	AutoScroll     bool    `json:"autoScroll"`
	ShowTimestamps bool    `json:"showTimestamps"`
	Theme          string  `json:"theme"`
	CompactMode    bool    `json:"compactMode"`
}

// Defaults returns the default preference record.
func Defaults() Settings {
	return Settings{
		AnswerStyle:    StyleBalanced,
		Temperature:    0.2,
		TopK:           6,
		ShowSources:    true,
		AutoSummarize:  true,
		AutoScroll:     true,
		ShowTimestamps: false,
		Theme:          ThemeDark,
		CompactMode:    false,
	}
}

// Patch is a partial settings update; nil fields are left unchanged.
type Patch struct {
	AnswerStyle    *string
	Temperature    *float64
	TopK           *int
	ShowSources    *bool
	AutoSummarize  *bool
	AutoScroll     *bool
	ShowTimestamps *bool
	Theme          *string
	CompactMode    *bool
}

// Store owns the current settings value and keeps the persisted snapshot in
// sync with it.
type Store struct {
	value Settings
	repo  *storage.SettingsRepository
}

// NewStore loads the persisted record (merged over the defaults) from dir.
// A corrupt snapshot falls back to the defaults, like the reference client.
func NewStore(repo *storage.SettingsRepository) *Store {
	s := &Store{value: Defaults(), repo: repo}
	if err := repo.Load(&s.value); err != nil {
		s.value = Defaults()
	}
	return s
}

// Current returns the current settings value.
func (s *Store) Current() Settings {
	return s.value
}

// Update merges patch into the current value and persists the result. The
// in-memory value is updated even when persistence fails, matching the
// reference behavior of keeping the UI responsive over the snapshot.
func (s *Store) Update(patch Patch) error {
	next := s.value
	if patch.AnswerStyle != nil {
		next.AnswerStyle = *patch.AnswerStyle
	}
	if patch.Temperature != nil {
		next.Temperature = *patch.Temperature
	}
	if patch.TopK != nil {
		next.TopK = *patch.TopK
	}
	if patch.ShowSources != nil {
		next.ShowSources = *patch.ShowSources
	}
	if patch.AutoSummarize != nil {
		next.AutoSummarize = *patch.AutoSummarize
	}
	if patch.AutoScroll != nil {
		next.AutoScroll = *patch.AutoScroll
	}
	if patch.ShowTimestamps != nil {
		next.ShowTimestamps = *patch.ShowTimestamps
	}
	if patch.Theme != nil {
		next.Theme = *patch.Theme
	}
	if patch.CompactMode != nil {
		next.CompactMode = *patch.CompactMode
	}
	s.value = next
	return s.repo.Save(s.value)
}

// Set replaces the whole record and persists it.
func (s *Store) Set(v Settings) error {
	s.value = v
	return s.repo.Save(s.value)
}

// Reset restores and persists the defaults.
func (s *Store) Reset() error {
	return s.Set(Defaults())
}
