package settings

import (
	"os"
	"path/filepath"
	"testing"

	"docchat/src/services/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return NewStore(storage.NewSettingsRepository(dir)), dir
}

func TestDefaultsMatchReferenceRecord(t *testing.T) {
	d := Defaults()
	assert.Equal(t, StyleBalanced, d.AnswerStyle)
	assert.Equal(t, 0.2, d.Temperature)
	assert.Equal(t, 6, d.TopK)
	assert.True(t, d.ShowSources)
	assert.True(t, d.AutoSummarize)
	assert.True(t, d.AutoScroll)
	assert.False(t, d.ShowTimestamps)
	assert.Equal(t, ThemeDark, d.Theme)
	assert.False(t, d.CompactMode)
}

func TestUpdate_ChangesOnlyPatchedFields(t *testing.T) {
	s, _ := newTestStore(t)

	temp := 0.8
	require.NoError(t, s.Update(Patch{Temperature: &temp}))

	got := s.Current()
	want := Defaults()
	want.Temperature = 0.8
	assert.Equal(t, want, got)
}

func TestUpdate_PersistsMergedRecord(t *testing.T) {
	s, dir := newTestStore(t)

	topK := 9
	dark := ThemeLight
	require.NoError(t, s.Update(Patch{TopK: &topK, Theme: &dark}))

	// A fresh store over the same directory sees the saved snapshot.
	reloaded := NewStore(storage.NewSettingsRepository(dir))
	assert.Equal(t, 9, reloaded.Current().TopK)
	assert.Equal(t, ThemeLight, reloaded.Current().Theme)
	assert.Equal(t, 0.2, reloaded.Current().Temperature, "unpatched field keeps default")
}

func TestReset_RestoresDefaults(t *testing.T) {
	s, dir := newTestStore(t)

	compact := true
	require.NoError(t, s.Update(Patch{CompactMode: &compact}))
	require.NoError(t, s.Reset())

	assert.Equal(t, Defaults(), s.Current())

	reloaded := NewStore(storage.NewSettingsRepository(dir))
	assert.Equal(t, Defaults(), reloaded.Current())
}

func TestLoad_FillsMissingFieldsFromDefaults(t *testing.T) {
	dir := t.TempDir()
	// Old snapshot written before newer fields existed.
	err := os.WriteFile(filepath.Join(dir, "docqa_settings_v1.json"),
		[]byte(`{"temperature": 0.9, "theme": "light"}`), 0644)
	require.NoError(t, err)

	s := NewStore(storage.NewSettingsRepository(dir))
	got := s.Current()
	assert.Equal(t, 0.9, got.Temperature)
	assert.Equal(t, ThemeLight, got.Theme)
	assert.Equal(t, 6, got.TopK, "missing fields come from defaults")
	assert.Equal(t, StyleBalanced, got.AnswerStyle)
}

func TestLoad_CorruptSnapshotFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "docqa_settings_v1.json"),
		[]byte(`{not json`), 0644)
	require.NoError(t, err)

	s := NewStore(storage.NewSettingsRepository(dir))
	assert.Equal(t, Defaults(), s.Current())
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Equal(t, Defaults(), s.Current())
}
