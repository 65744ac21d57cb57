package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"themecoder/app/interfaces"
)

func newTestService(t *testing.T) (*SettingsService, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	return NewSettingsService(path), path
}

func TestGetSettings_MissingFileReturnsDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)
	assert.True(t, got.NoHeaderRow)
	assert.Equal(t, "#", got.GroupMarker)
}

func TestGetSettings_OverlaysPresentKeysOnly(t *testing.T) {
	svc, path := newTestService(t)
	doc := "identifier_policy: ordinal\nno_header_row: false\nmax_directory_files: 20\nunknown_key: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	got, err := svc.GetSettings()
	require.NoError(t, err)

	assert.Equal(t, "ordinal", got.IdentifierPolicy)
	assert.False(t, got.NoHeaderRow)
	assert.Equal(t, 20, got.MaxDirectoryFiles)
	assert.Equal(t, "legacy", got.ColumnMode)
	assert.Equal(t, ";", got.CodeSeparator)
}

func TestGetSettings_WrongTypesIgnored(t *testing.T) {
	svc, path := newTestService(t)
	require.NoError(t, os.WriteFile(path, []byte("no_header_row: \"nope\"\nmax_directory_files: 0\n"), 0o644))

	got, err := svc.GetSettings()
	require.NoError(t, err)
	assert.True(t, got.NoHeaderRow)
	assert.Equal(t, 500, got.MaxDirectoryFiles)
}

func TestGetSettings_InvalidValueFails(t *testing.T) {
	svc, path := newTestService(t)
	require.NoError(t, os.WriteFile(path, []byte("column_mode: sideways\n"), 0o644))

	got, err := svc.GetSettings()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ColumnMode")
	assert.Equal(t, Defaults(), got)
}

func TestGetSettings_MalformedYAML(t *testing.T) {
	svc, path := newTestService(t)
	require.NoError(t, os.WriteFile(path, []byte("::: not yaml"), 0o644))

	_, err := svc.GetSettings()
	assert.Error(t, err)
}

func TestSaveSettings_WritesOnlyNonDefaults(t *testing.T) {
	svc, path := newTestService(t)

	in := Defaults()
	in.ColumnMode = "extended"
	in.CodeSeparator = "|"
	require.NoError(t, svc.SaveSettings(in))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, yaml.Unmarshal(b, &m))
	assert.Equal(t, map[string]any{"column_mode": "extended", "code_separator": "|"}, m)

	got, err := svc.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestSaveSettings_DefaultsRemoveFile(t *testing.T) {
	svc, path := newTestService(t)
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o644))

	require.NoError(t, svc.SaveSettings(Defaults()))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveSettings_RejectsInvalid(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"policy", func(s *Settings) { s.IdentifierPolicy = "hash" }},
		{"marker with space", func(s *Settings) { s.GroupMarker = "# " }},
		{"empty separator", func(s *Settings) { s.CodeSeparator = "" }},
		{"log level", func(s *Settings) { s.LogLevel = "loud" }},
		{"instance id", func(s *Settings) { s.InstanceID = "not-a-uuid" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Defaults()
			tt.mutate(&in)
			assert.Error(t, svc.SaveSettings(in))
		})
	}
}

func TestEnsureInstanceID(t *testing.T) {
	svc, _ := newTestService(t)

	id, err := svc.EnsureInstanceID()
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	again, err := svc.EnsureInstanceID()
	require.NoError(t, err)
	assert.Equal(t, id, again)

	// Saving other changes keeps the ID
	in := Defaults()
	in.LogLevel = "warn"
	require.NoError(t, svc.SaveSettings(in))
	got, err := svc.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, id, got.InstanceID)
}

func TestWriteDefaults(t *testing.T) {
	svc, path := newTestService(t)

	written, err := svc.WriteDefaults(false)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	got, err := svc.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "content", got.IdentifierPolicy)
	assert.NotEmpty(t, got.InstanceID)

	_, err = svc.WriteDefaults(false)
	assert.ErrorIs(t, err, ErrSettingsExist)
	_, err = svc.WriteDefaults(true)
	assert.NoError(t, err)
}

func TestSettingsConversions(t *testing.T) {
	s := Defaults()
	s.IdentifierPolicy = "ordinal"
	s.ColumnMode = "extended"
	s.NoHeaderRow = false
	s.MaxDirectoryFiles = 7

	policy, err := s.Policy()
	require.NoError(t, err)
	assert.Equal(t, interfaces.IdentifierOrdinal, policy)

	mode, err := s.Mode()
	require.NoError(t, err)
	assert.Equal(t, interfaces.ColumnModeExtended, mode)

	opts := s.FileOptions()
	assert.False(t, opts.NoHeaderRow)
	assert.Equal(t, 7, opts.MaxFiles)

	assert.Equal(t, filepath.Join(os.TempDir(), "themecoder.log"), s.LogFilePath())
	s.LogFile = "/var/log/tc.log"
	assert.Equal(t, "/var/log/tc.log", s.LogFilePath())
}
