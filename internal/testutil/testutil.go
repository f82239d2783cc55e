// Package testutil provides shared test helpers for creating config files and word list fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WordListHeader is the header row of a published word list.
const WordListHeader = "word\tmeaning\texplanation\texample\tpronunciation"

// WriteWordList writes rows under WordListHeader to name in dir and returns
// the path of the file.
func WriteWordList(t *testing.T, dir, name string, rows ...string) string {
	t.Helper()

	content := WordListHeader + "\n"
	if len(rows) > 0 {
		content += strings.Join(rows, "\n") + "\n"
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// SetupTestConfig creates a config file reading the word list at sourcePath
// and keeping preferences under tmpDir. extra is appended to the file as is.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir, sourcePath, extra string) string {
	t.Helper()

	prefsDir := filepath.Join(tmpDir, "preferences")
	require.NoError(t, os.MkdirAll(prefsDir, 0755))

	configContent := "source:\n" +
		"  url: " + sourcePath + "\n" +
		"preferences:\n" +
		"  backend: yaml\n" +
		"  file: " + filepath.Join(prefsDir, "preferences.yml") + "\n" +
		extra

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}
