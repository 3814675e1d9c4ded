package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteConfigFile writes cfgText to a config.toml in a fresh temp directory
// and returns its path.
func WriteConfigFile(t testing.TB, cfgText string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(cfgText), 0o644))
	return path
}
