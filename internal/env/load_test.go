package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("SOLAR_KEEP", "from-env")
	path := write(t, `
# scene settings
SOLAR_LEVEL=debug
export SOLAR_FORMAT="json"
SOLAR_QUOTED='a b'
SOLAR_KEEP=from-file
not a pair
`)
	// t.Setenv registers cleanup for keys it sets; do the same for the ones Load sets.
	for _, k := range []string{"SOLAR_LEVEL", "SOLAR_FORMAT", "SOLAR_QUOTED"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	n, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "debug", os.Getenv("SOLAR_LEVEL"))
	assert.Equal(t, "json", os.Getenv("SOLAR_FORMAT"))
	assert.Equal(t, "a b", os.Getenv("SOLAR_QUOTED"))
	assert.Equal(t, "from-env", os.Getenv("SOLAR_KEEP"))
}

func TestLoadMissingFile(t *testing.T) {
	n, err := Load(filepath.Join(t.TempDir(), "absent"))
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoadMissingKey(t *testing.T) {
	_, err := Load(write(t, "=value\n"))
	assert.ErrorContains(t, err, ":1: missing key")
}
