package tbucket

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadCacheConfigDecodesEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, writeFile(path, []byte(`{
		"caches": {
			"registry": {"ttl": "5m", "max_size": 10000, "options": {"reset_ttl_on_access": true}}
		}
	}`)))

	cc, err := LoadCacheConfig(path, "registry")
	require.NoError(t, err)
	require.Equal(t, 5*time.Minute, cc.TTL)
	require.Equal(t, 10000, cc.MaxSize)
	require.Equal(t, true, cc.Options["reset_ttl_on_access"])
}

func TestLoadCacheConfigMissingNameErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, writeFile(path, []byte(`{"caches": {}}`)))

	_, err := LoadCacheConfig(path, "missing")
	require.Error(t, err)
}

func TestLoadCacheConfigOmittedTTLStaysZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, writeFile(path, []byte(`{
		"caches": {"registry": {"max_size": 100}}
	}`)))

	cc, err := LoadCacheConfig(path, "registry")
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), cc.TTL)
}

func TestLoadCacheConfigInvalidTTLErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, writeFile(path, []byte(`{
		"caches": {"registry": {"ttl": "not-a-duration", "max_size": 100}}
	}`)))

	_, err := LoadCacheConfig(path, "registry")
	require.Error(t, err)
}
