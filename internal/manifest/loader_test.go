package manifest

import (
	"os"
	"path/filepath"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
}

func TestLoader_Load_FileNotFound(t *testing.T) {
	loader := NewLoader()

	m, err := loader.Load("/nonexistent/path/edgeship.toml")

	assert.Error(t, err)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoader_Load_ValidTOML(t *testing.T) {
	loader := NewLoader(WithEnvOverlay(nil))

	path := writeManifest(t, `
name = "worker"
type = "plain"
account_id = "acct-1"
workers_dev = true

[[kv-namespaces]]
id = "ns-1"
binding = "CACHE"

[env.production]
route = "example.com/*"
zone_id = "zone-1"
`)

	m, err := loader.Load(path)

	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "worker", m.Name)
	assert.Equal(t, TargetTypePlain, m.Type)
	assert.Equal(t, "acct-1", m.AccountID)
	require.NotNil(t, m.WorkersDev)
	assert.True(t, *m.WorkersDev)
	require.Len(t, m.KvNamespaces, 1)
	assert.Equal(t, "ns-1", m.KvNamespaces[0].ID)
	assert.Equal(t, "CACHE", m.KvNamespaces[0].Binding)
	require.Contains(t, m.Env, "production")
	assert.Equal(t, "example.com/*", m.Env["production"].Route)
	assert.Equal(t, "zone-1", m.Env["production"].ZoneID)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	loader := NewLoader(WithEnvOverlay(nil))

	path := writeManifest(t, `name = "worker`)

	m, err := loader.Load(path)

	assert.Error(t, err)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoader_Load_UnknownField(t *testing.T) {
	loader := NewLoader(WithEnvOverlay(nil))

	path := writeManifest(t, `
name = "worker"
not_a_field = "nope"
`)

	m, err := loader.Load(path)

	assert.Error(t, err)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoader_Load_UnknownTargetType(t *testing.T) {
	loader := NewLoader(WithEnvOverlay(nil))

	path := writeManifest(t, `
name = "worker"
type = "rust"
`)

	m, err := loader.Load(path)

	assert.Error(t, err)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoader_Load_MisplacedKvNamespaces(t *testing.T) {
	loader := NewLoader(WithEnvOverlay(nil))

	path := writeManifest(t, `
name = "worker"

[site]
bucket = "./public"

[[site.kv-namespaces]]
id = "ns-1"
binding = "CACHE"
`)

	m, err := loader.Load(path)

	assert.Error(t, err)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrMisplacedKvNamespaces)
}

func TestLoader_Load_DuplicateNames(t *testing.T) {
	loader := NewLoader(WithEnvOverlay(nil))

	path := writeManifest(t, `
name = "worker"

[env.production]
name = "worker"
`)

	m, err := loader.Load(path)

	assert.Error(t, err)
	assert.Nil(t, m)
	var conflict *NameConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"worker"}, conflict.Duplicates)
}

func TestLoader_Load_DefaultType(t *testing.T) {
	loader := NewLoader(WithEnvOverlay(nil))

	path := writeManifest(t, `name = "worker"`)

	m, err := loader.Load(path)

	require.NoError(t, err)
	assert.Equal(t, DefaultTargetType, m.Type)
}

func TestLoadFromBytes_UnsupportedExt(t *testing.T) {
	loader := NewLoader(WithEnvOverlay(nil))

	m, err := loader.LoadFromBytes([]byte("name = \"worker\""), ".ini")

	assert.Error(t, err)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrUnsupportedExt)
}

func TestLoadFromBytes_JSON(t *testing.T) {
	loader := NewLoader(WithEnvOverlay(nil))

	m, err := loader.LoadFromBytes([]byte(`{"name": "worker", "workers_dev": true}`), ".json")

	require.NoError(t, err)
	assert.Equal(t, "worker", m.Name)
	require.NotNil(t, m.WorkersDev)
	assert.True(t, *m.WorkersDev)
}

func TestLoadFromBytes_YAML(t *testing.T) {
	loader := NewLoader(WithEnvOverlay(nil))

	m, err := loader.LoadFromBytes([]byte("name: worker\nroute: example.com/*\nzone_id: zone-1\naccount_id: acct-1\n"), ".yaml")

	require.NoError(t, err)
	assert.Equal(t, "worker", m.Name)
	assert.Equal(t, "example.com/*", m.Route)
}

func TestLoader_EnvOverlayOverridesScalars(t *testing.T) {
	t.Setenv(EnvPrefix+"ACCOUNT_ID", "acct-from-env")
	t.Setenv(EnvPrefix+"ZONE_ID", "zone-from-env")

	loader := NewLoader()

	path := writeManifest(t, `
name = "worker"
account_id = "acct-from-file"
`)

	m, err := loader.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "acct-from-env", m.AccountID)
	assert.Equal(t, "zone-from-env", m.ZoneID)
	assert.Equal(t, "worker", m.Name)
}

func TestLoader_RoundTrip(t *testing.T) {
	loader := NewLoader(WithEnvOverlay(nil))

	path := writeManifest(t, `
name = "worker"
type = "webpack"
account_id = "acct-1"
zone_id = "zone-1"
route = "example.com/*"
webpack_config = "webpack.config.js"
private = false

[site]
bucket = "./public"
entry-point = "workers-site"

[[kv-namespaces]]
id = "ns-1"
binding = "CACHE"
bucket = "b"

[env.staging]
name = "worker-stg"
workers_dev = true

[env.production]
routes = ["a.example.com/*", "b.example.com/*"]
zone_id = "zone-2"
`)

	first, err := loader.Load(path)
	require.NoError(t, err)

	data, err := toml.Marshal(first.Tree())
	require.NoError(t, err)

	second, err := loader.LoadFromBytes(data, ".toml")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
