package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "", cfg.Output)
	assert.False(t, cfg.Sort)
	assert.False(t, cfg.Recurse)
	assert.Equal(t, []string{"**/*.zig"}, cfg.Include)
	assert.Empty(t, cfg.Exclude)
	assert.False(t, cfg.Watch.Enabled)
	assert.Equal(t, 250, cfg.Watch.DebounceMs)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.kdl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFullConfig(t *testing.T) {
	content := `
output "tags"
sort true
recurse true
include "src/**/*.zig" "lib/**/*.zig"
exclude "zig-cache/**"
watch {
    enabled true
    debounce_ms 100
}
`
	path := filepath.Join(t.TempDir(), ".ztags.kdl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tags", cfg.Output)
	assert.True(t, cfg.Sort)
	assert.True(t, cfg.Recurse)
	assert.Equal(t, []string{"src/**/*.zig", "lib/**/*.zig"}, cfg.Include)
	assert.Equal(t, []string{"zig-cache/**"}, cfg.Exclude)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, 100, cfg.Watch.DebounceMs)
	assert.NoError(t, cfg.Validate())
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ztags.kdl")
	require.NoError(t, os.WriteFile(path, []byte(`sort true`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Sort)
	assert.Equal(t, []string{"**/*.zig"}, cfg.Include)
	assert.Equal(t, 250, cfg.Watch.DebounceMs)
}

func TestLoadBlockFormPatternList(t *testing.T) {
	content := `
include {
    "src/**/*.zig"
    "lib/**/*.zig"
}
exclude {
    "zig-cache/**"
}
`
	path := filepath.Join(t.TempDir(), ".ztags.kdl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/**/*.zig", "lib/**/*.zig"}, cfg.Include)
	assert.Equal(t, []string{"zig-cache/**"}, cfg.Exclude)
}

func TestLoadUnknownNodesIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ztags.kdl")
	require.NoError(t, os.WriteFile(path, []byte("future_setting \"x\"\nsort true"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Sort)
}

func TestLoadMalformedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ztags.kdl")
	require.NoError(t, os.WriteFile(path, []byte(`watch {`), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("rejects non-positive debounce", func(t *testing.T) {
		cfg := Default()
		cfg.Watch.DebounceMs = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects invalid glob", func(t *testing.T) {
		cfg := Default()
		cfg.Exclude = []string{"["}
		assert.Error(t, cfg.Validate())
	})

	t.Run("watch requires output", func(t *testing.T) {
		cfg := Default()
		cfg.Watch.Enabled = true
		assert.Error(t, cfg.Validate())

		cfg.Output = "tags"
		assert.NoError(t, cfg.Validate())
	})
}
