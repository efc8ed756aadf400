package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trishare "github.com/BackendStack21/trishare-go"
)

func TestGetProfile(t *testing.T) {
	for _, p := range Profiles() {
		cfg, err := GetProfile(p)
		require.NoError(t, err, "profile %s", p)
		assert.NoError(t, ValidateConfig(cfg), "profile %s", p)
	}

	cfg, err := GetProfile("")
	require.NoError(t, err)
	assert.Equal(t, trishare.DefaultConfig(), cfg)
	assert.False(t, cfg.Sharing.Parallel)

	_, err = GetProfile("INVALID")
	assert.ErrorIs(t, err, trishare.ErrInvalidInput)
}

func TestValidateConfig(t *testing.T) {
	base := StandardConfig

	tests := []struct {
		name   string
		mutate func(*trishare.Config)
	}{
		{"share count", func(c *trishare.Config) { c.ShareCount = 5 }},
		{"zero block size", func(c *trishare.Config) { c.Sharing.BlockSize = 0 }},
		{"negative threshold", func(c *trishare.Config) { c.Sharing.ParallelThreshold = -1 }},
		{"negative iteration time", func(c *trishare.Config) { c.Temporal.MinIterationTime = -time.Second }},
		{"negative memory", func(c *trishare.Config) { c.Temporal.MemorySize = -1 }},
		{"negative steps", func(c *trishare.Config) { c.Temporal.VerificationSteps = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.ErrorIs(t, ValidateConfig(cfg), trishare.ErrInvalidInput)
		})
	}
}

func TestParseConfig_Overrides(t *testing.T) {
	data := []byte(`
profile: imaging
sharing:
  block_size: 32768
temporal:
  min_iteration_time: 25ms
  enforce_timing: false
`)
	cfg, err := ParseConfig(data)
	require.NoError(t, err)

	assert.True(t, cfg.Sharing.Parallel, "inherited from profile")
	assert.Equal(t, 64*1024, cfg.Sharing.ParallelThreshold)
	assert.Equal(t, 32768, cfg.Sharing.BlockSize)
	assert.Equal(t, 25*time.Millisecond, cfg.Temporal.MinIterationTime)
	assert.False(t, cfg.Temporal.EnforceTiming)
	assert.Equal(t, trishare.ShareCount, cfg.ShareCount)
}

func TestParseConfig_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown profile":  "profile: turbo\n",
		"malformed yaml":   "sharing: [\n",
		"bad duration":     "temporal:\n  min_iteration_time: soon\n",
		"invalid override": "sharing:\n  block_size: 0\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(doc))
			assert.ErrorIs(t, err, trishare.ErrInvalidInput)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trishare.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile: fast\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, FastConfig, cfg)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, trishare.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDescribe(t *testing.T) {
	s := Describe(ImagingConfig)
	assert.Contains(t, s, "parallel=true")
	assert.Contains(t, s, "block=16384")
	assert.Contains(t, s, "min_iter=50ms")
}
