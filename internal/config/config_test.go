package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, 400*time.Millisecond, cfg.GeneratorMinDelay)
	assert.Equal(t, 1200*time.Millisecond, cfg.GeneratorMaxDelay)
	assert.Equal(t, 2*time.Second, cfg.RuleTestDelay)
	assert.Equal(t, 15*time.Second, cfg.HTTPWriteTimeout)
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("STORE_DRIVER=memory\nPORT=9090\nGENERATOR_MAX_DELAY=2s\n"), 0644))
	t.Setenv("PORT", "7070")
	t.Cleanup(func() {
		os.Unsetenv("STORE_DRIVER")
		os.Unsetenv("GENERATOR_MAX_DELAY")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, 2*time.Second, cfg.GeneratorMaxDelay)
	assert.Equal(t, "memory", cfg.Store().Driver)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)

	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("GENERATOR_MIN_DELAY", "2s")
	t.Setenv("GENERATOR_MAX_DELAY", "1s")
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoad_DelaysMustFitWriteTimeout(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Setenv("RULE_TEST_DELAY", "15s")
	_, err := Load(missing)
	assert.ErrorContains(t, err, "RULE_TEST_DELAY")

	t.Setenv("HTTP_WRITE_TIMEOUT", "30s")
	cfg, err := Load(missing)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.RuleTestDelay)

	t.Setenv("GENERATOR_MAX_DELAY", "45s")
	_, err = Load(missing)
	assert.ErrorContains(t, err, "GENERATOR_MAX_DELAY")
}
