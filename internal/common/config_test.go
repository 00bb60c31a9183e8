package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 8085, config.Server.Port)
	assert.Equal(t, "hf", config.LLM.Provider)
	assert.NotEmpty(t, config.LLM.Models, "at least one model must be configured by default")
	assert.Equal(t, 15000, config.LLM.ContextCeiling)
	require.NoError(t, config.Validate())
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "responsa.toml")
	content := `
environment = "production"

[server]
port = 9090

[llm]
provider = "hf"
models = ["custom-model"]

[sweeper]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, []string{"custom-model"}, config.LLM.Models)
	assert.False(t, config.Sweeper.Enabled)

	// Untouched sections keep their defaults
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 25, config.Upload.MaxSizeMB)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RESPONSA_PORT", "7070")
	t.Setenv("RESPONSA_LLM_MODELS", "model-a, model-b")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, []string{"model-a", "model-b"}, config.LLM.Models)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/responsa.toml")
	assert.Error(t, err)
}

func TestLoadConfig_InvalidProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "responsa.toml")
	require.NoError(t, os.WriteFile(path, []byte("[llm]\nprovider = \"unknown\"\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
