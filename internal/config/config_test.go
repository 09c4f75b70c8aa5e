package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Egor213/LogTrail/internal/config"
	"github.com/Egor213/LogTrail/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
app:
  name: triage
  version: 1.2.3
log:
  level: debug
classifier:
  mode: content
  default: quiet
  rules:
    - label: breaker
      phrases: ["circuit-breaker"]
    - label: error
      phrases: ["error", "failed"]
output:
  format: table
kafka:
  brokers: ["localhost:9092"]
  topic: incidents
  write_timeout: 3s
`

func TestNew_FromFile(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlConfig), 0o600))
	t.Setenv("APP_CONFIG_PATH", path)

	cfg, err := config.New()
	require.NoError(t, err)

	assert.Equal(t, "triage", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 3*time.Second, cfg.Kafka.WriteTimeout)
	assert.Equal(t, "json", cfg.Kafka.Encoding)
	assert.True(t, cfg.KafkaEnabled())

	table, err := cfg.Table()
	require.NoError(t, err)
	assert.Equal(t, "breaker", table.Label(domain.LogEntry{Message: "circuit-breaker error"}))
	assert.Equal(t, "error", table.Label(domain.LogEntry{Message: "job failed"}))
	assert.Equal(t, "quiet", table.Label(domain.LogEntry{Message: "fine"}))
}

func TestNew_EnvOnly(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CLASSIFIER_PRESET", "trading")

	cfg, err := config.New()
	require.NoError(t, err)

	assert.Equal(t, "logtrail", cfg.App.Name)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "block", cfg.Output.Format)
	assert.False(t, cfg.KafkaEnabled())

	table, err := cfg.Table()
	require.NoError(t, err)
	assert.Equal(t, "🔴 Trigger", table.Label(domain.LogEntry{Message: "market sell order"}))
}

func TestNew_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OUTPUT_FORMAT=json\n"), 0o600))
	t.Setenv("APP_CONFIG_PATH", filepath.Join(dir, "missing.yaml"))
	t.Cleanup(func() { os.Unsetenv("OUTPUT_FORMAT") })

	cfg, err := config.New()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
