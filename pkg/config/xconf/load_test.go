package xconf_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/tracekit/pkg/config/xconf"
)

const testYAML = `
service: comfy-render
environment: prod
version: "2.1.0"
agent_endpoint: collector:4317
trace_enabled: true
sample_rate: 0.25
stats_interval: 30s
log_level: debug
log_format: json
`

const testJSON = `{
  "service": "comfy-render",
  "sample_rate": 0.5
}`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	s := xconf.DefaultSettings()
	assert.Equal(t, "tracekit", s.Service)
	assert.Equal(t, "localhost:4317", s.AgentEndpoint)
	assert.True(t, s.TraceEnabled)
	assert.InDelta(t, 1.0, s.SampleRate, 0)
	assert.Equal(t, 60*time.Second, s.StatsInterval)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "text", s.LogFormat)
	assert.NoError(t, s.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "tracekit.yaml", testYAML)

	s, err := xconf.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "comfy-render", s.Service)
	assert.Equal(t, "prod", s.Environment)
	assert.Equal(t, "2.1.0", s.Version)
	assert.Equal(t, "collector:4317", s.AgentEndpoint)
	assert.True(t, s.TraceEnabled)
	assert.InDelta(t, 0.25, s.SampleRate, 0)
	assert.Equal(t, 30*time.Second, s.StatsInterval)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "json", s.LogFormat)
}

func TestLoad_JSON_PartialFallsBackToDefaults(t *testing.T) {
	path := writeConfig(t, "tracekit.json", testJSON)

	s, err := xconf.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "comfy-render", s.Service)
	assert.InDelta(t, 0.5, s.SampleRate, 0)
	// 未出现的字段保持默认值
	assert.Equal(t, "localhost:4317", s.AgentEndpoint)
	assert.Equal(t, 60*time.Second, s.StatsInterval)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("unknown extension", func(t *testing.T) {
		path := writeConfig(t, "tracekit.toml", "service = 'x'")
		_, err := xconf.Load(path)
		assert.ErrorIs(t, err, xconf.ErrUnsupportedFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := xconf.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, xconf.ErrLoadFailed)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "bad.yaml", "service: [unclosed")
		_, err := xconf.Load(path)
		assert.ErrorIs(t, err, xconf.ErrParseFailed)
	})
}

func TestLoadBytes(t *testing.T) {
	t.Run("invalid format", func(t *testing.T) {
		_, err := xconf.LoadBytes([]byte("{}"), xconf.Format("toml"))
		assert.ErrorIs(t, err, xconf.ErrUnsupportedFormat)
	})

	t.Run("empty data uses defaults", func(t *testing.T) {
		s, err := xconf.LoadBytes(nil, xconf.FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, xconf.DefaultSettings(), s)
	})

	t.Run("invalid sample rate rejected", func(t *testing.T) {
		_, err := xconf.LoadBytes([]byte("sample_rate: 1.5"), xconf.FormatYAML)
		assert.ErrorIs(t, err, xconf.ErrInvalidSampleRate)
	})

	t.Run("non-positive interval rejected", func(t *testing.T) {
		_, err := xconf.LoadBytes([]byte("stats_interval: -5s"), xconf.FormatYAML)
		assert.ErrorIs(t, err, xconf.ErrInvalidStatsInterval)
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "tracekit.yaml", testYAML)

	t.Setenv("TRACEKIT_SERVICE", "env-service")
	t.Setenv("TRACEKIT_TRACE_ENABLED", "false")
	t.Setenv("TRACEKIT_SAMPLE_RATE", "0.75")
	t.Setenv("TRACEKIT_STATS_INTERVAL", "2m")

	s, err := xconf.Load(path)
	require.NoError(t, err)
	// 环境变量优先于文件
	assert.Equal(t, "env-service", s.Service)
	assert.False(t, s.TraceEnabled)
	assert.InDelta(t, 0.75, s.SampleRate, 0)
	assert.Equal(t, 2*time.Minute, s.StatsInterval)
	// 文件值在未覆盖的字段上保留
	assert.Equal(t, "prod", s.Environment)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("TRACEKIT_ENVIRONMENT", "staging")
	t.Setenv("TRACEKIT_VERSION", "3.0.0")
	t.Setenv("TRACEKIT_AGENT_ENDPOINT", "otel:4317")
	t.Setenv("TRACEKIT_STATS_SCHEDULE", "@every 30s")
	t.Setenv("TRACEKIT_LOG_LEVEL", "warn")
	t.Setenv("TRACEKIT_LOG_FORMAT", "json")

	s, err := xconf.LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "staging", s.Environment)
	assert.Equal(t, "3.0.0", s.Version)
	assert.Equal(t, "otel:4317", s.AgentEndpoint)
	assert.Equal(t, "@every 30s", s.StatsSchedule)
	assert.Equal(t, "warn", s.LogLevel)
	assert.Equal(t, "json", s.LogFormat)
}

func TestLoadEnv_MalformedValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad bool", "TRACEKIT_TRACE_ENABLED", "yes-please"},
		{"bad float", "TRACEKIT_SAMPLE_RATE", "lots"},
		{"bad duration", "TRACEKIT_STATS_INTERVAL", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := xconf.LoadEnv()
			assert.ErrorIs(t, err, xconf.ErrParseFailed, "配置错误应在启动时暴露")
		})
	}
}

func TestLoad_EmptyPathUsesEnvOnly(t *testing.T) {
	t.Setenv("TRACEKIT_SERVICE", "env-only")

	s, err := xconf.Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-only", s.Service)
}
