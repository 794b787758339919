package xconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Format 定义配置文件格式。
type Format string

// 支持的配置格式。
const (
	// FormatYAML YAML 格式。
	FormatYAML Format = "yaml"

	// FormatJSON JSON 格式。
	FormatJSON Format = "json"
)

// koanf 路径分隔符。扁平的 Settings 结构用不到层级，仍与 koanf 惯例保持一致。
const delim = "."

// Load 从配置文件加载 Settings，再应用 TRACEKIT_* 环境变量覆盖。
// 根据扩展名自动检测格式（.yaml/.yml 或 .json）。
//
// path 为空时跳过文件，等同于 LoadEnv()。
func Load(path string) (Settings, error) {
	if path == "" {
		return LoadEnv()
	}

	format, err := detectFormat(path)
	if err != nil {
		return Settings{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	return LoadBytes(data, format)
}

// LoadBytes 从字节数据加载 Settings，需显式指定格式，
// 再应用 TRACEKIT_* 环境变量覆盖。空数据等同于只用默认值加环境变量。
func LoadBytes(data []byte, format Format) (Settings, error) {
	if !isValidFormat(format) {
		return Settings{}, ErrUnsupportedFormat
	}

	settings := DefaultSettings()

	if len(data) > 0 {
		k := koanf.New(delim)
		if err := loadData(k, data, format); err != nil {
			return Settings{}, err
		}
		if err := k.Unmarshal("", &settings); err != nil {
			return Settings{}, fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
		}
	}

	if err := applyEnv(&settings); err != nil {
		return Settings{}, err
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// LoadEnv 只用内置默认值加环境变量构建 Settings。
func LoadEnv() (Settings, error) {
	settings := DefaultSettings()
	if err := applyEnv(&settings); err != nil {
		return Settings{}, err
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// =============================================================================
// 内部辅助函数
// =============================================================================

// detectFormat 根据文件扩展名检测配置格式。
func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %s", ErrUnsupportedFormat, ext)
	}
}

// isValidFormat 检查格式是否有效。
func isValidFormat(format Format) bool {
	switch format {
	case FormatYAML, FormatJSON:
		return true
	default:
		return false
	}
}

// loadData 加载数据到 koanf 实例。
func loadData(k *koanf.Koanf, data []byte, format Format) error {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return ErrUnsupportedFormat
	}

	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return nil
}

// applyEnv 应用 TRACEKIT_* 环境变量覆盖。解析失败返回错误而非静默忽略，
// 配置错误应在启动时暴露。
func applyEnv(s *Settings) error {
	if v, ok := os.LookupEnv("TRACEKIT_SERVICE"); ok {
		s.Service = v
	}
	if v, ok := os.LookupEnv("TRACEKIT_ENVIRONMENT"); ok {
		s.Environment = v
	}
	if v, ok := os.LookupEnv("TRACEKIT_VERSION"); ok {
		s.Version = v
	}
	if v, ok := os.LookupEnv("TRACEKIT_AGENT_ENDPOINT"); ok {
		s.AgentEndpoint = v
	}
	if v, ok := os.LookupEnv("TRACEKIT_TRACE_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: TRACEKIT_TRACE_ENABLED=%q: %w", ErrParseFailed, v, err)
		}
		s.TraceEnabled = enabled
	}
	if v, ok := os.LookupEnv("TRACEKIT_SAMPLE_RATE"); ok {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: TRACEKIT_SAMPLE_RATE=%q: %w", ErrParseFailed, v, err)
		}
		s.SampleRate = rate
	}
	if v, ok := os.LookupEnv("TRACEKIT_STATS_INTERVAL"); ok {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: TRACEKIT_STATS_INTERVAL=%q: %w", ErrParseFailed, v, err)
		}
		s.StatsInterval = interval
	}
	if v, ok := os.LookupEnv("TRACEKIT_STATS_SCHEDULE"); ok {
		s.StatsSchedule = v
	}
	if v, ok := os.LookupEnv("TRACEKIT_LOG_LEVEL"); ok {
		s.LogLevel = v
	}
	if v, ok := os.LookupEnv("TRACEKIT_LOG_FORMAT"); ok {
		s.LogFormat = v
	}
	return nil
}
