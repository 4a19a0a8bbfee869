package service

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rushteam/powerrank/core"
	"github.com/rushteam/powerrank/pkg/log"
	"github.com/rushteam/powerrank/power"
)

// 默认值
const (
	DefaultRedisAddr   = "localhost:6379"
	DefaultKeyPrefix   = "powerrank"
	DefaultLogLevel    = log.LevelInfo
	DefaultConcurrency = 4
)

// 配置错误
var (
	ErrInvalidConcurrency = errors.New("concurrency must be >= 1")
	ErrInvalidTimeout     = errors.New("timeout must be > 0")
	ErrInvalidLogLevel    = errors.New("log_level must be one of debug, info, warn, error")
)

// Config 是服务与命令行的运行配置。
type Config struct {
	RedisAddr string `koanf:"redis_addr"`
	RedisDB   int    `koanf:"redis_db"`
	KeyPrefix string `koanf:"key_prefix"`

	LogLevel string        `koanf:"log_level"`
	Timeout  time.Duration `koanf:"timeout"`

	MaxIterations int     `koanf:"max_iterations"`
	Tolerance     float64 `koanf:"tolerance"`

	// Concurrency 是 RankScopes 同时计算的范围数量上限
	Concurrency int `koanf:"concurrency"`
	// Publish 为 true 时把排名写回存储的有序集合
	Publish bool `koanf:"publish"`
	// PipelineFile 可选，节点链的 YAML 配置
	PipelineFile string `koanf:"pipeline_file"`
}

// DefaultConfig 返回全部取默认值的配置。
func DefaultConfig() *Config {
	defaults := &core.DefaultRankConfig{}
	return &Config{
		RedisAddr:     DefaultRedisAddr,
		KeyPrefix:     DefaultKeyPrefix,
		LogLevel:      DefaultLogLevel,
		Timeout:       defaults.DefaultTimeout(),
		MaxIterations: defaults.DefaultMaxIterations(),
		Tolerance:     defaults.DefaultTolerance(),
		Concurrency:   DefaultConcurrency,
	}
}

// LoadConfig 读取可选的 YAML 配置文件，再用 POWERRANK_* 环境变量覆盖。
// 文件无法读取时直接返回；其余解析与校验错误收集后一并返回，便于一次看到全部问题。
func LoadConfig(path string) (*Config, []error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("load config file %s: %w", path, err)}
		}
	}

	cfg := DefaultConfig()
	var errs []error

	cfg.RedisAddr = envOrString("POWERRANK_REDIS_ADDR", k, "redis_addr", cfg.RedisAddr)
	cfg.KeyPrefix = envOrString("POWERRANK_KEY_PREFIX", k, "key_prefix", cfg.KeyPrefix)
	cfg.LogLevel = strings.ToLower(envOrString("POWERRANK_LOG_LEVEL", k, "log_level", cfg.LogLevel))
	cfg.PipelineFile = envOrString("POWERRANK_PIPELINE_FILE", k, "pipeline_file", cfg.PipelineFile)

	var err error
	if cfg.RedisDB, err = envOrInt("POWERRANK_REDIS_DB", k, "redis_db", cfg.RedisDB); err != nil {
		errs = append(errs, err)
	}
	if cfg.MaxIterations, err = envOrInt("POWERRANK_MAX_ITERATIONS", k, "max_iterations", cfg.MaxIterations); err != nil {
		errs = append(errs, err)
	}
	if cfg.Concurrency, err = envOrInt("POWERRANK_CONCURRENCY", k, "concurrency", cfg.Concurrency); err != nil {
		errs = append(errs, err)
	}
	if cfg.Tolerance, err = envOrFloat("POWERRANK_TOLERANCE", k, "tolerance", cfg.Tolerance); err != nil {
		errs = append(errs, err)
	}
	if cfg.Timeout, err = envOrDuration("POWERRANK_TIMEOUT", k, "timeout", cfg.Timeout); err != nil {
		errs = append(errs, err)
	}
	if cfg.Publish, err = envOrBool("POWERRANK_PUBLISH", k, "publish", cfg.Publish); err != nil {
		errs = append(errs, err)
	}

	errs = append(errs, cfg.Validate()...)
	return cfg, errs
}

// Validate 校验配置，返回全部错误。
func (c *Config) Validate() []error {
	var errs []error
	opts := power.IterateOptions{MaxIterations: c.MaxIterations, Tolerance: c.Tolerance}
	if err := opts.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Concurrency < 1 {
		errs = append(errs, ErrInvalidConcurrency)
	}
	if c.Timeout <= 0 {
		errs = append(errs, ErrInvalidTimeout)
	}
	switch c.LogLevel {
	case log.LevelDebug, log.LevelInfo, log.LevelWarn, log.LevelError:
	default:
		errs = append(errs, ErrInvalidLogLevel)
	}
	return errs
}

func envOrString(envKey string, k *koanf.Koanf, key, def string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if k.Exists(key) {
		return k.String(key)
	}
	return def
}

func envOrInt(envKey string, k *koanf.Koanf, key string, def int) (int, error) {
	if v := os.Getenv(envKey); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return def, fmt.Errorf("%s must be a valid integer: %w", envKey, err)
		}
		return n, nil
	}
	if k.Exists(key) {
		return k.Int(key), nil
	}
	return def, nil
}

func envOrFloat(envKey string, k *koanf.Koanf, key string, def float64) (float64, error) {
	if v := os.Getenv(envKey); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return def, fmt.Errorf("%s must be a valid float: %w", envKey, err)
		}
		return f, nil
	}
	if k.Exists(key) {
		return k.Float64(key), nil
	}
	return def, nil
}

func envOrDuration(envKey string, k *koanf.Koanf, key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(envKey)
	name := envKey
	if raw == "" {
		if !k.Exists(key) {
			return def, nil
		}
		raw = k.String(key)
		name = key
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def, fmt.Errorf("%s must be a duration such as 2s: %w", name, err)
	}
	return d, nil
}

func envOrBool(envKey string, k *koanf.Koanf, key string, def bool) (bool, error) {
	if v := os.Getenv(envKey); v != "" {
		switch strings.ToLower(v) {
		case "true", "1", "yes", "on":
			return true, nil
		case "false", "0", "no", "off":
			return false, nil
		}
		return def, fmt.Errorf("%s must be a boolean", envKey)
	}
	if k.Exists(key) {
		return k.Bool(key), nil
	}
	return def, nil
}
