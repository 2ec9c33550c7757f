package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// 环境变量名固定，不提供前缀拼接。
const (
	EnvRestURL   = "UPSTASH_REDIS_REST_URL"
	EnvRestToken = "UPSTASH_REDIS_REST_TOKEN"
	EnvCacheDir  = "CACHEUP_CACHE_DIR"
	EnvLogLevel  = "CACHEUP_LOG_LEVEL"
	EnvLogFile   = "CACHEUP_LOG_FILE"
)

// DefaultCacheDirName 是默认缓存根目录名，位于可执行文件旁。
const DefaultCacheDirName = "cache"

var envBindings = map[string]string{
	"RestURL":     EnvRestURL,
	"RestToken":   EnvRestToken,
	"CacheDir":    EnvCacheDir,
	"LogLevel":    EnvLogLevel,
	"LogFilePath": EnvLogFile,
}

// Load 合并默认值、可选 TOML 文件与环境变量，随后执行校验。
// path 为空时只读取环境变量；环境变量优先级高于文件。
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置失败: %w", err)
		}
	}

	var cfg Config
	hook := mapstructure.ComposeDecodeHookFunc(
		durationDecodeHook(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := v.Unmarshal(&cfg, viper.DecodeHook(hook)); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	absCache, err := filepath.Abs(cfg.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("无法解析缓存目录: %w", err)
	}
	cfg.CacheDir = absCache

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("CacheDir", "")
	v.SetDefault("Skip", []string{})
	v.SetDefault("RequestTimeout", 0)
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogFilePath", "")
	v.SetDefault("LogMaxSize", 100)
	v.SetDefault("LogMaxBackups", 10)
	v.SetDefault("LogCompress", true)
}

func bindEnv(v *viper.Viper) error {
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("绑定环境变量 %s 失败: %w", env, err)
		}
	}
	return nil
}

func applyDefaults(cfg *Config) {
	cfg.RestURL = strings.TrimSpace(cfg.RestURL)
	cfg.RestToken = strings.TrimSpace(cfg.RestToken)
	if strings.TrimSpace(cfg.CacheDir) == "" {
		cfg.CacheDir = DefaultCacheDir()
	}
	if cfg.Log.LogLevel == "" {
		cfg.Log.LogLevel = "info"
	}
}

// DefaultCacheDir 返回可执行文件所在目录下的 cache 目录；无法定位可执行文件时退回工作目录。
func DefaultCacheDir() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultCacheDirName
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), DefaultCacheDirName)
}

func durationDecodeHook() mapstructure.DecodeHookFunc {
	targetType := reflect.TypeOf(Duration(0))

	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != targetType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			if v == "" {
				return Duration(0), nil
			}
			if parsed, err := time.ParseDuration(v); err == nil {
				return Duration(parsed), nil
			}
			if seconds, err := strconv.ParseFloat(v, 64); err == nil {
				return Duration(time.Duration(seconds * float64(time.Second))), nil
			}
			return nil, fmt.Errorf("无法解析 Duration 字段: %s", v)
		case int:
			return Duration(time.Duration(v) * time.Second), nil
		case int64:
			return Duration(time.Duration(v) * time.Second), nil
		case float64:
			return Duration(time.Duration(v * float64(time.Second))), nil
		case time.Duration:
			return Duration(v), nil
		case Duration:
			return v, nil
		default:
			return nil, fmt.Errorf("不支持的 Duration 类型: %T", v)
		}
	}
}
