package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration 提供更灵活的反序列化能力，同时兼容纯秒整数与 Go Duration 字符串。
type Duration time.Duration

// UnmarshalText 使 Viper 可以识别诸如 "30s"、"5m" 或纯数字秒值等配置写法。
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*d = Duration(0)
		return nil
	}

	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}

	if intVal, err := parseInt(raw); err == nil {
		*d = Duration(time.Duration(intVal) * time.Second)
		return nil
	}

	return fmt.Errorf("invalid duration value: %s", raw)
}

// DurationValue 返回真实的 time.Duration，便于调用方计算。
func (d Duration) DurationValue() time.Duration {
	return time.Duration(d)
}

// parseInt 支持十进制或 0x 前缀的十六进制字符串解析。
func parseInt(value string) (int64, error) {
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		return strconv.ParseInt(value, 0, 64)
	}
	return strconv.ParseInt(value, 10, 64)
}

// LogConfig 描述日志输出行为，未指定文件时写入 stderr，保持 stdout 只承载上传报告。
type LogConfig struct {
	LogLevel      string `mapstructure:"LogLevel"`
	LogFilePath   string `mapstructure:"LogFilePath"`
	LogMaxSize    int    `mapstructure:"LogMaxSize"`
	LogMaxBackups int    `mapstructure:"LogMaxBackups"`
	LogCompress   bool   `mapstructure:"LogCompress"`
}

// Config 汇总一次上传所需的全部参数。RestURL/RestToken 只能来自环境变量或配置文件，
// 没有默认值。
type Config struct {
	RestURL        string    `mapstructure:"RestURL"`
	RestToken      string    `mapstructure:"RestToken"`
	CacheDir       string    `mapstructure:"CacheDir"`
	Skip           []string  `mapstructure:"Skip"`
	RequestTimeout Duration  `mapstructure:"RequestTimeout"`
	Log            LogConfig `mapstructure:",squash"`
}

// HasCredentials 表示 URL 与 Token 是否都已提供。
func (c *Config) HasCredentials() bool {
	return c != nil && c.RestURL != "" && c.RestToken != ""
}

// Endpoint 返回去掉 userinfo 的 RestURL，供日志字段使用。
func (c *Config) Endpoint() string {
	if c == nil {
		return ""
	}
	return redactURL(c.RestURL)
}
