package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate 在任何上传开始前检查配置，缺少凭证时返回 ErrMissingCredentials。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	if c.RestURL == "" {
		return missingCredential("RestURL", EnvRestURL)
	}
	if c.RestToken == "" {
		return missingCredential("RestToken", EnvRestToken)
	}
	if err := validateEndpoint(c.RestURL); err != nil {
		return fmt.Errorf("RestURL: %w", err)
	}

	if strings.TrimSpace(c.CacheDir) == "" {
		return newFieldError("CacheDir", "不能为空")
	}
	if c.RequestTimeout.DurationValue() < 0 {
		return newFieldError("RequestTimeout", "不能为负数")
	}
	if c.Log.LogMaxSize < 0 {
		return newFieldError("LogMaxSize", "不能为负数")
	}
	if c.Log.LogMaxBackups < 0 {
		return newFieldError("LogMaxBackups", "不能为负数")
	}

	for i, pattern := range c.Skip {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			return newFieldError(skipField(i), "不能为空")
		}
		if strings.HasPrefix(trimmed, "./") || strings.HasPrefix(trimmed, "/") {
			return newFieldError(skipField(i), "应为相对路径，例如 cache/football/leagues")
		}
		if !doublestar.ValidatePattern(trimmed) {
			return newFieldError(skipField(i), "glob 语法无效")
		}
		c.Skip[i] = trimmed
	}

	return nil
}

func validateEndpoint(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("仅支持 http/https: %s", redactURL(raw))
	}
	if parsed.Host == "" {
		return fmt.Errorf("缺少 Host: %s", redactURL(raw))
	}
	return nil
}

// redactURL 去掉 userinfo，避免把凭证写进日志。
func redactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	parsed.User = nil
	return parsed.String()
}
