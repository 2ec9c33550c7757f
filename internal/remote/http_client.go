package remote

import (
	"net"
	"net/http"
	"time"

	"github.com/any-hub/cacheup/internal/config"
)

// Shared HTTP transport tunings，复用长连接并集中配置握手超时。
var defaultTransport = &http.Transport{
	Proxy:                 http.ProxyFromEnvironment,
	MaxIdleConns:          10,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ForceAttemptHTTP2:     true,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
}

// NewHTTPClient 返回用于远端命令的 http.Client。RequestTimeout 为 0 时不设整体超时，
// 请求会一直阻塞到响应结束或连接出错。
func NewHTTPClient(cfg *config.Config) *http.Client {
	var timeout time.Duration
	if cfg != nil && cfg.RequestTimeout.DurationValue() > 0 {
		timeout = cfg.RequestTimeout.DurationValue()
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: defaultTransport.Clone(),
	}
}
