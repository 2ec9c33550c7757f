package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/any-hub/cacheup/internal/config"
)

// ErrMalformedReply 表示 2xx 响应体不是合法 JSON。
var ErrMalformedReply = errors.New("reply is not valid JSON")

// HTTPError 描述非 2xx 响应，Body 为原始响应体。
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Client 以同步方式执行 REST 命令，一次一个请求。
type Client struct {
	http     *http.Client
	endpoint string
	token    string
}

// NewClient 使用配置中的 RestURL/RestToken 构建客户端。
func NewClient(cfg *config.Config) *Client {
	return NewClientWithHTTP(NewHTTPClient(cfg), cfg.RestURL, cfg.RestToken)
}

// NewClientWithHTTP 允许注入自定义 http.Client，测试中用于缩短超时。
func NewClientWithHTTP(httpClient *http.Client, endpoint, token string) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(nil)
	}
	return &Client{
		http:     httpClient,
		endpoint: endpoint,
		token:    token,
	}
}

// Set 写入 key，value 原样作为字符串参数发送。
func (c *Client) Set(ctx context.Context, key, value string) (*Reply, error) {
	return c.Do(ctx, "SET", key, value)
}

// Do 发送 ["CMD", args...] 并返回解析后的响应。非 2xx 返回 *HTTPError。
func (c *Client) Do(ctx context.Context, args ...string) (*Reply, error) {
	if len(args) == 0 {
		return nil, errors.New("empty command")
	}

	payload, err := encodeCommand(args)
	if err != nil {
		return nil, fmt.Errorf("encode %s command: %w", args[0], err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", args[0], err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s reply: %w", args[0], err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: %q", ErrMalformedReply, truncate(body, 200))
	}

	return &Reply{Raw: body}, nil
}

// encodeCommand 输出紧凑 JSON 数组，不转义 <、>、&。
func encodeCommand(args []string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(args); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
