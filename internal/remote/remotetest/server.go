// Package remotetest provides an in-process fake of the Redis REST endpoint.
// It understands SET/GET, checks the bearer token the same way the hosted
// service does and records every command so tests can assert on what was (or
// was not) sent.
package remotetest

import (
	"encoding/json"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v3"
)

// Command 记录一次请求的参数与关键请求头。
type Command struct {
	Args          []string
	Authorization string
	ContentType   string
}

// Responder 可覆盖默认行为，返回状态码与响应体。
type Responder func(Command) (status int, body string)

// Server 是基于 Fiber 的假 REST 服务，监听 127.0.0.1 随机端口。
type Server struct {
	URL string

	app   *fiber.App
	token string

	mu        sync.Mutex
	commands  []Command
	values    map[string]string
	responder Responder
}

// New 启动假服务，测试结束时自动关闭。token 为期望的 bearer token。
func New(t testing.TB, token string) *Server {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("unable to start remote stub listener: %v", err)
	}

	s := &Server{
		URL:    "http://" + listener.Addr().String(),
		token:  token,
		values: make(map[string]string),
	}

	// Immutable 保证 c.Get 返回的字符串在 handler 结束后依然有效。
	s.app = fiber.New(fiber.Config{Immutable: true})
	s.app.Post("/", s.handle)

	go func() {
		_ = s.app.Listener(listener, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	t.Cleanup(func() {
		_ = s.app.Shutdown()
	})
	return s
}

// SetResponder 替换默认处理逻辑，传 nil 恢复默认。
func (s *Server) SetResponder(fn Responder) {
	s.mu.Lock()
	s.responder = fn
	s.mu.Unlock()
}

// Commands 返回已收到命令的副本。
func (s *Server) Commands() []Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]Command, len(s.commands))
	copy(result, s.commands)
	return result
}

// Value 返回某个 key 当前保存的值。
func (s *Server) Value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *Server) handle(c fiber.Ctx) error {
	var args []string
	if err := json.Unmarshal(c.Body(), &args); err != nil || len(args) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ERR failed to parse command"})
	}

	cmd := Command{
		Args:          args,
		Authorization: c.Get(fiber.HeaderAuthorization),
		ContentType:   c.Get(fiber.HeaderContentType),
	}

	s.mu.Lock()
	s.commands = append(s.commands, cmd)
	responder := s.responder
	s.mu.Unlock()

	if responder != nil {
		status, body := responder(cmd)
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(status).SendString(body)
	}

	if cmd.Authorization != "Bearer "+s.token {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	switch strings.ToUpper(args[0]) {
	case "SET":
		if len(args) != 3 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ERR wrong number of arguments for 'set' command"})
		}
		s.mu.Lock()
		s.values[args[1]] = args[2]
		s.mu.Unlock()
		return c.JSON(fiber.Map{"result": "OK"})
	case "GET":
		if len(args) != 2 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ERR wrong number of arguments for 'get' command"})
		}
		if v, ok := s.Value(args[1]); ok {
			return c.JSON(fiber.Map{"result": v})
		}
		return c.JSON(fiber.Map{"result": nil})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ERR unknown command '" + args[0] + "'"})
	}
}
