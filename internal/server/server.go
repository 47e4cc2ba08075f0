// Package server exposes a command session over HTTP.
package server

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/example/shineycanvas/internal/command"
)

// Server routes HTTP requests to a command session.
type Server struct {
	session   *command.Session
	app       *fiber.App
	onChange  func()
	accessLog bool
	timeout   time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithOnChange registers fn to run after a command batch ran, for example
// to repaint a window showing the same session.
func WithOnChange(fn func()) Option { return func(s *Server) { s.onChange = fn } }

// WithAccessLog toggles the request log.
func WithAccessLog(enabled bool) Option { return func(s *Server) { s.accessLog = enabled } }

// WithTimeout sets the read and write timeouts.
func WithTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// New builds the routes for session.
func New(session *command.Session, opts ...Option) *Server {
	s := &Server{session: session, accessLog: true, timeout: 10 * time.Second}
	for _, o := range opts {
		o(s)
	}
	app := fiber.New(fiber.Config{
		AppName:      "ShineyCanvas",
		ReadTimeout:  s.timeout,
		WriteTimeout: s.timeout,
	})
	app.Use(recover.New())
	if s.accessLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	}

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	app.Post("/commands", s.commands)
	app.Get("/state", s.state)
	app.Get("/render.png", s.render)
	s.app = app
	return s
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	log.Printf("serving on %s", addr)
	return s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops the listener and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// commands runs the request body one line at a time. Execution stops at the
// first failing line; lines before it stay applied.
func (s *Server) commands(c fiber.Ctx) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body required",
		})
	}
	var out bytes.Buffer
	ran := 0
	scanner := bufio.NewScanner(bytes.NewReader(body))
	var failure error
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		done, err := s.session.Exec(&out, text)
		if err != nil {
			failure = err
			break
		}
		ran++
		if done {
			break
		}
	}
	if err := scanner.Err(); failure == nil && err != nil {
		line++
		failure = fmt.Errorf("read command line: %w", err)
	}
	if ran > 0 && s.onChange != nil {
		s.onChange()
	}
	resp := fiber.Map{
		"executed": ran,
		"output":   outputLines(out.String()),
		"revision": s.session.State().Revision,
	}
	if failure != nil {
		log.Printf("command line %d: %v", line, failure)
		resp["error"] = failure.Error()
		resp["line"] = line
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	return c.JSON(resp)
}

func (s *Server) state(c fiber.Ctx) error {
	return c.JSON(s.session.State())
}

func (s *Server) render(c fiber.Ctx) error {
	var buf bytes.Buffer
	if err := s.session.WritePNG(&buf); err != nil {
		log.Printf("render: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	c.Set("Content-Type", "image/png")
	return c.Send(buf.Bytes())
}

func outputLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}
