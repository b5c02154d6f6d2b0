// Package server exposes the search index over HTTP.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"docsearch/config"
	"docsearch/internal/port"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

//go:embed web
var webFS embed.FS

const (
	mimeHTML = "text/html;charset=utf-8"
	mimeJS   = "text/javascript;charset=utf-8"
	mimeWasm = "application/wasm"

	shutdownTimeout = 5 * time.Second
)

type Server struct {
	app      *fiber.App
	cfg      config.ServerConfig
	searcher port.Searcher
	logger   logrus.FieldLogger
	metrics  *metrics
}

// New wires the routes around searcher.
func New(cfg config.ServerConfig, searcher port.Searcher, logger logrus.FieldLogger) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
		}),
		cfg:      cfg,
		searcher: searcher,
		logger:   logger,
		metrics:  newMetrics(),
	}

	s.app.Use(recover.New())
	s.app.Use(s.observe)

	s.app.Post("/api/search", s.handleSearch)
	s.app.Get("/", s.page("web/index.html", fiber.StatusOK))
	s.app.Get("/index.html", s.page("web/index.html", fiber.StatusOK))
	s.app.Get("/main.wasm", s.asset("main.wasm", mimeWasm))
	s.app.Get("/wasm_exec.js", s.asset("wasm_exec.js", mimeJS))
	if cfg.Metrics {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
		s.app.Get("/metrics", func(c *fiber.Ctx) error {
			handler(c.Context())
			return nil
		})
	}
	s.app.Use(s.page("web/404.html", fiber.StatusNotFound))

	return s
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// SetIndexedDocs records the size of the loaded index.
func (s *Server) SetIndexedDocs(n int) {
	s.metrics.indexedDocs.Set(float64(n))
}

// Run listens on the configured port until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("0.0.0.0:%d", s.cfg.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(addr)
	}()
	s.logger.Infof("listening at %s ...", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		return s.app.ShutdownWithTimeout(shutdownTimeout)
	}
}

func (s *Server) observe(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}

	route := c.Route().Path
	s.metrics.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	s.logger.WithFields(logrus.Fields{
		"method":   c.Method(),
		"path":     c.Path(),
		"status":   status,
		"duration": time.Since(start),
	}).Debug("request")
	return err
}

func (s *Server) handleSearch(c *fiber.Ctx) error {
	query := string(c.Body())

	start := time.Now()
	ranking, err := s.searcher.Search(c.UserContext(), query)
	if err != nil {
		s.logger.WithError(err).Error("search failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "search failed"})
	}
	s.metrics.searchLatency.Observe(float64(time.Since(start).Microseconds()) / 1000)
	s.metrics.searchResults.Observe(float64(len(ranking)))

	data, err := ranking.MarshalJSON()
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusCreated).Send(data)
}

func (s *Server) page(name string, status int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := webFS.ReadFile(name)
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, mimeHTML)
		return c.Status(status).Send(data)
	}
}

// asset serves a file from the configured assets directory. Without one,
// the browser build is unavailable and the path answers 404.
func (s *Server) asset(name, contentType string) fiber.Handler {
	notFound := s.page("web/404.html", fiber.StatusNotFound)
	return func(c *fiber.Ctx) error {
		if s.cfg.AssetsDir == "" {
			return notFound(c)
		}
		data, err := os.ReadFile(filepath.Join(s.cfg.AssetsDir, name))
		if err != nil {
			if os.IsNotExist(err) {
				return notFound(c)
			}
			return err
		}
		c.Set(fiber.HeaderContentType, contentType)
		return c.Status(fiber.StatusOK).Send(data)
	}
}

// IndexPage returns the embedded search page.
func IndexPage() ([]byte, error) {
	return webFS.ReadFile("web/index.html")
}
