// Package server exposes the projection engine over HTTP.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/config"
	"github.com/rgehrsitz/nestegg/internal/logging"
	"github.com/valyala/fasthttp"
)

const (
	headerRequestID = "X-Request-ID"
	userValueReqID  = "requestId"
)

type route struct {
	method  string
	handler fasthttp.RequestHandler
}

// Server serves the JSON API
type Server struct {
	cfg    config.ServerConfig
	engine *calculation.ProjectionEngine
	parser *config.InputParser
	log    *slog.Logger
	routes map[string]route
	srv    *fasthttp.Server
}

// New builds a server. A nil engine gets a fresh one and a nil logger uses the process-wide logger.
func New(cfg config.ServerConfig, engine *calculation.ProjectionEngine, logger *slog.Logger) *Server {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	if logger == nil {
		logger = logging.L()
	}

	s := &Server{
		cfg:    cfg,
		engine: engine,
		parser: config.NewInputParser(),
		log:    logger,
	}

	s.routes = map[string]route{
		"/healthz":     {fasthttp.MethodGet, s.handleHealth},
		"/v1/project":  {fasthttp.MethodPost, s.handleProject},
		"/v1/coast":    {fasthttp.MethodPost, s.handleCoast},
		"/v1/stop-age": {fasthttp.MethodPost, s.handleStopAge},
		"/v1/stress":   {fasthttp.MethodPost, s.handleStress},
		"/v1/report":   {fasthttp.MethodPost, s.handleReport},
	}

	s.srv = &fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "nestegg",
		ReadTimeout:        cfg.ReadTimeout,
		WriteTimeout:       cfg.WriteTimeout,
		MaxRequestBodySize: cfg.MaxBodySize,
	}

	return s
}

// Handler returns the routed handler wrapped with request ids and access logging
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.withRequestLog(s.route)
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	r, ok := s.routes[string(ctx.Path())]
	if !ok {
		s.writeError(ctx, fasthttp.StatusNotFound, "", "no route for "+string(ctx.Path()))
		return
	}
	if string(ctx.Method()) != r.method {
		ctx.Response.Header.Set("Allow", r.method)
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "", "method "+string(ctx.Method())+" not allowed")
		return
	}
	r.handler(ctx)
}

func (s *Server) withRequestLog(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()

		id := string(ctx.Request.Header.Peek(headerRequestID))
		if id == "" {
			id = uuid.New().String()
		}
		ctx.SetUserValue(userValueReqID, id)
		ctx.Response.Header.Set(headerRequestID, id)

		next(ctx)

		s.log.Info("request",
			"request_id", id,
			"method", string(ctx.Method()),
			"path", string(ctx.Path()),
			"status", ctx.Response.StatusCode(),
			"duration", time.Since(start))
	}
}

// ListenAndServe serves on the configured address until Shutdown is called
func (s *Server) ListenAndServe() error {
	s.log.Info("server listening", "addr", s.cfg.Addr)
	return s.srv.ListenAndServe(s.cfg.Addr)
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info("server shutting down")
		return s.srv.Shutdown()
	}
}

func requestID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue(userValueReqID).(string)
	return id
}
