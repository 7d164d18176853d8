package api

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/smazurov/openlogger/internal/api/models"
	"github.com/smazurov/openlogger/internal/events"
	"github.com/smazurov/openlogger/internal/logging"
	"github.com/smazurov/openlogger/internal/logs"
	"github.com/smazurov/openlogger/internal/version"
)

const authRealm = `Basic realm="openlogger"`

// Server is the HTTP front end of the log service.
type Server struct {
	api        huma.API
	mux        *http.ServeMux
	httpServer *http.Server
	logService logs.LogService
	eventBus   *events.Bus
	history    *events.History
	options    *Options
	logger     *slog.Logger
}

// basicAuthMiddleware rejects requests to secured operations unless they carry
// the configured credentials, either as an Authorization header or, for SSE
// clients that cannot set headers, as a base64 "auth" query parameter.
func (s *Server) basicAuthMiddleware(username, password string) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		op := ctx.Operation()
		if op != nil && len(op.Security) == 0 {
			next(ctx)
			return
		}

		user, pass, msg := credentialsFrom(ctx)
		if msg == "" {
			userOK := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1
			if userOK && passOK {
				next(ctx)
				return
			}
			msg = "Invalid credentials"
		}

		ctx.SetHeader("WWW-Authenticate", authRealm)
		huma.WriteErr(s.api, ctx, http.StatusUnauthorized, msg)
	}
}

// credentialsFrom extracts basic auth credentials. A non-empty msg describes
// why none could be read.
func credentialsFrom(ctx huma.Context) (user, pass, msg string) {
	encoded := ctx.Query("auth")
	if header := ctx.Header("Authorization"); header != "" {
		const prefix = "Basic "
		if !strings.HasPrefix(header, prefix) {
			return "", "", "Invalid authentication type"
		}
		encoded = header[len(prefix):]
	}
	if encoded == "" {
		return "", "", "Authentication required"
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", "Invalid credentials format"
	}
	user, pass, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", "Invalid credentials format"
	}
	return user, pass, ""
}

// Options configures the API server.
type Options struct {
	AuthUsername      string
	AuthPassword      string
	LogService        logs.LogService
	EventBus          *events.Bus     // Source for the SSE tail; nil disables live events
	History           *events.History // Recent entries replayed to new SSE clients
	PrometheusHandler http.Handler    // Optional Prometheus metrics handler
}

// NewServer creates a new API server with Huma v2 using Go 1.22+ native routing
func NewServer(opts *Options) *Server {
	mux := http.NewServeMux()

	corsConfig := DefaultCORSConfig()
	AddCORSHandler(mux, corsConfig)

	config := huma.DefaultConfig("openlogger API", version.String())
	config.Info.Description = "Leveled file-backed log engine: write entries, list, search and read log files"
	// Empty servers list will make OpenAPI use relative paths, working with any host
	config.Servers = []*huma.Server{}
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"basicAuth": {
			Type:   "http",
			Scheme: "basic",
		},
	}

	api := humago.New(mux, config)

	server := &Server{
		api:        api,
		mux:        mux,
		logService: opts.LogService,
		eventBus:   opts.EventBus,
		history:    opts.History,
		options:    opts,
		logger:     logging.GetLogger("api"),
	}

	api.UseMiddleware(NewCORSMiddleware(corsConfig))
	api.UseMiddleware(RequestIDMiddleware)
	api.UseMiddleware(HTTPLoggingMiddleware)

	if opts.AuthUsername != "" && opts.AuthPassword != "" {
		api.UseMiddleware(server.basicAuthMiddleware(opts.AuthUsername, opts.AuthPassword))
	}

	// Registered on the mux directly so scrapes bypass huma middleware
	if opts.PrometheusHandler != nil {
		mux.Handle("GET /metrics", opts.PrometheusHandler)
	}

	server.registerRoutes()
	return server
}

// GetMux returns the underlying HTTP ServeMux for additional setup
func (s *Server) GetMux() *http.ServeMux {
	return s.mux
}

// GetAPI returns the Huma API instance
func (s *Server) GetAPI() huma.API {
	return s.api
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server on the specified address
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting openlogger API server", "addr", addr)
	s.logger.Info("OpenAPI documentation available", "url", "http://"+addr+"/docs")

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down, waiting up to the context deadline for
// in-flight writes to finish.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server")
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return s.httpServer.Close()
	}
	return nil
}

// registerRoutes sets up all API endpoints
func (s *Server) registerRoutes() {
	// Health check endpoint - no auth required
	huma.Register(s.api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health",
		Description: "Check API health status",
		Tags:        []string{"health"},
		Security:    []map[string][]string{}, // Empty security = no auth required
	}, func(ctx context.Context, input *struct{}) (*models.HealthResponse, error) {
		opts, generation := s.logService.Options()
		return &models.HealthResponse{
			Body: models.HealthData{
				Status:     "ok",
				Message:    "API is healthy",
				Directory:  opts.Directory,
				Threshold:  opts.Threshold.String(),
				Generation: generation,
			},
		}, nil
	})

	// Version endpoint - no auth required
	huma.Register(s.api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Version",
		Description: "Get application version information",
		Tags:        []string{"system"},
		Security:    []map[string][]string{}, // Empty security = no auth required
	}, func(ctx context.Context, input *struct{}) (*models.VersionResponse, error) {
		versionInfo := version.Get()
		return &models.VersionResponse{
			Body: models.VersionData{
				Version:   versionInfo.Version,
				GitCommit: versionInfo.GitCommit,
				BuildDate: versionInfo.BuildDate,
				GoVersion: versionInfo.GoVersion,
				Platform:  versionInfo.Platform,
			},
		}, nil
	})

	s.registerLogFileRoutes()
	s.registerStreamRoutes()
}

// withAuth returns security requirement for basic auth
func withAuth() []map[string][]string {
	return []map[string][]string{
		{"basicAuth": {}},
	}
}
