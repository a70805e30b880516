package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/markdave123-py/Lectio/internal/api/handlers"
	appMiddleware "github.com/markdave123-py/Lectio/internal/api/middlewares"
	"github.com/markdave123-py/Lectio/internal/config"
	"github.com/markdave123-py/Lectio/internal/observability"
	"github.com/markdave123-py/Lectio/internal/services"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewRouter wires every route. Streaming routes sit outside the request
// timeout so a long model answer is not cut off.
func NewRouter(cfg *config.Config, svc *services.StudyService, cookies *appMiddleware.SessionCookies) http.Handler {
	docHandler := handlers.NewDocumentHandler(svc, cookies, cfg.MaxUploadBytes)
	panelHandler := handlers.NewPanelHandler(svc, cookies)
	sessionHandler := handlers.NewSessionHandler(svc, cookies)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.RequestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", handlers.Health)

	// API routes
	r.Route("/api", func(api chi.Router) {
		api.Use(cookies.Middleware)

		api.Group(func(timed chi.Router) {
			timed.Use(middleware.Timeout(cfg.RequestTimeout))
			timed.Post("/documents/upload", docHandler.UploadDocument)
			timed.Get("/session", sessionHandler.GetSession)
			timed.Delete("/session", sessionHandler.EndSession)
			timed.Get("/text", panelHandler.GetText)
			timed.Get("/questions", panelHandler.GetQuestions)
		})

		api.Get("/summary/stream", panelHandler.StreamSummary)
		api.Get("/questions/stream", panelHandler.StreamQuestions)
	})

	// Serve static files from the web directory
	fileServer := http.FileServer(http.Dir(cfg.WebDir))
	r.Handle("/*", fileServer)

	return r
}

func NewServer(cfg *config.Config, handler http.Handler) *Server {
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: cfg.RequestTimeout,
	}
	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	log.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
