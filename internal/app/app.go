// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	appMiddleware "github.com/markdave123-py/Lectio/internal/api/middlewares"
	"github.com/markdave123-py/Lectio/internal/config"
	"github.com/markdave123-py/Lectio/internal/core"
	"github.com/markdave123-py/Lectio/internal/core/awsconfig"
	"github.com/markdave123-py/Lectio/internal/core/llm"
	"github.com/markdave123-py/Lectio/internal/core/ocr"
	"github.com/markdave123-py/Lectio/internal/core/session"
	"github.com/markdave123-py/Lectio/internal/services"
)

type App struct {
	Sessions core.SessionStore
	LLM      core.LLMProvider
	Service  *services.StudyService
	Server   *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.Load(appCtx, cfg)
	if err != nil {
		return nil, err
	}

	detector, err := ocr.NewDetector(cfg.OCRProvider, awsCfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("ocr", detector.Name()).Msg("text extraction ready")

	// the gemini client keeps ctx for its lifetime, so not appCtx
	llmProvider, err := llm.NewProvider(ctx, cfg, awsCfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the llm provider, %w", err)
	}
	log.Info().Str("llm", llmProvider.Name()).Msg("model provider ready")

	store, err := session.NewStore(appCtx, cfg)
	if err != nil {
		closeProvider(llmProvider)
		return nil, fmt.Errorf("couldn't initialize the session store, %w", err)
	}
	log.Info().Str("store", cfg.SessionStore).Dur("ttl", cfg.SessionTTL).Msg("session store ready")

	cookies, err := appMiddleware.NewSessionCookies(cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure)
	if err != nil {
		closeProvider(llmProvider)
		_ = store.Close()
		return nil, err
	}

	svc := services.NewStudyService(store, ocr.NewExtractor(detector), llmProvider)
	server := NewServer(cfg, NewRouter(cfg, svc, cookies))

	return &App{Sessions: store, LLM: llmProvider, Service: svc, Server: server}, nil
}

func (a *App) Close() {
	if a.Sessions != nil {
		if err := a.Sessions.Close(); err != nil {
			log.Warn().Err(err).Msg("close session store")
		}
	}
	closeProvider(a.LLM)
}

func closeProvider(p core.LLMProvider) {
	if c, ok := p.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("close llm provider")
		}
	}
}
