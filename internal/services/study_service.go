package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/markdave123-py/Lectio/internal/core"
	"github.com/markdave123-py/Lectio/internal/core/llm"
	"github.com/markdave123-py/Lectio/internal/core/prompt"
	"github.com/markdave123-py/Lectio/internal/models"
)

// StudyService runs the upload -> extract -> prompt -> model pipeline
// against one session at a time.
type StudyService struct {
	sessions  core.SessionStore
	extractor core.TextExtractor
	llm       core.LLMProvider
}

func NewStudyService(sessions core.SessionStore, extractor core.TextExtractor, llm core.LLMProvider) *StudyService {
	return &StudyService{sessions: sessions, extractor: extractor, llm: llm}
}

// StartSession creates an empty session.
func (s *StudyService) StartSession(ctx context.Context) (*models.Session, error) {
	now := time.Now().UTC()
	sess := &models.Session{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save new session: %w", err)
	}
	log.Info().Str("session_id", sess.ID).Msg("session started")
	return sess, nil
}

// Session loads id, or starts a fresh session when id is unknown or expired.
func (s *StudyService) Session(ctx context.Context, id string) (*models.Session, error) {
	if id != "" {
		sess, err := s.sessions.Get(ctx, id)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, core.ErrSessionNotFound) {
			return nil, err
		}
	}
	return s.StartSession(ctx)
}

// EndSession destroys the session and everything it holds.
func (s *StudyService) EndSession(ctx context.Context, id string) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	log.Info().Str("session_id", id).Msg("session ended")
	return nil
}

// Upload extracts the text of data and overwrites the session's RawText.
// The bytes are not kept anywhere once this returns. On failure the session
// is left as it was.
func (s *StudyService) Upload(ctx context.Context, sess *models.Session, data []byte) error {
	text, err := s.extractor.ExtractText(ctx, data)
	if err != nil {
		if core.StageOf(err) == "" {
			err = core.Wrap(core.StageExtraction, err)
		}
		return err
	}

	updated := *sess
	updated.RawText = text
	updated.UpdatedAt = time.Now().UTC()
	if err := s.sessions.Save(ctx, &updated); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	*sess = updated

	log.Info().Str("session_id", sess.ID).Int("bytes", len(data)).Int("chars", len(text)).Msg("document extracted")
	return nil
}

// Generation is one in-flight model invocation. Chunks is closed at
// end-of-stream. Wait must be called once, after Chunks is drained; it
// returns the complete text or the error that ended the stream early.
type Generation struct {
	Kind   prompt.Kind
	Chunks <-chan string
	wait   func() (string, error)
}

func (g *Generation) Wait() (string, error) { return g.wait() }

// Generate renders the template for kind with the session's text and starts
// a streamed invocation. Every call hits the model again. A completed
// questions run is stored on the session.
func (s *StudyService) Generate(ctx context.Context, sess *models.Session, kind prompt.Kind) (*Generation, error) {
	tmpl, ok := prompt.ByKind(kind)
	if !ok {
		return nil, core.Wrap(core.StageIntake, fmt.Errorf("unknown panel %q", kind))
	}
	if !sess.HasText() {
		return nil, core.Wrap(core.StageIntake, core.ErrNoText)
	}

	rendered, err := tmpl.Render(sess.RawText)
	if err != nil {
		return nil, core.Wrap(core.StageInvocation, err)
	}

	logger := log.With().Str("session_id", sess.ID).Str("panel", string(kind)).Str("provider", s.llm.Name()).Logger()
	logger.Debug().Int("prompt_chars", len(rendered)).Msg("invoking model")

	src, wait := llm.Stream(ctx, s.llm, rendered)
	chunks := make(chan string)
	text := make(chan string, 1)

	// tee: forward chunks to the caller while keeping the full text
	go func() {
		defer close(chunks)
		var acc []byte
		for c := range src {
			acc = append(acc, c...)
			select {
			case chunks <- c:
			case <-ctx.Done():
			}
		}
		text <- string(acc)
	}()

	return &Generation{
		Kind:   kind,
		Chunks: chunks,
		wait: func() (string, error) {
			out := <-text
			if err := wait(); err != nil {
				logger.Error().Err(err).Msg("model invocation failed")
				return "", core.Wrap(core.StageInvocation, err)
			}
			if kind == prompt.KindQuestions {
				if !prompt.WellFormed(prompt.ParseQuestions(out)) {
					logger.Warn().Msg("questions output does not follow the template")
				}
				if err := s.storeQuestions(context.WithoutCancel(ctx), sess, out); err != nil {
					return "", err
				}
			}
			logger.Info().Int("chars", len(out)).Msg("model invocation complete")
			return out, nil
		},
	}, nil
}

// StreamSummary starts the summary panel's invocation.
func (s *StudyService) StreamSummary(ctx context.Context, sess *models.Session) (*Generation, error) {
	return s.Generate(ctx, sess, prompt.KindSummary)
}

// StreamQuestions starts the questions panel's invocation.
func (s *StudyService) StreamQuestions(ctx context.Context, sess *models.Session) (*Generation, error) {
	return s.Generate(ctx, sess, prompt.KindQuestions)
}

// Run is Generate followed by draining the stream.
func (s *StudyService) Run(ctx context.Context, sess *models.Session, kind prompt.Kind) (string, error) {
	gen, err := s.Generate(ctx, sess, kind)
	if err != nil {
		return "", err
	}
	for range gen.Chunks {
	}
	return gen.Wait()
}

func (s *StudyService) storeQuestions(ctx context.Context, sess *models.Session, questions string) error {
	// reload so an upload that finished meanwhile is not overwritten
	current, err := s.sessions.Get(ctx, sess.ID)
	if err != nil {
		return fmt.Errorf("reload session: %w", err)
	}
	current.Questions = questions
	current.UpdatedAt = time.Now().UTC()
	if err := s.sessions.Save(ctx, current); err != nil {
		return fmt.Errorf("save questions: %w", err)
	}
	sess.Questions = questions
	return nil
}
