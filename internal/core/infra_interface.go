package core

import (
	"context"
	"errors"

	"github.com/markdave123-py/Lectio/internal/models"
)

// ErrSessionNotFound is returned by SessionStore.Get for unknown or expired ids.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps session state between requests. An entry that outlives
// the store's TTL is gone, which ends the session.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, id string) error
	Close() error
}
