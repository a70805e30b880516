package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/markdave123-py/Lectio/internal/core"
	"github.com/markdave123-py/Lectio/internal/models"
)

// MemoryStore keeps sessions in process. Entries expire ttl after their
// last save; the janitor purges them every ttl/2.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, ttl/2)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Session, error) {
	x, found := s.cache.Get(id)
	if !found {
		return nil, core.ErrSessionNotFound
	}
	// hand out a copy so handlers never mutate the stored value in place
	cp := *x.(*models.Session)
	return &cp, nil
}

func (s *MemoryStore) Save(_ context.Context, sess *models.Session) error {
	cp := *sess
	s.cache.Set(sess.ID, &cp, cache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}

func (s *MemoryStore) Close() error {
	s.cache.Flush()
	return nil
}

var _ core.SessionStore = (*MemoryStore)(nil)
