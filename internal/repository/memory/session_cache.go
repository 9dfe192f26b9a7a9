package memory

import (
	"time"

	"edubook-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// SessionCache keeps recently touched sessions in memory so hot status
// lookups from polling clients skip the database.
type SessionCache struct {
	cache *cache.Cache
}

func NewSessionCache() *SessionCache {
	// Default expiration of 1 hour, purge expired items every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionCache{
		cache: c,
	}
}

func (r *SessionCache) Save(session *entity.Session) {
	r.cache.Set(session.Id.String(), session, cache.DefaultExpiration)
}

func (r *SessionCache) Get(sessionId string) (*entity.Session, bool) {
	if x, found := r.cache.Get(sessionId); found {
		return x.(*entity.Session), true
	}
	return nil, false
}

func (r *SessionCache) Delete(sessionId string) {
	r.cache.Delete(sessionId)
}
