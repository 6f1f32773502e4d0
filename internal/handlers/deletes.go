package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// PendingDeletes holds the tokens issued by the first phase of a delete.
// A token confirms exactly one record and expires after the configured TTL.
type PendingDeletes struct {
	mu    sync.Mutex
	ttl   time.Duration
	cache *cache.Cache
}

type pendingDelete struct {
	slug string
	id   int64
}

// NewPendingDeletes returns an empty token set whose entries live for ttl.
func NewPendingDeletes(ttl time.Duration) *PendingDeletes {
	return &PendingDeletes{
		ttl:   ttl,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Request issues a token for deleting record id of collection slug.
func (p *PendingDeletes) Request(slug string, id int64) (token string, expiresAt time.Time) {
	token = uuid.NewString()
	expiresAt = time.Now().Add(p.ttl).UTC()
	p.cache.Set(token, pendingDelete{slug: slug, id: id}, cache.DefaultExpiration)
	return token, expiresAt
}

// Take consumes token if it is live and was issued for slug and id.
func (p *PendingDeletes) Take(token, slug string, id int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, ok := p.cache.Get(token)
	if !ok {
		return false
	}
	pd, ok := v.(pendingDelete)
	if !ok || pd.slug != slug || pd.id != id {
		return false
	}
	p.cache.Delete(token)
	return true
}

// Cancel discards token. It reports whether the token was live.
func (p *PendingDeletes) Cancel(token string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.cache.Get(token); !ok {
		return false
	}
	p.cache.Delete(token)
	return true
}
