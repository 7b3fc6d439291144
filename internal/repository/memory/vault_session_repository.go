package memory

import (
	"time"

	"keepnotes-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type VaultSessionRepository struct {
	cache *cache.Cache
}

// NewVaultSessionRepository builds the in-memory session store. The ttl is
// the vault auto-lock: a session that is not touched for that long drops its
// key.
func NewVaultSessionRepository(ttl time.Duration) *VaultSessionRepository {
	c := cache.New(ttl, 10*time.Minute)
	return &VaultSessionRepository{
		cache: c,
	}
}

func (r *VaultSessionRepository) Save(session *store.VaultSession) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *VaultSessionRepository) Get(sessionID string) (*store.VaultSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.VaultSession), true
	}
	return nil, false
}

func (r *VaultSessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// Flush drops every live session, locking the vault everywhere at once.
func (r *VaultSessionRepository) Flush() {
	r.cache.Flush()
}
