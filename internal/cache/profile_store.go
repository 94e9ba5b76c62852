package cache

import (
	"fmt"
	"time"

	"github.com/dpup/terrain-profile/internal/lib/profile"
)

// ProfileStore keeps computed profiles in the main Cache keyed by content hash
type ProfileStore struct {
	cache *Cache
	ttl   time.Duration
}

// NewProfileStore creates a store whose entries expire after ttl
func NewProfileStore(cache *Cache, ttl time.Duration) *ProfileStore {
	return &ProfileStore{cache: cache, ttl: ttl}
}

func profileKey(contentHash string) string {
	return fmt.Sprintf("profile:%s", contentHash)
}

// SetProfile caches a computed profile
func (s *ProfileStore) SetProfile(contentHash string, p *profile.Profile) error {
	return s.cache.Set(profileKey(contentHash), p, s.ttl, "profile")
}

// GetProfile returns a fresh cached profile and how long ago it was stored.
// An entry that no longer decodes is dropped.
func (s *ProfileStore) GetProfile(contentHash string) (*profile.Profile, time.Duration, bool, error) {
	key := profileKey(contentHash)
	if s.cache.IsStale(key) {
		return nil, 0, false, nil
	}

	var p profile.Profile
	entry, found, err := s.cache.GetWithMetadata(key, &p)
	if err != nil {
		s.cache.Delete(key)
		return nil, 0, false, err
	}
	if !found {
		return nil, 0, false, nil
	}
	return &p, time.Since(entry.CreatedAt), true, nil
}
