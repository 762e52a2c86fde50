package cms

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/linskybing/corpsite-go/internal/domain/content"
	"github.com/redis/go-redis/v9"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// MemoryCache is a process-local Cache used when Redis is not configured.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && c.now().After(e.expires) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}

// CachedSource is a read-through cache in front of a content.Source.
// Errors, including not-found, are never cached. Cache failures fall
// through to the underlying source.
type CachedSource struct {
	next  content.Source
	cache Cache
	ttl   time.Duration
}

func NewCachedSource(next content.Source, cache Cache, ttl time.Duration) *CachedSource {
	return &CachedSource{next: next, cache: cache, ttl: ttl}
}

func cached[T any](ctx context.Context, s *CachedSource, key string, load func() (T, error)) (T, error) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Printf("[cms] cache get %s: %v", key, err)
	}
	if ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	if raw, err := json.Marshal(v); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			log.Printf("[cms] cache set %s: %v", key, err)
		}
	}
	return v, nil
}

func (s *CachedSource) ActiveJobListings(ctx context.Context) ([]content.JobListing, error) {
	return cached(ctx, s, "jobs:active", func() ([]content.JobListing, error) {
		return s.next.ActiveJobListings(ctx)
	})
}

func (s *CachedSource) JobListingsByDepartment(ctx context.Context, department string) ([]content.JobListing, error) {
	return cached(ctx, s, "jobs:department:"+department, func() ([]content.JobListing, error) {
		return s.next.JobListingsByDepartment(ctx, department)
	})
}

func (s *CachedSource) JobListingBySlug(ctx context.Context, slug string) (*content.JobListing, error) {
	return cached(ctx, s, "jobs:slug:"+slug, func() (*content.JobListing, error) {
		return s.next.JobListingBySlug(ctx, slug)
	})
}

func (s *CachedSource) JobListingByID(ctx context.Context, id string) (*content.JobListing, error) {
	return cached(ctx, s, "jobs:id:"+id, func() (*content.JobListing, error) {
		return s.next.JobListingByID(ctx, id)
	})
}

func (s *CachedSource) ServiceCategories(ctx context.Context) ([]content.ServiceCategory, error) {
	return cached(ctx, s, "services", func() ([]content.ServiceCategory, error) {
		return s.next.ServiceCategories(ctx)
	})
}

func (s *CachedSource) ServiceCategoryBySlug(ctx context.Context, slug string) (*content.ServiceCategory, error) {
	return cached(ctx, s, "services:slug:"+slug, func() (*content.ServiceCategory, error) {
		return s.next.ServiceCategoryBySlug(ctx, slug)
	})
}

func (s *CachedSource) TeamMembers(ctx context.Context) ([]content.TeamMember, error) {
	return cached(ctx, s, "team", func() ([]content.TeamMember, error) {
		return s.next.TeamMembers(ctx)
	})
}

func (s *CachedSource) Partners(ctx context.Context) ([]content.Partner, error) {
	return cached(ctx, s, "partners", func() ([]content.Partner, error) {
		return s.next.Partners(ctx)
	})
}

func (s *CachedSource) Testimonials(ctx context.Context) ([]content.Testimonial, error) {
	return cached(ctx, s, "testimonials", func() ([]content.Testimonial, error) {
		return s.next.Testimonials(ctx)
	})
}
