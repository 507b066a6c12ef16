package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	versionKeyPrefix = "hrms:cache:version"
	BumpChannel      = "hrms.cache.bump"
)

// Cache wraps Redis based caching with per-tenant versioning.
// A nil Cache or nil client bypasses Redis and always calls the loader.
//
// While ListenForInvalidation is running, versions are served from a
// per-process copy kept current by bump notifications. Entries older than
// ttl are re-read from Redis so a missed notification cannot pin a version.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time

	listening atomic.Bool
	mu        sync.RWMutex
	versions  map[string]localVersion
}

type localVersion struct {
	version int64
	seenAt  time.Time
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		client:   client,
		ttl:      ttl,
		now:      time.Now,
		versions: make(map[string]localVersion),
	}
}

func versionKey(scope string) string {
	return versionKeyPrefix + ":" + scope
}

// Version returns the current cache version of scope, initialising when missing.
func (c *Cache) Version(ctx context.Context, scope string) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	if ver, ok := c.localVersion(scope); ok {
		return ver, nil
	}

	ver, err := c.client.Get(ctx, versionKey(scope)).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		// SetNX so two racing readers agree on the first version.
		if err := c.client.SetNX(ctx, versionKey(scope), 1, 0).Err(); err != nil {
			return 0, err
		}
		if ver, err = c.client.Get(ctx, versionKey(scope)).Int64(); err != nil {
			return 0, err
		}
	case err != nil:
		return 0, err
	case ver <= 0:
		ver = 1
		if err := c.client.Set(ctx, versionKey(scope), ver, 0).Err(); err != nil {
			return 0, err
		}
	}

	c.remember(scope, ver)
	return ver, nil
}

func (c *Cache) localVersion(scope string) (int64, bool) {
	if !c.listening.Load() {
		return 0, false
	}
	c.mu.RLock()
	v, ok := c.versions[scope]
	c.mu.RUnlock()
	if !ok || (c.ttl > 0 && c.now().Sub(v.seenAt) > c.ttl) {
		return 0, false
	}
	return v.version, true
}

// remember stores a version read from Redis, which is authoritative.
func (c *Cache) remember(scope string, ver int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[scope] = localVersion{version: ver, seenAt: c.now()}
}

// raise stores ver only when it is newer than the local copy.
func (c *Cache) raise(scope string, ver int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.versions[scope]; ok && cur.version >= ver {
		return
	}
	c.versions[scope] = localVersion{version: ver, seenAt: c.now()}
}

// BuildKey composes the cache key with the current version of scope.
func (c *Cache) BuildKey(ctx context.Context, scope string, parts ...string) (string, error) {
	joined := strings.Join(append([]string{"hrms", scope}, parts...), ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.Version(ctx, scope)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:v%d", joined, ver), nil
}

// FetchJSON loads a cached value or populates it using the loader.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c != nil && c.client != nil {
		payload, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			return json.Unmarshal(payload, dest)
		}
		if !errors.Is(err, redis.Nil) {
			return err
		}
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c != nil && c.client != nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			return err
		}
	}
	return json.Unmarshal(raw, dest)
}

// Bump invalidates every key of scope by incrementing its version and publishing an event.
func (c *Cache) Bump(ctx context.Context, scope string) error {
	if c == nil || c.client == nil {
		return nil
	}
	ver, err := c.client.Incr(ctx, versionKey(scope)).Result()
	if err != nil {
		return err
	}
	c.raise(scope, ver)
	return c.client.Publish(ctx, BumpChannel, scope+"="+strconv.FormatInt(ver, 10)).Err()
}

// ListenForInvalidation subscribes to bump notifications from other replicas
// and raises the local copy of each version. Until ctx is done, Version reads
// Redis only for scopes it has not seen within ttl.
func (c *Cache) ListenForInvalidation(ctx context.Context, onBump func(scope string, version int64)) error {
	if c == nil || c.client == nil {
		return nil
	}
	pubsub := c.client.Subscribe(ctx, BumpChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return err
	}
	c.listening.Store(true)
	go func() {
		defer func() {
			c.listening.Store(false)
			_ = pubsub.Close()
		}()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				scope, ver, ok := parseBump(msg.Payload)
				if !ok {
					continue
				}
				c.raise(scope, ver)
				if onBump != nil {
					onBump(scope, ver)
				}
			}
		}
	}()
	return nil
}

func parseBump(payload string) (string, int64, bool) {
	scope, raw, found := strings.Cut(payload, "=")
	if !found || scope == "" {
		return "", 0, false
	}
	ver, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", 0, false
	}
	return scope, ver, true
}
