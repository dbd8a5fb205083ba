package todo

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"taskboard/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "todo:with_user:"

// CachedRepo is a read-through Redis cache in front of FindByIDWithUser.
// Redis failures are logged and the backing repository answers instead.
// Search is never cached.
type CachedRepo struct {
	next Repository
	rdb  redis.Cmdable
	ttl  time.Duration
}

func NewCachedRepo(next Repository, rdb redis.Cmdable, ttl time.Duration) *CachedRepo {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedRepo{next: next, rdb: rdb, ttl: ttl}
}

func (r *CachedRepo) Search(ctx context.Context, page Page, specs ...Spec) (SearchResult, error) {
	return r.next.Search(ctx, page, specs...)
}

func (r *CachedRepo) FindByIDWithUser(ctx context.Context, id int64) (TodoWithUser, error) {
	key := cacheKey(id)
	log := logger.From(ctx)

	raw, err := r.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var tw TodoWithUser
		if err := json.Unmarshal(raw, &tw); err == nil {
			return tw, nil
		}
		log.Warn("todo cache entry undecodable", "key", key)
	case !errors.Is(err, redis.Nil):
		log.Warn("todo cache read failed", "key", key, "err", err)
	}

	tw, err := r.next.FindByIDWithUser(ctx, id)
	if err != nil {
		return TodoWithUser{}, err
	}

	if b, err := json.Marshal(tw); err == nil {
		if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
			log.Warn("todo cache write failed", "key", key, "err", err)
		}
	}
	return tw, nil
}

// Invalidate drops the cached entry for id.
func (r *CachedRepo) Invalidate(ctx context.Context, id int64) error {
	return r.rdb.Del(ctx, cacheKey(id)).Err()
}

func cacheKey(id int64) string { return cacheKeyPrefix + strconv.FormatInt(id, 10) }
