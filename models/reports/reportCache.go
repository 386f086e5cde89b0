package reports

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/mmdatafocus/statement_backend/config"
	"github.com/mmdatafocus/statement_backend/utils"
	"github.com/sirupsen/logrus"
)

const cacheFillLockTTL = 30 * time.Second

// reportCacheKey hashes the report name and its input, e.g. "report:client_statement:<sha256>".
func reportCacheKey(name string, input any) (string, error) {
	b, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return "report:" + name + ":" + hex.EncodeToString(sum[:]), nil
}

func logSlowReport(ctx context.Context, name string, started time.Time, extra map[string]any) {
	d := time.Since(started)
	if d < config.ReportSlowThreshold() {
		return
	}
	company, _ := utils.GetCompanyFromContext(ctx)
	cid, _ := utils.GetCorrelationIdFromContext(ctx)
	config.GetLogger().WithFields(logrus.Fields{
		"report":         name,
		"ms":             d.Milliseconds(),
		"company":        company,
		"correlation_id": cid,
		"extra":          extra,
	}).Warn("slow_report")
}

func cacheGet[T any](key string, dest *T) (bool, error) {
	return config.GetRedisObject(key, dest)
}

func cacheSet(key string, obj any, ttl time.Duration) error {
	return config.SetRedisObject(key, obj, ttl)
}

// obtainCacheFillLock is best effort: a nil lock means the caller builds the
// report without holding the lock.
func obtainCacheFillLock(ctx context.Context, key string) *redislock.Lock {
	locker := config.GetRedisLock()
	if locker == nil {
		return nil
	}
	lock, err := locker.Obtain(ctx, "lock:"+key, cacheFillLockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 20),
	})
	if err != nil {
		if !errors.Is(err, redislock.ErrNotObtained) {
			config.LogError(config.GetLogger(), "reportCache.go", "obtainCacheFillLock", "obtain lock", key, err)
		}
		return nil
	}
	return lock
}

func releaseCacheFillLock(ctx context.Context, lock *redislock.Lock) {
	if lock == nil {
		return
	}
	if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		config.LogError(config.GetLogger(), "reportCache.go", "releaseCacheFillLock", "release lock", lock.Key(), err)
	}
}

// cachedReport serves name/input from redis when the report cache is on.
// Concurrent misses for the same key wait on one lock so only one of them
// builds the report.
func cachedReport[T any](ctx context.Context, name string, input any, build func(context.Context) (*T, error)) (*T, error) {
	if !config.ReportCacheEnabled() || config.GetRedisDB() == nil {
		return build(ctx)
	}

	key, err := reportCacheKey(name, input)
	if err != nil {
		return build(ctx)
	}

	var cached T
	if ok, err := cacheGet(key, &cached); err == nil && ok {
		return &cached, nil
	}

	lock := obtainCacheFillLock(ctx, key)
	defer releaseCacheFillLock(ctx, lock)

	if lock != nil {
		// another request may have filled the cache while we waited
		if ok, err := cacheGet(key, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	result, err := build(ctx)
	if err != nil {
		return nil, err
	}
	if err := cacheSet(key, result, config.ReportCacheTTL()); err != nil {
		config.LogError(config.GetLogger(), "reportCache.go", "cachedReport", "cache set", key, err)
	}
	return result, nil
}
