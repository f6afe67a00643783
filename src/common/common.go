package common

import (
	"context"
	"errors"
	"ets/src/lib"
	"ets/src/types"
	"log"
	"time"

	"gorm.io/gorm"
)

const eventsCacheKey = "events:approved"
const eventsCacheTTL = 30 * time.Second

// storeErr classifies a database failure: missing rows and deadline expiry
// keep their kinds, everything else is opaque Internal.
func storeErr(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	var typed *types.Error
	if errors.As(err, &typed) {
		return typed
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.E(types.KindNotFound, notFoundMsg)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return types.Wrap(types.KindTimeout, "store operation timed out", err)
	}
	return types.Wrap(types.KindInternal, "store failure", err)
}

func cachedEventsList(ctx context.Context) (string, bool) {
	rd := lib.GetRedisClient()
	if rd == nil {
		return "", false
	}
	val, err := rd.Get(ctx, eventsCacheKey).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func cacheEventsList(ctx context.Context, payload string) {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Set(ctx, eventsCacheKey, payload, eventsCacheTTL).Err(); err != nil {
		log.Printf("[redis] Error caching events list: %s\n", err.Error())
	}
}

// invalidateEventsCache drops the public listing after any event or inventory
// write.
func invalidateEventsCache(ctx context.Context) {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Del(ctx, eventsCacheKey).Err(); err != nil {
		log.Printf("[redis] Error invalidating events cache: %s\n", err.Error())
	}
}
