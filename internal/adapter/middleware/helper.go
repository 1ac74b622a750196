package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }

func buildKey(method, path, bodySHA string) string {
	return "resp:" + strings.ToLower(method) + ":" + path + ":" + bodySHA
}

// ---- Redis helpers ----

// loadEntry reports found=false on a miss; a corrupt entry counts as a miss.
func loadEntry(ctx context.Context, rdb redis.Cmdable, key string) (cachedResponse, bool, error) {
	var e cachedResponse
	v, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return e, false, nil
	}
	if err != nil {
		return e, false, err
	}
	if err := json.Unmarshal(v, &e); err != nil || e.Code == 0 {
		return cachedResponse{}, false, nil
	}
	return e, true, nil
}

func saveEntry(ctx context.Context, rdb redis.Cmdable, key string, entry cachedResponse, ttl time.Duration) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, payload, ttl).Err()
}
