// Package rdx holds the shared Redis connection. Redis is optional here: it
// only backs short-TTL caches, so a nil Conn simply disables caching.
package rdx

import (
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"goldenwine/globals"
)

var Conn *redis.Client

// Init dials Redis using REDIS_ADDR. Returns false (and leaves Conn nil)
// when Redis is absent; callers degrade to uncached behavior.
func Init() bool {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := client.Ping(globals.Ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s, caching disabled: %v", addr, err)
		return false
	}
	Conn = client
	return true
}

// SetWithTTL stores a value best-effort; cache write failures are logged only.
func SetWithTTL(key, value string, ttl time.Duration) {
	if Conn == nil {
		return
	}
	if err := Conn.Set(globals.Ctx, key, value, ttl).Err(); err != nil {
		log.Printf("redis SET %s: %v", key, err)
	}
}

// Get returns the cached value and whether it was present.
func Get(key string) (string, bool) {
	if Conn == nil {
		return "", false
	}
	val, err := Conn.Get(globals.Ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func Del(key string) {
	if Conn == nil {
		return
	}
	Conn.Del(globals.Ctx, key)
}
