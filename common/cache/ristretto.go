package cache

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/ristretto/v2"

	"github.com/asterix-bot/storage-bot/config"
)

var cache *ristretto.Cache[string, any]

func Init() {
	if err := InitWith(config.C().Cache.NumCounters, config.C().Cache.MaxCost); err != nil {
		log.Fatalf("failed to create ristretto cache: %v", err)
	}
}

func InitWith(numCounters, maxCost int64) error {
	if cache != nil {
		return fmt.Errorf("cache already initialized")
	}
	c, err := New(numCounters, maxCost)
	if err != nil {
		return err
	}
	cache = c
	return nil
}

func New(numCounters, maxCost int64) (*ristretto.Cache[string, any], error) {
	return ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters: numCounters,
		MaxCost:     maxCost,
		BufferItems: 64,
		OnReject: func(item *ristretto.Item[any]) {
			log.Warnf("Cache item rejected: key=%d, value=%v", item.Key, item.Value)
		},
	})
}

// Set stores value with the default ttl from config.
func Set(key string, value any) error {
	return SetWithTTL(key, value, time.Duration(config.C().Cache.TTL)*time.Second)
}

func SetWithTTL(key string, value any, ttl time.Duration) error {
	if cache == nil {
		return fmt.Errorf("cache not initialized")
	}
	if ok := cache.SetWithTTL(key, value, 1, ttl); !ok {
		return fmt.Errorf("failed to set value in cache")
	}
	cache.Wait()
	return nil
}

func Get[T any](key string) (T, bool) {
	var zero T
	if cache == nil {
		return zero, false
	}
	v, ok := cache.Get(key)
	if !ok {
		return zero, false
	}
	vT, ok := v.(T)
	if !ok {
		return zero, false
	}
	return vT, true
}
