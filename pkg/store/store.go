package store

import (
	"context"
	"encoding/json"
	"log"
	"reflect"

	"github.com/redis/go-redis/v9"
)

// Store is the persistence contract the services write through. Load fails
// soft: an absent, unreadable, or corrupt value leaves dest at the default
// the caller pre-filled it with and returns false. Save and Clear act on a
// single key each; there are no cross-key transactions.
type Store interface {
	Load(key string, dest interface{}) bool
	Save(key string, value interface{}) error
	Clear(key string) error
}

// keyPrefix namespaces every stored key.
const keyPrefix = "trivia:"

// RedisStore persists values as JSON strings in Redis.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisStore connects to Redis and verifies the connection. Startup is
// pointless without the backing store, so a failed ping is fatal.
func NewRedisStore(addr, password string, db int) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("❌ Error connecting to Redis: %v", err)
	}

	log.Println("✅ Connected to Redis")

	return &RedisStore{
		client: rdb,
		ctx:    ctx,
	}
}

func (s *RedisStore) Load(key string, dest interface{}) bool {
	raw, err := s.client.Get(s.ctx, keyPrefix+key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("⚠️ Error reading key %q, using default: %v", key, err)
		return false
	}

	return decode(key, raw, dest)
}

// decode unmarshals raw into dest. dest must be a non-nil pointer. A wrong
// shape (valid JSON that does not fit dest) would leave dest half-populated
// if decoded in place, so the value goes through a scratch copy and dest is
// only written on full success.
func decode(key, raw string, dest interface{}) bool {
	scratch := reflect.New(reflect.TypeOf(dest).Elem())
	if err := json.Unmarshal([]byte(raw), scratch.Interface()); err != nil {
		log.Printf("⚠️ Corrupt value under key %q, using default: %v", key, err)
		return false
	}

	reflect.ValueOf(dest).Elem().Set(scratch.Elem())
	return true
}

func (s *RedisStore) Save(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(s.ctx, keyPrefix+key, data, 0).Err()
}

func (s *RedisStore) Clear(key string) error {
	return s.client.Del(s.ctx, keyPrefix+key).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// HealthCheck verifies Redis is reachable.
func (s *RedisStore) HealthCheck() error {
	_, err := s.client.Ping(s.ctx).Result()
	return err
}
