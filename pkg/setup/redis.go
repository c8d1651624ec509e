package setup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "beamframe:setup:"

// RedisStore keeps named parameter sets in Redis so multiple processes
// can share machine setups.
type RedisStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithTTL sets an expiration on stored setups. Zero (the default) keeps
// them until deleted.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) { s.ttl = ttl }
}

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// NewRedisStore connects to the given Redis address.
func NewRedisStore(addr, password string, db int, opts ...RedisOption) *RedisStore {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisStoreFromClient(client, opts...)
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *backend.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(name string) string { return s.prefix + name }

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, name string, p Parameters) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal setup %q: %w", name, err)
	}
	if err := s.client.Set(ctx, s.key(name), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save setup %q: %w", name, err)
	}
	return nil
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, name string) (Parameters, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, backend.Nil) {
		return Parameters{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Parameters{}, fmt.Errorf("load setup %q: %w", name, err)
	}
	var p Parameters
	if err := json.Unmarshal(data, &p); err != nil {
		return Parameters{}, fmt.Errorf("decode setup %q: %w", name, err)
	}
	return p, nil
}

// List implements Store.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var names []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		names = append(names, iter.Val()[len(s.prefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list setups: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	n, err := s.client.Del(ctx, s.key(name)).Result()
	if err != nil {
		return fmt.Errorf("delete setup %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return nil
}
