// Package redisstore keeps each collection as a single string value in Redis.
package redisstore

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Store is a DocumentStore backed by Redis GET/SET. Keys are "<name>.json".
type Store struct {
	client *redis.Client
}

// Open parses a redis:// URL, connects and verifies connectivity.
func Open(ctx context.Context, url string) (*Store, error) {
	if url == "" {
		return nil, fmt.Errorf("redis URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "ping redis")
	}
	return New(client), nil
}

// New wraps an existing client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func key(name string) string { return name + ".json" }

func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	b, err := s.client.Get(ctx, key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}

func (s *Store) Write(ctx context.Context, name string, doc []byte) error {
	return errors.WithStack(s.client.Set(ctx, key(name), doc, 0).Err())
}

// HealthPing implements health.HealthPinger.
func (s *Store) HealthPing(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error { return s.client.Close() }
