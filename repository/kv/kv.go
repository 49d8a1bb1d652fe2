// Package kv is the per-user persisted key-value store backing cart, wishlist
// and try-on state. Every write publishes a change notification that other
// views subscribe to and use to re-read state.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/muhammadheryan/eyewear-store/utils/logger"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const changeChannel = "kv:changes"

// Change describes a write to a key.
type Change struct {
	Key     string `json:"key"`
	Removed bool   `json:"removed"`
}

type Store interface {
	// Get decodes the value stored at key into dest. It reports false when the
	// key is absent or its value is unreadable.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Remove(ctx context.Context, key string) error
	// Subscribe calls fn for every change until the returned func is called or
	// ctx is done.
	Subscribe(ctx context.Context, fn func(Change)) (func(), error)
}

type redisStore struct {
	client *goredis.Client
}

func NewRedisStore(client *goredis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn("[kv.Get] unreadable value", zap.String("key", key), zap.String("error", err.Error()))
		return false, nil
	}
	return true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value failed: %w", err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	s.publish(ctx, Change{Key: key})
	return nil
}

func (s *redisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	s.publish(ctx, Change{Key: key, Removed: true})
	return nil
}

// publish is best effort; the write itself already succeeded.
func (s *redisStore) publish(ctx context.Context, change Change) {
	payload, _ := json.Marshal(change)
	if err := s.client.Publish(ctx, changeChannel, payload).Err(); err != nil {
		logger.Warn("[kv.publish] err client.Publish", zap.String("key", change.Key), zap.String("error", err.Error()))
	}
}

func (s *redisStore) Subscribe(ctx context.Context, fn func(Change)) (func(), error) {
	ps := s.client.Subscribe(ctx, changeChannel)
	// wait for the subscription to be confirmed so no change is missed
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis subscribe failed: %w", err)
	}

	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			_ = ps.Close()
		})
	}

	msgs := ps.Channel()
	go func() {
		for {
			select {
			case <-ctx.Done():
				stop()
				return
			case <-done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var change Change
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					logger.Warn("[kv.Subscribe] bad payload", zap.String("error", err.Error()))
					continue
				}
				fn(change)
			}
		}
	}()

	return stop, nil
}
