package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const verificationQueueKey = "orders:verification_queue"

// Repository defines methods for interacting with Redis key-values
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}) error
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetSession(ctx context.Context, sessionID string, userID string, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
	SetOTP(ctx context.Context, phone, code string, ttl time.Duration) error
	GetOTP(ctx context.Context, phone string) (string, error)
	DeleteOTP(ctx context.Context, phone string) error
	EnqueueVerification(ctx context.Context, orderID string, at time.Time) error
	DequeueVerification(ctx context.Context, orderID string) error
	ListVerificationQueue(ctx context.Context) ([]goredis.Z, error)
}

type redis struct {
	client *goredis.Client
}

// NewRepository returns a Redis Repository implementation
func NewRepository(client *goredis.Client) Repository {
	return &redis{client: client}
}

// Get retrieves a value by key from Redis
func (r *redis) Get(ctx context.Context, key string) (string, error) {
	if r.client == nil {
		return "", nil
	}
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores a key/value pair without expiration
func (r *redis) Set(ctx context.Context, key string, value interface{}) error {
	if r.client == nil {
		return nil
	}
	return r.client.Set(ctx, key, value, 0).Err()
}

// SetWithTTL stores a key/value pair with time-to-live
func (r *redis) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key from Redis
func (r *redis) Delete(ctx context.Context, key string) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, key).Err()
}

// SetSession stores a session with userID and TTL
func (r *redis) SetSession(ctx context.Context, sessionID string, userID string, ttl time.Duration) error {
	return r.SetWithTTL(ctx, "session:"+sessionID, userID, ttl)
}

// GetSession retrieves userID from session
func (r *redis) GetSession(ctx context.Context, sessionID string) (string, error) {
	if r.client == nil {
		return "", goredis.Nil
	}
	return r.client.Get(ctx, "session:"+sessionID).Result()
}

// DeleteSession removes a session from Redis
func (r *redis) DeleteSession(ctx context.Context, sessionID string) error {
	return r.Delete(ctx, "session:"+sessionID)
}

// SetOTP stores a one-time code for a phone number
func (r *redis) SetOTP(ctx context.Context, phone, code string, ttl time.Duration) error {
	return r.SetWithTTL(ctx, "otp:"+phone, code, ttl)
}

// GetOTP returns the pending one-time code for a phone number
func (r *redis) GetOTP(ctx context.Context, phone string) (string, error) {
	if r.client == nil {
		return "", goredis.Nil
	}
	return r.client.Get(ctx, "otp:"+phone).Result()
}

func (r *redis) DeleteOTP(ctx context.Context, phone string) error {
	return r.Delete(ctx, "otp:"+phone)
}

// EnqueueVerification adds an order to the admin verification queue, scored by time.
func (r *redis) EnqueueVerification(ctx context.Context, orderID string, at time.Time) error {
	if r.client == nil {
		return nil
	}
	return r.client.ZAdd(ctx, verificationQueueKey, goredis.Z{
		Score:  float64(at.Unix()),
		Member: orderID,
	}).Err()
}

func (r *redis) DequeueVerification(ctx context.Context, orderID string) error {
	if r.client == nil {
		return nil
	}
	return r.client.ZRem(ctx, verificationQueueKey, orderID).Err()
}

// ListVerificationQueue returns the queue oldest first.
func (r *redis) ListVerificationQueue(ctx context.Context) ([]goredis.Z, error) {
	if r.client == nil {
		return nil, nil
	}
	return r.client.ZRangeWithScores(ctx, verificationQueueKey, 0, -1).Result()
}
