package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shouni/gemini-thumbnail-kit/pkg/domain"
)

const (
	defaultKeyPrefix = "thumbnail:"
	maxTxRetries     = 10
)

// RedisStore は申請とユーザーを Redis のハッシュ (ID → JSON) に保存する Store 実装です。
type RedisStore struct {
	rdb         *redis.Client
	paymentsKey string
	usersKey    string
}

// NewRedisClient は Redis に接続し、疎通を確認したクライアントを返します。
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

// NewRedisStore は RedisStore を作成します。prefix が空の場合は "thumbnail:" を使います。
func NewRedisStore(rdb *redis.Client, prefix string) (*RedisStore, error) {
	if rdb == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisStore{
		rdb:         rdb,
		paymentsKey: prefix + "payments",
		usersKey:    prefix + "users",
	}, nil
}

// Seed は未登録の ID に限りデモデータを書き込みます。既存データは上書きしません。
func (s *RedisStore) Seed(ctx context.Context, payments []domain.PaymentRequest, users []domain.User) error {
	pipe := s.rdb.Pipeline()
	for _, p := range payments {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal payment %s: %w", p.ID, err)
		}
		pipe.HSetNX(ctx, s.paymentsKey, p.ID, data)
	}
	for _, u := range users {
		data, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("failed to marshal user %s: %w", u.ID, err)
		}
		pipe.HSetNX(ctx, s.usersKey, u.ID, data)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed redis store: %w", err)
	}
	return nil
}

func (s *RedisStore) ListPayments(ctx context.Context, status domain.PaymentStatus) ([]domain.PaymentRequest, error) {
	raw, err := s.rdb.HGetAll(ctx, s.paymentsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	out := make([]domain.PaymentRequest, 0, len(raw))
	for id, v := range raw {
		var p domain.PaymentRequest
		if err := json.Unmarshal([]byte(v), &p); err != nil {
			return nil, fmt.Errorf("failed to decode payment %s: %w", id, err)
		}
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	sortPayments(out)
	return out, nil
}

func (s *RedisStore) GetPayment(ctx context.Context, id string) (*domain.PaymentRequest, error) {
	var p domain.PaymentRequest
	if err := s.hget(ctx, s.rdb, s.paymentsKey, id, &p); err != nil {
		return nil, fmt.Errorf("payment %s: %w", id, err)
	}
	return &p, nil
}

func (s *RedisStore) CreatePayment(ctx context.Context, p domain.PaymentRequest) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal payment: %w", err)
	}
	created, err := s.rdb.HSetNX(ctx, s.paymentsKey, p.ID, data).Result()
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	if !created {
		return fmt.Errorf("payment %s already exists", p.ID)
	}
	return nil
}

// UpdatePaymentStatus は WATCH による楽観ロックで状態の確認と書き込みを1トランザクションにします。
func (s *RedisStore) UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus) (*domain.PaymentRequest, error) {
	var updated domain.PaymentRequest
	err := s.watch(ctx, s.paymentsKey, func(tx *redis.Tx) error {
		updated = domain.PaymentRequest{}
		if err := s.hget(ctx, tx, s.paymentsKey, id, &updated); err != nil {
			return err
		}
		if updated.Status != from {
			return fmt.Errorf("status is %s: %w", updated.Status, ErrAlreadyDecided)
		}
		updated.Status = to
		return s.hset(ctx, tx, s.paymentsKey, id, updated)
	})
	if err != nil {
		return nil, fmt.Errorf("payment %s: %w", id, err)
	}
	return &updated, nil
}

func (s *RedisStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	raw, err := s.rdb.HGetAll(ctx, s.usersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	out := make([]domain.User, 0, len(raw))
	for id, v := range raw {
		var u domain.User
		if err := json.Unmarshal([]byte(v), &u); err != nil {
			return nil, fmt.Errorf("failed to decode user %s: %w", id, err)
		}
		out = append(out, u)
	}
	sortUsers(out)
	return out, nil
}

func (s *RedisStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := s.hget(ctx, s.rdb, s.usersKey, id, &u); err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	return &u, nil
}

func (s *RedisStore) FindUserByName(ctx context.Context, name string) (*domain.User, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Name == name {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("user named %q: %w", name, ErrNotFound)
}

func (s *RedisStore) ModifyUser(ctx context.Context, id string, fn func(*domain.User)) (*domain.User, error) {
	var u domain.User
	err := s.watch(ctx, s.usersKey, func(tx *redis.Tx) error {
		u = domain.User{}
		if err := s.hget(ctx, tx, s.usersKey, id, &u); err != nil {
			return err
		}
		fn(&u)
		u.ID = id
		return s.hset(ctx, tx, s.usersKey, id, u)
	})
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	return &u, nil
}

// watch は key を WATCH して fn を実行します。他の書き込みと競合した場合は読み直して再試行します。
func (s *RedisStore) watch(ctx context.Context, key string, fn func(tx *redis.Tx) error) error {
	var err error
	for range maxTxRetries {
		err = s.rdb.Watch(ctx, fn, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}

// hset は WATCH 中のトランザクションで v を書き込みます。
func (s *RedisStore) hset(ctx context.Context, tx *redis.Tx, key, field string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, field, data)
		return nil
	})
	return err
}

type hashGetter interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
}

// hget は1フィールドを読み出して v にデコードします。存在しなければ ErrNotFound です。
func (s *RedisStore) hget(ctx context.Context, c hashGetter, key, field string, v any) error {
	data, err := c.HGet(ctx, key, field).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, v)
}

var _ Store = (*RedisStore)(nil)
