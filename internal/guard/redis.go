package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/trd-registration/internal/config"
)

const keyPrefix = "registration:submit:"

// Redis хранит состояние отправок в redis.
type Redis struct {
	Db  *redis.Client
	ttl time.Duration
}

// InitServer подключается к redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	const op = "guard.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return db, nil
}

// NewRedis создаёт Guard поверх клиента redis. ttl ограничивает время
// состояния Submitting, если процесс упадёт посреди отправки.
func NewRedis(db *redis.Client, ttl time.Duration) *Redis {
	return &Redis{Db: db, ttl: ttl}
}

func (g *Redis) Acquire(ctx context.Context, key string) (bool, error) {
	const op = "guard.Redis.Acquire"
	ok, err := g.Db.SetNX(ctx, keyPrefix+key, string(Submitting), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}

func (g *Redis) MarkNavigating(ctx context.Context, key string, d time.Duration) error {
	const op = "guard.Redis.MarkNavigating"
	// Нулевой TTL в redis означает "без срока": ключ без задержки перехода сразу освобождается.
	if d <= 0 {
		n, err := g.Db.Del(ctx, keyPrefix+key).Result()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if n == 0 {
			return fmt.Errorf("%s: %w", op, ErrNotHeld)
		}
		return nil
	}
	ok, err := g.Db.SetXX(ctx, keyPrefix+key, string(Navigating), d).Result()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", op, ErrNotHeld)
	}
	return nil
}

func (g *Redis) Release(ctx context.Context, key string) error {
	const op = "guard.Redis.Release"
	if err := g.Db.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (g *Redis) State(ctx context.Context, key string) (State, error) {
	const op = "guard.Redis.State"
	val, err := g.Db.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return Idle, nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return State(val), nil
}
