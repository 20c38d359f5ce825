package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/edunexa/educenter-backend/internal/logger"
)

// TeacherAlert is the message published when a monitoring sweep flags a
// teacher. Subscribers (dashboards, notification workers) consume it
// off the configured Redis channel.
type TeacherAlert struct {
	TeacherID   uuid.UUID `json:"teacher_id"`
	TeacherName string    `json:"teacher_name,omitempty"`
	Reason      string    `json:"reason"`
	FlaggedAt   time.Time `json:"flagged_at"`
}

type AlertBus interface {
	Publish(ctx context.Context, alert TeacherAlert) error
	Close() error
}

type alertBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewAlertBus(log *logger.Logger) (AlertBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ch := strings.TrimSpace(os.Getenv("REDIS_ALERT_CHANNEL"))
	if ch == "" {
		ch = "teacher-alerts"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &alertBus{
		log:     log.With("service", "RedisAlertBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (ab *alertBus) Publish(ctx context.Context, alert TeacherAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}
	if err := ab.rdb.Publish(ctx, ab.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}
	return nil
}

func (ab *alertBus) Close() error {
	return ab.rdb.Close()
}
