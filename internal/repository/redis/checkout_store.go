package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/swipehire/backend/internal/domain"
	"github.com/swipehire/backend/internal/repository"
)

type checkoutStore struct {
	client *redis.Client
}

func NewCheckoutSessionStore(client *redis.Client) repository.CheckoutSessionStore {
	return &checkoutStore{client: client}
}

func pendingKey(sessionID string) string {
	return "checkout:pending:" + sessionID
}

func (s *checkoutStore) SavePending(ctx context.Context, pending *domain.PendingCheckout, ttl time.Duration) error {
	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to encode pending checkout: %w", err)
	}
	if err := s.client.Set(ctx, pendingKey(pending.SessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store pending checkout: %w", err)
	}
	return nil
}

func (s *checkoutStore) GetPending(ctx context.Context, sessionID string) (*domain.PendingCheckout, error) {
	data, err := s.client.Get(ctx, pendingKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCheckoutSessionNotFound
		}
		return nil, fmt.Errorf("failed to load pending checkout: %w", err)
	}
	var pending domain.PendingCheckout
	if err := json.Unmarshal(data, &pending); err != nil {
		return nil, fmt.Errorf("failed to decode pending checkout: %w", err)
	}
	return &pending, nil
}

func (s *checkoutStore) DeletePending(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, pendingKey(sessionID)).Err()
}
