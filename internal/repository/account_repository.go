package repository

import (
	"context"

	"github.com/swipehire/backend/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByStripeCustomerID(ctx context.Context, customerID string) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	UpdateSubscriptionPlan(ctx context.Context, id int, plan domain.SubscriptionPlan) error
	SetStripeCustomerID(ctx context.Context, id int, customerID string) error
	SearchSeekers(ctx context.Context, filters map[string]interface{}, limit, offset int) ([]*domain.Account, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteByAccount(ctx context.Context, accountID int) error
}
