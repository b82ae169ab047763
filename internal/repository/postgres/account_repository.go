package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/swipehire/backend/internal/domain"
	"github.com/swipehire/backend/internal/repository"
)

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (
			email, password_hash, role, subscription_plan, display_name,
			company_name, city, location_lat, location_lon
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		account.Email, account.PasswordHash, account.Role, account.SubscriptionPlan,
		account.DisplayName, account.CompanyName, account.City,
		account.LocationLat, account.LocationLon,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT * FROM accounts WHERE id = $1`
	err := r.db.GetContext(ctx, &account, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT * FROM accounts WHERE email = $1`
	err := r.db.GetContext(ctx, &account, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetByStripeCustomerID(ctx context.Context, customerID string) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT * FROM accounts WHERE stripe_customer_id = $1`
	err := r.db.GetContext(ctx, &account, query, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET display_name = $1, company_name = $2, city = $3,
		    location_lat = $4, location_lon = $5,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		account.DisplayName, account.CompanyName, account.City,
		account.LocationLat, account.LocationLon,
		account.ID,
	).Scan(&account.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrAccountNotFound
	}
	return err
}

func (r *accountRepository) UpdateSubscriptionPlan(ctx context.Context, id int, plan domain.SubscriptionPlan) error {
	query := `UPDATE accounts SET subscription_plan = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, plan, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) SetStripeCustomerID(ctx context.Context, id int, customerID string) error {
	query := `UPDATE accounts SET stripe_customer_id = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, customerID, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) SearchSeekers(ctx context.Context, filters map[string]interface{}, limit, offset int) ([]*domain.Account, error) {
	var accounts []*domain.Account

	query := `SELECT * FROM accounts WHERE role = 'jobseeker'`
	args := []interface{}{}
	argCount := 1

	if city, ok := filters["city"].(string); ok && city != "" {
		query += fmt.Sprintf(" AND city = $%d", argCount)
		args = append(args, city)
		argCount++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, offset)

	err := r.db.SelectContext(ctx, &accounts, query, args...)
	return accounts, err
}
