package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/swipehire/backend/internal/domain"
	"github.com/swipehire/backend/internal/repository"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetByMatch(ctx context.Context, matchID int) ([]*domain.PaymentRecord, error) {
	var records []*domain.PaymentRecord
	query := `SELECT * FROM payment_records WHERE match_id = $1 ORDER BY created_at`
	err := r.db.SelectContext(ctx, &records, query, matchID)
	return records, err
}

func (r *paymentRepository) GetByEmployer(ctx context.Context, employerID int, limit, offset int) ([]*domain.PaymentRecord, error) {
	var records []*domain.PaymentRecord
	query := `
		SELECT * FROM payment_records
		WHERE employer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &records, query, employerID, limit, offset)
	return records, err
}
