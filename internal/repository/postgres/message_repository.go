package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/swipehire/backend/internal/domain"
	"github.com/swipehire/backend/internal/repository"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (match_id, sender_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query, msg.MatchID, msg.SenderID, msg.Body).
		Scan(&msg.ID, &msg.CreatedAt)
}

func (r *messageRepository) GetByMatch(ctx context.Context, matchID int, limit, offset int) ([]*domain.Message, error) {
	var messages []*domain.Message
	query := `
		SELECT * FROM messages
		WHERE match_id = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &messages, query, matchID, limit, offset)
	return messages, err
}
