package chat

import (
	"context"
	"strings"

	"github.com/swipehire/backend/internal/domain"
	"github.com/swipehire/backend/internal/repository"
)

type ChatUseCase struct {
	matchRepo   repository.MatchRepository
	messageRepo repository.MessageRepository
}

func NewChatUseCase(matchRepo repository.MatchRepository, messageRepo repository.MessageRepository) *ChatUseCase {
	return &ChatUseCase{matchRepo: matchRepo, messageRepo: messageRepo}
}

// access checks the viewer belongs to the match and, for employers, that
// the match has been unlocked. Chat is what the unlock pays for.
func (uc *ChatUseCase) access(ctx context.Context, viewer *domain.Account, matchID int) (*domain.Match, error) {
	m, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m.EmployerID != viewer.ID && m.SeekerID != viewer.ID {
		return nil, domain.ErrMatchNotFound
	}
	if viewer.IsEmployer() && !m.EmployerUnlocked {
		return nil, domain.ErrMatchLocked
	}
	return m, nil
}

func (uc *ChatUseCase) Send(ctx context.Context, viewer *domain.Account, matchID int, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.access(ctx, viewer, matchID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		MatchID:  matchID,
		SenderID: viewer.ID,
		Body:     body,
	}
	if err := uc.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (uc *ChatUseCase) History(ctx context.Context, viewer *domain.Account, matchID int, limit, offset int) ([]*domain.Message, error) {
	if _, err := uc.access(ctx, viewer, matchID); err != nil {
		return nil, err
	}
	return uc.messageRepo.GetByMatch(ctx, matchID, limit, offset)
}
