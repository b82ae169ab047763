package account

import (
	"context"

	"github.com/swipehire/backend/internal/domain"
	"github.com/swipehire/backend/internal/repository"
)

type AccountUseCase struct {
	accountRepo repository.AccountRepository
}

func NewAccountUseCase(accountRepo repository.AccountRepository) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
	}
}

// UpdateProfileRequest carries the mutable profile fields. Email, role and
// subscription plan are managed elsewhere and cannot be set here.
type UpdateProfileRequest struct {
	DisplayName *string  `json:"display_name"`
	CompanyName *string  `json:"company_name"`
	City        *string  `json:"city"`
	LocationLat *float64 `json:"location_lat"`
	LocationLon *float64 `json:"location_lon"`
}

// UpdateProfile applies a partial update to the caller's own account.
func (uc *AccountUseCase) UpdateProfile(ctx context.Context, accountID int, req *UpdateProfileRequest) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if *req.DisplayName == "" {
			return nil, domain.ErrInvalidInput
		}
		account.DisplayName = *req.DisplayName
	}
	if req.CompanyName != nil {
		account.CompanyName = req.CompanyName
	}
	if req.City != nil {
		account.City = req.City
	}
	if req.LocationLat != nil {
		account.LocationLat = req.LocationLat
	}
	if req.LocationLon != nil {
		account.LocationLon = req.LocationLon
	}

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Get returns any account's public view. The password hash and billing
// identifiers are excluded by JSON tags on the domain type.
func (uc *AccountUseCase) Get(ctx context.Context, accountID int) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, accountID)
}
