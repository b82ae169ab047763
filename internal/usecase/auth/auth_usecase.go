package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/swipehire/backend/internal/domain"
	"github.com/swipehire/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase struct {
	accountRepo  repository.AccountRepository
	sessionRepo  repository.SessionRepository
	jwtSecret    string
	accessExpiry time.Duration
}

func NewAuthUseCase(
	accountRepo repository.AccountRepository,
	sessionRepo repository.SessionRepository,
	jwtSecret string,
	accessExpiryMin int,
) *AuthUseCase {
	return &AuthUseCase{
		accountRepo:  accountRepo,
		sessionRepo:  sessionRepo,
		jwtSecret:    jwtSecret,
		accessExpiry: time.Duration(accessExpiryMin) * time.Minute,
	}
}

// RegisterRequest creates a new account. Role is fixed at registration.
type RegisterRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8"`
	Role        string  `json:"role" binding:"required,oneof=employer jobseeker"`
	DisplayName string  `json:"display_name" binding:"required"`
	CompanyName *string `json:"company_name"`
	City        *string `json:"city"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the bearer token and the authenticated account.
type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   *domain.Account `json:"account"`
}

// Register creates the account and opens a first session.
func (uc *AuthUseCase) Register(ctx context.Context, req *RegisterRequest, deviceInfo, ipAddress string) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:     string(hash),
		Role:             domain.Role(req.Role),
		SubscriptionPlan: domain.PlanBasic,
		DisplayName:      req.DisplayName,
		CompanyName:      req.CompanyName,
		City:             req.City,
	}
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return uc.openSession(ctx, account, deviceInfo, ipAddress)
}

// Login verifies credentials and opens a session.
func (uc *AuthUseCase) Login(ctx context.Context, req *LoginRequest, deviceInfo, ipAddress string) (*AuthResponse, error) {
	account, err := uc.accountRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if err == domain.ErrAccountNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return uc.openSession(ctx, account, deviceInfo, ipAddress)
}

func (uc *AuthUseCase) openSession(ctx context.Context, account *domain.Account, deviceInfo, ipAddress string) (*AuthResponse, error) {
	expiresAt := time.Now().Add(uc.accessExpiry)
	session := &domain.Session{
		AccountID: account.ID,
		Token:     uuid.NewString(),
		ExpiresAt: expiresAt,
	}
	if deviceInfo != "" {
		session.DeviceInfo = &deviceInfo
	}
	if ipAddress != "" {
		session.IPAddress = &ipAddress
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	claims := jwt.MapClaims{
		"sub": account.ID,
		"sid": session.Token,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &AuthResponse{Token: signed, ExpiresAt: expiresAt, Account: account}, nil
}

// Authenticate resolves a bearer token to an account, checking both the JWT
// signature and the server-side session (so logout revokes immediately).
func (uc *AuthUseCase) Authenticate(ctx context.Context, tokenString string) (*domain.Account, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(uc.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := uc.sessionRepo.GetByToken(ctx, sid)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessionRepo.Delete(ctx, sid)
		return nil, domain.ErrInvalidCredentials
	}

	return uc.accountRepo.GetByID(ctx, session.AccountID)
}

// LogoutAll revokes every session the account has open, on every device.
func (uc *AuthUseCase) LogoutAll(ctx context.Context, accountID int) error {
	return uc.sessionRepo.DeleteByAccount(ctx, accountID)
}

// Logout revokes the session behind a bearer token.
func (uc *AuthUseCase) Logout(ctx context.Context, tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(uc.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return domain.ErrInvalidCredentials
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.ErrInvalidCredentials
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return domain.ErrInvalidCredentials
	}
	return uc.sessionRepo.Delete(ctx, sid)
}
