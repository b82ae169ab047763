package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swipehire/backend/internal/domain"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// respondError maps domain errors onto HTTP status codes. Unknown errors
// become 500 with a generic message so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "email already registered"})
	case errors.Is(err, domain.ErrSwipeAlreadyExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "already swiped"})
	case errors.Is(err, domain.ErrAlreadyUnlocked):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "match already unlocked"})
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrJobNotFound),
		errors.Is(err, domain.ErrMatchNotFound),
		errors.Is(err, domain.ErrCheckoutSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotJobOwner),
		errors.Is(err, domain.ErrNotMatchOwner),
		errors.Is(err, domain.ErrMatchLocked):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrFlexUnavailableOnPlan):
		c.JSON(http.StatusPaymentRequired, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// currentAccount reads the authenticated account placed into the gin
// context by the auth middleware.
func currentAccount(c *gin.Context) (*domain.Account, bool) {
	v, exists := c.Get("account")
	if !exists {
		return nil, false
	}
	account, ok := v.(*domain.Account)
	return account, ok
}

// requireAccount is currentAccount plus the 401 response on absence.
func requireAccount(c *gin.Context) (*domain.Account, bool) {
	account, ok := currentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	return account, ok
}

// requireEmployer narrows requireAccount to the employer role.
func requireEmployer(c *gin.Context) (*domain.Account, bool) {
	account, ok := requireAccount(c)
	if !ok {
		return nil, false
	}
	if !account.IsEmployer() {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "employer role required"})
		return nil, false
	}
	return account, true
}
