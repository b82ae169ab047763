package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/swipehire/backend/internal/usecase/account"
)

type AccountHandler struct {
	accountUseCase *account.AccountUseCase
}

func NewAccountHandler(accountUseCase *account.AccountUseCase) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
	}
}

// UpdateMe updates the caller's profile
// @Summary Update my profile
// @Tags account
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body account.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} domain.Account
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /account/me [put]
func (h *AccountHandler) UpdateMe(c *gin.Context) {
	viewer, ok := requireAccount(c)
	if !ok {
		return
	}

	var req account.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	updated, err := h.accountUseCase.UpdateProfile(c.Request.Context(), viewer.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Get returns another account's public view
// @Summary Get account by id
// @Tags account
// @Security BearerAuth
// @Produce json
// @Param account_id path int true "Account ID"
// @Success 200 {object} domain.Account
// @Failure 404 {object} ErrorResponse
// @Router /account/{account_id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	if _, ok := requireAccount(c); !ok {
		return
	}

	accountID, err := strconv.Atoi(c.Param("account_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid account id",
		})
		return
	}

	found, err := h.accountUseCase.Get(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}
