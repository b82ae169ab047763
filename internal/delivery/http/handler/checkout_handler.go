package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/swipehire/backend/internal/usecase/checkout"
)

type CheckoutHandler struct {
	checkoutUseCase *checkout.CheckoutUseCase
}

func NewCheckoutHandler(checkoutUseCase *checkout.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
	}
}

// Unlock resolves the unlock decision and opens checkout when needed
// @Summary Unlock a match
// @Description Grants the unlock when the plan covers it, otherwise returns a hosted checkout URL
// @Tags checkout
// @Security BearerAuth
// @Produce json
// @Param match_id path int true "Match ID"
// @Success 200 {object} checkout.StartResult
// @Failure 402 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/{match_id}/unlock [post]
func (h *CheckoutHandler) Unlock(c *gin.Context) {
	employer, ok := requireEmployer(c)
	if !ok {
		return
	}

	matchID, err := strconv.Atoi(c.Param("match_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match id"})
		return
	}

	result, err := h.checkoutUseCase.StartUnlockCheckout(c.Request.Context(), employer.ID, matchID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ChargeCard pays for an unlock with the saved card
// @Summary Unlock a match with the saved card
// @Tags checkout
// @Security BearerAuth
// @Produce json
// @Param match_id path int true "Match ID"
// @Success 200 {object} entitlement.Decision
// @Failure 402 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /matches/{match_id}/unlock/charge [post]
func (h *CheckoutHandler) ChargeCard(c *gin.Context) {
	employer, ok := requireEmployer(c)
	if !ok {
		return
	}

	matchID, err := strconv.Atoi(c.Param("match_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match id"})
		return
	}

	decision, err := h.checkoutUseCase.ChargeSavedCard(c.Request.Context(), employer.ID, matchID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, decision)
}

// Webhook receives payment provider notifications. It is unauthenticated;
// the signature header is the only trust anchor.
// @Summary Payment provider webhook
// @Tags checkout
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /webhooks/stripe [post]
func (h *CheckoutHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable payload"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.checkoutUseCase.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "webhook rejected"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "ok"})
}
