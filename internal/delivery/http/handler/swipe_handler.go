package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swipehire/backend/internal/usecase/swipe"
)

type SwipeHandler struct {
	swipeUseCase *swipe.SwipeUseCase
}

func NewSwipeHandler(swipeUseCase *swipe.SwipeUseCase) *SwipeHandler {
	return &SwipeHandler{
		swipeUseCase: swipeUseCase,
	}
}

// CreateSwipe records a swipe and reports any resulting match
// @Summary Swipe
// @Description Record a like or skip; a reciprocal like forms a match
// @Tags swipe
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body swipe.SwipeRequest true "Swipe"
// @Success 200 {object} swipe.SwipeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /swipe [post]
func (h *SwipeHandler) CreateSwipe(c *gin.Context) {
	actor, ok := requireAccount(c)
	if !ok {
		return
	}

	var req swipe.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	result, err := h.swipeUseCase.CreateSwipe(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetLikesReceived lists seekers who liked the employer's postings
// @Summary Likes received
// @Tags swipe
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Max entries (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {array} swipe.LikeReceived
// @Failure 403 {object} ErrorResponse
// @Router /swipe/likes-received [get]
func (h *SwipeHandler) GetLikesReceived(c *gin.Context) {
	employer, ok := requireEmployer(c)
	if !ok {
		return
	}

	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	likes, err := h.swipeUseCase.GetLikesReceived(c.Request.Context(), employer.ID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, likes)
}
