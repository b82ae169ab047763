package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/swipehire/backend/internal/usecase/match"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
	}
}

// List lists the caller's matches
// @Summary List matches
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Max entries (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {array} match.MatchView
// @Router /matches [get]
func (h *MatchHandler) List(c *gin.Context) {
	viewer, ok := requireAccount(c)
	if !ok {
		return
	}

	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	views, err := h.matchUseCase.List(c.Request.Context(), viewer, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// Get returns one match as the caller sees it
// @Summary Get match
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param match_id path int true "Match ID"
// @Success 200 {object} match.MatchView
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/{match_id} [get]
func (h *MatchHandler) Get(c *gin.Context) {
	viewer, ok := requireAccount(c)
	if !ok {
		return
	}

	matchID, err := strconv.Atoi(c.Param("match_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match id"})
		return
	}

	view, err := h.matchUseCase.Get(c.Request.Context(), viewer, matchID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// PaymentHistory returns the caller's full unlock payment history
// @Summary Payment history
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Max entries (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {array} domain.PaymentRecord
// @Failure 403 {object} ErrorResponse
// @Router /account/me/payments [get]
func (h *MatchHandler) PaymentHistory(c *gin.Context) {
	employer, ok := requireEmployer(c)
	if !ok {
		return
	}

	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	records, err := h.matchUseCase.PaymentHistory(c.Request.Context(), employer.ID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// Payments returns the unlock payment trail for a match
// @Summary Match payment records
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param match_id path int true "Match ID"
// @Success 200 {array} domain.PaymentRecord
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/{match_id}/payments [get]
func (h *MatchHandler) Payments(c *gin.Context) {
	employer, ok := requireEmployer(c)
	if !ok {
		return
	}

	matchID, err := strconv.Atoi(c.Param("match_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match id"})
		return
	}

	records, err := h.matchUseCase.Payments(c.Request.Context(), employer.ID, matchID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}
