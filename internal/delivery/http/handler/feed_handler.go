package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/swipehire/backend/internal/usecase/feed"
)

type FeedHandler struct {
	feedUseCase *feed.FeedUseCase
}

func NewFeedHandler(feedUseCase *feed.FeedUseCase) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
	}
}

// NextJobs returns the seeker's next job cards
// @Summary Next jobs in the feed
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Max cards (default 20)"
// @Success 200 {array} feed.JobCard
// @Failure 403 {object} ErrorResponse
// @Router /feed/jobs [get]
func (h *FeedHandler) NextJobs(c *gin.Context) {
	viewer, ok := requireAccount(c)
	if !ok {
		return
	}
	if viewer.IsEmployer() {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "jobseeker role required"})
		return
	}

	limit := queryInt(c, "limit", 20)

	cards, err := h.feedUseCase.NextJobs(c.Request.Context(), viewer.ID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cards)
}

// NextCandidates returns candidate cards for one of the employer's postings
// @Summary Next candidates in the feed
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Param job_id query int true "Job ID the candidates are for"
// @Param limit query int false "Max cards (default 20)"
// @Success 200 {array} feed.CandidateCard
// @Failure 403 {object} ErrorResponse
// @Router /feed/candidates [get]
func (h *FeedHandler) NextCandidates(c *gin.Context) {
	employer, ok := requireEmployer(c)
	if !ok {
		return
	}

	jobID, err := strconv.Atoi(c.Query("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "job_id is required"})
		return
	}

	limit := queryInt(c, "limit", 20)

	cards, err := h.feedUseCase.NextCandidates(c.Request.Context(), employer.ID, jobID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cards)
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
