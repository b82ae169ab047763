package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/swipehire/backend/internal/usecase/job"
)

type JobHandler struct {
	jobUseCase *job.JobUseCase
}

func NewJobHandler(jobUseCase *job.JobUseCase) *JobHandler {
	return &JobHandler{
		jobUseCase: jobUseCase,
	}
}

// Create creates a job posting
// @Summary Create job posting
// @Tags jobs
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body job.CreateJobRequest true "Job posting"
// @Success 201 {object} domain.JobPosting
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	employer, ok := requireEmployer(c)
	if !ok {
		return
	}

	var req job.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	created, err := h.jobUseCase.Create(c.Request.Context(), employer, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update updates a job posting the caller owns
// @Summary Update job posting
// @Tags jobs
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param job_id path int true "Job ID"
// @Param request body job.CreateJobRequest true "Job posting"
// @Success 200 {object} domain.JobPosting
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /jobs/{job_id} [put]
func (h *JobHandler) Update(c *gin.Context) {
	employer, ok := requireEmployer(c)
	if !ok {
		return
	}

	jobID, err := strconv.Atoi(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid job id"})
		return
	}

	var req job.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	updated, err := h.jobUseCase.Update(c.Request.Context(), employer.ID, jobID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ListMine lists the caller's job postings
// @Summary List my job postings
// @Tags jobs
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.JobPosting
// @Router /jobs/mine [get]
func (h *JobHandler) ListMine(c *gin.Context) {
	employer, ok := requireEmployer(c)
	if !ok {
		return
	}

	jobs, err := h.jobUseCase.ListMine(c.Request.Context(), employer.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// Get returns one job posting
// @Summary Get job posting
// @Tags jobs
// @Security BearerAuth
// @Produce json
// @Param job_id path int true "Job ID"
// @Success 200 {object} domain.JobPosting
// @Failure 404 {object} ErrorResponse
// @Router /jobs/{job_id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	if _, ok := requireAccount(c); !ok {
		return
	}

	jobID, err := strconv.Atoi(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid job id"})
		return
	}

	posting, err := h.jobUseCase.Get(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posting)
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive activates or deactivates a posting
// @Summary Activate or deactivate job posting
// @Tags jobs
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param job_id path int true "Job ID"
// @Param request body setActiveRequest true "Desired state"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /jobs/{job_id}/active [patch]
func (h *JobHandler) SetActive(c *gin.Context) {
	employer, ok := requireEmployer(c)
	if !ok {
		return
	}

	jobID, err := strconv.Atoi(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid job id"})
		return
	}

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	if err := h.jobUseCase.SetActive(c.Request.Context(), employer.ID, jobID, *req.Active); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "job updated"})
}
