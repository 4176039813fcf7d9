package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	domainerr "github.com/MrEisbear/Silk/internal/domain/error"
	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/api/dto"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/api/middleware"
)

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	jobService usecase.JobUseCase
	logger     coreport.Logger
}

// NewJobHandler creates a new job handler instance
func NewJobHandler(jobService usecase.JobUseCase, logger coreport.Logger) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		logger:     logger,
	}
}

// jobToResponse maps a job entity to its API representation
func jobToResponse(job *entity.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:          job.ID,
		JobName:     job.JobName,
		Department:  job.Department,
		ClassLevel:  job.ClassLevel,
		DailyAmount: entity.FormatAmount(job.DailyAmount),
	}
}

// pathID parses a numeric path parameter
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid " + name + " format",
		})
		return 0, false
	}
	return id, true
}

// Create handles the POST /admin/jobs endpoint
func (h *JobHandler) Create(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), usecase.CreateJobRequest{
		JobName:     req.JobName,
		Department:  req.Department,
		ClassLevel:  req.ClassLevel,
		DailyAmount: req.DailyAmount,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, jobToResponse(job))
}

// Assign handles the PUT /admin/users/:id/jobs/:jobId endpoint
func (h *JobHandler) Assign(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}

	if err := h.jobService.Assign(c.Request.Context(), userID, jobID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Unassign handles the DELETE /admin/users/:id/jobs/:jobId endpoint
func (h *JobHandler) Unassign(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}

	if err := h.jobService.Unassign(c.Request.Context(), userID, jobID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Summary handles the GET /jobs/summary endpoint
func (h *JobHandler) Summary(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	summary, err := h.jobService.Summary(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := dto.JobSummaryResponse{
		Jobs:     make([]dto.JobResponse, 0, len(summary.Jobs)),
		CanClaim: summary.CanClaim,
	}
	for _, job := range summary.Jobs {
		response.Jobs = append(response.Jobs, jobToResponse(job))
	}
	if summary.BestJob != nil {
		best := jobToResponse(summary.BestJob)
		response.BestJob = &best
	}
	if !summary.NextClaimAt.IsZero() {
		next := summary.NextClaimAt
		response.NextClaimAt = &next
	}

	c.JSON(http.StatusOK, response)
}
