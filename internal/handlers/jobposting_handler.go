package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xpanvictor/quickpost/internal/domains/jobposting"
	"github.com/xpanvictor/quickpost/internal/domains/user"
	"github.com/xpanvictor/quickpost/pkg/Logger"
)

type JobPostingHandler struct {
	jobPostingService jobposting.JobPostingService
	userService       user.UserService
	logger            *Logger.Logger
}

func NewJobPostingHandler(jobPostingService jobposting.JobPostingService, userService user.UserService, logger *Logger.Logger) *JobPostingHandler {
	return &JobPostingHandler{
		jobPostingService: jobPostingService,
		userService:       userService,
		logger:            logger,
	}
}

// CreateJobPosting handles posting a reviewed job
// @Summary Create a job posting
// @Description Publish a job request with budget and location flattened to strings
// @Tags Job Postings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body jobposting.CreateJobPostingRequest true "Job posting data"
// @Success 201 {object} jobposting.JobPosting "Job posting created"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 401 {object} ErrorResponse "User not authenticated"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /job-postings [post]
func (h *JobPostingHandler) CreateJobPosting(c *gin.Context) {
	info, ok := ExtractUserInfo(c)
	if !ok {
		return
	}

	var req jobposting.CreateJobPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	posting, err := h.jobPostingService.Create(c.Request.Context(), info.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, jobposting.ErrUnknownService):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown service category", Details: err.Error()})
		default:
			h.logger.Errorf("create job posting error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, posting)
}

// GetJobPosting handles fetching one job posting
// @Summary Get a job posting
// @Tags Job Postings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job posting ID"
// @Success 200 {object} jobposting.JobPosting "Job posting"
// @Failure 404 {object} ErrorResponse "Job posting not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /job-postings/{id} [get]
func (h *JobPostingHandler) GetJobPosting(c *gin.Context) {
	posting, err := h.jobPostingService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, jobposting.ErrJobPostingNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Job posting not found"})
		default:
			h.logger.Errorf("get job posting error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, posting)
}

func (h *JobPostingHandler) RegisterJobPostingRoutes(r *gin.RouterGroup) {
	postings := r.Group("/job-postings")
	postings.Use(AuthMiddleware(h.userService, h.logger))
	{
		postings.POST("", h.CreateJobPosting)
		postings.GET("/:id", h.GetJobPosting)
	}
}
