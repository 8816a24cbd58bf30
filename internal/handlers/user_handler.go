package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xpanvictor/quickpost/internal/domains/user"
	"github.com/xpanvictor/quickpost/pkg/Logger"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService user.UserService
	logger      *Logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService user.UserService, logger *Logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// QuickSignup handles account creation from voice-extracted details
// @Summary Quick signup
// @Description Create an account from voice-extracted details and a temporary password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body user.QuickSignupRequest true "Extracted user and password"
// @Success 201 {object} QuickSignupResponse "Account created"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 409 {object} ErrorResponse "Mobile number already registered"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/quick-signup [post]
func (h *UserHandler) QuickSignup(c *gin.Context) {
	var req user.QuickSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	userResponse, tokens, err := h.userService.QuickSignup(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrMobileAlreadyExists):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Mobile number already registered"})
		default:
			h.logger.Errorf("quick signup error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, QuickSignupResponse{
		Message: "Account created successfully",
		User:    *userResponse,
		Tokens:  *tokens,
	})
}

// GetProfile handles getting user profile
// @Summary Get user profile
// @Description Get the current authenticated user's profile
// @Tags User Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse "User profile data"
// @Failure 401 {object} ErrorResponse "User not authenticated"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /user/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	info, ok := ExtractUserInfo(c)
	if !ok {
		return
	}

	userResponse, err := h.userService.GetProfile(c.Request.Context(), info.UserID)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		default:
			h.logger.Errorf("get profile error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		User: *userResponse,
	})
}

// RegisterUserRoutes registers all user-related routes
func (h *UserHandler) RegisterUserRoutes(r *gin.RouterGroup) {
	public := r.Group("/auth")
	{
		public.POST("/quick-signup", h.QuickSignup)
	}

	protected := r.Group("/user")
	protected.Use(AuthMiddleware(h.userService, h.logger))
	{
		protected.GET("/profile", h.GetProfile)
	}
}
