package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/dto"
	"github.com/SscSPs/exchange_rates_app/internal/middleware"
	"github.com/SscSPs/exchange_rates_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *userHandler {
	return &userHandler{
		userService:  us,
		tokenService: ts,
	}
}

// registerUserRoutes registers the public registration route.
func registerUserRoutes(rg *gin.RouterGroup, cfg *config.Config, userService portssvc.UserSvcFacade, tokenService portssvc.TokenSvcFacade) error {
	h := newUserHandler(userService, tokenService)

	lim, err := middleware.NewRateLimiter(cfg.AuthRateLimit)
	if err != nil {
		return err
	}
	rg.POST("/users", middleware.RateLimit(lim), h.createUser)
	return nil
}

// createUser godoc
// @Summary Register a user
// @Description Creates a user and returns a first bearer token for it.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "Credentials"
// @Success 201 {object} dto.UserWithTokenResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Username taken"
// @Failure 429 {object} ErrorResponse "Too many requests"
// @Failure 500 {object} ErrorResponse "Failed to create user"
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create user request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("username", req.Username))
	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, logger, err, "user not found")
		return
	}

	signed, token, err := h.tokenService.IssueToken(c.Request.Context(), user)
	if err != nil {
		handleServiceError(c, logger, err, "user not found")
		return
	}

	logger.Info("User registered", slog.String("token_id", token.ID))
	c.JSON(http.StatusCreated, dto.ToUserWithTokenResponse(user, signed, token))
}
