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

// authTokenHandler issues and revokes bearer tokens.
type authTokenHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// registerAuthTokenRoutes registers the public login route on public and the
// revocation route on authed.
func registerAuthTokenRoutes(public, authed *gin.RouterGroup, cfg *config.Config, us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) error {
	h := &authTokenHandler{userService: us, tokenService: ts}

	// Separate bucket from registration so one cannot starve the other.
	lim, err := middleware.NewRateLimiter(cfg.AuthRateLimit)
	if err != nil {
		return err
	}
	public.POST("/auth_tokens", middleware.RateLimit(lim), h.createAuthToken)
	authed.DELETE("/auth_tokens/current", h.revokeCurrentToken)
	return nil
}

// createAuthToken godoc
// @Summary Log in
// @Description Exchanges a username and password for a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.CreateAuthTokenRequest true "Credentials"
// @Success 201 {object} dto.UserWithTokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth_tokens [post]
func (h *authTokenHandler) createAuthToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAuthTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	logger = logger.With(slog.String("username", req.Username))
	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(c, logger, err, "user not found")
		return
	}

	signed, token, err := h.tokenService.IssueToken(c.Request.Context(), user)
	if err != nil {
		handleServiceError(c, logger, err, "user not found")
		return
	}

	logger.Info("Auth token issued", slog.String("token_id", token.ID))
	c.JSON(http.StatusCreated, dto.ToUserWithTokenResponse(user, signed, token))
}

// revokeCurrentToken godoc
// @Summary Log out
// @Description Revokes the bearer token used for this request.
// @Tags auth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth_tokens/current [delete]
func (h *authTokenHandler) revokeCurrentToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tokenID, ok := middleware.GetTokenIDFromContext(c)
	if !ok {
		logger.Error("Token ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.tokenService.RevokeToken(c.Request.Context(), tokenID); err != nil {
		handleServiceError(c, logger, err, "token already revoked")
		return
	}

	logger.Info("Auth token revoked", slog.String("token_id", tokenID))
	c.Status(http.StatusNoContent)
}
