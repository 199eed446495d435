package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"todo-server/internal/domain/user"
	"todo-server/internal/infrastructure/auth"
	"todo-server/internal/interfaces/httpserver/requests"
	"todo-server/internal/interfaces/httpserver/responses"
	"todo-server/internal/utils/platformerrors"
)

// AuthHandler exposes account registration, login and profile endpoints.
type AuthHandler struct {
	users  *user.Service
	tokens *auth.TokenService
	log    zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(users *user.Service, tokens *auth.TokenService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		log:    log.With().Str("handler", "auth").Logger(),
	}
}

// Signup handles POST /api/auth/signup
// @Summary Register a new account
// @Description Creates an account and returns a bearer token for it
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body requests.SignupRequest true "Account details"
// @Success 201 {object} responses.TokenPayload
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req requests.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.users.Signup(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		responses.HandleError(c, err, "failed to register account")
		return
	}

	token, expiresAt, err := h.tokens.Issue(account)
	if err != nil {
		responses.HandleError(c, err, "failed to issue token")
		return
	}

	h.log.Info().Str("user_id", account.PublicID).Msg("account registered")
	c.JSON(http.StatusCreated, responses.NewTokenPayload(token, expiresAt, account))
}

// Login handles POST /api/auth/login
// @Summary Exchange credentials for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body requests.LoginRequest true "Credentials"
// @Success 200 {object} responses.TokenPayload
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req requests.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		responses.HandleError(c, err, "failed to log in")
		return
	}

	token, expiresAt, err := h.tokens.Issue(account)
	if err != nil {
		responses.HandleError(c, err, "failed to issue token")
		return
	}

	c.JSON(http.StatusOK, responses.NewTokenPayload(token, expiresAt, account))
}

// Me handles GET /api/auth/me
// @Summary Get the authenticated account
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.UserPayload
// @Failure 401 {object} responses.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "9b0c1d2e-3f4a-4b5c-6d7e-8f9a0b1c2d3e")
		return
	}

	c.JSON(http.StatusOK, responses.FromUser(principal))
}
