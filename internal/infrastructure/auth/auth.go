package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"todo-server/internal/domain/user"
)

const principalKey = "auth_principal"

// Middleware authenticates requests with a bearer token and loads the
// account it belongs to.
type Middleware struct {
	tokens *TokenService
	users  *user.Service
	log    zerolog.Logger
}

// NewMiddleware builds the bearer auth middleware.
func NewMiddleware(tokens *TokenService, users *user.Service, log zerolog.Logger) *Middleware {
	return &Middleware{
		tokens: tokens,
		users:  users,
		log:    log.With().Str("component", "auth").Logger(),
	}
}

// Handler enforces bearer auth and stashes the authenticated account on
// the gin context. Tokens for deleted accounts are rejected the same way
// as malformed ones.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		claims, err := m.tokens.Verify(tokenString)
		if err != nil {
			m.log.Debug().Err(err).Msg("token verification failed")
			abortUnauthorized(c, "invalid token")
			return
		}

		account, err := m.users.GetByPublicID(c.Request.Context(), claims.Subject)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(principalKey, account)
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated account, if any.
func PrincipalFromContext(c *gin.Context) (*user.User, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	account, ok := value.(*user.User)
	return account, ok
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
	})
}
