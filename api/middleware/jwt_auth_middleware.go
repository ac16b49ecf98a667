package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wavelength-audio/wavelength-backend/domain"
	"github.com/wavelength-audio/wavelength-backend/internal/tokenutil"
)

const (
	userContextKey  = "x-user"
	tokenContextKey = "x-token"
)

// AuthMiddleware resolves bearer tokens into users. A token is only valid
// while it is still present in the user's token set, so logout revokes it
// immediately.
type AuthMiddleware struct {
	userRepository domain.UserRepository
	secret         string
	timeout        time.Duration
}

func NewAuthMiddleware(userRepository domain.UserRepository, secret string, timeout time.Duration) *AuthMiddleware {
	return &AuthMiddleware{
		userRepository: userRepository,
		secret:         secret,
		timeout:        timeout,
	}
}

// MustAuth aborts with 403 unless the request carries a live session token.
func (m *AuthMiddleware) MustAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, token, err := m.resolve(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, domain.NewErrorResponse("unauthorized request"))
			return
		}
		c.Set(userContextKey, user)
		c.Set(tokenContextKey, token)
		c.Next()
	}
}

// IsAuth attaches the user when a valid token is present and stays silent
// otherwise. Handlers behind it serve both identities.
func (m *AuthMiddleware) IsAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, token, err := m.resolve(c); err == nil {
			c.Set(userContextKey, user)
			c.Set(tokenContextKey, token)
		}
		c.Next()
	}
}

// IsVerified runs behind MustAuth and rejects accounts that never confirmed
// their email.
func IsVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.Verified {
			c.AbortWithStatusJSON(http.StatusForbidden, domain.NewErrorResponse("please verify your email account"))
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) resolve(c *gin.Context) (domain.User, string, error) {
	header := c.GetHeader("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return domain.User{}, "", domain.ErrUnauthorized
	}
	token := parts[1]

	rawID, err := tokenutil.ExtractUserID(token, m.secret)
	if err != nil {
		return domain.User{}, "", domain.ErrUnauthorized
	}
	userID, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return domain.User{}, "", domain.ErrUnauthorized
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), m.timeout)
	defer cancel()

	user, err := m.userRepository.GetByIDAndToken(ctx, userID, token)
	if err != nil {
		return domain.User{}, "", domain.ErrUnauthorized
	}
	return user, token, nil
}

// CurrentUser returns the authenticated user attached by MustAuth or IsAuth.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	value, ok := c.Get(userContextKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := value.(domain.User)
	return user, ok
}

// CurrentToken returns the raw bearer token of the authenticated session.
func CurrentToken(c *gin.Context) (string, bool) {
	value, ok := c.Get(tokenContextKey)
	if !ok {
		return "", false
	}
	token, ok := value.(string)
	return token, ok
}
