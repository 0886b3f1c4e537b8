package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumniconnect/internal/app/auth"
	"github.com/yigit/alumniconnect/internal/app/models/dto"
	"github.com/yigit/alumniconnect/internal/app/repositories"
	jwtauth "github.com/yigit/alumniconnect/internal/pkg/auth"
	"github.com/yigit/alumniconnect/internal/pkg/logger"
)

// Context keys set by JWTAuth
const (
	CallerKey = "caller"
	UserIDKey = "userID"
)

// AuthMiddleware for authentication and approval gating
type AuthMiddleware struct {
	jwtService *jwtauth.JWTService
	userRepo   repositories.IUserRepository
	authz      *auth.AuthorizationService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *jwtauth.JWTService, userRepo repositories.IUserRepository, authz *auth.AuthorizationService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
		authz:      authz,
	}
}

// JWTAuth validates the bearer token, loads the current user row and rejects
// alumni that are not approved yet
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		// Browsers cannot set headers on a websocket upgrade, Swagger UI
		// sometimes drops the scheme
		if authHeader == "" {
			if queryToken := c.Query("token"); queryToken != "" {
				authHeader = "Bearer " + strings.TrimPrefix(queryToken, "Bearer ")
			}
		}

		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		tokenString, err := jwtauth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Invalid authorization header")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			if errors.Is(err, jwtauth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		user, err := m.userRepo.GetByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User not found")
				return
			}
			logger.Error().Err(err).Int64("userID", claims.UserID).Msg("Failed to load user for token")
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		caller := auth.NewCaller(user)
		if err := m.authz.CheckApproval(caller); err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(CallerKey, caller)
		c.Set(UserIDKey, caller.ID)
		c.Next()
	}
}

// GetCaller returns the identity stored by JWTAuth
func GetCaller(c *gin.Context) (auth.Caller, bool) {
	v, exists := c.Get(CallerKey)
	if !exists {
		return auth.Caller{}, false
	}
	caller, ok := v.(auth.Caller)
	return caller, ok
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
