package middleware

import (
	"net/http"
	"strings"

	"github.com/factuur/backend/internal/domain/identity"
	"github.com/factuur/backend/internal/infrastructure/auth"
	"github.com/factuur/backend/internal/infrastructure/logger"
	"github.com/factuur/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// PrincipalKey is the gin context key holding the authenticated principal
	PrincipalKey = "principal"
	// AuthHeaderKey is the authorization header name
	AuthHeaderKey = "Authorization"
	// BearerPrefix is the expected authorization scheme
	BearerPrefix = "Bearer "
)

// AuthMiddlewareConfig holds configuration for the auth middleware
type AuthMiddlewareConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are exact paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// DefaultAuthConfig returns the default auth middleware configuration
func DefaultAuthConfig(jwtService *auth.JWTService) AuthMiddlewareConfig {
	return AuthMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/healthz",
		},
		SkipPathPrefixes: []string{
			"/api/v1/auth/",
		},
	}
}

// Auth creates JWT bearer authentication middleware with the default config
func Auth(jwtService *auth.JWTService) gin.HandlerFunc {
	return AuthWithConfig(DefaultAuthConfig(jwtService))
}

// AuthWithConfig creates JWT bearer authentication middleware. On success the
// request carries an identity.Principal in the gin context and tenant/user
// IDs in the request context for logging.
func AuthWithConfig(cfg AuthMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, cfg, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, cfg, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, cfg, "Missing token")
			return
		}

		claims, err := cfg.JWTService.Validate(tokenString)
		if err != nil {
			abortUnauthorized(c, cfg, "Token validation failed")
			return
		}
		principal, err := claims.Principal()
		if err != nil {
			abortUnauthorized(c, cfg, "Token carries no valid principal")
			return
		}

		c.Set(PrincipalKey, principal)

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithTenantID(ctx, log, principal.TenantID.String())
		ctx, _ = logger.WithUserID(ctx, log, principal.UserID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetPrincipal returns the authenticated principal of the request. The zero
// Principal is returned on unauthenticated routes.
func GetPrincipal(c *gin.Context) identity.Principal {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return identity.Principal{}
	}
	principal, ok := value.(identity.Principal)
	if !ok {
		return identity.Principal{}
	}
	return principal
}

func abortUnauthorized(c *gin.Context, cfg AuthMiddlewareConfig, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Authentication failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("reason", message))
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Authentication required", GetRequestID(c)))
}
