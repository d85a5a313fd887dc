package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"letsparkit/internal/shared/config"
	"letsparkit/internal/shared/constants"
	"letsparkit/internal/shared/utils/response"
	"letsparkit/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var errInvalidTokenType = errors.New("invalid token type")

// RevocationChecker reports whether a token id was revoked by sign-out
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Authenticator builds auth middleware bound to one config and revocation list
type Authenticator struct {
	config      *config.Config
	revocations RevocationChecker
}

func NewAuthenticator(cfg *config.Config, revocations RevocationChecker) *Authenticator {
	return &Authenticator{config: cfg, revocations: revocations}
}

// Required rejects requests without a valid access token
func (a *Authenticator) Required() gin.HandlerFunc {
	return JWTAuthWithConfig(a.config, a.revocations)
}

// Optional sets the identity when a valid access token is present
func (a *Authenticator) Optional() gin.HandlerFunc {
	return OptionalAuthWithConfig(a.config, a.revocations)
}

// accessClaims mirrors the claims issued by the auth service
type accessClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

func parseAccessToken(ctx context.Context, cfg *config.Config, revocations RevocationChecker, tokenString string) (*accessClaims, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	if claims.Type != "access" {
		return nil, errInvalidTokenType
	}
	if revocations != nil && claims.ID != "" {
		revoked, err := revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, jwt.ErrTokenExpired
		}
	}
	return claims, nil
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setIdentity(c *gin.Context, claims *accessClaims) {
	c.Set(constants.CTX_USER_ID, claims.UserID)
	c.Set(constants.CTX_USER_EMAIL, claims.Email)
	c.Set(constants.CTX_USER_ROLE, claims.Role)
	c.Set(constants.CTX_USER_NAME, claims.Name)
	c.Set(constants.CTX_TOKEN_ID, claims.ID)
	if claims.ExpiresAt != nil {
		c.Set(constants.CTX_TOKEN_EXPIRES, claims.ExpiresAt.Time)
	}
}

// JWTAuthWithConfig creates a JWT authentication middleware with config
func JWTAuthWithConfig(cfg *config.Config, revocations RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header is required", nil)
			return
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil)
			return
		}

		claims, err := parseAccessToken(c.Request.Context(), cfg, revocations, tokenString)
		if err != nil {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), err.Error(), c.ClientIP())
			if errors.Is(err, errInvalidTokenType) {
				response.Error(c, http.StatusUnauthorized, "invalid token type", nil)
				return
			}
			response.Error(c, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuthWithConfig validates JWT token if present but doesn't require it
func OptionalAuthWithConfig(cfg *config.Config, revocations RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		if claims, err := parseAccessToken(c.Request.Context(), cfg, revocations, tokenString); err == nil {
			setIdentity(c, claims)
		}

		c.Next()
	}
}

// RequireRole middleware checks if user has required role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return RequireRoles(requiredRole)
}

// RequireAdmin middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(constants.ROLE_ADMIN)
}

// RequireRoles middleware checks if user has any of the required roles
func RequireRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(constants.CTX_USER_ROLE)
		if userRole == "" {
			response.Error(c, http.StatusUnauthorized, "user role not found in context", nil)
			return
		}

		for _, role := range requiredRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "Insufficient permissions", nil)
	}
}

// GetUserID returns the authenticated user id or ""
func GetUserID(c *gin.Context) string {
	return c.GetString(constants.CTX_USER_ID)
}

// GetUserName returns the authenticated user's display name or ""
func GetUserName(c *gin.Context) string {
	return c.GetString(constants.CTX_USER_NAME)
}

// IsAdmin reports whether the caller has the admin role
func IsAdmin(c *gin.Context) bool {
	return c.GetString(constants.CTX_USER_ROLE) == constants.ROLE_ADMIN
}

// GetTokenID returns the jti of the presented access token
func GetTokenID(c *gin.Context) (string, time.Time) {
	expires, _ := c.Get(constants.CTX_TOKEN_EXPIRES)
	at, _ := expires.(time.Time)
	return c.GetString(constants.CTX_TOKEN_ID), at
}
