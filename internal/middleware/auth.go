package middleware

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CustomClaims contains the custom claims from Auth0 JWT
type CustomClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Validate implements validator.CustomClaims
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// Auth0IDKey is the context key for the Auth0 user ID (subject)
	Auth0IDKey contextKey = "auth0_id"
	// WorkspaceIDKey is the context key for the user's workspace ID
	WorkspaceIDKey contextKey = "workspace_id"
)

// TokenValidator validates a bearer token and returns its claims
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (interface{}, error)
}

// WorkspaceProvider resolves the workspace every forecast request is scoped to
type WorkspaceProvider interface {
	GetWorkspaceByAuth0ID(ctx context.Context, auth0ID string) (workspaceID int32, err error)
}

// AuthMiddleware validates JWTs and scopes the request to the caller's workspace
type AuthMiddleware struct {
	validator         TokenValidator
	workspaceProvider WorkspaceProvider
}

// NewAuthMiddleware creates a new AuthMiddleware with Auth0 configuration
func NewAuthMiddleware(domain, audience string, workspaceProvider WorkspaceProvider) (*AuthMiddleware, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return NewAuthMiddlewareWithValidator(jwtValidator, workspaceProvider), nil
}

// NewAuthMiddlewareWithValidator creates an AuthMiddleware around an existing validator
func NewAuthMiddlewareWithValidator(v TokenValidator, workspaceProvider WorkspaceProvider) *AuthMiddleware {
	return &AuthMiddleware{validator: v, workspaceProvider: workspaceProvider}
}

// Authenticate returns an Echo middleware that validates JWT tokens
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorizedError(c, "Missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return unauthorizedError(c, "Invalid authorization header format")
			}

			claims, err := m.validator.ValidateToken(c.Request().Context(), parts[1])
			if err != nil {
				log.Debug().Err(err).Msg("Token validation failed")
				return unauthorizedError(c, "Invalid token")
			}

			validatedClaims, ok := claims.(*validator.ValidatedClaims)
			if !ok {
				return unauthorizedError(c, "Invalid claims")
			}

			auth0ID := validatedClaims.RegisteredClaims.Subject
			ctx := context.WithValue(c.Request().Context(), Auth0IDKey, auth0ID)

			workspaceID, err := m.workspaceProvider.GetWorkspaceByAuth0ID(ctx, auth0ID)
			if err != nil {
				log.Debug().Err(err).Str("auth0_id", auth0ID).Msg("Workspace lookup failed")
				return unauthorizedError(c, "Workspace not found")
			}

			c.SetRequest(c.Request().WithContext(WithWorkspaceID(ctx, workspaceID)))
			return next(c)
		}
	}
}

// WithWorkspaceID returns a copy of ctx scoped to workspaceID
func WithWorkspaceID(ctx context.Context, workspaceID int32) context.Context {
	return context.WithValue(ctx, WorkspaceIDKey, workspaceID)
}

// GetAuth0ID extracts the Auth0 user ID from the context
func GetAuth0ID(c echo.Context) string {
	if id, ok := c.Request().Context().Value(Auth0IDKey).(string); ok {
		return id
	}
	return ""
}

// GetWorkspaceID extracts the workspace ID from the context
func GetWorkspaceID(c echo.Context) int32 {
	if id, ok := c.Request().Context().Value(WorkspaceIDKey).(int32); ok {
		return id
	}
	return 0
}
