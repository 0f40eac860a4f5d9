// Package middleware provides HTTP middleware components for the application.
// It covers bearer token authentication and resolution of the calling actor.
package middleware

import (
	"strings"

	"playpark/internal/logger"
	"playpark/internal/models"
	"playpark/internal/services/access"
	"playpark/internal/utils"
	"playpark/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// AuthMiddleware validates bearer tokens issued by the auth provider and
// stores the claims and the resolved actor in the request context.
type AuthMiddleware struct {
	secret   []byte
	resolver access.Resolver
	log      *zap.Logger
}

func NewAuthMiddleware(secret string, resolver access.Resolver, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		secret:   []byte(secret),
		resolver: resolver,
		log:      logger.OrNop(log),
	}
}

// Handler rejects requests without a valid token.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return response.Unauthorized(c, "missing authorization header")
	}
	claims, err := m.parse(authHeader)
	if err != nil {
		m.log.Debug("token rejected", zap.Error(err))
		return response.Unauthorized(c, "invalid token")
	}
	return m.attach(c, claims)
}

// Optional authenticates the request when a token is present and lets
// anonymous requests through. A malformed token is still rejected.
func (m *AuthMiddleware) Optional(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return m.attach(c, nil)
	}
	claims, err := m.parse(authHeader)
	if err != nil {
		m.log.Debug("token rejected", zap.Error(err))
		return response.Unauthorized(c, "invalid token")
	}
	return m.attach(c, claims)
}

func (m *AuthMiddleware) parse(authHeader string) (*models.UserClaims, error) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, jwt.ErrTokenMalformed
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims := &models.UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func (m *AuthMiddleware) attach(c *fiber.Ctx, claims *models.UserClaims) error {
	actor, err := m.resolver.Resolve(c.UserContext(), claims)
	if err != nil {
		return response.FromError(c, m.log, err)
	}
	if claims != nil {
		c.Locals(utils.ClaimsKey, claims)
	}
	c.Locals(utils.ActorKey, actor)
	return c.Next()
}

// RequireStaff allows operators and superusers only. It must run after Handler.
func RequireStaff(c *fiber.Ctx) error {
	if !utils.GetActor(c).IsStaff() {
		return response.Forbidden(c, "Only staff can perform this action")
	}
	return c.Next()
}
