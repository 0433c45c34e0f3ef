package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/metrics"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/jwt"
	"qualite-pro-core/internal/shared/requestctx"
	"qualite-pro-core/internal/shared/response"
	"qualite-pro-core/internal/shared/utils"
)

// Clés posées dans le contexte Gin
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
	ContextClaims = "claims"
)

// AuthMiddleware vérification du jeton Bearer et des rôles
type AuthMiddleware struct {
	jwt       *jwt.Manager
	blacklist TokenBlacklist
	metrics   *metrics.Metrics
	log       *zap.Logger
}

func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist TokenBlacklist, m *metrics.Metrics, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtManager, blacklist: blacklist, metrics: m, log: log.Named("auth")}
}

func unauthenticated() *apperrors.AppError {
	return apperrors.Unauthorized("UNAUTHENTICATED", "Non authentifié").
		WithDetail("message", "Token manquant ou invalide")
}

// Authenticate valide le jeton et injecte l'identité dans le contexte
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Abort(c, unauthenticated())
			return
		}

		claims, err := m.jwt.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			m.metrics.InvalidTokens.Inc()
			appErr := unauthenticated()
			if errors.Is(err, jwt.ErrTokenExpired) {
				appErr.Code = "TOKEN_EXPIRED"
			}
			response.Abort(c, appErr)
			return
		}

		revoked, err := m.blacklist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			// Redis indisponible : le jeton signé reste accepté
			m.log.Warn("vérification de révocation impossible", zap.Error(err))
		}
		if revoked {
			m.metrics.InvalidTokens.Inc()
			response.Abort(c, apperrors.Unauthorized("TOKEN_REVOKED", "Non authentifié").
				WithDetail("message", "Token révoqué"))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextClaims, claims)

		actor := requestctx.Actor{
			UserID:    claims.UserID,
			Email:     claims.Email,
			Role:      claims.Role,
			IP:        utils.ClientIP(c.Request),
			UserAgent: c.Request.UserAgent(),
			RequestID: c.GetString("request_id"),
		}
		c.Request = c.Request.WithContext(requestctx.WithActor(c.Request.Context(), actor))

		c.Next()
	}
}

// RequireRoles refuse les rôles absents de la liste
func (m *AuthMiddleware) RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			response.Abort(c, unauthenticated())
			return
		}

		for _, r := range allowedRoles {
			if role == r {
				c.Next()
				return
			}
		}

		m.metrics.PermissionDenials.WithLabelValues(role).Inc()
		response.Abort(c, apperrors.Forbidden("Accès refusé").
			WithDetail("message", "Rôle insuffisant pour cette ressource"))
	}
}

// Claims jeton de la requête courante, nil hors route protégée
func Claims(c *gin.Context) *jwt.Claims {
	if v, ok := c.Get(ContextClaims); ok {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims
		}
	}
	return nil
}

var AuthMiddlewareModule = fx.Options(
	fx.Provide(fx.Annotate(NewRedisTokenBlacklist, fx.As(new(TokenBlacklist)))),
	fx.Provide(NewAuthMiddleware),
)

// Helpers pour les routes courantes

// Protected authentification seule
func Protected(m *AuthMiddleware) []gin.HandlerFunc {
	return []gin.HandlerFunc{m.Authenticate()}
}

// RequireRoles authentification puis contrôle du rôle
func RequireRoles(m *AuthMiddleware, roles ...string) []gin.HandlerFunc {
	return []gin.HandlerFunc{m.Authenticate(), m.RequireRoles(roles...)}
}
