package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/infrastructure/metrics"
	"qualite-pro-core/internal/modules/auth/dto"
	"qualite-pro-core/internal/modules/auth/queries"
	utilisateurQueries "qualite-pro-core/internal/modules/utilisateurs/queries"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/jwt"
	authMiddleware "qualite-pro-core/internal/shared/middleware/auth"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports"
	"qualite-pro-core/internal/shared/requestctx"
	"qualite-pro-core/internal/shared/utils"
	"qualite-pro-core/internal/shared/validation"
)

const (
	MaxTentatives    = 5
	FenetreTentative = 15 * time.Minute
)

// AccountStore lecture des comptes pour l'authentification
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Utilisateur, error)
	FindByID(ctx context.Context, id string) (*models.Utilisateur, error)
}

type AuthService struct {
	accounts   AccountStore
	attempts   queries.LoginAttempts
	blacklist  authMiddleware.TokenBlacklist
	jwt        *jwt.Manager
	validator  *validation.Validator
	historique ports.ActionRecorder
	metrics    *metrics.Metrics
	log        *zap.Logger
}

func NewAuthService(
	accounts AccountStore,
	attempts queries.LoginAttempts,
	blacklist authMiddleware.TokenBlacklist,
	jwtManager *jwt.Manager,
	validator *validation.Validator,
	historique ports.ActionRecorder,
	m *metrics.Metrics,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		accounts:   accounts,
		attempts:   attempts,
		blacklist:  blacklist,
		jwt:        jwtManager,
		validator:  validator,
		historique: historique,
		metrics:    m,
		log:        log.Named("auth"),
	}
}

func invalidCredentials() *apperrors.AppError {
	return apperrors.Unauthorized("INVALID_CREDENTIALS", "Email ou mot de passe incorrect")
}

func toUserData(u *models.Utilisateur) dto.UserData {
	return dto.UserData{
		ID:     u.ID.Hex(),
		Nom:    u.Nom,
		Prenom: u.Prenom,
		Email:  u.Email,
		Role:   u.Role,
	}
}

// Login vérifie les identifiants et délivre un jeton d'accès
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if appErr := s.validator.Struct(req); appErr != nil {
		return nil, appErr
	}
	email := utilisateurQueries.NormalizeEmail(req.Email)

	if err := s.checkRateLimit(ctx, email); err != nil {
		s.metrics.RecordLogin("locked")
		return nil, err
	}

	user, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, s.echec(ctx, email, "compte inconnu")
		}
		// erreur technique : pas une tentative à compter
		return nil, apperrors.Internal("Erreur technique lors de l'authentification", err)
	}
	if !user.Actif {
		return nil, s.echec(ctx, email, "compte inactif")
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		return nil, s.echec(ctx, email, "mot de passe incorrect")
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, apperrors.Internal("Génération du jeton impossible", err)
	}

	if err := s.attempts.Reset(ctx, email); err != nil {
		s.log.Debug("réinitialisation du compteur impossible", zap.Error(err))
	}
	s.metrics.RecordLogin("success")
	s.log.Info("connexion", zap.String("user_id", user.ID.Hex()), zap.String("role", user.Role))

	actor := requestctx.ActorFrom(ctx)
	actor.UserID, actor.Email, actor.Role = user.ID.Hex(), user.Email, user.Role
	s.historique.EnregistrerAction(requestctx.WithActor(ctx, actor), ports.ActionEntry{
		Action:   models.ActionConnexion,
		Entite:   models.EntiteUtilisateur,
		EntiteID: user.ID.Hex(),
		Details:  "Connexion de " + user.Email,
	})

	return &dto.LoginResponse{
		Token:     token,
		Type:      "Bearer",
		ExpiresAt: expiresAt,
		User:      toUserData(user),
	}, nil
}

// checkRateLimit Redis indisponible : la connexion reste possible sans limitation
func (s *AuthService) checkRateLimit(ctx context.Context, email string) error {
	n, err := s.attempts.Count(ctx, email)
	if err != nil {
		s.log.Warn("compteur de tentatives indisponible", zap.Error(err))
		return nil
	}
	if n >= MaxTentatives {
		return apperrors.TooManyRequests("Trop de tentatives de connexion").
			WithDetail("retry_after_seconds", int(FenetreTentative.Seconds()))
	}
	return nil
}

func (s *AuthService) echec(ctx context.Context, email, motif string) error {
	if _, err := s.attempts.Increment(ctx, email); err != nil {
		s.log.Warn("incrément du compteur impossible", zap.Error(err))
	}
	s.metrics.RecordLogin("failure")
	s.log.Info("connexion refusée", zap.String("motif", motif))
	return invalidCredentials()
}

// Logout révoque le jeton jusqu'à son expiration ; sans effet sur un jeton déjà révoqué
func (s *AuthService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil {
		return nil
	}
	until := time.Now().Add(time.Hour)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, until); err != nil {
		return apperrors.Internal("Déconnexion impossible", fmt.Errorf("révocation %s: %w", claims.ID, err))
	}

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:   models.ActionDeconnexion,
		Entite:   models.EntiteUtilisateur,
		EntiteID: claims.UserID,
		Details:  "Déconnexion de " + claims.Email,
	})
	return nil
}

// Me relit le compte : un compte désactivé depuis l'émission du jeton est refusé
func (s *AuthService) Me(ctx context.Context, claims *jwt.Claims) (*dto.MeResponse, error) {
	if claims == nil {
		return nil, apperrors.Unauthorized("UNAUTHENTICATED", "Non authentifié")
	}
	user, err := s.accounts.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, apperrors.Unauthorized("UNAUTHENTICATED", "Non authentifié")
		}
		return nil, apperrors.Internal("Erreur d'accès aux utilisateurs", err)
	}
	if !user.Actif {
		return nil, apperrors.Unauthorized("ACCOUNT_DISABLED", "Compte désactivé")
	}

	resp := &dto.MeResponse{User: toUserData(user)}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	return resp, nil
}
