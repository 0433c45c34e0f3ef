package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/infrastructure/mail"
	"qualite-pro-core/internal/modules/utilisateurs/dto"
	"qualite-pro-core/internal/modules/utilisateurs/queries"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports"
	"qualite-pro-core/internal/shared/requestctx"
	"qualite-pro-core/internal/shared/utils"
	"qualite-pro-core/internal/shared/validation"
)

type UtilisateurService struct {
	repo       queries.UtilisateurRepository
	validator  *validation.Validator
	mailer     *mail.Mailer
	notifier   ports.Notifier
	historique ports.ActionRecorder
	log        *zap.Logger
	now        func() time.Time
}

func NewUtilisateurService(
	repo queries.UtilisateurRepository,
	validator *validation.Validator,
	mailer *mail.Mailer,
	notifier ports.Notifier,
	historique ports.ActionRecorder,
	log *zap.Logger,
) *UtilisateurService {
	return &UtilisateurService{
		repo:       repo,
		validator:  validator,
		mailer:     mailer,
		notifier:   notifier,
		historique: historique,
		log:        log.Named("utilisateurs"),
		now:        time.Now,
	}
}

func (s *UtilisateurService) wrap(err error) error {
	if errors.Is(err, mongodb.ErrNotFound) {
		return apperrors.NotFound("Utilisateur non trouvé")
	}
	return apperrors.Internal("Erreur d'accès aux utilisateurs", err)
}

func (s *UtilisateurService) List(ctx context.Context) ([]models.Utilisateur, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}
	return users, nil
}

func (s *UtilisateurService) Get(ctx context.Context, id string) (*models.Utilisateur, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	return u, nil
}

// ensureEmailLibre 409 si l'email appartient déjà à un autre compte
func (s *UtilisateurService) ensureEmailLibre(ctx context.Context, email, exceptID string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, mongodb.ErrNotFound) {
		return nil
	}
	if err != nil {
		return s.wrap(err)
	}
	if existing.ID.Hex() == exceptID {
		return nil
	}
	return apperrors.Conflict("EMAIL_ALREADY_EXISTS", "Un utilisateur avec cet email existe déjà")
}

// Create hache le mot de passe (fourni ou généré) et envoie l'email de bienvenue
func (s *UtilisateurService) Create(ctx context.Context, req dto.CreateUtilisateurRequest) (*models.Utilisateur, error) {
	req.Email = queries.NormalizeEmail(req.Email)
	if appErr := s.validator.Struct(req); appErr != nil {
		return nil, appErr
	}

	email := req.Email
	if err := s.ensureEmailLibre(ctx, email, ""); err != nil {
		return nil, err
	}

	motDePasse := req.Password
	if motDePasse == "" {
		motDePasse = utils.GenerateTemporaryPassword()
	}
	hash, err := utils.HashPassword(motDePasse)
	if err != nil {
		return nil, apperrors.Internal("Création de l'utilisateur impossible", err)
	}

	u := &models.Utilisateur{
		Nom:          strings.TrimSpace(req.Nom),
		Prenom:       strings.TrimSpace(req.Prenom),
		Email:        email,
		Password:     hash,
		Role:         req.Role,
		Telephone:    strings.TrimSpace(req.Telephone),
		Actif:        true,
		DateCreation: s.now(),
		CreePar:      requestctx.UserID(ctx),
	}
	if u.CreePar == "" {
		u.CreePar = models.RoleAdmin
	}

	if err := s.repo.Insert(ctx, u); err != nil {
		return nil, s.wrap(err)
	}

	s.log.Info("utilisateur créé", zap.String("id", u.ID.Hex()), zap.String("role", u.Role))

	_ = s.mailer.Deliver(ctx, mail.KindBienvenue, u.Email, mail.SubjectBienvenue,
		mail.BienvenueBody(u.NomComplet(), u.Email, motDePasse))

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionCreation,
		Entite:           models.EntiteUtilisateur,
		EntiteID:         u.ID.Hex(),
		Details:          "Création de l'utilisateur: " + u.NomComplet(),
		NouvellesValeurs: u,
	})

	return u, nil
}

func (s *UtilisateurService) Update(ctx context.Context, id string, req dto.UpdateUtilisateurRequest) (*models.Utilisateur, error) {
	req.Email = queries.NormalizeEmail(req.Email)
	if appErr := s.validator.Struct(req); appErr != nil {
		return nil, appErr
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	ancien := *u

	email := req.Email
	if email != u.Email {
		if err := s.ensureEmailLibre(ctx, email, id); err != nil {
			return nil, err
		}
	}

	now := s.now()
	u.Nom = strings.TrimSpace(req.Nom)
	u.Prenom = strings.TrimSpace(req.Prenom)
	u.Email = email
	u.Role = req.Role
	u.Telephone = strings.TrimSpace(req.Telephone)
	if req.Actif != nil {
		u.Actif = *req.Actif
	}
	u.DateModification = &now

	if err := s.repo.Replace(ctx, u); err != nil {
		return nil, s.wrap(err)
	}

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionModification,
		Entite:           models.EntiteUtilisateur,
		EntiteID:         id,
		Details:          "Modification de l'utilisateur: " + u.NomComplet(),
		AnciennesValeurs: ancien,
		NouvellesValeurs: u,
	})

	return u, nil
}

// ToggleActif inverse l'état du compte et prévient l'utilisateur
func (s *UtilisateurService) ToggleActif(ctx context.Context, id string) (*models.Utilisateur, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}

	now := s.now()
	u.Actif = !u.Actif
	u.DateModification = &now
	if err := s.repo.Replace(ctx, u); err != nil {
		return nil, s.wrap(err)
	}

	etat := "désactivé"
	if u.Actif {
		etat = "activé"
	}
	s.notifier.CreerNotification(ctx, u.ID.Hex(),
		fmt.Sprintf("Votre compte a été %s par l'administrateur.", etat), models.NotifCompte, u.ID.Hex())

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:   models.ActionModification,
		Entite:   models.EntiteUtilisateur,
		EntiteID: id,
		Details:  fmt.Sprintf("Compte %s: %s", etat, u.NomComplet()),
	})

	return u, nil
}

// ResetPassword retourne le nouveau mot de passe temporaire, également envoyé par email
func (s *UtilisateurService) ResetPassword(ctx context.Context, id string) (string, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", s.wrap(err)
	}

	motDePasse := utils.GenerateTemporaryPassword()
	hash, err := utils.HashPassword(motDePasse)
	if err != nil {
		return "", apperrors.Internal("Réinitialisation impossible", err)
	}

	now := s.now()
	u.Password = hash
	u.DateModification = &now
	if err := s.repo.Replace(ctx, u); err != nil {
		return "", s.wrap(err)
	}

	_ = s.mailer.Deliver(ctx, mail.KindResetPassword, u.Email, mail.SubjectResetPassword,
		mail.ResetPasswordBody(u.NomComplet(), motDePasse))

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:   models.ActionModification,
		Entite:   models.EntiteUtilisateur,
		EntiteID: id,
		Details:  "Réinitialisation du mot de passe: " + u.NomComplet(),
	})

	return motDePasse, nil
}

func (s *UtilisateurService) Delete(ctx context.Context, id string) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.wrap(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.wrap(err)
	}

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionSuppression,
		Entite:           models.EntiteUtilisateur,
		EntiteID:         id,
		Details:          "Suppression de l'utilisateur: " + u.NomComplet(),
		AnciennesValeurs: u,
	})
	return nil
}

func (s *UtilisateurService) Stats(ctx context.Context) (*dto.UtilisateurStats, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}

	stats := &dto.UtilisateurStats{Total: len(users), ParRole: map[string]int{}}
	for _, role := range models.Roles {
		stats.ParRole[role] = 0
	}
	for _, u := range users {
		stats.ParRole[u.Role]++
		if u.Actif {
			stats.Actifs++
		}
	}
	return stats, nil
}
