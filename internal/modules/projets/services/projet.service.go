package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/modules/projets/dto"
	"qualite-pro-core/internal/modules/projets/queries"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports"
	"qualite-pro-core/internal/shared/utils"
	"qualite-pro-core/internal/shared/validation"
)

type ProjetService struct {
	repo       queries.ProjetRepository
	validator  *validation.Validator
	historique ports.ActionRecorder
	log        *zap.Logger
}

func NewProjetService(
	repo queries.ProjetRepository,
	validator *validation.Validator,
	historique ports.ActionRecorder,
	log *zap.Logger,
) *ProjetService {
	return &ProjetService{
		repo:       repo,
		validator:  validator,
		historique: historique,
		log:        log.Named("projets"),
	}
}

func (s *ProjetService) wrap(err error) error {
	if errors.Is(err, mongodb.ErrNotFound) {
		return apperrors.NotFound("Projet non trouvé")
	}
	return apperrors.Internal("Erreur d'accès aux projets", err)
}

// apply recopie la requête dans le projet après validation
func (s *ProjetService) apply(req dto.ProjetRequest, p *models.FicheProjet) error {
	if appErr := s.validator.Struct(req); appErr != nil {
		return appErr
	}
	echeance, err := utils.ParseOptionalDate(req.Echeance)
	if err != nil {
		return apperrors.ValidationField("echeance",
			"Format de date d'échéance invalide. Utilisez le format ISO (yyyy-MM-dd ou yyyy-MM-ddTHH:mm:ssZ)")
	}

	p.Nom = strings.TrimSpace(req.Nom)
	p.Description = req.Description
	p.Objectifs = req.Objectifs
	p.Responsable = strings.TrimSpace(req.Responsable)
	p.Echeance = echeance
	p.Statut = req.Statut
	return nil
}

func (s *ProjetService) List(ctx context.Context) ([]models.FicheProjet, error) {
	projets, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}
	return projets, nil
}

func (s *ProjetService) Get(ctx context.Context, id string) (*models.FicheProjet, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	return p, nil
}

func (s *ProjetService) Create(ctx context.Context, req dto.ProjetRequest) (*models.FicheProjet, error) {
	p := &models.FicheProjet{}
	if err := s.apply(req, p); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, s.wrap(err)
	}
	s.log.Info("projet créé", zap.String("id", p.ID.Hex()), zap.String("nom", p.Nom))

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionCreation,
		Entite:           models.EntiteFicheProjet,
		EntiteID:         p.ID.Hex(),
		Details:          "Création du projet: " + p.Nom,
		NouvellesValeurs: p,
	})
	return p, nil
}

func (s *ProjetService) Update(ctx context.Context, id string, req dto.ProjetRequest) (*models.FicheProjet, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	ancien := *p

	if err := s.apply(req, p); err != nil {
		return nil, err
	}
	if err := s.repo.Replace(ctx, p); err != nil {
		return nil, s.wrap(err)
	}

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionModification,
		Entite:           models.EntiteFicheProjet,
		EntiteID:         id,
		Details:          "Modification du projet: " + p.Nom,
		AnciennesValeurs: ancien,
		NouvellesValeurs: p,
	})
	return p, nil
}

func (s *ProjetService) Delete(ctx context.Context, id string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.wrap(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.wrap(err)
	}

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionSuppression,
		Entite:           models.EntiteFicheProjet,
		EntiteID:         id,
		Details:          "Suppression du projet: " + p.Nom,
		AnciennesValeurs: p,
	})
	return nil
}
