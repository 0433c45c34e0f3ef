package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/modules/fiches/dto"
	"qualite-pro-core/internal/modules/fiches/queries"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports"
	"qualite-pro-core/internal/shared/requestctx"
	"qualite-pro-core/internal/shared/utils"
	"qualite-pro-core/internal/shared/validation"
)

type FicheService struct {
	repo       queries.FicheRepository
	validator  *validation.Validator
	notifier   ports.Notifier
	historique ports.ActionRecorder
	log        *zap.Logger
	now        func() time.Time
}

func NewFicheService(
	repo queries.FicheRepository,
	validator *validation.Validator,
	notifier ports.Notifier,
	historique ports.ActionRecorder,
	log *zap.Logger,
) *FicheService {
	return &FicheService{
		repo:       repo,
		validator:  validator,
		notifier:   notifier,
		historique: historique,
		log:        log.Named("fiches"),
		now:        time.Now,
	}
}

func (s *FicheService) wrap(err error) error {
	if errors.Is(err, mongodb.ErrNotFound) {
		return apperrors.NotFound("Fiche qualité non trouvée")
	}
	return apperrors.Internal("Erreur d'accès aux fiches qualité", err)
}

// validate normalise la casse des énumérations avant validation
func (s *FicheService) validate(req *dto.FicheRequest) (time.Time, error) {
	req.TypeFiche = strings.ToUpper(strings.TrimSpace(req.TypeFiche))
	req.Statut = strings.ToUpper(strings.TrimSpace(req.Statut))
	req.Priorite = strings.ToUpper(strings.TrimSpace(req.Priorite))

	if appErr := s.validator.Struct(*req); appErr != nil {
		return time.Time{}, appErr
	}
	echeance, err := utils.ParseDate(req.DateEcheance)
	if err != nil {
		return time.Time{}, apperrors.ValidationField("dateEcheance", "Format de date invalide")
	}
	return echeance, nil
}

// auteur utilisateur connecté, à défaut le responsable de la fiche
func auteur(ctx context.Context, responsable string) string {
	if id := requestctx.UserID(ctx); id != "" {
		return id
	}
	return responsable
}

func (s *FicheService) List(ctx context.Context) ([]models.FicheQualite, error) {
	fiches, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}
	return fiches, nil
}

func (s *FicheService) Get(ctx context.Context, id string) (*models.FicheQualite, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	return f, nil
}

func (s *FicheService) ParResponsable(ctx context.Context, responsable string) ([]models.FicheQualite, error) {
	fiches, err := s.repo.FindByResponsable(ctx, responsable)
	if err != nil {
		return nil, s.wrap(err)
	}
	return fiches, nil
}

func (s *FicheService) ParStatut(ctx context.Context, statut string) ([]models.FicheQualite, error) {
	fiches, err := s.repo.FindByStatut(ctx, strings.ToUpper(statut))
	if err != nil {
		return nil, s.wrap(err)
	}
	return fiches, nil
}

func (s *FicheService) Create(ctx context.Context, req dto.FicheRequest) (*models.FicheQualite, error) {
	echeance, err := s.validate(&req)
	if err != nil {
		return nil, err
	}

	responsable := strings.TrimSpace(req.Responsable)
	f := &models.FicheQualite{
		Titre:        strings.TrimSpace(req.Titre),
		Description:  strings.TrimSpace(req.Description),
		TypeFiche:    req.TypeFiche,
		Statut:       req.Statut,
		Responsable:  responsable,
		Commentaire:  req.Commentaire,
		Categorie:    req.Categorie,
		Priorite:     req.Priorite,
		DateEcheance: &echeance,
		Observations: req.Observations,
		DateCreation: s.now(),
		CreePar:      auteur(ctx, responsable),
	}

	if err := s.repo.Insert(ctx, f); err != nil {
		return nil, s.wrap(err)
	}
	s.log.Info("fiche qualité créée", zap.String("id", f.ID.Hex()), zap.String("titre", f.Titre))

	s.notifier.CreerNotification(ctx, f.Responsable,
		"Nouvelle fiche qualité créée: "+f.Titre, models.NotifFicheQualite, f.ID.Hex())

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionCreation,
		Entite:           models.EntiteFicheQualite,
		EntiteID:         f.ID.Hex(),
		Details:          "Création de la fiche qualité: " + f.Titre,
		NouvellesValeurs: f,
	})
	return f, nil
}

func (s *FicheService) Update(ctx context.Context, id string, req dto.FicheRequest) (*models.FicheQualite, error) {
	echeance, err := s.validate(&req)
	if err != nil {
		return nil, err
	}

	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	ancien := *f

	now := s.now()
	f.Titre = strings.TrimSpace(req.Titre)
	f.Description = strings.TrimSpace(req.Description)
	f.TypeFiche = req.TypeFiche
	f.Statut = req.Statut
	f.Responsable = strings.TrimSpace(req.Responsable)
	f.Commentaire = req.Commentaire
	f.Categorie = req.Categorie
	f.Priorite = req.Priorite
	f.DateEcheance = &echeance
	f.Observations = req.Observations
	f.DateModification = &now
	f.ModifiePar = auteur(ctx, f.Responsable)

	if err := s.repo.Replace(ctx, f); err != nil {
		return nil, s.wrap(err)
	}

	s.notifier.CreerNotification(ctx, f.Responsable,
		"Fiche qualité mise à jour: "+f.Titre, models.NotifFicheQualite, f.ID.Hex())

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionModification,
		Entite:           models.EntiteFicheQualite,
		EntiteID:         id,
		Details:          "Modification de la fiche qualité: " + f.Titre,
		AnciennesValeurs: ancien,
		NouvellesValeurs: f,
	})
	return f, nil
}

func (s *FicheService) Delete(ctx context.Context, id string) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.wrap(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.wrap(err)
	}

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionSuppression,
		Entite:           models.EntiteFicheQualite,
		EntiteID:         id,
		Details:          "Suppression de la fiche qualité: " + f.Titre,
		AnciennesValeurs: f,
	})
	return nil
}

func (s *FicheService) Stats(ctx context.Context) (*dto.FicheStats, error) {
	fiches, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}

	stats := &dto.FicheStats{Total: len(fiches), ParStatut: map[string]int{}, ParType: map[string]int{}}
	for _, f := range fiches {
		stats.ParStatut[f.Statut]++
		stats.ParType[f.TypeFiche]++
	}
	return stats, nil
}
