package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/modules/taches/dto"
	"qualite-pro-core/internal/modules/taches/queries"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports"
	"qualite-pro-core/internal/shared/requestctx"
	"qualite-pro-core/internal/shared/utils"
	"qualite-pro-core/internal/shared/validation"
)

// ProjetReader résolution du nom de projet
type ProjetReader interface {
	FindByID(ctx context.Context, id string) (*models.FicheProjet, error)
}

const horizonProchaines = 7

type TacheService struct {
	repo       queries.TacheRepository
	projets    ProjetReader
	validator  *validation.Validator
	historique ports.ActionRecorder
	log        *zap.Logger
	now        func() time.Time
}

func NewTacheService(
	repo queries.TacheRepository,
	projets ProjetReader,
	validator *validation.Validator,
	historique ports.ActionRecorder,
	log *zap.Logger,
) *TacheService {
	return &TacheService{
		repo:       repo,
		projets:    projets,
		validator:  validator,
		historique: historique,
		log:        log.Named("taches"),
		now:        time.Now,
	}
}

func (s *TacheService) wrap(err error) error {
	if errors.Is(err, mongodb.ErrNotFound) {
		return apperrors.NotFound("Tâche non trouvée")
	}
	return apperrors.Internal("Erreur d'accès aux tâches", err)
}

// enRetard échéance antérieure à aujourd'hui sur une tâche non terminée
func (s *TacheService) enRetard(t *models.Tache) bool {
	return t.DateEcheance != nil &&
		t.DateEcheance.Before(utils.StartOfDay(s.now())) &&
		t.Statut != models.TacheTerminee
}

// marquerRetards bascule et persiste les tâches passées en retard depuis la dernière lecture
func (s *TacheService) marquerRetards(ctx context.Context, taches []models.Tache) {
	var ids []primitive.ObjectID
	for i := range taches {
		if taches[i].Statut != models.TacheEnRetard && s.enRetard(&taches[i]) {
			taches[i].Statut = models.TacheEnRetard
			ids = append(ids, taches[i].ID)
		}
	}
	if len(ids) == 0 {
		return
	}
	if _, err := s.repo.MarquerEnRetard(ctx, ids); err != nil {
		s.log.Warn("bascule des tâches en retard échouée", zap.Int("taches", len(ids)), zap.Error(err))
	}
}

func (s *TacheService) nomProjet(ctx context.Context, projetID string) string {
	if projetID == "" || !utils.IsObjectID(projetID) {
		return ""
	}
	p, err := s.projets.FindByID(ctx, projetID)
	if err != nil {
		if !errors.Is(err, mongodb.ErrNotFound) {
			s.log.Warn("résolution du projet échouée", zap.String("projet_id", projetID), zap.Error(err))
		}
		return ""
	}
	return p.Nom
}

func (s *TacheService) apply(ctx context.Context, req dto.TacheRequest, t *models.Tache) error {
	if appErr := s.validator.Struct(req); appErr != nil {
		return appErr
	}
	echeance, err := utils.ParseOptionalDate(req.DateEcheance)
	if err != nil {
		return apperrors.ValidationField("dateEcheance", "Format de date invalide")
	}

	t.Titre = strings.TrimSpace(req.Titre)
	t.Description = req.Description
	t.ProjetID = strings.TrimSpace(req.ProjetID)
	t.ProjetNom = s.nomProjet(ctx, t.ProjetID)
	t.DateEcheance = echeance
	t.Priorite = req.Priorite
	if req.Statut != "" {
		t.Statut = req.Statut
	}
	if t.Statut == "" {
		t.Statut = models.TacheAFaire
	}
	if s.enRetard(t) {
		t.Statut = models.TacheEnRetard
	}
	return nil
}

func (s *TacheService) List(ctx context.Context) ([]models.Tache, error) {
	taches, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}
	s.marquerRetards(ctx, taches)
	return taches, nil
}

func (s *TacheService) ParUtilisateur(ctx context.Context, userID string) ([]models.Tache, error) {
	taches, err := s.repo.FindByCreePar(ctx, userID)
	if err != nil {
		return nil, s.wrap(err)
	}
	s.marquerRetards(ctx, taches)
	return taches, nil
}

func (s *TacheService) ParProjet(ctx context.Context, projetID string) ([]models.Tache, error) {
	taches, err := s.repo.FindByProjet(ctx, projetID)
	if err != nil {
		return nil, s.wrap(err)
	}
	s.marquerRetards(ctx, taches)
	return taches, nil
}

func (s *TacheService) Get(ctx context.Context, id string) (*models.Tache, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	return t, nil
}

func (s *TacheService) Create(ctx context.Context, req dto.TacheRequest) (*models.Tache, error) {
	t := &models.Tache{}
	if err := s.apply(ctx, req, t); err != nil {
		return nil, err
	}
	t.CreePar = strings.TrimSpace(req.CreePar)
	if t.CreePar == "" {
		t.CreePar = requestctx.UserID(ctx)
	}
	t.DateCreation = s.now()

	if err := s.repo.Insert(ctx, t); err != nil {
		return nil, s.wrap(err)
	}

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionCreation,
		Entite:           models.EntiteTache,
		EntiteID:         t.ID.Hex(),
		Details:          "Création de la tâche: " + t.Titre,
		NouvellesValeurs: t,
	})
	return t, nil
}

func (s *TacheService) Update(ctx context.Context, id string, req dto.TacheRequest) (*models.Tache, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	ancienne := *t

	if err := s.apply(ctx, req, t); err != nil {
		return nil, err
	}
	now := s.now()
	t.DateModification = &now

	if err := s.repo.Replace(ctx, t); err != nil {
		return nil, s.wrap(err)
	}

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionModification,
		Entite:           models.EntiteTache,
		EntiteID:         id,
		Details:          "Modification de la tâche: " + t.Titre,
		AnciennesValeurs: ancienne,
		NouvellesValeurs: t,
	})
	return t, nil
}

func (s *TacheService) Terminer(ctx context.Context, id string) (*models.Tache, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	ancien := t.Statut

	now := s.now()
	t.Statut = models.TacheTerminee
	t.DateModification = &now
	if err := s.repo.Replace(ctx, t); err != nil {
		return nil, s.wrap(err)
	}

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionModification,
		Entite:           models.EntiteTache,
		EntiteID:         id,
		Details:          "Tâche terminée: " + t.Titre,
		AnciennesValeurs: map[string]string{"statut": ancien},
		NouvellesValeurs: map[string]string{"statut": t.Statut},
	})
	return t, nil
}

func (s *TacheService) Delete(ctx context.Context, id string) error {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.wrap(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.wrap(err)
	}

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionSuppression,
		Entite:           models.EntiteTache,
		EntiteID:         id,
		Details:          "Suppression de la tâche: " + t.Titre,
		AnciennesValeurs: t,
	})
	return nil
}

// Stats compteurs des tâches d'un utilisateur ; prochaines7Jours couvre [aujourd'hui, aujourd'hui+7]
func (s *TacheService) Stats(ctx context.Context, userID string) (*dto.TacheStats, error) {
	taches, err := s.ParUtilisateur(ctx, userID)
	if err != nil {
		return nil, err
	}

	debut := utils.StartOfDay(s.now())
	fin := debut.AddDate(0, 0, horizonProchaines+1)

	stats := &dto.TacheStats{Total: len(taches)}
	for _, t := range taches {
		switch t.Statut {
		case models.TacheAFaire:
			stats.AFaire++
		case models.TacheEnCours:
			stats.EnCours++
		case models.TacheTerminee:
			stats.Terminees++
		case models.TacheEnRetard:
			stats.EnRetard++
		}

		if t.DateEcheance != nil && t.Statut != models.TacheTerminee &&
			!t.DateEcheance.Before(debut) && t.DateEcheance.Before(fin) {
			stats.Prochaines7Jours++
		}
	}
	return stats, nil
}
