package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/modules/suivis/dto"
	"qualite-pro-core/internal/modules/suivis/queries"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports"
	"qualite-pro-core/internal/shared/requestctx"
	"qualite-pro-core/internal/shared/utils"
	"qualite-pro-core/internal/shared/validation"
)

// FicheReader accès en lecture aux fiches qualité référencées
type FicheReader interface {
	FindByID(ctx context.Context, id string) (*models.FicheQualite, error)
}

type SuiviService struct {
	repo       queries.SuiviRepository
	fiches     FicheReader
	validator  *validation.Validator
	notifier   ports.Notifier
	historique ports.ActionRecorder
	log        *zap.Logger
	now        func() time.Time
}

func NewSuiviService(
	repo queries.SuiviRepository,
	fiches FicheReader,
	validator *validation.Validator,
	notifier ports.Notifier,
	historique ports.ActionRecorder,
	log *zap.Logger,
) *SuiviService {
	return &SuiviService{
		repo:       repo,
		fiches:     fiches,
		validator:  validator,
		notifier:   notifier,
		historique: historique,
		log:        log.Named("suivis"),
		now:        time.Now,
	}
}

func (s *SuiviService) wrap(err error) error {
	if errors.Is(err, mongodb.ErrNotFound) {
		return apperrors.NotFound("Fiche de suivi non trouvée")
	}
	return apperrors.Internal("Erreur d'accès aux fiches de suivi", err)
}

// validate normalise l'état et retourne la date de suivi (nil si absente)
func (s *SuiviService) validate(req *dto.SuiviRequest) (*time.Time, error) {
	req.FicheID = strings.TrimSpace(req.FicheID)
	req.EtatAvancement = dto.NormaliserEtat(req.EtatAvancement)

	if appErr := s.validator.Struct(*req); appErr != nil {
		return nil, appErr
	}
	dateSuivi, err := utils.ParseOptionalDate(req.DateSuivi)
	if err != nil {
		return nil, apperrors.ValidationField("dateSuivi", "Format de date invalide")
	}
	return dateSuivi, nil
}

// ficheExistante 400 quand la fiche qualité référencée n'existe pas
func (s *SuiviService) ficheExistante(ctx context.Context, ficheID string) (*models.FicheQualite, error) {
	fiche, err := s.fiches.FindByID(ctx, ficheID)
	if errors.Is(err, mongodb.ErrNotFound) {
		return nil, apperrors.InvalidArgument(fmt.Sprintf("La fiche qualité avec l'ID %s n'existe pas", ficheID))
	}
	if err != nil {
		return nil, apperrors.Internal("Erreur d'accès aux fiches qualité", err)
	}
	return fiche, nil
}

func (s *SuiviService) List(ctx context.Context) ([]models.FicheSuivi, error) {
	suivis, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}
	return suivis, nil
}

func (s *SuiviService) Get(ctx context.Context, id string) (*models.FicheSuivi, error) {
	suivi, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	return suivi, nil
}

func (s *SuiviService) ParFiche(ctx context.Context, ficheID string) ([]models.FicheSuivi, error) {
	suivis, err := s.repo.FindByFiche(ctx, ficheID)
	if err != nil {
		return nil, s.wrap(err)
	}
	return suivis, nil
}

func (s *SuiviService) ParUtilisateur(ctx context.Context, utilisateurID string) ([]models.FicheSuivi, error) {
	suivis, err := s.repo.FindByAuteur(ctx, utilisateurID)
	if err != nil {
		return nil, s.wrap(err)
	}
	return suivis, nil
}

// Create rien n'est persisté si la fiche qualité référencée est absente
func (s *SuiviService) Create(ctx context.Context, req dto.SuiviRequest) (*models.FicheSuivi, error) {
	dateSuivi, err := s.validate(&req)
	if err != nil {
		return nil, err
	}
	fiche, err := s.ficheExistante(ctx, req.FicheID)
	if err != nil {
		return nil, err
	}

	suivi := &models.FicheSuivi{
		FicheID:              req.FicheID,
		DateSuivi:            s.now(),
		EtatAvancement:       req.EtatAvancement,
		Problemes:            req.Problemes,
		Decisions:            req.Decisions,
		IndicateursKpi:       req.IndicateursKpi,
		TauxConformite:       req.TauxConformite,
		DelaiTraitementJours: req.DelaiTraitementJours,
		AjoutePar:            strings.TrimSpace(req.AjoutePar),
	}
	if dateSuivi != nil {
		suivi.DateSuivi = *dateSuivi
	}
	if suivi.AjoutePar == "" {
		suivi.AjoutePar = requestctx.UserID(ctx)
	}

	if err := s.repo.Insert(ctx, suivi); err != nil {
		return nil, s.wrap(err)
	}
	s.log.Info("fiche de suivi créée", zap.String("id", suivi.ID.Hex()), zap.String("fiche_id", suivi.FicheID))

	s.notifier.CreerNotification(ctx, suivi.AjoutePar,
		"Nouvelle fiche de suivi ajoutée pour: "+fiche.Titre, models.NotifFicheSuivi, suivi.ID.Hex())

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionCreation,
		Entite:           models.EntiteFicheSuivi,
		EntiteID:         suivi.ID.Hex(),
		Details:          "Création d'une fiche de suivi pour la fiche qualité: " + suivi.FicheID,
		NouvellesValeurs: suivi,
	})
	return suivi, nil
}

// Update la fiche qualité de rattachement n'est pas modifiable
func (s *SuiviService) Update(ctx context.Context, id string, req dto.SuiviRequest) (*models.FicheSuivi, error) {
	dateSuivi, err := s.validate(&req)
	if err != nil {
		return nil, err
	}

	suivi, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	ancien := *suivi

	suivi.EtatAvancement = req.EtatAvancement
	suivi.Problemes = req.Problemes
	suivi.Decisions = req.Decisions
	suivi.IndicateursKpi = req.IndicateursKpi
	suivi.TauxConformite = req.TauxConformite
	suivi.DelaiTraitementJours = req.DelaiTraitementJours
	if ajoutePar := strings.TrimSpace(req.AjoutePar); ajoutePar != "" {
		suivi.AjoutePar = ajoutePar
	}
	if dateSuivi != nil {
		suivi.DateSuivi = *dateSuivi
	}

	if err := s.repo.Replace(ctx, suivi); err != nil {
		return nil, s.wrap(err)
	}

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionModification,
		Entite:           models.EntiteFicheSuivi,
		EntiteID:         id,
		Details:          "Modification d'une fiche de suivi pour la fiche qualité: " + suivi.FicheID,
		AnciennesValeurs: ancien,
		NouvellesValeurs: suivi,
	})
	return suivi, nil
}

func (s *SuiviService) Delete(ctx context.Context, id string) error {
	suivi, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.wrap(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.wrap(err)
	}

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionSuppression,
		Entite:           models.EntiteFicheSuivi,
		EntiteID:         id,
		Details:          "Suppression d'une fiche de suivi pour la fiche qualité: " + suivi.FicheID,
		AnciennesValeurs: suivi,
	})
	return nil
}

// Stats moyenne des taux renseignés uniquement, arrondie à 2 décimales
func (s *SuiviService) Stats(ctx context.Context) (*dto.SuiviStats, error) {
	suivis, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}

	stats := &dto.SuiviStats{Total: len(suivis), ParEtat: map[string]int{}}
	var somme float64
	var renseignes int
	for _, suivi := range suivis {
		if suivi.EtatAvancement != "" {
			stats.ParEtat[suivi.EtatAvancement]++
		}
		if suivi.TauxConformite != nil {
			somme += *suivi.TauxConformite
			renseignes++
		}
	}
	if renseignes > 0 {
		stats.TauxConformiteMoyen = math.Round(somme/float64(renseignes)*100) / 100
	}
	return stats, nil
}
