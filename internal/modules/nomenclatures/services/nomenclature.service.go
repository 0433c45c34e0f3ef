package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/modules/nomenclatures/cache"
	"qualite-pro-core/internal/modules/nomenclatures/dto"
	"qualite-pro-core/internal/modules/nomenclatures/queries"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports"
	"qualite-pro-core/internal/shared/validation"
)

type NomenclatureService struct {
	repo       queries.NomenclatureRepository
	cache      cache.NomenclatureCache
	validator  *validation.Validator
	historique ports.ActionRecorder
	log        *zap.Logger
	now        func() time.Time
}

func NewNomenclatureService(
	repo queries.NomenclatureRepository,
	cache cache.NomenclatureCache,
	validator *validation.Validator,
	historique ports.ActionRecorder,
	log *zap.Logger,
) *NomenclatureService {
	return &NomenclatureService{
		repo:       repo,
		cache:      cache,
		validator:  validator,
		historique: historique,
		log:        log.Named("nomenclatures"),
		now:        time.Now,
	}
}

func (s *NomenclatureService) wrap(err error) error {
	if errors.Is(err, mongodb.ErrNotFound) {
		return apperrors.NotFound("Nomenclature non trouvée")
	}
	return apperrors.Internal("Erreur d'accès aux nomenclatures", err)
}

func normaliser(valeur string) string {
	return strings.ToUpper(strings.TrimSpace(valeur))
}

// normaliserRequete avant validation : les longueurs maximales portent sur les valeurs stockées
func normaliserRequete(req *dto.NomenclatureRequest) {
	req.Type = normaliser(req.Type)
	req.Code = normaliser(req.Code)
	req.Libelle = strings.TrimSpace(req.Libelle)
}

// invalider les erreurs Redis ne bloquent pas la mutation : le TTL borne l'obsolescence
func (s *NomenclatureService) invalider(ctx context.Context, types ...string) {
	if err := s.cache.Invalider(ctx, types...); err != nil {
		s.log.Warn("invalidation du cache échouée", zap.Strings("types", types), zap.Error(err))
	}
}

func (s *NomenclatureService) List(ctx context.Context) ([]models.Nomenclature, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}
	return items, nil
}

func (s *NomenclatureService) Get(ctx context.Context, id string) (*models.Nomenclature, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	return n, nil
}

// ParType lecture cache d'abord, Mongo en repli
func (s *NomenclatureService) ParType(ctx context.Context, typ string) ([]models.Nomenclature, error) {
	typ = normaliser(typ)

	items, ok, err := s.cache.ParType(ctx, typ)
	if err != nil {
		s.log.Debug("cache nomenclatures indisponible", zap.String("type", typ), zap.Error(err))
	}
	if ok {
		return items, nil
	}

	items, err = s.repo.FindByType(ctx, typ)
	if err != nil {
		return nil, s.wrap(err)
	}
	if err := s.cache.StockerType(ctx, typ, items); err != nil {
		s.log.Debug("mise en cache échouée", zap.String("type", typ), zap.Error(err))
	}
	return items, nil
}

func (s *NomenclatureService) Types(ctx context.Context) ([]string, error) {
	types, ok, err := s.cache.Types(ctx)
	if err != nil {
		s.log.Debug("cache des types indisponible", zap.Error(err))
	}
	if ok {
		return types, nil
	}

	types, err = s.repo.Types(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}
	if err := s.cache.StockerTypes(ctx, types); err != nil {
		s.log.Debug("mise en cache des types échouée", zap.Error(err))
	}
	return types, nil
}

func (s *NomenclatureService) verifierDoublon(ctx context.Context, typ, code, exclureID string) error {
	existe, err := s.repo.ExisteCode(ctx, typ, code, exclureID)
	if err != nil {
		return s.wrap(err)
	}
	if existe {
		return apperrors.Conflict("NOMENCLATURE_ALREADY_EXISTS",
			fmt.Sprintf("Une nomenclature avec le type '%s' et le code '%s' existe déjà", typ, code))
	}
	return nil
}

func (s *NomenclatureService) Create(ctx context.Context, req dto.NomenclatureRequest) (*models.Nomenclature, error) {
	normaliserRequete(&req)
	if appErr := s.validator.Struct(req); appErr != nil {
		return nil, appErr
	}
	n := &models.Nomenclature{
		Type:         req.Type,
		Code:         req.Code,
		Libelle:      req.Libelle,
		Description:  req.Description,
		Ordre:        req.Ordre,
		Actif:        req.Actif == nil || *req.Actif,
		DateCreation: s.now(),
	}
	if err := s.verifierDoublon(ctx, n.Type, n.Code, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, n); err != nil {
		return nil, s.wrap(err)
	}
	s.invalider(ctx, n.Type)
	s.log.Info("nomenclature créée", zap.String("type", n.Type), zap.String("code", n.Code))

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionCreation,
		Entite:           models.EntiteNomenclature,
		EntiteID:         n.ID.Hex(),
		Details:          fmt.Sprintf("Création de la nomenclature %s/%s", n.Type, n.Code),
		NouvellesValeurs: n,
	})
	return n, nil
}

func (s *NomenclatureService) Update(ctx context.Context, id string, req dto.NomenclatureRequest) (*models.Nomenclature, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	normaliserRequete(&req)
	if appErr := s.validator.Struct(req); appErr != nil {
		return nil, appErr
	}
	ancienne := *n

	n.Type = req.Type
	n.Code = req.Code
	n.Libelle = req.Libelle
	n.Description = req.Description
	n.Ordre = req.Ordre
	if req.Actif != nil {
		n.Actif = *req.Actif
	}
	if err := s.verifierDoublon(ctx, n.Type, n.Code, id); err != nil {
		return nil, err
	}

	if err := s.repo.Replace(ctx, n); err != nil {
		return nil, s.wrap(err)
	}
	// un changement de type touche l'ancienne et la nouvelle liste
	s.invalider(ctx, ancienne.Type, n.Type)

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionModification,
		Entite:           models.EntiteNomenclature,
		EntiteID:         id,
		Details:          fmt.Sprintf("Modification de la nomenclature %s/%s", n.Type, n.Code),
		AnciennesValeurs: ancienne,
		NouvellesValeurs: n,
	})
	return n, nil
}

func (s *NomenclatureService) Delete(ctx context.Context, id string) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.wrap(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.wrap(err)
	}
	s.invalider(ctx, n.Type)

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionSuppression,
		Entite:           models.EntiteNomenclature,
		EntiteID:         id,
		Details:          fmt.Sprintf("Suppression de la nomenclature %s/%s", n.Type, n.Code),
		AnciennesValeurs: n,
	})
	return nil
}
