package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/infrastructure/storage"
	"qualite-pro-core/internal/modules/fichiers/queries"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports"
	"qualite-pro-core/internal/shared/requestctx"
)

// FileStore stockage physique des pièces jointes
type FileStore interface {
	Store(ctx context.Context, originalName string, content io.Reader) (string, error)
	Open(storedName string) (io.ReadCloser, error)
	Delete(storedName string) error
	MaxSize() int64
}

var allowedContentTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Upload fichier reçu en multipart
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
	EntityType  string
	EntityID    string
	Description string
}

type FichierService struct {
	repo       queries.AttachmentRepository
	store      FileStore
	historique ports.ActionRecorder
	log        *zap.Logger
	now        func() time.Time
}

func NewFichierService(
	repo queries.AttachmentRepository,
	store FileStore,
	historique ports.ActionRecorder,
	log *zap.Logger,
) *FichierService {
	return &FichierService{
		repo:       repo,
		store:      store,
		historique: historique,
		log:        log.Named("fichiers"),
		now:        time.Now,
	}
}

func (s *FichierService) wrap(err error) error {
	if errors.Is(err, mongodb.ErrNotFound) {
		return apperrors.NotFound("Fichier non trouvé")
	}
	return apperrors.Internal("Erreur d'accès aux fichiers", err)
}

func contentTypeAutorise(contentType string) bool {
	media, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return slices.Contains(allowedContentTypes, strings.ToLower(media))
}

func (s *FichierService) valider(u Upload) error {
	champs := map[string]string{}
	if strings.TrimSpace(u.EntityType) == "" {
		champs["entityType"] = "Ce champ est requis"
	}
	if strings.TrimSpace(u.EntityID) == "" {
		champs["entityId"] = "Ce champ est requis"
	}
	if len(champs) > 0 {
		return apperrors.Validation(champs)
	}

	if u.Size <= 0 {
		return apperrors.InvalidArgument("Le fichier est vide")
	}
	if !contentTypeAutorise(u.ContentType) {
		return apperrors.InvalidArgument("Type de fichier non autorisé")
	}
	if max := s.store.MaxSize(); max > 0 && u.Size > max {
		return apperrors.InvalidArgument(fmt.Sprintf("Fichier trop volumineux (max %d MB)", max/(1024*1024)))
	}
	if strings.Contains(u.FileName, "..") {
		return apperrors.InvalidArgument("Le nom du fichier contient une séquence de chemin invalide: " + u.FileName)
	}
	return nil
}

func (s *FichierService) Upload(ctx context.Context, u Upload) (*models.Attachment, error) {
	if err := s.valider(u); err != nil {
		return nil, err
	}

	stored, err := s.store.Store(ctx, u.FileName, u.Content)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidName) {
			return nil, apperrors.InvalidArgument("Nom de fichier invalide")
		}
		return nil, apperrors.Internal("Erreur lors du stockage du fichier", err)
	}

	a := &models.Attachment{
		OriginalFileName: u.FileName,
		StoredFileName:   stored,
		ContentType:      u.ContentType,
		FileSize:         u.Size,
		EntityType:       u.EntityType,
		EntityID:         u.EntityID,
		UploadedBy:       requestctx.UserID(ctx),
		UploadedAt:       s.now(),
		Description:      u.Description,
	}
	if err := s.repo.Insert(ctx, a); err != nil {
		// pas de fichier orphelin sur disque
		if delErr := s.store.Delete(stored); delErr != nil {
			s.log.Warn("nettoyage du fichier échoué", zap.String("fichier", stored), zap.Error(delErr))
		}
		return nil, s.wrap(err)
	}

	s.log.Info("fichier uploadé",
		zap.String("fichier", u.FileName),
		zap.String("entite", u.EntityType+"/"+u.EntityID),
		zap.Int64("taille", u.Size),
	)
	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionCreation,
		Entite:           models.EntiteFichier,
		EntiteID:         a.ID.Hex(),
		Details:          fmt.Sprintf("Ajout du fichier %s sur %s/%s", u.FileName, u.EntityType, u.EntityID),
		NouvellesValeurs: a,
	})
	return a, nil
}

func (s *FichierService) Get(ctx context.Context, id string) (*models.Attachment, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	return a, nil
}

// Download l'appelant ferme le flux
func (s *FichierService) Download(ctx context.Context, id string) (*models.Attachment, io.ReadCloser, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(a.StoredFileName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, apperrors.NotFound("Fichier non trouvé")
		}
		return nil, nil, apperrors.Internal("Lecture du fichier impossible", err)
	}
	return a, rc, nil
}

func (s *FichierService) ParEntite(ctx context.Context, entityType, entityID string) ([]models.Attachment, error) {
	items, err := s.repo.FindByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, s.wrap(err)
	}
	return items, nil
}

// Delete réservé à l'auteur de l'upload ou à un ADMIN
func (s *FichierService) Delete(ctx context.Context, id string) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	actor := requestctx.ActorFrom(ctx)
	if actor.Role != models.RoleAdmin && (actor.UserID == "" || actor.UserID != a.UploadedBy) {
		s.log.Warn("suppression de fichier refusée", zap.String("utilisateur", actor.UserID), zap.String("fichier", id))
		return apperrors.Forbidden("Vous n'avez pas la permission de supprimer ce fichier")
	}

	if err := s.store.Delete(a.StoredFileName); err != nil {
		return apperrors.Internal("Erreur lors de la suppression du fichier", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.wrap(err)
	}

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionSuppression,
		Entite:           models.EntiteFichier,
		EntiteID:         id,
		Details:          "Suppression du fichier " + a.OriginalFileName,
		AnciennesValeurs: a,
	})
	return nil
}

// DeleteParEntite retourne le nombre de pièces jointes supprimées
func (s *FichierService) DeleteParEntite(ctx context.Context, entityType, entityID string) (int64, error) {
	items, err := s.repo.FindByEntity(ctx, entityType, entityID)
	if err != nil {
		return 0, s.wrap(err)
	}
	for _, a := range items {
		if err := s.store.Delete(a.StoredFileName); err != nil {
			s.log.Warn("suppression physique échouée", zap.String("fichier", a.StoredFileName), zap.Error(err))
		}
	}

	n, err := s.repo.DeleteByEntity(ctx, entityType, entityID)
	if err != nil {
		return 0, s.wrap(err)
	}
	s.log.Info("fichiers de l'entité supprimés", zap.String("entite", entityType+"/"+entityID), zap.Int64("total", n))
	return n, nil
}
