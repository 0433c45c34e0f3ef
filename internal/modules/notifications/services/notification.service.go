package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/infrastructure/mail"
	"qualite-pro-core/internal/infrastructure/sms"
	"qualite-pro-core/internal/modules/notifications/dto"
	"qualite-pro-core/internal/modules/notifications/queries"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports"
	"qualite-pro-core/internal/shared/utils"
	"qualite-pro-core/internal/shared/validation"
)

type NotificationService struct {
	repo      queries.NotificationRepository
	users     ports.UserDirectory
	validator *validation.Validator
	mailer    *mail.Mailer
	sms       *sms.Service
	log       *zap.Logger
	now       func() time.Time
}

func NewNotificationService(
	repo queries.NotificationRepository,
	users ports.UserDirectory,
	validator *validation.Validator,
	mailer *mail.Mailer,
	smsService *sms.Service,
	log *zap.Logger,
) *NotificationService {
	return &NotificationService{
		repo:      repo,
		users:     users,
		validator: validator,
		mailer:    mailer,
		sms:       smsService,
		log:       log.Named("notifications"),
		now:       time.Now,
	}
}

func (s *NotificationService) wrap(err error) error {
	if errors.Is(err, mongodb.ErrNotFound) {
		return apperrors.NotFound("Notification non trouvée")
	}
	return apperrors.Internal("Erreur d'accès aux notifications", err)
}

// CreerNotification utilisée par les autres modules. Un identifiant qui n'est pas un
// ObjectID (nom libre saisi comme responsable par exemple) est ignoré sans erreur.
func (s *NotificationService) CreerNotification(ctx context.Context, utilisateurID, message, typeNotification, objetID string) {
	if !utils.IsObjectID(utilisateurID) {
		s.log.Debug("notification ignorée, destinataire invalide", zap.String("utilisateur_id", utilisateurID))
		return
	}

	n := &models.Notification{
		Message:       message,
		UtilisateurID: utilisateurID,
		DateCreation:  s.now(),
		Type:          typeNotification,
		ObjetID:       objetID,
	}
	if err := s.repo.Insert(ctx, n); err != nil {
		s.log.Error("création de notification échouée",
			zap.String("utilisateur_id", utilisateurID),
			zap.String("type", typeNotification),
			zap.Error(err),
		)
		return
	}

	if s.sms.Enabled() {
		if u, err := s.users.FindByID(ctx, utilisateurID); err == nil {
			s.sms.Send(ctx, u.Telephone, message)
		}
	}
}

func (s *NotificationService) Create(ctx context.Context, req dto.CreateNotificationRequest) (*models.Notification, error) {
	if appErr := s.validator.Struct(req); appErr != nil {
		return nil, appErr
	}

	n := &models.Notification{
		Message:       strings.TrimSpace(req.Message),
		UtilisateurID: req.UtilisateurID,
		DateCreation:  s.now(),
		Type:          req.Type,
		ObjetID:       req.ObjetID,
	}
	if err := s.repo.Insert(ctx, n); err != nil {
		return nil, s.wrap(err)
	}
	return n, nil
}

func (s *NotificationService) List(ctx context.Context) ([]models.Notification, error) {
	notifications, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}
	return notifications, nil
}

func (s *NotificationService) ParUtilisateur(ctx context.Context, utilisateurID string) ([]models.Notification, error) {
	notifications, err := s.repo.FindByUtilisateur(ctx, utilisateurID, false)
	if err != nil {
		return nil, s.wrap(err)
	}
	return notifications, nil
}

func (s *NotificationService) NonLues(ctx context.Context, utilisateurID string) ([]models.Notification, error) {
	notifications, err := s.repo.FindByUtilisateur(ctx, utilisateurID, true)
	if err != nil {
		return nil, s.wrap(err)
	}
	return notifications, nil
}

func (s *NotificationService) MarquerLue(ctx context.Context, id string) (*models.Notification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	if n.Lu {
		return n, nil
	}
	if _, err := s.repo.MarquerLues(ctx, []primitive.ObjectID{n.ID}); err != nil {
		return nil, s.wrap(err)
	}
	n.Lu = true
	return n, nil
}

func (s *NotificationService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return s.wrap(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.wrap(err)
	}
	return nil
}

// Relancer renvoie par email un rappel à un utilisateur qui a des notifications
func (s *NotificationService) Relancer(ctx context.Context, req dto.RelanceRequest) error {
	if appErr := s.validator.Struct(req); appErr != nil {
		return appErr
	}

	notifications, err := s.repo.FindByUtilisateur(ctx, req.UtilisateurID, false)
	if err != nil {
		return s.wrap(err)
	}
	if len(notifications) == 0 {
		return apperrors.InvalidArgument("Aucune notification pour cet utilisateur")
	}

	u, err := s.users.FindByID(ctx, req.UtilisateurID)
	if err != nil && !errors.Is(err, mongodb.ErrNotFound) {
		return apperrors.Internal("Erreur d'accès aux utilisateurs", err)
	}
	if u == nil || strings.TrimSpace(u.Email) == "" {
		return apperrors.InvalidArgument("Utilisateur sans email")
	}

	if err := s.mailer.Deliver(ctx, mail.KindRelance, u.Email, mail.SubjectRelance, mail.RelanceBody(req.Message)); err != nil {
		return apperrors.Internal("Envoi de la relance impossible", err)
	}
	return nil
}

// EnvoyerDigest regroupe les notifications non lues par utilisateur, envoie un email
// récapitulatif puis les marque lues. L'envoi et le marquage ne sont pas atomiques :
// un échec du marquage après un envoi réussi provoque un doublon au passage suivant.
func (s *NotificationService) EnvoyerDigest(ctx context.Context) (*dto.DigestResult, error) {
	utilisateurs, err := s.repo.UtilisateursAvecNonLues(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.DigestResult{Utilisateurs: len(utilisateurs)}
	for _, utilisateurID := range utilisateurs {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		u, err := s.users.FindByID(ctx, utilisateurID)
		if err != nil || strings.TrimSpace(u.Email) == "" {
			s.log.Debug("digest ignoré, destinataire sans email", zap.String("utilisateur_id", utilisateurID))
			continue
		}

		nonLues, err := s.repo.FindByUtilisateur(ctx, utilisateurID, true)
		if err != nil {
			s.log.Warn("lecture des notifications non lues échouée", zap.String("utilisateur_id", utilisateurID), zap.Error(err))
			continue
		}
		if len(nonLues) == 0 {
			continue
		}

		messages := make([]string, 0, len(nonLues))
		ids := make([]primitive.ObjectID, 0, len(nonLues))
		for _, n := range nonLues {
			messages = append(messages, n.Message)
			ids = append(ids, n.ID)
		}

		if err := s.mailer.Deliver(ctx, mail.KindDigest, u.Email, mail.SubjectDigest, mail.DigestBody(messages)); err != nil {
			continue
		}
		result.EmailsEnvoyes++

		marquees, err := s.repo.MarquerLues(ctx, ids)
		if err != nil {
			s.log.Error("marquage des notifications échoué après envoi du digest",
				zap.String("utilisateur_id", utilisateurID),
				zap.Error(err),
			)
			continue
		}
		result.Notifications += int(marquees)
	}
	return result, nil
}
