package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/infrastructure/mail"
	"qualite-pro-core/internal/modules/formulaires/dto"
	"qualite-pro-core/internal/modules/formulaires/queries"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports"
	"qualite-pro-core/internal/shared/utils"
	"qualite-pro-core/internal/shared/validation"
)

const (
	// fenêtre de GET /echeances-proches et de POST /verifier-echeances
	FenetreEcheanceProche = 3 * 24 * time.Hour
	// au-delà, un formulaire déjà notifié ne reçoit plus de relance de retard
	MaxNotificationsRetard = 3
)

type FormulaireService struct {
	repo       queries.FormulaireRepository
	users      ports.UserDirectory
	validator  *validation.Validator
	mailer     *mail.Mailer
	notifier   ports.Notifier
	historique ports.ActionRecorder
	log        *zap.Logger
	now        func() time.Time
}

func NewFormulaireService(
	repo queries.FormulaireRepository,
	users ports.UserDirectory,
	validator *validation.Validator,
	mailer *mail.Mailer,
	notifier ports.Notifier,
	historique ports.ActionRecorder,
	log *zap.Logger,
) *FormulaireService {
	return &FormulaireService{
		repo:       repo,
		users:      users,
		validator:  validator,
		mailer:     mailer,
		notifier:   notifier,
		historique: historique,
		log:        log.Named("formulaires"),
		now:        time.Now,
	}
}

func (s *FormulaireService) wrap(err error) error {
	if errors.Is(err, mongodb.ErrNotFound) {
		return apperrors.NotFound("Formulaire obligatoire non trouvé")
	}
	return apperrors.Internal("Erreur d'accès aux formulaires obligatoires", err)
}

// responsable nil quand l'identifiant n'est pas celui d'un compte existant
func (s *FormulaireService) responsable(ctx context.Context, id string) *models.Utilisateur {
	if !utils.IsObjectID(id) {
		return nil
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, mongodb.ErrNotFound) {
			s.log.Warn("lecture du responsable échouée", zap.String("responsable_id", id), zap.Error(err))
		}
		return nil
	}
	return u
}

func (s *FormulaireService) parseRequest(req dto.FormulaireRequest) (time.Time, error) {
	if appErr := s.validator.Struct(req); appErr != nil {
		return time.Time{}, appErr
	}
	echeance, err := utils.ParseDate(req.DateEcheance)
	if err != nil {
		return time.Time{}, apperrors.ValidationField("dateEcheance", "Format de date invalide")
	}
	return echeance, nil
}

func (s *FormulaireService) Create(ctx context.Context, req dto.FormulaireRequest) (*models.FormulaireObligatoire, error) {
	echeance, err := s.parseRequest(req)
	if err != nil {
		return nil, err
	}

	f := &models.FormulaireObligatoire{
		Nom:            strings.TrimSpace(req.Nom),
		Description:    req.Description,
		TypeFormulaire: req.TypeFormulaire,
		ProjetID:       req.ProjetID,
		ResponsableID:  strings.TrimSpace(req.ResponsableID),
		ResponsableNom: req.ResponsableNom,
		DateEcheance:   echeance,
		DateCreation:   s.now(),
		Statut:         models.FormulaireEnAttente,
		Priorite:       req.Priorite,
		Commentaire:    req.Commentaire,
	}
	if u := s.responsable(ctx, f.ResponsableID); u != nil {
		f.ResponsableNom = u.NomComplet()
	}

	if err := s.repo.Insert(ctx, f); err != nil {
		return nil, s.wrap(err)
	}

	s.notifier.CreerNotification(ctx, f.ResponsableID,
		"Nouveau formulaire obligatoire assigné : "+f.Nom, models.NotifFormulaire, f.ID.Hex())

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionCreation,
		Entite:           models.EntiteFormulaire,
		EntiteID:         f.ID.Hex(),
		Details:          "Création du formulaire obligatoire: " + f.Nom,
		NouvellesValeurs: f,
	})
	return f, nil
}

// Update remplace les champs éditables ; les compteurs de notification sont conservés
func (s *FormulaireService) Update(ctx context.Context, id string, req dto.FormulaireRequest) (*models.FormulaireObligatoire, error) {
	echeance, err := s.parseRequest(req)
	if err != nil {
		return nil, err
	}

	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	ancien := *f

	f.Nom = strings.TrimSpace(req.Nom)
	f.Description = req.Description
	f.TypeFormulaire = req.TypeFormulaire
	f.ProjetID = req.ProjetID
	f.ResponsableID = strings.TrimSpace(req.ResponsableID)
	f.ResponsableNom = req.ResponsableNom
	f.DateEcheance = echeance
	f.Priorite = req.Priorite
	f.Commentaire = req.Commentaire
	if req.Statut != "" {
		f.Statut = req.Statut
	}
	if f.ResponsableID != ancien.ResponsableID || f.ResponsableNom == "" {
		if u := s.responsable(ctx, f.ResponsableID); u != nil {
			f.ResponsableNom = u.NomComplet()
		}
	}

	if err := s.repo.Replace(ctx, f); err != nil {
		return nil, s.wrap(err)
	}

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionModification,
		Entite:           models.EntiteFormulaire,
		EntiteID:         id,
		Details:          "Mise à jour du formulaire obligatoire: " + f.Nom,
		AnciennesValeurs: ancien,
		NouvellesValeurs: f,
	})
	return f, nil
}

func (s *FormulaireService) changerStatut(ctx context.Context, id, statut, details string) (*models.FormulaireObligatoire, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	ancien := f.Statut
	f.Statut = statut
	if err := s.repo.Replace(ctx, f); err != nil {
		return nil, s.wrap(err)
	}

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionModification,
		Entite:           models.EntiteFormulaire,
		EntiteID:         id,
		Details:          details,
		AnciennesValeurs: map[string]string{"statut": ancien},
		NouvellesValeurs: map[string]string{"statut": statut},
	})
	return f, nil
}

// MarquerSoumis le formulaire sort des retards : plus aucune relance ne le concerne
func (s *FormulaireService) MarquerSoumis(ctx context.Context, id string) (*models.FormulaireObligatoire, error) {
	return s.changerStatut(ctx, id, models.FormulaireSoumis, "Marqué comme soumis")
}

func (s *FormulaireService) MarquerEnRetard(ctx context.Context, id string) (*models.FormulaireObligatoire, error) {
	return s.changerStatut(ctx, id, models.FormulaireEnRetard, "Marqué comme en retard")
}

func (s *FormulaireService) Delete(ctx context.Context, id string) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.wrap(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.wrap(err)
	}

	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionSuppression,
		Entite:           models.EntiteFormulaire,
		EntiteID:         id,
		Details:          "Suppression du formulaire obligatoire: " + f.Nom,
		AnciennesValeurs: f,
	})
	return nil
}

func (s *FormulaireService) List(ctx context.Context) ([]models.FormulaireObligatoire, error) {
	formulaires, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}
	return formulaires, nil
}

func (s *FormulaireService) Get(ctx context.Context, id string) (*models.FormulaireObligatoire, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	return f, nil
}

func (s *FormulaireService) findBy(ctx context.Context, champ, valeur string) ([]models.FormulaireObligatoire, error) {
	formulaires, err := s.repo.FindBy(ctx, champ, valeur)
	if err != nil {
		return nil, s.wrap(err)
	}
	return formulaires, nil
}

func (s *FormulaireService) ParResponsable(ctx context.Context, responsableID string) ([]models.FormulaireObligatoire, error) {
	return s.findBy(ctx, queries.ChampResponsable, responsableID)
}

func (s *FormulaireService) ParProjet(ctx context.Context, projetID string) ([]models.FormulaireObligatoire, error) {
	return s.findBy(ctx, queries.ChampProjet, projetID)
}

func (s *FormulaireService) ParStatut(ctx context.Context, statut string) ([]models.FormulaireObligatoire, error) {
	return s.findBy(ctx, queries.ChampStatut, strings.ToUpper(statut))
}

func (s *FormulaireService) ParPriorite(ctx context.Context, priorite string) ([]models.FormulaireObligatoire, error) {
	return s.findBy(ctx, queries.ChampPriorite, strings.ToUpper(priorite))
}

// Retards échéance strictement passée et statut différent de SOUMIS
func (s *FormulaireService) Retards(ctx context.Context) ([]models.FormulaireObligatoire, error) {
	formulaires, err := s.repo.FindRetards(ctx, s.now())
	if err != nil {
		return nil, s.wrap(err)
	}
	return formulaires, nil
}

// EcheancesProches formulaires EN_ATTENTE dont l'échéance tombe dans les 3 prochains jours
func (s *FormulaireService) EcheancesProches(ctx context.Context) ([]models.FormulaireObligatoire, error) {
	now := s.now()
	formulaires, err := s.repo.FindEcheancesEntre(ctx, now, now.Add(FenetreEcheanceProche), models.FormulaireEnAttente)
	if err != nil {
		return nil, s.wrap(err)
	}
	return formulaires, nil
}

func (s *FormulaireService) marquerNotifie(ctx context.Context, f *models.FormulaireObligatoire, now time.Time) {
	f.Notifie = true
	f.DateNotification = &now
	f.NombreNotifications++
	if err := s.repo.Replace(ctx, f); err != nil {
		s.log.Error("mise à jour du suivi de notification échouée", zap.String("formulaire_id", f.ID.Hex()), zap.Error(err))
	}
}

// VerifierRetards notifie le responsable de chaque formulaire en retard, au plus trois fois
func (s *FormulaireService) VerifierRetards(ctx context.Context) (*dto.VerificationResult, error) {
	now := s.now()
	retards, err := s.repo.FindRetards(ctx, now)
	if err != nil {
		return nil, s.wrap(err)
	}

	result := &dto.VerificationResult{Examines: len(retards)}
	for i := range retards {
		f := &retards[i]
		if f.Notifie && f.NombreNotifications >= MaxNotificationsRetard {
			continue
		}

		s.notifier.CreerNotification(ctx, f.ResponsableID,
			"Formulaire obligatoire en retard : "+f.Nom, models.NotifFormulaireRetard, f.ID.Hex())
		if u := s.responsable(ctx, f.ResponsableID); u != nil {
			_ = s.mailer.Deliver(ctx, mail.KindRetard, u.Email, mail.SubjectFormulaireRetard,
				mail.FormulaireRetardBody(f.Nom, f.DateEcheance))
		}

		s.marquerNotifie(ctx, f, now)
		result.Notifies++
	}

	s.log.Info("vérification des retards effectuée", zap.Int("examines", result.Examines), zap.Int("notifies", result.Notifies))
	return result, nil
}

// VerifierEcheances notifie une seule fois les responsables des échéances proches
func (s *FormulaireService) VerifierEcheances(ctx context.Context) (*dto.VerificationResult, error) {
	now := s.now()
	proches, err := s.repo.FindEcheancesEntre(ctx, now, now.Add(FenetreEcheanceProche), models.FormulaireEnAttente)
	if err != nil {
		return nil, s.wrap(err)
	}

	result := &dto.VerificationResult{Examines: len(proches)}
	for i := range proches {
		f := &proches[i]
		if f.Notifie {
			continue
		}

		s.notifier.CreerNotification(ctx, f.ResponsableID,
			"Échéance proche pour : "+f.Nom, models.NotifFormulaireEcheance, f.ID.Hex())
		s.marquerNotifie(ctx, f, now)
		result.Notifies++
	}

	s.log.Info("vérification des échéances effectuée", zap.Int("examines", result.Examines), zap.Int("notifies", result.Notifies))
	return result, nil
}

// BasculerRetards passe EN_RETARD les formulaires échus encore ouverts et prévient leur
// responsable par email. Retourne le nombre de formulaires basculés.
func (s *FormulaireService) BasculerRetards(ctx context.Context) (int, error) {
	formulaires, err := s.repo.FindARetarder(ctx, s.now())
	if err != nil {
		return 0, err
	}

	bascules := 0
	for i := range formulaires {
		if ctx.Err() != nil {
			return bascules, ctx.Err()
		}

		f := &formulaires[i]
		f.Statut = models.FormulaireEnRetard
		if err := s.repo.Replace(ctx, f); err != nil {
			s.log.Error("bascule EN_RETARD échouée", zap.String("formulaire_id", f.ID.Hex()), zap.Error(err))
			continue
		}
		bascules++

		if u := s.responsable(ctx, f.ResponsableID); u != nil {
			_ = s.mailer.Deliver(ctx, mail.KindRetard, u.Email, mail.SubjectFormulaireRetard,
				mail.FormulaireRetardBody(f.Nom, f.DateEcheance))
		}
	}
	return bascules, nil
}

// RappelerEcheances envoie un rappel pour les formulaires EN_ATTENTE échus dans la fenêtre donnée
func (s *FormulaireService) RappelerEcheances(ctx context.Context, fenetre time.Duration) (int, error) {
	now := s.now()
	formulaires, err := s.repo.FindEcheancesEntre(ctx, now, now.Add(fenetre), models.FormulaireEnAttente)
	if err != nil {
		return 0, err
	}

	envoyes := 0
	for _, f := range formulaires {
		if ctx.Err() != nil {
			return envoyes, ctx.Err()
		}
		u := s.responsable(ctx, f.ResponsableID)
		if u == nil {
			continue
		}
		if err := s.mailer.Deliver(ctx, mail.KindEcheance, u.Email, mail.SubjectEcheanceProche,
			mail.EcheanceProcheBody(f.Nom, f.DateEcheance)); err == nil && u.Email != "" {
			envoyes++
		}
	}
	return envoyes, nil
}

func (s *FormulaireService) CountRetards(ctx context.Context) (int64, error) {
	n, err := s.repo.CountRetards(ctx, s.now())
	if err != nil {
		return 0, s.wrap(err)
	}
	return n, nil
}

func (s *FormulaireService) CountStatut(ctx context.Context, statut string) (int64, error) {
	n, err := s.repo.CountBy(ctx, queries.ChampStatut, strings.ToUpper(statut))
	if err != nil {
		return 0, s.wrap(err)
	}
	return n, nil
}

func (s *FormulaireService) CountResponsable(ctx context.Context, responsableID string) (int64, error) {
	n, err := s.repo.CountBy(ctx, queries.ChampResponsable, responsableID)
	if err != nil {
		return 0, s.wrap(err)
	}
	return n, nil
}
