package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"qualite-pro-core/internal/modules/historique/dto"
	"qualite-pro-core/internal/modules/historique/queries"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports"
	"qualite-pro-core/internal/shared/requestctx"
	"qualite-pro-core/internal/shared/utils"
	"qualite-pro-core/internal/shared/validation"
)

const (
	nomSysteme = "Système"
	nomInconnu = "Utilisateur inconnu"
)

// CSVHeader colonnes de l'export
var CSVHeader = []string{"date", "utilisateur", "action", "module", "entiteId", "details"}

type HistoriqueService struct {
	repo      queries.HistoriqueRepository
	users     ports.UserDirectory
	validator *validation.Validator
	log       *zap.Logger
	now       func() time.Time
}

func NewHistoriqueService(
	repo queries.HistoriqueRepository,
	users ports.UserDirectory,
	validator *validation.Validator,
	log *zap.Logger,
) *HistoriqueService {
	return &HistoriqueService{
		repo:      repo,
		users:     users,
		validator: validator,
		log:       log.Named("historique"),
		now:       time.Now,
	}
}

// EnregistrerAction trace une action. Les erreurs sont journalisées, jamais remontées.
func (s *HistoriqueService) EnregistrerAction(ctx context.Context, entry ports.ActionEntry) {
	actor := requestctx.ActorFrom(ctx)

	h := &models.HistoriqueAction{
		Action:         entry.Action,
		Entite:         entry.Entite,
		EntiteID:       entry.EntiteID,
		UtilisateurID:  actor.UserID,
		UtilisateurNom: s.nomUtilisateur(ctx, actor.UserID),
		Details:        entry.Details,
		DateAction:     s.now(),
		IPAdresse:      actor.IP,
		UserAgent:      actor.UserAgent,
	}
	if h.IPAdresse == "" {
		h.IPAdresse = "N/A"
	}
	h.AnciennesValeurs = s.toJSON(entry.AnciennesValeurs)
	h.NouvellesValeurs = s.toJSON(entry.NouvellesValeurs)

	if err := s.repo.Insert(ctx, h); err != nil {
		s.log.Error("enregistrement historique échoué",
			zap.String("action", entry.Action),
			zap.String("entite", entry.Entite),
			zap.String("entite_id", entry.EntiteID),
			zap.Error(err),
		)
	}
}

func (s *HistoriqueService) toJSON(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("sérialisation historique impossible", zap.Error(err))
		return ""
	}
	return string(b)
}

func (s *HistoriqueService) nomUtilisateur(ctx context.Context, userID string) string {
	if userID == "" {
		return nomSysteme
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nomInconnu
	}
	return u.NomComplet()
}

func (s *HistoriqueService) find(ctx context.Context, f queries.Filter) ([]models.HistoriqueAction, error) {
	list, err := s.repo.Find(ctx, f)
	if err != nil {
		return nil, apperrors.Internal("Lecture de l'historique impossible", err)
	}
	return list, nil
}

func (s *HistoriqueService) count(ctx context.Context, f queries.Filter) (int64, error) {
	n, err := s.repo.Count(ctx, f)
	if err != nil {
		return 0, apperrors.Internal("Comptage de l'historique impossible", err)
	}
	return n, nil
}

func (s *HistoriqueService) List(ctx context.Context) ([]models.HistoriqueAction, error) {
	return s.find(ctx, queries.Filter{})
}

func (s *HistoriqueService) ParUtilisateur(ctx context.Context, utilisateurID string) ([]models.HistoriqueAction, error) {
	return s.find(ctx, queries.Filter{UtilisateurID: utilisateurID})
}

func (s *HistoriqueService) ParEntite(ctx context.Context, entite, entiteID string) ([]models.HistoriqueAction, error) {
	return s.find(ctx, queries.Filter{Entite: entite, EntiteID: entiteID})
}

// parseJours intervalle [début, fin + 1 jour) à partir de deux dates AAAA-MM-JJ
func parseJours(debut, fin string) (*time.Time, *time.Time, error) {
	d, err := utils.ParseOptionalDate(debut)
	if err != nil {
		return nil, nil, apperrors.ValidationField("dateDebut", "Date invalide")
	}
	f, err := utils.ParseOptionalDate(fin)
	if err != nil {
		return nil, nil, apperrors.ValidationField("dateFin", "Date invalide")
	}
	if d != nil {
		start := utils.StartOfDay(*d)
		d = &start
	}
	if f != nil {
		end := utils.StartOfDay(*f).AddDate(0, 0, 1)
		f = &end
	}
	if d != nil && f != nil && !d.Before(*f) {
		return nil, nil, apperrors.InvalidArgument("La date de début doit précéder la date de fin")
	}
	return d, f, nil
}

func (s *HistoriqueService) ParPeriode(ctx context.Context, debut, fin string) ([]models.HistoriqueAction, error) {
	d, f, err := parseJours(debut, fin)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, queries.Filter{Debut: d, Fin: f})
}

func (s *HistoriqueService) ParUtilisateurEtPeriode(ctx context.Context, utilisateurID, debut, fin string) ([]models.HistoriqueAction, error) {
	d, f, err := parseJours(debut, fin)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, queries.Filter{UtilisateurID: utilisateurID, Debut: d, Fin: f})
}

func (s *HistoriqueService) ParEntiteEtPeriode(ctx context.Context, entite, debut, fin string) ([]models.HistoriqueAction, error) {
	d, f, err := parseJours(debut, fin)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, queries.Filter{Entite: entite, Debut: d, Fin: f})
}

func (s *HistoriqueService) CountUtilisateur(ctx context.Context, utilisateurID string) (int64, error) {
	return s.count(ctx, queries.Filter{UtilisateurID: utilisateurID})
}

func (s *HistoriqueService) CountEntite(ctx context.Context, entite string) (int64, error) {
	return s.count(ctx, queries.Filter{Entite: entite})
}

// periodeBornes aujourd'hui, semaine (lundi à lundi) ou mois calendaire
func periodeBornes(periode string, now time.Time) (time.Time, time.Time, bool) {
	today := utils.StartOfDay(now)
	switch periode {
	case dto.PeriodeAujourdhui:
		return today, today.AddDate(0, 0, 1), true
	case dto.PeriodeSemaine:
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), true
	case dto.PeriodeMois:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return start, start.AddDate(0, 1, 0), true
	}
	return time.Time{}, time.Time{}, false
}

// CountPeriode compte les actions de la période prédéfinie
func (s *HistoriqueService) CountPeriode(ctx context.Context, periode string) (int64, error) {
	start, end, ok := periodeBornes(periode, s.now())
	if !ok {
		return s.count(ctx, queries.Filter{})
	}
	return s.count(ctx, queries.Filter{Debut: &start, Fin: &end})
}

func (s *HistoriqueService) Stats(ctx context.Context) (*dto.HistoriqueStats, error) {
	stats := &dto.HistoriqueStats{}
	var err error
	if stats.Total, err = s.CountPeriode(ctx, ""); err != nil {
		return nil, err
	}
	if stats.Aujourdhui, err = s.CountPeriode(ctx, dto.PeriodeAujourdhui); err != nil {
		return nil, err
	}
	if stats.Semaine, err = s.CountPeriode(ctx, dto.PeriodeSemaine); err != nil {
		return nil, err
	}
	if stats.Mois, err = s.CountPeriode(ctx, dto.PeriodeMois); err != nil {
		return nil, err
	}
	return stats, nil
}

// Filtrer combine les critères ; module désigne l'entité tracée
func (s *HistoriqueService) Filtrer(ctx context.Context, req dto.FiltresRequest) ([]models.HistoriqueAction, error) {
	if appErr := s.validator.Struct(req); appErr != nil {
		return nil, appErr
	}

	f := queries.Filter{
		Action:        strings.ToUpper(strings.TrimSpace(req.TypeAction)),
		Entite:        strings.ToUpper(strings.TrimSpace(req.Module)),
		UtilisateurID: strings.TrimSpace(req.UtilisateurID),
	}

	if start, end, ok := periodeBornes(req.Periode, s.now()); ok {
		f.Debut, f.Fin = &start, &end
	} else {
		d, fin, err := parseJours(req.DateDebut, req.DateFin)
		if err != nil {
			return nil, err
		}
		f.Debut, f.Fin = d, fin
	}

	return s.find(ctx, f)
}

// ExportCSV écrit l'historique filtré (tout l'historique si req est nil), séparateur ';'
func (s *HistoriqueService) ExportCSV(ctx context.Context, req *dto.FiltresRequest, w io.Writer) error {
	var (
		list []models.HistoriqueAction
		err  error
	)
	if req != nil {
		list, err = s.Filtrer(ctx, *req)
	} else {
		list, err = s.List(ctx)
	}
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(CSVHeader); err != nil {
		return apperrors.Internal("Export de l'historique impossible", err)
	}
	for _, a := range list {
		record := []string{
			a.DateAction.Format("2006-01-02 15:04:05"),
			a.UtilisateurNom,
			a.Action,
			a.Entite,
			a.EntiteID,
			strings.ReplaceAll(a.Details, "\n", " "),
		}
		if err := cw.Write(record); err != nil {
			return apperrors.Internal("Export de l'historique impossible", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Internal("Export de l'historique impossible", err)
	}
	return nil
}

