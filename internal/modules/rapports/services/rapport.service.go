package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"qualite-pro-core/internal/infrastructure/export"
	"qualite-pro-core/internal/modules/rapports/dto"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports"
	"qualite-pro-core/internal/shared/utils"
	"qualite-pro-core/internal/shared/validation"
)

// Sources de données, satisfaites par les repositories des modules concernés

type FicheSource interface {
	FindAll(ctx context.Context) ([]models.FicheQualite, error)
}

type SuiviSource interface {
	FindAll(ctx context.Context) ([]models.FicheSuivi, error)
}

type ProjetSource interface {
	FindAll(ctx context.Context) ([]models.FicheProjet, error)
}

type FormulaireSource interface {
	FindAll(ctx context.Context) ([]models.FormulaireObligatoire, error)
}

const (
	PrefixeRapportKpi     = "rapport_kpi"
	PrefixeRapportPeriode = "rapport_kpi_periode"
)

type RapportService struct {
	fiches      FicheSource
	suivis      SuiviSource
	projets     ProjetSource
	formulaires FormulaireSource
	validator   *validation.Validator
	historique  ports.ActionRecorder
	log         *zap.Logger
	now         func() time.Time
}

func NewRapportService(
	fiches FicheSource,
	suivis SuiviSource,
	projets ProjetSource,
	formulaires FormulaireSource,
	validator *validation.Validator,
	historique ports.ActionRecorder,
	log *zap.Logger,
) *RapportService {
	return &RapportService{
		fiches:      fiches,
		suivis:      suivis,
		projets:     projets,
		formulaires: formulaires,
		validator:   validator,
		historique:  historique,
		log:         log.Named("rapports"),
		now:         time.Now,
	}
}

// charger lit les quatre collections en parallèle ; la première erreur annule les autres lectures
func (s *RapportService) charger(ctx context.Context) (*donnees, error) {
	d := &donnees{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.fiches, err = s.fiches.FindAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.suivis, err = s.suivis.FindAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.projets, err = s.projets.FindAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.formulaires, err = s.formulaires.FindAll(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, apperrors.Internal("Erreur lors du chargement des données du rapport", err)
	}
	return d, nil
}

// Complet rapport KPI sur l'ensemble des données
func (s *RapportService) Complet(ctx context.Context) (*dto.RapportComplet, error) {
	d, err := s.charger(ctx)
	if err != nil {
		return nil, err
	}
	return construireRapport(d, s.now()), nil
}

// Periode compte les éléments créés entre dateDebut et dateFin, bornes incluses au jour près
func (s *RapportService) Periode(ctx context.Context, q dto.PeriodeQuery) (*dto.RapportPeriode, error) {
	if appErr := s.validator.Struct(q); appErr != nil {
		return nil, appErr
	}
	debut, err := utils.ParseDate(q.DateDebut)
	if err != nil {
		return nil, apperrors.ValidationField("dateDebut", "Format de date invalide. Utilisez le format yyyy-MM-dd")
	}
	fin, err := utils.ParseDate(q.DateFin)
	if err != nil {
		return nil, apperrors.ValidationField("dateFin", "Format de date invalide. Utilisez le format yyyy-MM-dd")
	}
	if fin.Before(debut) {
		return nil, apperrors.InvalidArgument("La date de fin doit être postérieure à la date de début")
	}

	d, err := s.charger(ctx)
	if err != nil {
		return nil, err
	}

	debut = utils.StartOfDay(debut)
	limite := utils.StartOfDay(fin).AddDate(0, 0, 1)
	dans := func(t time.Time) bool {
		return !t.IsZero() && !t.Before(debut) && t.Before(limite)
	}

	r := &dto.RapportPeriode{Periode: dto.Periode{Debut: debut, Fin: fin}}
	for _, f := range d.fiches {
		if dans(f.DateCreation) {
			r.FichesQualite++
		}
	}
	for _, su := range d.suivis {
		if dans(su.DateSuivi) {
			r.FichesSuivi++
		}
	}
	for _, f := range d.formulaires {
		if dans(f.DateCreation) {
			r.FormulairesObligatoires++
		}
	}
	return r, nil
}

// ExportExcel classeur du rapport complet et son nom de fichier horodaté
func (s *RapportService) ExportExcel(ctx context.Context, prefixe string) (*bytes.Buffer, string, error) {
	rapport, err := s.Complet(ctx)
	if err != nil {
		return nil, "", err
	}

	buf, err := export.BuildWorkbook(FeuillesRapport(rapport)...)
	if err != nil {
		return nil, "", apperrors.Internal("Erreur lors de la génération du fichier Excel", err)
	}

	filename := NomFichier(prefixe, rapport.DateGeneration, "xlsx")
	s.log.Info("Export Excel du rapport KPI",
		zap.String("fichier", filename),
		zap.Int("taille", buf.Len()),
	)
	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:  models.ActionExport,
		Entite:  models.EntiteRapport,
		Details: "Export Excel: " + filename,
	})
	return buf, filename, nil
}

// ExportPeriodeExcel une feuille avec les compteurs de la période
func (s *RapportService) ExportPeriodeExcel(ctx context.Context, q dto.PeriodeQuery) (*bytes.Buffer, string, error) {
	r, err := s.Periode(ctx, q)
	if err != nil {
		return nil, "", err
	}

	buf, err := export.BuildWorkbook(FeuillePeriode(r))
	if err != nil {
		return nil, "", apperrors.Internal("Erreur lors de la génération du fichier Excel", err)
	}

	filename := NomFichier(PrefixeRapportPeriode, s.now(), "xlsx")
	s.historique.EnregistrerAction(ctx, ports.ActionEntry{
		Action:  models.ActionExport,
		Entite:  models.EntiteRapport,
		Details: "Export Excel: " + filename,
	})
	return buf, filename, nil
}

// NomFichier prefixe_YYYYMMDD_HHMMSS.ext
func NomFichier(prefixe string, t time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefixe, t.Format("20060102_150405"), ext)
}
