package services

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/models"
)

type FicheSource interface {
	FindAll(ctx context.Context) ([]models.FicheQualite, error)
}

type SuiviSource interface {
	FindAll(ctx context.Context) ([]models.FicheSuivi, error)
}

type ProjetSource interface {
	FindAll(ctx context.Context) ([]models.FicheProjet, error)
}

// Sources lecture concurrente des collections analysées
type Sources struct {
	fiches  FicheSource
	suivis  SuiviSource
	projets ProjetSource
}

func NewSources(fiches FicheSource, suivis SuiviSource, projets ProjetSource) *Sources {
	return &Sources{fiches: fiches, suivis: suivis, projets: projets}
}

// Instantane agrégats calculés une fois par requête
type Instantane struct {
	Fiches       []models.FicheQualite
	TotalFiches  int
	Terminees    int
	EnCours      int
	Bloquees     int
	TotalSuivis  int
	TotalProjets int
}

func (s *Sources) Charger(ctx context.Context) (*Instantane, error) {
	var (
		fiches  []models.FicheQualite
		suivis  []models.FicheSuivi
		projets []models.FicheProjet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		fiches, err = s.fiches.FindAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		suivis, err = s.suivis.FindAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		projets, err = s.projets.FindAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Internal("Erreur lors du chargement des données d'analyse", err)
	}
	return NouvelInstantane(fiches, len(suivis), len(projets)), nil
}

func NouvelInstantane(fiches []models.FicheQualite, totalSuivis, totalProjets int) *Instantane {
	inst := &Instantane{
		Fiches:       fiches,
		TotalFiches:  len(fiches),
		TotalSuivis:  totalSuivis,
		TotalProjets: totalProjets,
	}
	for _, f := range fiches {
		switch {
		case estTerminee(f.Statut):
			inst.Terminees++
		case f.Statut == models.StatutFicheEnCours:
			inst.EnCours++
		case estBloquee(f.Statut):
			inst.Bloquees++
		}
	}
	return inst
}

func estTerminee(statut string) bool {
	return statut == "TERMINE" || statut == models.StatutFicheTerminee
}

func estBloquee(statut string) bool {
	return statut == "BLOQUE" || statut == models.StatutFicheBloquee
}

// TauxConformite part des fiches terminées, en pourcentage ; 0 sans fiche
func (i *Instantane) TauxConformite() float64 {
	return taux(i.Terminees, i.TotalFiches)
}

// TropEnCours plus de 30% des fiches encore en cours
func (i *Instantane) TropEnCours() bool {
	return float64(i.EnCours) > float64(i.TotalFiches)*0.3
}

func taux(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return arrondi(float64(n) / float64(total) * 100)
}

func arrondi(v float64) float64 {
	return math.Round(v*100) / 100
}

// tauxCumule taux de conformité des fiches créées avant la limite, statut actuel
func (i *Instantane) tauxCumule(limite time.Time) (float64, bool) {
	var total, terminees int
	for _, f := range i.Fiches {
		if f.DateCreation.IsZero() || !f.DateCreation.Before(limite) {
			continue
		}
		total++
		if estTerminee(f.Statut) {
			terminees++
		}
	}
	return taux(terminees, total), total > 0
}
