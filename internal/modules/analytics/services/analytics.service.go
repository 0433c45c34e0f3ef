package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"qualite-pro-core/internal/modules/analytics/dto"
)

// Seuils des règles d'analyse
const (
	SeuilCritique    = 70.0
	SeuilObjectif    = 85.0
	SeuilPrediction  = 80.0
	VolumeSuggestion = 10
	VolumeTendance   = 20
	EnCoursRapide    = 5
)

// AnalyticsService règles déterministes sur les agrégats de fiches ; aucun modèle appris
type AnalyticsService struct {
	sources *Sources
	log     *zap.Logger
	now     func() time.Time
}

func NewAnalyticsService(sources *Sources, log *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		sources: sources,
		log:     log.Named("analytics"),
		now:     time.Now,
	}
}

func (s *AnalyticsService) Risques(ctx context.Context) (*dto.AnalyseRisques, error) {
	inst, err := s.sources.Charger(ctx)
	if err != nil {
		return nil, err
	}
	r := analyserRisques(inst)
	return &r, nil
}

func (s *AnalyticsService) Recommandations(ctx context.Context) (*dto.AnalyseRecommandations, error) {
	inst, err := s.sources.Charger(ctx)
	if err != nil {
		return nil, err
	}
	r := genererRecommandations(inst)
	return &r, nil
}

func (s *AnalyticsService) Tendances(ctx context.Context) (*dto.AnalyseTendances, error) {
	inst, err := s.sources.Charger(ctx)
	if err != nil {
		return nil, err
	}
	r := analyserTendances(inst)
	return &r, nil
}

func (s *AnalyticsService) Optimisations(ctx context.Context) (*dto.AnalyseOptimisations, error) {
	inst, err := s.sources.Charger(ctx)
	if err != nil {
		return nil, err
	}
	r := optimiserProcessus(inst)
	return &r, nil
}

func (s *AnalyticsService) Rapport(ctx context.Context) (*dto.RapportIA, error) {
	inst, err := s.sources.Charger(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.RapportIA{
		DateGeneration: s.now(),
		Resume: dto.Resume{
			TotalFiches:    inst.TotalFiches,
			TotalSuivis:    inst.TotalSuivis,
			TotalProjets:   inst.TotalProjets,
			TauxConformite: inst.TauxConformite(),
		},
		Alertes:         genererAlertes(inst),
		Predictions:     genererPredictions(inst),
		Recommandations: recommandationsRapides(inst),
	}, nil
}

// Dashboard les quatre analyses sur un même instantané
func (s *AnalyticsService) Dashboard(ctx context.Context) (*dto.Dashboard, error) {
	inst, err := s.sources.Charger(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.Dashboard{
		Risques:         analyserRisques(inst),
		Recommandations: genererRecommandations(inst),
		Tendances:       analyserTendances(inst),
		Optimisations:   optimiserProcessus(inst),
	}, nil
}

func analyserRisques(inst *Instantane) dto.AnalyseRisques {
	tauxConformite := inst.TauxConformite()
	predictions := []dto.Risque{}

	switch {
	case tauxConformite < SeuilCritique:
		predictions = append(predictions, dto.Risque{
			Niveau:      "CRITIQUE",
			Probabilite: 0.85,
			Description: "Taux de conformité très faible détecté",
			Recommandations: []string{
				"Réviser les processus qualité",
				"Former les équipes aux bonnes pratiques",
				"Mettre en place un suivi renforcé",
			},
			Impact: "Impact majeur sur la réputation et la conformité",
		})
	case tauxConformite < SeuilObjectif:
		predictions = append(predictions, dto.Risque{
			Niveau:      "ÉLEVÉ",
			Probabilite: 0.65,
			Description: "Taux de conformité en dessous des objectifs",
			Recommandations: []string{
				"Identifier les causes de non-conformité",
				"Renforcer les contrôles qualité",
				"Améliorer la communication",
			},
			Impact: "Impact modéré sur l'efficacité",
		})
	}

	if inst.TropEnCours() {
		predictions = append(predictions, dto.Risque{
			Niveau:      "ÉLEVÉ",
			Probabilite: 0.75,
			Description: "Trop de fiches en cours de traitement",
			Recommandations: []string{
				"Prioriser les fiches urgentes",
				"Allouer plus de ressources",
				"Optimiser les processus de traitement",
			},
			Impact: "Risque de retard généralisé",
		})
	}

	return dto.AnalyseRisques{
		Predictions:    predictions,
		TauxConformite: tauxConformite,
		FichesEnRetard: inst.EnCours,
	}
}

func genererRecommandations(inst *Instantane) dto.AnalyseRecommandations {
	tauxConformite := inst.TauxConformite()
	recommandations := []dto.Recommandation{}

	if tauxConformite < SeuilCritique {
		recommandations = append(recommandations, dto.Recommandation{
			Type:        "URGENT",
			Titre:       "Amélioration critique du taux de conformité",
			Description: "Le taux de conformité est très faible et nécessite une action immédiate",
			Priorite:    1,
			Actions: []string{
				"Audit complet des processus qualité",
				"Formation intensive des équipes",
				"Mise en place de contrôles renforcés",
				"Révision des procédures",
			},
			ImpactAttendu: "Amélioration de 20-30% du taux de conformité",
			DelaiEstime:   "2-3 semaines",
		})
	}

	if inst.TotalSuivis == 0 {
		recommandations = append(recommandations, dto.Recommandation{
			Type:        "IMPORTANT",
			Titre:       "Mise en place du suivi qualité",
			Description: "Aucune fiche de suivi n'existe, essentiel pour le contrôle qualité",
			Priorite:    2,
			Actions: []string{
				"Créer des fiches de suivi pour toutes les fiches qualité",
				"Former les équipes au suivi qualité",
				"Établir des points de contrôle réguliers",
			},
			ImpactAttendu: "Amélioration du contrôle et de la traçabilité",
			DelaiEstime:   "1-2 semaines",
		})
	}

	if inst.TotalFiches > VolumeSuggestion {
		recommandations = append(recommandations, dto.Recommandation{
			Type:        "SUGGESTION",
			Titre:       "Optimisation des processus qualité",
			Description: "Opportunité d'améliorer l'efficacité des processus",
			Priorite:    3,
			Actions: []string{
				"Automatiser les tâches répétitives",
				"Standardiser les procédures",
				"Mettre en place des indicateurs de performance",
			},
			ImpactAttendu: "Réduction de 15-25% du temps de traitement",
			DelaiEstime:   "3-4 semaines",
		})
	}

	return dto.AnalyseRecommandations{
		Recommandations: recommandations,
		TotalFiches:     inst.TotalFiches,
		TauxConformite:  tauxConformite,
	}
}

func analyserTendances(inst *Instantane) dto.AnalyseTendances {
	tauxConformite := inst.TauxConformite()

	conformite := dto.Tendance{Periode: "Ce mois", Valeur: tauxConformite}
	switch {
	case tauxConformite > SeuilObjectif:
		conformite.Tendance, conformite.Variation = "HAUSSE", 5.2
		conformite.Explication = "Amélioration continue des processus qualité"
	case tauxConformite < SeuilCritique:
		conformite.Tendance, conformite.Variation = "BAISSE", -8.5
		conformite.Explication = "Dégradation des performances qualité"
	default:
		conformite.Tendance, conformite.Variation = "STABLE", 0.3
		conformite.Explication = "Performance stable mais amélioration possible"
	}
	tendances := []dto.Tendance{conformite}

	if inst.TotalFiches > VolumeTendance {
		tendances = append(tendances, dto.Tendance{
			Periode:     "Ce mois",
			Tendance:    "HAUSSE",
			Valeur:      float64(inst.TotalFiches),
			Variation:   15.0,
			Explication: "Augmentation de l'activité qualité",
		})
	}

	return dto.AnalyseTendances{
		Tendances:      tendances,
		TotalFiches:    inst.TotalFiches,
		TauxConformite: tauxConformite,
	}
}

func optimiserProcessus(inst *Instantane) dto.AnalyseOptimisations {
	efficacite := inst.TauxConformite()
	optimisations := []dto.Optimisation{{
		Processus:          "Validation des fiches qualité",
		EfficaciteActuelle: efficacite,
		EfficaciteOptimale: 95.0,
		GainsPotentiels: []string{
			"Réduction de 30% du temps de validation",
			"Amélioration de 25% de la précision",
			"Réduction de 40% des erreurs",
		},
		ActionsOptimisation: []string{
			"Automatiser les contrôles de base",
			"Standardiser les critères de validation",
			"Former les validateurs aux nouvelles procédures",
			"Mettre en place un système de validation en cascade",
		},
		DelaiImplementation: "4-6 semaines",
	}}

	if inst.TotalSuivis > 0 {
		optimisations = append(optimisations, dto.Optimisation{
			Processus:          "Suivi qualité",
			EfficaciteActuelle: 75.0,
			EfficaciteOptimale: 90.0,
			GainsPotentiels: []string{
				"Amélioration de 20% de la traçabilité",
				"Réduction de 35% du temps de suivi",
				"Amélioration de 30% de la réactivité",
			},
			ActionsOptimisation: []string{
				"Mettre en place des alertes automatiques",
				"Créer des tableaux de bord temps réel",
				"Automatiser les rapports de suivi",
				"Former les pilotes qualité aux nouveaux outils",
			},
			DelaiImplementation: "3-4 semaines",
		})
	}

	return dto.AnalyseOptimisations{Optimisations: optimisations, EfficaciteActuelle: efficacite}
}

func genererAlertes(inst *Instantane) []dto.Alerte {
	alertes := []dto.Alerte{}
	tauxConformite := inst.TauxConformite()

	if tauxConformite < SeuilCritique {
		alertes = append(alertes, dto.Alerte{
			Niveau:  "CRITIQUE",
			Message: "Taux de conformité critique",
			Description: fmt.Sprintf("Le taux de conformité est de %.1f%%, en dessous du seuil de %.0f%%",
				tauxConformite, SeuilCritique),
		})
	}
	if inst.TropEnCours() {
		alertes = append(alertes, dto.Alerte{
			Niveau:      "ATTENTION",
			Message:     "Trop de fiches en cours",
			Description: fmt.Sprintf("%d fiches en cours de traitement", inst.EnCours),
		})
	}
	return alertes
}

func genererPredictions(inst *Instantane) []dto.Prediction {
	if inst.TauxConformite() >= SeuilPrediction {
		return []dto.Prediction{}
	}
	return []dto.Prediction{{
		Type:        "RISQUE",
		Description: "Risque de dégradation du taux de conformité dans les 30 prochains jours",
		Probabilite: 0.75,
		Actions:     []string{"Renforcer les contrôles", "Former les équipes", "Réviser les processus"},
	}}
}

func recommandationsRapides(inst *Instantane) []dto.RecommandationRapide {
	out := []dto.RecommandationRapide{}
	if inst.TotalSuivis == 0 {
		out = append(out, dto.RecommandationRapide{
			Priorite: "HAUTE",
			Action:   "Créer des fiches de suivi",
			Raison:   "Aucune fiche de suivi n'existe",
		})
	}
	if inst.EnCours > EnCoursRapide {
		out = append(out, dto.RecommandationRapide{
			Priorite: "MOYENNE",
			Action:   "Prioriser les fiches en cours",
			Raison:   fmt.Sprintf("%d fiches en cours nécessitent un suivi", inst.EnCours),
		})
	}
	return out
}
