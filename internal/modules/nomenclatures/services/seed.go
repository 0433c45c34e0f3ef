package services

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"qualite-pro-core/internal/shared/models"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type groupeDefaut struct {
	Type    string `yaml:"type"`
	Valeurs []struct {
		Code        string `yaml:"code"`
		Libelle     string `yaml:"libelle"`
		Description string `yaml:"description"`
	} `yaml:"valeurs"`
}

// Defaults nomenclatures embarquées, ordre = position dans le type
func Defaults() ([]models.Nomenclature, error) {
	var groupes []groupeDefaut
	if err := yaml.Unmarshal(defaultsYAML, &groupes); err != nil {
		return nil, fmt.Errorf("lecture des nomenclatures par défaut: %w", err)
	}

	var out []models.Nomenclature
	for _, g := range groupes {
		for i, v := range g.Valeurs {
			out = append(out, models.Nomenclature{
				Type:        strings.ToUpper(strings.TrimSpace(g.Type)),
				Code:        strings.ToUpper(strings.TrimSpace(v.Code)),
				Libelle:     v.Libelle,
				Description: v.Description,
				Ordre:       i + 1,
				Actif:       true,
			})
		}
	}
	return out, nil
}

// SeedDefaults insère les valeurs par défaut si la collection est vide ; retourne le nombre inséré
func (s *NomenclatureService) SeedDefaults(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	defaults, err := Defaults()
	if err != nil {
		return 0, err
	}

	now := s.now()
	for i := range defaults {
		defaults[i].DateCreation = now
		if err := s.repo.Insert(ctx, &defaults[i]); err != nil {
			return i, fmt.Errorf("insertion %s/%s: %w", defaults[i].Type, defaults[i].Code, err)
		}
	}

	// collection vide : tout ce que Redis contient encore vient d'une base précédente
	if err := s.cache.Vider(ctx); err != nil {
		s.log.Warn("vidage du cache échoué", zap.Error(err))
	}
	return len(defaults), nil
}
