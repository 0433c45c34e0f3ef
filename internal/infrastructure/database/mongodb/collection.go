package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Noms des collections
const (
	CollectionFichesQualite = "fiches_qualite"
	CollectionFichesSuivi   = "fiches_suivi"
	CollectionFichesProjet  = "fiches_projet"
	CollectionFormulaires   = "formulaires_obligatoires"
	CollectionUtilisateurs  = "utilisateurs"
	CollectionNomenclatures = "nomenclatures"
	CollectionHistorique    = "historique_actions"
	CollectionNotifications = "notifications"
	CollectionTaches        = "taches"
	CollectionAttachments   = "attachments"
)

type CollectionManager struct {
	client *Client
}

func NewCollectionManager(client *Client) *CollectionManager {
	return &CollectionManager{client: client}
}

// IndexDefinitions index requis par les requêtes des modules
func IndexDefinitions() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		CollectionUtilisateurs: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		CollectionNomenclatures: {
			{Keys: bson.D{{Key: "type", Value: 1}, {Key: "code", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_type_code")},
			{Keys: bson.D{{Key: "type", Value: 1}, {Key: "ordre", Value: 1}}},
		},
		CollectionFichesSuivi: {
			{Keys: bson.D{{Key: "ficheId", Value: 1}}},
			{Keys: bson.D{{Key: "dateSuivi", Value: -1}}},
		},
		CollectionFormulaires: {
			{Keys: bson.D{{Key: "responsableId", Value: 1}}},
			{Keys: bson.D{{Key: "projetId", Value: 1}}},
			{Keys: bson.D{{Key: "statut", Value: 1}, {Key: "dateEcheance", Value: 1}}},
		},
		CollectionHistorique: {
			{Keys: bson.D{{Key: "dateAction", Value: -1}}},
			{Keys: bson.D{{Key: "utilisateurId", Value: 1}, {Key: "dateAction", Value: -1}}},
			{Keys: bson.D{{Key: "entite", Value: 1}, {Key: "entiteId", Value: 1}}},
		},
		CollectionNotifications: {
			{Keys: bson.D{{Key: "utilisateurId", Value: 1}, {Key: "lu", Value: 1}}},
		},
		CollectionTaches: {
			{Keys: bson.D{{Key: "creePar", Value: 1}}},
			{Keys: bson.D{{Key: "projetId", Value: 1}}},
		},
		CollectionAttachments: {
			{Keys: bson.D{{Key: "entityType", Value: 1}, {Key: "entityId", Value: 1}}},
		},
	}
}

// EnsureIndexes crée les index manquants, collection par collection
func (cm *CollectionManager) EnsureIndexes(ctx context.Context) (int, error) {
	created := 0
	for collection, models := range IndexDefinitions() {
		if err := cm.client.CreateIndexes(ctx, collection, models); err != nil {
			return created, fmt.Errorf("création des index %s échouée: %w", collection, err)
		}
		created += len(models)
	}
	return created, nil
}

func (cm *CollectionManager) ListCollections(ctx context.Context) ([]string, error) {
	return cm.client.ListCollectionNames(ctx)
}
