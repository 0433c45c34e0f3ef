package queries

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/shared/models"
)

// Filter critères combinables ; un champ vide est ignoré. Fin est exclusive.
type Filter struct {
	Action        string
	Entite        string
	EntiteID      string
	UtilisateurID string
	Debut         *time.Time
	Fin           *time.Time
}

func (f Filter) toBSON() bson.M {
	q := bson.M{}
	if f.Action != "" {
		q["action"] = f.Action
	}
	if f.Entite != "" {
		q["entite"] = f.Entite
	}
	if f.EntiteID != "" {
		q["entiteId"] = f.EntiteID
	}
	if f.UtilisateurID != "" {
		q["utilisateurId"] = f.UtilisateurID
	}
	if f.Debut != nil || f.Fin != nil {
		rng := bson.M{}
		if f.Debut != nil {
			rng["$gte"] = *f.Debut
		}
		if f.Fin != nil {
			rng["$lt"] = *f.Fin
		}
		q["dateAction"] = rng
	}
	return q
}

type HistoriqueRepository interface {
	Insert(ctx context.Context, h *models.HistoriqueAction) error
	Find(ctx context.Context, f Filter) ([]models.HistoriqueAction, error)
	Count(ctx context.Context, f Filter) (int64, error)
}

type MongoHistoriqueRepository struct {
	repo *mongodb.Repository[models.HistoriqueAction]
}

func NewMongoHistoriqueRepository(client *mongodb.Client) *MongoHistoriqueRepository {
	return &MongoHistoriqueRepository{
		repo: mongodb.NewRepository[models.HistoriqueAction](client, mongodb.CollectionHistorique),
	}
}

func (r *MongoHistoriqueRepository) Insert(ctx context.Context, h *models.HistoriqueAction) error {
	id, err := r.repo.InsertOne(ctx, h)
	if err != nil {
		return err
	}
	h.ID = id
	return nil
}

// Find du plus récent au plus ancien
func (r *MongoHistoriqueRepository) Find(ctx context.Context, f Filter) ([]models.HistoriqueAction, error) {
	return r.repo.Find(ctx, f.toBSON(), options.Find().SetSort(bson.D{{Key: "dateAction", Value: -1}}))
}

func (r *MongoHistoriqueRepository) Count(ctx context.Context, f Filter) (int64, error) {
	return r.repo.Count(ctx, f.toBSON())
}
