package queries

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/shared/models"
)

type TacheRepository interface {
	FindAll(ctx context.Context) ([]models.Tache, error)
	FindByID(ctx context.Context, id string) (*models.Tache, error)
	FindByCreePar(ctx context.Context, userID string) ([]models.Tache, error)
	FindByProjet(ctx context.Context, projetID string) ([]models.Tache, error)
	Insert(ctx context.Context, t *models.Tache) error
	Replace(ctx context.Context, t *models.Tache) error
	MarquerEnRetard(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, id string) error
}

type MongoTacheRepository struct {
	repo *mongodb.Repository[models.Tache]
}

func NewMongoTacheRepository(client *mongodb.Client) *MongoTacheRepository {
	return &MongoTacheRepository{
		repo: mongodb.NewRepository[models.Tache](client, mongodb.CollectionTaches),
	}
}

func parEcheance() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "dateEcheance", Value: 1}, {Key: "dateCreation", Value: -1}})
}

func (r *MongoTacheRepository) FindAll(ctx context.Context) ([]models.Tache, error) {
	return r.repo.Find(ctx, bson.D{}, parEcheance())
}

func (r *MongoTacheRepository) FindByID(ctx context.Context, id string) (*models.Tache, error) {
	return r.repo.FindByID(ctx, id)
}

func (r *MongoTacheRepository) FindByCreePar(ctx context.Context, userID string) ([]models.Tache, error) {
	return r.repo.Find(ctx, bson.M{"creePar": userID}, parEcheance())
}

func (r *MongoTacheRepository) FindByProjet(ctx context.Context, projetID string) ([]models.Tache, error) {
	return r.repo.Find(ctx, bson.M{"projetId": projetID}, parEcheance())
}

func (r *MongoTacheRepository) Insert(ctx context.Context, t *models.Tache) error {
	id, err := r.repo.InsertOne(ctx, t)
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

func (r *MongoTacheRepository) Replace(ctx context.Context, t *models.Tache) error {
	return r.repo.ReplaceByID(ctx, t.ID.Hex(), t)
}

// MarquerEnRetard une seule écriture pour toutes les tâches détectées en retard
func (r *MongoTacheRepository) MarquerEnRetard(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return r.repo.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"statut": models.TacheEnRetard}},
	)
}

func (r *MongoTacheRepository) Delete(ctx context.Context, id string) error {
	return r.repo.DeleteByID(ctx, id)
}
