package queries

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/shared/models"
)

type FicheRepository interface {
	FindAll(ctx context.Context) ([]models.FicheQualite, error)
	FindByID(ctx context.Context, id string) (*models.FicheQualite, error)
	FindByResponsable(ctx context.Context, responsable string) ([]models.FicheQualite, error)
	FindByStatut(ctx context.Context, statut string) ([]models.FicheQualite, error)
	Insert(ctx context.Context, f *models.FicheQualite) error
	Replace(ctx context.Context, f *models.FicheQualite) error
	Delete(ctx context.Context, id string) error
}

type MongoFicheRepository struct {
	repo *mongodb.Repository[models.FicheQualite]
}

func NewMongoFicheRepository(client *mongodb.Client) *MongoFicheRepository {
	return &MongoFicheRepository{
		repo: mongodb.NewRepository[models.FicheQualite](client, mongodb.CollectionFichesQualite),
	}
}

var parDateCreation = options.Find().SetSort(bson.D{{Key: "dateCreation", Value: -1}})

func (r *MongoFicheRepository) FindAll(ctx context.Context) ([]models.FicheQualite, error) {
	return r.repo.Find(ctx, bson.D{}, parDateCreation)
}

func (r *MongoFicheRepository) FindByID(ctx context.Context, id string) (*models.FicheQualite, error) {
	return r.repo.FindByID(ctx, id)
}

func (r *MongoFicheRepository) FindByResponsable(ctx context.Context, responsable string) ([]models.FicheQualite, error) {
	return r.repo.Find(ctx, bson.M{"responsable": responsable}, parDateCreation)
}

func (r *MongoFicheRepository) FindByStatut(ctx context.Context, statut string) ([]models.FicheQualite, error) {
	return r.repo.Find(ctx, bson.M{"statut": statut}, parDateCreation)
}

func (r *MongoFicheRepository) Insert(ctx context.Context, f *models.FicheQualite) error {
	id, err := r.repo.InsertOne(ctx, f)
	if err != nil {
		return err
	}
	f.ID = id
	return nil
}

func (r *MongoFicheRepository) Replace(ctx context.Context, f *models.FicheQualite) error {
	return r.repo.ReplaceByID(ctx, f.ID.Hex(), f)
}

func (r *MongoFicheRepository) Delete(ctx context.Context, id string) error {
	return r.repo.DeleteByID(ctx, id)
}
