package queries

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/shared/models"
)

type SuiviRepository interface {
	FindAll(ctx context.Context) ([]models.FicheSuivi, error)
	FindByID(ctx context.Context, id string) (*models.FicheSuivi, error)
	FindByFiche(ctx context.Context, ficheID string) ([]models.FicheSuivi, error)
	FindByAuteur(ctx context.Context, utilisateurID string) ([]models.FicheSuivi, error)
	Insert(ctx context.Context, s *models.FicheSuivi) error
	Replace(ctx context.Context, s *models.FicheSuivi) error
	Delete(ctx context.Context, id string) error
}

type MongoSuiviRepository struct {
	repo *mongodb.Repository[models.FicheSuivi]
}

func NewMongoSuiviRepository(client *mongodb.Client) *MongoSuiviRepository {
	return &MongoSuiviRepository{
		repo: mongodb.NewRepository[models.FicheSuivi](client, mongodb.CollectionFichesSuivi),
	}
}

var parDateSuivi = options.Find().SetSort(bson.D{{Key: "dateSuivi", Value: -1}})

func (r *MongoSuiviRepository) FindAll(ctx context.Context) ([]models.FicheSuivi, error) {
	return r.repo.Find(ctx, bson.D{}, parDateSuivi)
}

func (r *MongoSuiviRepository) FindByID(ctx context.Context, id string) (*models.FicheSuivi, error) {
	return r.repo.FindByID(ctx, id)
}

func (r *MongoSuiviRepository) FindByFiche(ctx context.Context, ficheID string) ([]models.FicheSuivi, error) {
	return r.repo.Find(ctx, bson.M{"ficheId": ficheID}, parDateSuivi)
}

func (r *MongoSuiviRepository) FindByAuteur(ctx context.Context, utilisateurID string) ([]models.FicheSuivi, error) {
	return r.repo.Find(ctx, bson.M{"ajoutePar": utilisateurID}, parDateSuivi)
}

func (r *MongoSuiviRepository) Insert(ctx context.Context, s *models.FicheSuivi) error {
	id, err := r.repo.InsertOne(ctx, s)
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

func (r *MongoSuiviRepository) Replace(ctx context.Context, s *models.FicheSuivi) error {
	return r.repo.ReplaceByID(ctx, s.ID.Hex(), s)
}

func (r *MongoSuiviRepository) Delete(ctx context.Context, id string) error {
	return r.repo.DeleteByID(ctx, id)
}
