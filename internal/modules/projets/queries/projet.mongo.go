package queries

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/shared/models"
)

type ProjetRepository interface {
	FindAll(ctx context.Context) ([]models.FicheProjet, error)
	FindByID(ctx context.Context, id string) (*models.FicheProjet, error)
	Insert(ctx context.Context, p *models.FicheProjet) error
	Replace(ctx context.Context, p *models.FicheProjet) error
	Delete(ctx context.Context, id string) error
}

type MongoProjetRepository struct {
	repo *mongodb.Repository[models.FicheProjet]
}

func NewMongoProjetRepository(client *mongodb.Client) *MongoProjetRepository {
	return &MongoProjetRepository{
		repo: mongodb.NewRepository[models.FicheProjet](client, mongodb.CollectionFichesProjet),
	}
}

func (r *MongoProjetRepository) FindAll(ctx context.Context) ([]models.FicheProjet, error) {
	return r.repo.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "nom", Value: 1}}))
}

func (r *MongoProjetRepository) FindByID(ctx context.Context, id string) (*models.FicheProjet, error) {
	return r.repo.FindByID(ctx, id)
}

func (r *MongoProjetRepository) Insert(ctx context.Context, p *models.FicheProjet) error {
	id, err := r.repo.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r *MongoProjetRepository) Replace(ctx context.Context, p *models.FicheProjet) error {
	return r.repo.ReplaceByID(ctx, p.ID.Hex(), p)
}

func (r *MongoProjetRepository) Delete(ctx context.Context, id string) error {
	return r.repo.DeleteByID(ctx, id)
}
