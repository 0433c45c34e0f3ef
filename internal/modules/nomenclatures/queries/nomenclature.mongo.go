package queries

import (
	"context"
	"regexp"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/shared/models"
)

type NomenclatureRepository interface {
	FindAll(ctx context.Context) ([]models.Nomenclature, error)
	FindByID(ctx context.Context, id string) (*models.Nomenclature, error)
	FindByType(ctx context.Context, typ string) ([]models.Nomenclature, error)
	Types(ctx context.Context) ([]string, error)
	// ExisteCode comparaison insensible à la casse ; exclureID ignore l'enregistrement courant
	ExisteCode(ctx context.Context, typ, code, exclureID string) (bool, error)
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, n *models.Nomenclature) error
	Replace(ctx context.Context, n *models.Nomenclature) error
	Delete(ctx context.Context, id string) error
}

type MongoNomenclatureRepository struct {
	repo *mongodb.Repository[models.Nomenclature]
}

func NewMongoNomenclatureRepository(client *mongodb.Client) *MongoNomenclatureRepository {
	return &MongoNomenclatureRepository{
		repo: mongodb.NewRepository[models.Nomenclature](client, mongodb.CollectionNomenclatures),
	}
}

func (r *MongoNomenclatureRepository) FindAll(ctx context.Context) ([]models.Nomenclature, error) {
	return r.repo.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "type", Value: 1}, {Key: "ordre", Value: 1}}))
}

func (r *MongoNomenclatureRepository) FindByID(ctx context.Context, id string) (*models.Nomenclature, error) {
	return r.repo.FindByID(ctx, id)
}

func (r *MongoNomenclatureRepository) FindByType(ctx context.Context, typ string) ([]models.Nomenclature, error) {
	return r.repo.Find(ctx, bson.M{"type": typ}, options.Find().SetSort(bson.D{{Key: "ordre", Value: 1}, {Key: "code", Value: 1}}))
}

func (r *MongoNomenclatureRepository) Types(ctx context.Context) ([]string, error) {
	values, err := r.repo.Distinct(ctx, "type", bson.D{})
	if err != nil {
		return nil, err
	}
	types := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			types = append(types, s)
		}
	}
	sort.Strings(types)
	return types, nil
}

func (r *MongoNomenclatureRepository) ExisteCode(ctx context.Context, typ, code, exclureID string) (bool, error) {
	filter := bson.M{
		"type": typ,
		"code": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(code) + "$", Options: "i"},
	}
	if exclureID != "" {
		oid, err := mongodb.ObjectIDFromHex(exclureID)
		if err != nil {
			return false, err
		}
		filter["_id"] = bson.M{"$ne": oid}
	}
	n, err := r.repo.Count(ctx, filter)
	return n > 0, err
}

func (r *MongoNomenclatureRepository) Count(ctx context.Context) (int64, error) {
	return r.repo.Count(ctx, bson.D{})
}

func (r *MongoNomenclatureRepository) Insert(ctx context.Context, n *models.Nomenclature) error {
	id, err := r.repo.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	n.ID = id
	return nil
}

func (r *MongoNomenclatureRepository) Replace(ctx context.Context, n *models.Nomenclature) error {
	return r.repo.ReplaceByID(ctx, n.ID.Hex(), n)
}

func (r *MongoNomenclatureRepository) Delete(ctx context.Context, id string) error {
	return r.repo.DeleteByID(ctx, id)
}
