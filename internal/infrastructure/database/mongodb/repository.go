package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound aucun document ne correspond (un identifiant mal formé compris)
var ErrNotFound = errors.New("document introuvable")

// Repository accès typé à une collection
type Repository[T any] struct {
	coll *mongo.Collection
}

func NewRepository[T any](client *Client, collection string) *Repository[T] {
	return &Repository[T]{coll: client.Collection(collection)}
}

func (r *Repository[T]) Collection() *mongo.Collection {
	return r.coll
}

// ObjectIDFromHex convertit un identifiant hexadécimal, ErrNotFound si invalide
func ObjectIDFromHex(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

// Find retourne toujours une slice non nil
func (r *Repository[T]) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	}
	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("lecture %s échouée: %w", r.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("décodage %s échoué: %w", r.coll.Name(), err)
	}
	return results, nil
}

func (r *Repository[T]) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*T, error) {
	var doc T
	err := r.coll.FindOne(ctx, filter, opts...).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture %s échouée: %w", r.coll.Name(), err)
	}
	return &doc, nil
}

func (r *Repository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	oid, err := ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return r.FindOne(ctx, bson.M{"_id": oid})
}

// InsertOne retourne l'identifiant généré par le serveur
func (r *Repository[T]) InsertOne(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insertion %s échouée: %w", r.coll.Name(), err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("identifiant inattendu pour %s: %v", r.coll.Name(), res.InsertedID)
	}
	return oid, nil
}

func (r *Repository[T]) ReplaceByID(ctx context.Context, id string, doc *T) error {
	oid, err := ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("mise à jour %s échouée: %w", r.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository[T]) UpdateMany(ctx context.Context, filter, update interface{}) (int64, error) {
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("mise à jour %s échouée: %w", r.coll.Name(), err)
	}
	return res.ModifiedCount, nil
}

func (r *Repository[T]) DeleteByID(ctx context.Context, id string) error {
	oid, err := ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("suppression %s échouée: %w", r.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("suppression %s échouée: %w", r.coll.Name(), err)
	}
	return res.DeletedCount, nil
}

func (r *Repository[T]) Count(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("comptage %s échoué: %w", r.coll.Name(), err)
	}
	return n, nil
}

func (r *Repository[T]) Distinct(ctx context.Context, field string, filter interface{}) ([]interface{}, error) {
	if filter == nil {
		filter = bson.D{}
	}
	values, err := r.coll.Distinct(ctx, field, filter)
	if err != nil {
		return nil, fmt.Errorf("distinct %s.%s échoué: %w", r.coll.Name(), field, err)
	}
	return values, nil
}
