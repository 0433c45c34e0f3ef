package queries

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/shared/models"
)

type NotificationRepository interface {
	Insert(ctx context.Context, n *models.Notification) error
	FindAll(ctx context.Context) ([]models.Notification, error)
	FindByID(ctx context.Context, id string) (*models.Notification, error)
	FindByUtilisateur(ctx context.Context, utilisateurID string, nonLuesSeulement bool) ([]models.Notification, error)
	UtilisateursAvecNonLues(ctx context.Context) ([]string, error)
	MarquerLues(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, id string) error
}

type MongoNotificationRepository struct {
	repo *mongodb.Repository[models.Notification]
}

func NewMongoNotificationRepository(client *mongodb.Client) *MongoNotificationRepository {
	return &MongoNotificationRepository{
		repo: mongodb.NewRepository[models.Notification](client, mongodb.CollectionNotifications),
	}
}

var parDateDesc = options.Find().SetSort(bson.D{{Key: "dateCreation", Value: -1}})

func (r *MongoNotificationRepository) Insert(ctx context.Context, n *models.Notification) error {
	id, err := r.repo.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	n.ID = id
	return nil
}

func (r *MongoNotificationRepository) FindAll(ctx context.Context) ([]models.Notification, error) {
	return r.repo.Find(ctx, bson.D{}, parDateDesc)
}

func (r *MongoNotificationRepository) FindByID(ctx context.Context, id string) (*models.Notification, error) {
	return r.repo.FindByID(ctx, id)
}

func (r *MongoNotificationRepository) FindByUtilisateur(ctx context.Context, utilisateurID string, nonLuesSeulement bool) ([]models.Notification, error) {
	filter := bson.M{"utilisateurId": utilisateurID}
	if nonLuesSeulement {
		filter["lu"] = false
	}
	return r.repo.Find(ctx, filter, parDateDesc)
}

func (r *MongoNotificationRepository) UtilisateursAvecNonLues(ctx context.Context) ([]string, error) {
	values, err := r.repo.Distinct(ctx, "utilisateurId", bson.M{"lu": false})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			ids = append(ids, s)
		}
	}
	return ids, nil
}

func (r *MongoNotificationRepository) MarquerLues(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return r.repo.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": ids}}, bson.M{"$set": bson.M{"lu": true}})
}

func (r *MongoNotificationRepository) Delete(ctx context.Context, id string) error {
	return r.repo.DeleteByID(ctx, id)
}
