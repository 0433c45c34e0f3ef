package queries

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/shared/models"
)

type AttachmentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Attachment, error)
	FindByEntity(ctx context.Context, entityType, entityID string) ([]models.Attachment, error)
	Insert(ctx context.Context, a *models.Attachment) error
	Delete(ctx context.Context, id string) error
	DeleteByEntity(ctx context.Context, entityType, entityID string) (int64, error)
}

type MongoAttachmentRepository struct {
	repo *mongodb.Repository[models.Attachment]
}

func NewMongoAttachmentRepository(client *mongodb.Client) *MongoAttachmentRepository {
	return &MongoAttachmentRepository{
		repo: mongodb.NewRepository[models.Attachment](client, mongodb.CollectionAttachments),
	}
}

func entityFilter(entityType, entityID string) bson.M {
	return bson.M{"entityType": entityType, "entityId": entityID}
}

func (r *MongoAttachmentRepository) FindByID(ctx context.Context, id string) (*models.Attachment, error) {
	return r.repo.FindByID(ctx, id)
}

func (r *MongoAttachmentRepository) FindByEntity(ctx context.Context, entityType, entityID string) ([]models.Attachment, error) {
	return r.repo.Find(ctx, entityFilter(entityType, entityID), options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}}))
}

func (r *MongoAttachmentRepository) Insert(ctx context.Context, a *models.Attachment) error {
	id, err := r.repo.InsertOne(ctx, a)
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r *MongoAttachmentRepository) Delete(ctx context.Context, id string) error {
	return r.repo.DeleteByID(ctx, id)
}

func (r *MongoAttachmentRepository) DeleteByEntity(ctx context.Context, entityType, entityID string) (int64, error) {
	return r.repo.DeleteMany(ctx, entityFilter(entityType, entityID))
}
