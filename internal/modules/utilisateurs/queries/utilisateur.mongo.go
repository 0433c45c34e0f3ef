package queries

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/shared/models"
)

// UtilisateurRepository accès à la collection utilisateurs
type UtilisateurRepository interface {
	FindAll(ctx context.Context) ([]models.Utilisateur, error)
	FindByID(ctx context.Context, id string) (*models.Utilisateur, error)
	FindByEmail(ctx context.Context, email string) (*models.Utilisateur, error)
	Insert(ctx context.Context, u *models.Utilisateur) error
	Replace(ctx context.Context, u *models.Utilisateur) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type MongoUtilisateurRepository struct {
	repo *mongodb.Repository[models.Utilisateur]
}

func NewMongoUtilisateurRepository(client *mongodb.Client) *MongoUtilisateurRepository {
	return &MongoUtilisateurRepository{
		repo: mongodb.NewRepository[models.Utilisateur](client, mongodb.CollectionUtilisateurs),
	}
}

func (r *MongoUtilisateurRepository) FindAll(ctx context.Context) ([]models.Utilisateur, error) {
	return r.repo.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "nom", Value: 1}}))
}

func (r *MongoUtilisateurRepository) FindByID(ctx context.Context, id string) (*models.Utilisateur, error) {
	return r.repo.FindByID(ctx, id)
}

// FindByEmail comparaison sur l'email normalisé (minuscules, sans espaces)
func (r *MongoUtilisateurRepository) FindByEmail(ctx context.Context, email string) (*models.Utilisateur, error) {
	return r.repo.FindOne(ctx, bson.M{"email": NormalizeEmail(email)})
}

func (r *MongoUtilisateurRepository) Insert(ctx context.Context, u *models.Utilisateur) error {
	id, err := r.repo.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (r *MongoUtilisateurRepository) Replace(ctx context.Context, u *models.Utilisateur) error {
	return r.repo.ReplaceByID(ctx, u.ID.Hex(), u)
}

func (r *MongoUtilisateurRepository) Delete(ctx context.Context, id string) error {
	return r.repo.DeleteByID(ctx, id)
}

func (r *MongoUtilisateurRepository) Count(ctx context.Context) (int64, error) {
	return r.repo.Count(ctx, nil)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
