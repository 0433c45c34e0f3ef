package queries

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/shared/models"
)

// Champs filtrables par égalité
const (
	ChampResponsable = "responsableId"
	ChampProjet      = "projetId"
	ChampStatut      = "statut"
	ChampPriorite    = "priorite"
)

type FormulaireRepository interface {
	FindAll(ctx context.Context) ([]models.FormulaireObligatoire, error)
	FindByID(ctx context.Context, id string) (*models.FormulaireObligatoire, error)
	FindBy(ctx context.Context, champ, valeur string) ([]models.FormulaireObligatoire, error)
	FindRetards(ctx context.Context, now time.Time) ([]models.FormulaireObligatoire, error)
	FindARetarder(ctx context.Context, now time.Time) ([]models.FormulaireObligatoire, error)
	FindEcheancesEntre(ctx context.Context, debut, fin time.Time, statut string) ([]models.FormulaireObligatoire, error)
	CountRetards(ctx context.Context, now time.Time) (int64, error)
	CountBy(ctx context.Context, champ, valeur string) (int64, error)
	Insert(ctx context.Context, f *models.FormulaireObligatoire) error
	Replace(ctx context.Context, f *models.FormulaireObligatoire) error
	Delete(ctx context.Context, id string) error
}

type MongoFormulaireRepository struct {
	repo *mongodb.Repository[models.FormulaireObligatoire]
}

func NewMongoFormulaireRepository(client *mongodb.Client) *MongoFormulaireRepository {
	return &MongoFormulaireRepository{
		repo: mongodb.NewRepository[models.FormulaireObligatoire](client, mongodb.CollectionFormulaires),
	}
}

var parEcheance = options.Find().SetSort(bson.D{{Key: "dateEcheance", Value: 1}})

// retardsFilter échéance strictement passée, formulaire non soumis
func retardsFilter(now time.Time) bson.M {
	return bson.M{
		"dateEcheance": bson.M{"$lt": now},
		"statut":       bson.M{"$ne": models.FormulaireSoumis},
	}
}

// aRetarderFilter formulaires dont le statut doit encore basculer EN_RETARD
func aRetarderFilter(now time.Time) bson.M {
	return bson.M{
		"dateEcheance": bson.M{"$lt": now},
		"statut": bson.M{"$nin": []string{
			models.FormulaireSoumis,
			models.FormulaireEnRetard,
			models.FormulaireAnnule,
		}},
	}
}

func (r *MongoFormulaireRepository) FindAll(ctx context.Context) ([]models.FormulaireObligatoire, error) {
	return r.repo.Find(ctx, bson.D{})
}

func (r *MongoFormulaireRepository) FindByID(ctx context.Context, id string) (*models.FormulaireObligatoire, error) {
	return r.repo.FindByID(ctx, id)
}

func (r *MongoFormulaireRepository) FindBy(ctx context.Context, champ, valeur string) ([]models.FormulaireObligatoire, error) {
	return r.repo.Find(ctx, bson.M{champ: valeur}, parEcheance)
}

func (r *MongoFormulaireRepository) FindRetards(ctx context.Context, now time.Time) ([]models.FormulaireObligatoire, error) {
	return r.repo.Find(ctx, retardsFilter(now), parEcheance)
}

func (r *MongoFormulaireRepository) FindARetarder(ctx context.Context, now time.Time) ([]models.FormulaireObligatoire, error) {
	return r.repo.Find(ctx, aRetarderFilter(now), parEcheance)
}

func (r *MongoFormulaireRepository) FindEcheancesEntre(ctx context.Context, debut, fin time.Time, statut string) ([]models.FormulaireObligatoire, error) {
	filter := bson.M{
		"dateEcheance": bson.M{"$gte": debut, "$lte": fin},
		"statut":       statut,
	}
	return r.repo.Find(ctx, filter, parEcheance)
}

func (r *MongoFormulaireRepository) CountRetards(ctx context.Context, now time.Time) (int64, error) {
	return r.repo.Count(ctx, retardsFilter(now))
}

func (r *MongoFormulaireRepository) CountBy(ctx context.Context, champ, valeur string) (int64, error) {
	return r.repo.Count(ctx, bson.M{champ: valeur})
}

func (r *MongoFormulaireRepository) Insert(ctx context.Context, f *models.FormulaireObligatoire) error {
	id, err := r.repo.InsertOne(ctx, f)
	if err != nil {
		return err
	}
	f.ID = id
	return nil
}

func (r *MongoFormulaireRepository) Replace(ctx context.Context, f *models.FormulaireObligatoire) error {
	return r.repo.ReplaceByID(ctx, f.ID.Hex(), f)
}

func (r *MongoFormulaireRepository) Delete(ctx context.Context, id string) error {
	return r.repo.DeleteByID(ctx, id)
}
