package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/apperrors"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/models"
)

type MediaRepository interface {
	Insert(ctx context.Context, m *models.Media) error
	GetByID(ctx context.Context, id string) (*models.Media, error)
	Delete(ctx context.Context, id string) error
}

type mongoMediaRepo struct {
	col *mongo.Collection
}

func NewMediaRepo(col *mongo.Collection) MediaRepository {
	return &mongoMediaRepo{col: col}
}

func (r *mongoMediaRepo) Insert(ctx context.Context, m *models.Media) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, m)
	return err
}

func (r *mongoMediaRepo) GetByID(ctx context.Context, id string) (*models.Media, error) {
	var m models.Media
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *mongoMediaRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
