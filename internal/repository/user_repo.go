package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/apperrors"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/models"
)

type UserRepository interface {
	Insert(ctx context.Context, u *models.User) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAvailableDoctors(ctx context.Context) ([]*models.User, error)
	SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) (*models.User, error)
	SetLanguage(ctx context.Context, id primitive.ObjectID, language string) (*models.User, error)
	SetLastSeen(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

type mongoUserRepo struct {
	col *mongo.Collection
}

func NewUserRepo(col *mongo.Collection) UserRepository {
	idx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_idx"),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "is_available", Value: 1}},
			Options: options.Index().SetName("role_available_idx"),
		},
	}
	_, _ = col.Indexes().CreateMany(context.Background(), idx)
	return &mongoUserRepo{col: col}
}

func (r *mongoUserRepo) Insert(ctx context.Context, u *models.User) (*models.User, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return nil, err
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return u, nil
}

func (r *mongoUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	out := make(map[primitive.ObjectID]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out[u.ID] = &u
	}
	return out, cur.Err()
}

func (r *mongoUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepo) FindAvailableDoctors(ctx context.Context) ([]*models.User, error) {
	cur, err := r.col.Find(ctx, bson.M{"role": models.RoleDoctor, "is_available": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*models.User
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	return out, cur.Err()
}

func (r *mongoUserRepo) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) (*models.User, error) {
	return r.findAndUpdate(ctx, id, bson.M{"$set": bson.M{"is_available": available}})
}

func (r *mongoUserRepo) SetLanguage(ctx context.Context, id primitive.ObjectID, language string) (*models.User, error) {
	return r.findAndUpdate(ctx, id, bson.M{"$set": bson.M{"language": language}})
}

func (r *mongoUserRepo) SetLastSeen(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_seen": at.UTC()}})
	return err
}

func (r *mongoUserRepo) findAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
