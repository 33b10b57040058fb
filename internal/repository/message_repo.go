package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/models"
)

type MessageRepository interface {
	Insert(ctx context.Context, m *models.Message) (*models.Message, error)
	FindConversation(ctx context.Context, a, b primitive.ObjectID) ([]*models.Message, error)
	FindByParticipant(ctx context.Context, user primitive.ObjectID) ([]*models.Message, error)
	MarkRead(ctx context.Context, sender, receiver primitive.ObjectID) (int64, error)
}

type mongoMessageRepo struct {
	col *mongo.Collection
}

func NewMessageRepo(col *mongo.Collection) MessageRepository {
	idx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sender", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("sender_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "receiver", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("receiver_created_idx"),
		},
	}
	_, _ = col.Indexes().CreateMany(context.Background(), idx)
	return &mongoMessageRepo{col: col}
}

func (r *mongoMessageRepo) Insert(ctx context.Context, m *models.Message) (*models.Message, error) {
	m.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, m)
	if err != nil {
		return nil, err
	}
	m.ID = res.InsertedID.(primitive.ObjectID)
	return m, nil
}

// FindConversation returns every message between a and b, oldest first.
func (r *mongoMessageRepo) FindConversation(ctx context.Context, a, b primitive.ObjectID) ([]*models.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender": a, "receiver": b},
		bson.M{"sender": b, "receiver": a},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return r.find(ctx, filter, opts)
}

// FindByParticipant returns every message where user is sender or receiver.
// The conversation list is derived from this in memory.
func (r *mongoMessageRepo) FindByParticipant(ctx context.Context, user primitive.ObjectID) ([]*models.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender": user},
		bson.M{"receiver": user},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *mongoMessageRepo) MarkRead(ctx context.Context, sender, receiver primitive.ObjectID) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"sender": sender, "receiver": receiver, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *mongoMessageRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Message, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*models.Message
	for cur.Next(ctx) {
		var m models.Message
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, cur.Err()
}
