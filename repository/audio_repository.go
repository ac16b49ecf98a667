package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wavelength-audio/wavelength-backend/domain"
	"github.com/wavelength-audio/wavelength-backend/mongo"
)

type audioRepository struct {
	database   mongo.Database
	collection string
}

func NewAudioRepository(db mongo.Database, collection string) domain.AudioRepository {
	return &audioRepository{
		database:   db,
		collection: collection,
	}
}

func (ar *audioRepository) Create(ctx context.Context, audio *domain.Audio) error {
	now := time.Now().UTC()
	audio.CreatedAt = now
	audio.UpdatedAt = now
	if audio.Likes == nil {
		audio.Likes = []primitive.ObjectID{}
	}

	id, err := ar.database.Collection(ar.collection).InsertOne(ctx, audio)
	if err != nil {
		return fmt.Errorf("insert audio failed: %w", err)
	}
	if oid, ok := id.(primitive.ObjectID); ok {
		audio.ID = oid
	}
	return nil
}

func (ar *audioRepository) GetByID(ctx context.Context, id primitive.ObjectID) (domain.Audio, error) {
	var audio domain.Audio
	err := ar.database.Collection(ar.collection).FindOne(ctx, bson.M{"_id": id}).Decode(&audio)
	if mongo.ErrNoDocuments(err) {
		return audio, domain.ErrNotFound
	}
	return audio, err
}

func (ar *audioRepository) GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Audio, error) {
	if len(ids) == 0 {
		return []domain.Audio{}, nil
	}

	cursor, err := ar.database.Collection(ar.collection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find audios failed: %w", err)
	}

	var audios []domain.Audio
	if err := cursor.All(ctx, &audios); err != nil {
		return nil, err
	}
	return audios, nil
}

func (ar *audioRepository) UpdateByOwner(ctx context.Context, id, owner primitive.ObjectID, update domain.AudioUpdate) (domain.Audio, error) {
	filter := bson.M{"_id": id, "owner": owner}
	set := bson.M{"$set": bson.M{
		"title":     update.Title,
		"about":     update.About,
		"category":  update.Category,
		"updatedAt": time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var audio domain.Audio
	err := ar.database.Collection(ar.collection).FindOneAndUpdate(ctx, filter, set, opts).Decode(&audio)
	if mongo.ErrNoDocuments(err) {
		return audio, domain.ErrNotFound
	}
	if err != nil {
		return audio, fmt.Errorf("update audio failed: %w", err)
	}
	return audio, nil
}

func (ar *audioRepository) SetPoster(ctx context.Context, id primitive.ObjectID, poster *domain.MediaRef) error {
	update := bson.M{"$set": bson.M{"poster": poster, "updatedAt": time.Now().UTC()}}
	_, err := ar.database.Collection(ar.collection).UpdateByID(ctx, id, update)
	return err
}

func (ar *audioRepository) GetByOwner(ctx context.Context, owner primitive.ObjectID, skip, limit int64) ([]domain.Audio, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := ar.database.Collection(ar.collection).Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("find uploads failed: %w", err)
	}

	audios := make([]domain.Audio, 0)
	if err := cursor.All(ctx, &audios); err != nil {
		return nil, err
	}
	return audios, nil
}

func (ar *audioRepository) GetLatest(ctx context.Context, limit int64) ([]domain.Audio, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := ar.database.Collection(ar.collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find latest failed: %w", err)
	}

	audios := make([]domain.Audio, 0)
	if err := cursor.All(ctx, &audios); err != nil {
		return nil, err
	}
	return audios, nil
}

// GetTopLiked ranks candidates by like count. The sort key is computed
// server-side so ranking stays consistent with concurrent like toggles.
func (ar *audioRepository) GetTopLiked(ctx context.Context, categories []string, limit int64) ([]domain.Audio, error) {
	match := bson.M{"_id": bson.M{"$exists": true}}
	if len(categories) > 0 {
		match = bson.M{"category": bson.M{"$in": categories}}
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$addFields": bson.M{"likesCount": bson.M{"$size": "$likes"}}},
		{"$sort": bson.M{"likesCount": -1}},
		{"$limit": limit},
		{"$project": bson.M{"likesCount": 0}},
	}

	cursor, err := ar.database.Collection(ar.collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate top liked failed: %w", err)
	}

	audios := make([]domain.Audio, 0)
	if err := cursor.All(ctx, &audios); err != nil {
		return nil, err
	}
	return audios, nil
}

func (ar *audioRepository) AddLike(ctx context.Context, id, userID primitive.ObjectID) error {
	_, err := ar.database.Collection(ar.collection).UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"likes": userID},
	})
	return err
}

func (ar *audioRepository) PullLike(ctx context.Context, id, userID primitive.ObjectID) error {
	_, err := ar.database.Collection(ar.collection).UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"likes": userID},
	})
	return err
}
