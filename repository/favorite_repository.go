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

type favoriteRepository struct {
	database   mongo.Database
	collection string
}

func NewFavoriteRepository(db mongo.Database, collection string) domain.FavoriteRepository {
	return &favoriteRepository{
		database:   db,
		collection: collection,
	}
}

func (fr *favoriteRepository) GetByOwner(ctx context.Context, owner primitive.ObjectID) (domain.Favorite, error) {
	var favorite domain.Favorite
	err := fr.database.Collection(fr.collection).FindOne(ctx, bson.M{"owner": owner}).Decode(&favorite)
	if mongo.ErrNoDocuments(err) {
		return favorite, domain.ErrNotFound
	}
	return favorite, err
}

func (fr *favoriteRepository) AddItem(ctx context.Context, owner, audio primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"items": audio},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
		"$setOnInsert": bson.M{
			"owner":     owner,
			"createdAt": time.Now().UTC(),
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := fr.database.Collection(fr.collection).UpdateOne(ctx, bson.M{"owner": owner}, update, opts)
	if err != nil {
		return fmt.Errorf("add favorite failed: %w", err)
	}
	return nil
}

func (fr *favoriteRepository) PullItem(ctx context.Context, owner, audio primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"items": audio},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	_, err := fr.database.Collection(fr.collection).UpdateOne(ctx, bson.M{"owner": owner}, update)
	if err != nil {
		return fmt.Errorf("remove favorite failed: %w", err)
	}
	return nil
}

func (fr *favoriteRepository) Exists(ctx context.Context, owner, audio primitive.ObjectID) (bool, error) {
	filter := bson.M{"owner": owner, "items": audio}
	count, err := fr.database.Collection(fr.collection).CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
