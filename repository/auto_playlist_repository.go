package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/wavelength-audio/wavelength-backend/domain"
	"github.com/wavelength-audio/wavelength-backend/mongo"
)

type autoPlaylistRepository struct {
	database   mongo.Database
	collection string
}

func NewAutoPlaylistRepository(db mongo.Database, collection string) domain.AutoGeneratedPlaylistRepository {
	return &autoPlaylistRepository{
		database:   db,
		collection: collection,
	}
}

// Sample delegates random selection to the store's $sample stage; it may
// return fewer documents than requested when the pool is small.
func (ap *autoPlaylistRepository) Sample(ctx context.Context, titles []string, n int64) ([]domain.AutoGeneratedPlaylist, error) {
	match := bson.M{"_id": bson.M{"$exists": true}}
	if len(titles) > 0 {
		match = bson.M{"title": bson.M{"$in": titles}}
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$sample": bson.M{"size": n}},
	}

	cursor, err := ap.database.Collection(ap.collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("sample auto playlists failed: %w", err)
	}

	playlists := make([]domain.AutoGeneratedPlaylist, 0)
	if err := cursor.All(ctx, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}
