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

type playlistRepository struct {
	database   mongo.Database
	collection string
}

func NewPlaylistRepository(db mongo.Database, collection string) domain.PlaylistRepository {
	return &playlistRepository{
		database:   db,
		collection: collection,
	}
}

func (pr *playlistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	now := time.Now().UTC()
	playlist.CreatedAt = now
	playlist.UpdatedAt = now
	if playlist.Items == nil {
		playlist.Items = []primitive.ObjectID{}
	}

	id, err := pr.database.Collection(pr.collection).InsertOne(ctx, playlist)
	if err != nil {
		return fmt.Errorf("insert playlist failed: %w", err)
	}
	if oid, ok := id.(primitive.ObjectID); ok {
		playlist.ID = oid
	}
	return nil
}

func (pr *playlistRepository) GetByID(ctx context.Context, id primitive.ObjectID) (domain.Playlist, error) {
	var playlist domain.Playlist
	err := pr.database.Collection(pr.collection).FindOne(ctx, bson.M{"_id": id}).Decode(&playlist)
	if mongo.ErrNoDocuments(err) {
		return playlist, domain.ErrNotFound
	}
	return playlist, err
}

func (pr *playlistRepository) GetByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID) (domain.Playlist, error) {
	var playlist domain.Playlist
	filter := bson.M{"_id": id, "owner": owner}
	err := pr.database.Collection(pr.collection).FindOne(ctx, filter).Decode(&playlist)
	if mongo.ErrNoDocuments(err) {
		return playlist, domain.ErrNotFound
	}
	return playlist, err
}

func (pr *playlistRepository) UpdateInfo(ctx context.Context, id, owner primitive.ObjectID, title, visibility string) (domain.Playlist, error) {
	filter := bson.M{"_id": id, "owner": owner}
	update := bson.M{"$set": bson.M{
		"title":      title,
		"visibility": visibility,
		"updatedAt":  time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var playlist domain.Playlist
	err := pr.database.Collection(pr.collection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&playlist)
	if mongo.ErrNoDocuments(err) {
		return playlist, domain.ErrNotFound
	}
	if err != nil {
		return playlist, fmt.Errorf("update playlist failed: %w", err)
	}
	return playlist, nil
}

func (pr *playlistRepository) AddItem(ctx context.Context, id, item primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"items": item},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	_, err := pr.database.Collection(pr.collection).UpdateByID(ctx, id, update)
	return err
}

func (pr *playlistRepository) PullItem(ctx context.Context, id, owner, item primitive.ObjectID) error {
	filter := bson.M{"_id": id, "owner": owner}
	update := bson.M{
		"$pull": bson.M{"items": item},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	res, err := pr.database.Collection(pr.collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("pull playlist item failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (pr *playlistRepository) DeleteByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID) error {
	count, err := pr.database.Collection(pr.collection).DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (pr *playlistRepository) GetByOwner(ctx context.Context, owner primitive.ObjectID, skip, limit int64) ([]domain.Playlist, error) {
	filter := bson.M{
		"owner":      owner,
		"visibility": bson.M{"$ne": domain.PlaylistVisibilityAuto},
	}
	return pr.find(ctx, filter, skip, limit)
}

func (pr *playlistRepository) GetPublicByOwner(ctx context.Context, owner primitive.ObjectID, skip, limit int64) ([]domain.Playlist, error) {
	filter := bson.M{
		"owner":      owner,
		"visibility": domain.PlaylistVisibilityPublic,
	}
	return pr.find(ctx, filter, skip, limit)
}

func (pr *playlistRepository) find(ctx context.Context, filter bson.M, skip, limit int64) ([]domain.Playlist, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := pr.database.Collection(pr.collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find playlists failed: %w", err)
	}

	playlists := make([]domain.Playlist, 0)
	if err := cursor.All(ctx, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// UpsertMix fully replaces the item list each run; concurrent regenerations
// race to last-write-wins, which is fine for a derived artifact.
func (pr *playlistRepository) UpsertMix(ctx context.Context, owner primitive.ObjectID, title string, items []primitive.ObjectID) (domain.Playlist, error) {
	if items == nil {
		items = []primitive.ObjectID{}
	}

	filter := bson.M{
		"owner":      owner,
		"title":      title,
		"visibility": domain.PlaylistVisibilityAuto,
	}
	update := bson.M{
		"$set": bson.M{
			"items":     items,
			"updatedAt": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"owner":      owner,
			"title":      title,
			"visibility": domain.PlaylistVisibilityAuto,
			"createdAt":  time.Now().UTC(),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var playlist domain.Playlist
	err := pr.database.Collection(pr.collection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&playlist)
	if err != nil {
		return playlist, fmt.Errorf("upsert mix failed: %w", err)
	}
	return playlist, nil
}
