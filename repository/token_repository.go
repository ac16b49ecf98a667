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

type ownedTokenRepository struct {
	database   mongo.Database
	collection string
}

// NewOwnedTokenRepository backs either token collection; the collection
// name decides whether it stores verification codes or reset tokens.
func NewOwnedTokenRepository(db mongo.Database, collection string) domain.OwnedTokenRepository {
	return &ownedTokenRepository{
		database:   db,
		collection: collection,
	}
}

// Replace drops any previous token for the owner so at most one is live.
func (tr *ownedTokenRepository) Replace(ctx context.Context, owner primitive.ObjectID, hashedToken string) error {
	update := bson.M{
		"$set": bson.M{
			"token":     hashedToken,
			"createdAt": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{"owner": owner},
	}

	opts := options.Update().SetUpsert(true)
	_, err := tr.database.Collection(tr.collection).UpdateOne(ctx, bson.M{"owner": owner}, update, opts)
	if err != nil {
		return fmt.Errorf("replace token failed: %w", err)
	}
	return nil
}

func (tr *ownedTokenRepository) GetByOwner(ctx context.Context, owner primitive.ObjectID) (domain.OwnedToken, error) {
	var token domain.OwnedToken
	err := tr.database.Collection(tr.collection).FindOne(ctx, bson.M{"owner": owner}).Decode(&token)
	if mongo.ErrNoDocuments(err) {
		return token, domain.ErrNotFound
	}
	return token, err
}

func (tr *ownedTokenRepository) DeleteByOwner(ctx context.Context, owner primitive.ObjectID) error {
	_, err := tr.database.Collection(tr.collection).DeleteOne(ctx, bson.M{"owner": owner})
	return err
}
