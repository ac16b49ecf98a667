package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite is one document per user holding the set of liked audio ids.
type Favorite struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Owner     primitive.ObjectID   `bson:"owner" json:"owner"`
	Items     []primitive.ObjectID `bson:"items" json:"items"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

const (
	FavoriteStatusAdded   = "added"
	FavoriteStatusRemoved = "removed"
)

type FavoriteRepository interface {
	GetByOwner(ctx context.Context, owner primitive.ObjectID) (Favorite, error)
	// AddItem upserts the owner's favorite document and set-adds the audio.
	AddItem(ctx context.Context, owner, audio primitive.ObjectID) error
	PullItem(ctx context.Context, owner, audio primitive.ObjectID) error
	Exists(ctx context.Context, owner, audio primitive.ObjectID) (bool, error)
}

type FavoriteUsecase interface {
	// Toggle flips the (owner, audio) favorite pair and keeps audio.likes in
	// sync, returning the resulting status.
	Toggle(ctx context.Context, owner primitive.ObjectID, audioID string) (string, error)
	GetFavorites(ctx context.Context, owner primitive.ObjectID) ([]AudioCard, error)
	IsFavorite(ctx context.Context, owner primitive.ObjectID, audioID string) (bool, error)
}
