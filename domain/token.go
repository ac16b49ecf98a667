package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OwnedToken is a single-use secret (email verification code or password
// reset token) tied to a user. The token value is stored hashed.
type OwnedToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Owner     primitive.ObjectID `bson:"owner"`
	Token     string             `bson:"token"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// OwnedTokenRepository backs both the verification-code and reset-token
// collections; the collection name is fixed at construction.
type OwnedTokenRepository interface {
	Replace(ctx context.Context, owner primitive.ObjectID, hashedToken string) error
	GetByOwner(ctx context.Context, owner primitive.ObjectID) (OwnedToken, error)
	DeleteByOwner(ctx context.Context, owner primitive.ObjectID) error
}
