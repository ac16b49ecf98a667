package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaRef points at a file held by the external storage provider.
type MediaRef struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"publicId" json:"publicId"`
}

type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name       string               `bson:"name" json:"name"`
	Email      string               `bson:"email" json:"email"`
	Password   string               `bson:"password" json:"-"`
	Verified   bool                 `bson:"verified" json:"verified"`
	Avatar     *MediaRef            `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Tokens     []string             `bson:"tokens" json:"-"`
	Favorites  []primitive.ObjectID `bson:"favorites" json:"favorites"`
	Followers  []primitive.ObjectID `bson:"followers" json:"followers"`
	Followings []primitive.ObjectID `bson:"followings" json:"followings"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Profile is the shaped projection of a User sent to clients.
type Profile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Verified   bool   `json:"verified"`
	Avatar     string `json:"avatar,omitempty"`
	Followers  int    `json:"followers"`
	Followings int    `json:"followings"`
}

func (u *User) Profile() Profile {
	p := Profile{
		ID:         u.ID.Hex(),
		Name:       u.Name,
		Email:      u.Email,
		Verified:   u.Verified,
		Followers:  len(u.Followers),
		Followings: len(u.Followings),
	}
	if u.Avatar != nil {
		p.Avatar = u.Avatar.URL
	}
	return p
}

// PublicProfile is the anonymous-visible projection of a User.
type PublicProfile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Followers int    `json:"followers"`
	Avatar    string `json:"avatar,omitempty"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (User, error)
	// GetByIDAndToken resolves a session: the token must still be present
	// in the user's token set.
	GetByIDAndToken(ctx context.Context, id primitive.ObjectID, token string) (User, error)
	GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]User, error)

	UpdateProfile(ctx context.Context, id primitive.ObjectID, name string, avatar *MediaRef) error
	SetVerified(ctx context.Context, id primitive.ObjectID) error
	SetPassword(ctx context.Context, id primitive.ObjectID, hashed string) error

	AddToken(ctx context.Context, id primitive.ObjectID, token string) error
	PullToken(ctx context.Context, id primitive.ObjectID, token string) error
	ClearTokens(ctx context.Context, id primitive.ObjectID) error

	AddFollower(ctx context.Context, profileID, followerID primitive.ObjectID) error
	PullFollower(ctx context.Context, profileID, followerID primitive.ObjectID) error
	AddFollowing(ctx context.Context, userID, profileID primitive.ObjectID) error
	PullFollowing(ctx context.Context, userID, profileID primitive.ObjectID) error
	IsFollower(ctx context.Context, profileID, followerID primitive.ObjectID) (bool, error)
}
