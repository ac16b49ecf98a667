package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	FollowerStatusAdded   = "added"
	FollowerStatusRemoved = "removed"
)

type ProfileUsecase interface {
	// ToggleFollower follows or unfollows profileID on behalf of userID,
	// keeping followers and followings symmetric across both documents.
	ToggleFollower(ctx context.Context, userID primitive.ObjectID, profileID string) (string, error)
	GetUploads(ctx context.Context, user User, page, pageSize int64) ([]AudioCard, error)
	GetPublicUploads(ctx context.Context, profileID string, page, pageSize int64) ([]AudioCard, error)
	GetPublicProfile(ctx context.Context, profileID string) (PublicProfile, error)
	GetPublicPlaylists(ctx context.Context, profileID string, page, pageSize int64) ([]PlaylistInfo, error)
	// GetRecommendations returns up to 10 liked-ranked audio cards, biased
	// to the caller's recent listening categories when user is non-nil.
	GetRecommendations(ctx context.Context, user *User) ([]AudioCard, error)
	// GetAutoGeneratedPlaylists regenerates the user's mix and returns it
	// behind up to 4 sampled editorial playlists.
	GetAutoGeneratedPlaylists(ctx context.Context, userID primitive.ObjectID) ([]PlaylistInfo, error)
	GetFollowers(ctx context.Context, userID primitive.ObjectID, page, pageSize int64) ([]PublicProfile, error)
	GetPublicFollowers(ctx context.Context, profileID string, page, pageSize int64) ([]PublicProfile, error)
	GetFollowings(ctx context.Context, userID primitive.ObjectID, page, pageSize int64) ([]PublicProfile, error)
	IsFollowing(ctx context.Context, userID primitive.ObjectID, profileID string) (bool, error)
}
