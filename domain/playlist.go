package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PlaylistVisibilityPublic  = "public"
	PlaylistVisibilityPrivate = "private"
	// PlaylistVisibilityAuto marks machine-generated playlists such as the
	// per-user mix; they are hidden from the user's own playlist views.
	PlaylistVisibilityAuto = "auto"
)

// MixPlaylistTitle names the per-user auto-generated mix. One document per
// owner, upserted on every generator run.
const MixPlaylistTitle = "Mix 20"

type Playlist struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title      string               `bson:"title" json:"title"`
	Owner      primitive.ObjectID   `bson:"owner" json:"owner"`
	Items      []primitive.ObjectID `bson:"items" json:"items"`
	Visibility string               `bson:"visibility" json:"visibility"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PlaylistInfo is the shaped list projection of a Playlist.
type PlaylistInfo struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	ItemsCount int    `json:"itemsCount"`
	Visibility string `json:"visibility,omitempty"`
}

func (p *Playlist) Info() PlaylistInfo {
	return PlaylistInfo{
		ID:         p.ID.Hex(),
		Title:      p.Title,
		ItemsCount: len(p.Items),
		Visibility: p.Visibility,
	}
}

type CreatePlaylistRequest struct {
	Title      string `json:"title" binding:"required"`
	ResID      string `json:"resId"`
	Visibility string `json:"visibility" binding:"required,oneof=public private"`
}

type UpdatePlaylistRequest struct {
	ID         string `json:"id" binding:"required"`
	Title      string `json:"title" binding:"required"`
	Item       string `json:"item"`
	Visibility string `json:"visibility" binding:"required,oneof=public private"`
}

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *Playlist) error
	GetByID(ctx context.Context, id primitive.ObjectID) (Playlist, error)
	GetByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID) (Playlist, error)
	// UpdateInfo renames and revisits visibility for an owned playlist,
	// returning the updated document.
	UpdateInfo(ctx context.Context, id, owner primitive.ObjectID, title, visibility string) (Playlist, error)
	AddItem(ctx context.Context, id, item primitive.ObjectID) error
	PullItem(ctx context.Context, id, owner, item primitive.ObjectID) error
	DeleteByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID) error
	// GetByOwner lists the user's own playlists, auto-generated ones
	// excluded, newest first.
	GetByOwner(ctx context.Context, owner primitive.ObjectID, skip, limit int64) ([]Playlist, error)
	GetPublicByOwner(ctx context.Context, owner primitive.ObjectID, skip, limit int64) ([]Playlist, error)
	// UpsertMix replaces the items of the (owner, title) auto playlist,
	// creating it when absent, and returns the resulting document.
	UpsertMix(ctx context.Context, owner primitive.ObjectID, title string, items []primitive.ObjectID) (Playlist, error)
}

// AutoGeneratedPlaylist documents are editorially seeded; this service only
// samples them.
type AutoGeneratedPlaylist struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title     string               `bson:"title" json:"title"`
	Items     []primitive.ObjectID `bson:"items" json:"items"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}

type AutoGeneratedPlaylistRepository interface {
	// Sample returns up to n random playlists, restricted to the given
	// titles when the set is non-empty.
	Sample(ctx context.Context, titles []string, n int64) ([]AutoGeneratedPlaylist, error)
}

type PlaylistUsecase interface {
	Create(ctx context.Context, owner primitive.ObjectID, req CreatePlaylistRequest) (PlaylistInfo, error)
	Update(ctx context.Context, owner primitive.ObjectID, req UpdatePlaylistRequest) (PlaylistInfo, error)
	Remove(ctx context.Context, owner primitive.ObjectID, playlistID string, resID string, all bool) error
	GetByProfile(ctx context.Context, owner primitive.ObjectID, page, pageSize int64) ([]PlaylistInfo, error)
	// GetAudios resolves a playlist into its shaped audio cards.
	GetAudios(ctx context.Context, owner primitive.ObjectID, playlistID string) (PlaylistAudios, error)
}

type PlaylistAudios struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Audios []AudioCard `json:"audios"`
}
