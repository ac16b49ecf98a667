package domain

import (
	"context"
	"mime/multipart"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var AudioCategories = []string{
	"Arts", "Business", "Education", "Entertainment", "Kids & Family",
	"Music", "News", "Science", "Sports", "Technology", "Travel", "Others",
}

// NormalizeCategory maps unknown categories to "Others".
func NormalizeCategory(category string) string {
	for _, c := range AudioCategories {
		if c == category {
			return category
		}
	}
	return "Others"
}

type Audio struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title     string               `bson:"title" json:"title"`
	About     string               `bson:"about" json:"about"`
	Owner     primitive.ObjectID   `bson:"owner" json:"owner"`
	File      MediaRef             `bson:"file" json:"file"`
	Poster    *MediaRef            `bson:"poster,omitempty" json:"poster,omitempty"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Category  string               `bson:"category" json:"category"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

type CardOwner struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// AudioCard is the shaped public projection of an Audio used in list
// responses. Date and Progress are present only where the endpoint
// includes them (uploads, recently played).
type AudioCard struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	About    string     `json:"about"`
	Category string     `json:"category,omitempty"`
	File     string     `json:"file"`
	Poster   string     `json:"poster,omitempty"`
	Owner    CardOwner  `json:"owner"`
	Date     *time.Time `json:"date,omitempty"`
	Progress *float64   `json:"progress,omitempty"`
}

// Card shapes an audio against its owner's public identity.
func (a *Audio) Card(ownerName string) AudioCard {
	card := AudioCard{
		ID:       a.ID.Hex(),
		Title:    a.Title,
		About:    a.About,
		Category: a.Category,
		File:     a.File.URL,
		Owner:    CardOwner{Name: ownerName, ID: a.Owner.Hex()},
	}
	if a.Poster != nil {
		card.Poster = a.Poster.URL
	}
	return card
}

type AudioUpdate struct {
	Title    string
	About    string
	Category string
}

type AudioUsecase interface {
	// Create stores the uploaded file (and optional poster) with the media
	// provider and records the audio document.
	Create(ctx context.Context, owner User, title, about, category string, file, poster *multipart.FileHeader) (AudioCard, error)
	Update(ctx context.Context, owner User, audioID string, update AudioUpdate, poster *multipart.FileHeader) (AudioCard, error)
	GetLatest(ctx context.Context) ([]AudioCard, error)
}

type AudioRepository interface {
	Create(ctx context.Context, audio *Audio) error
	GetByID(ctx context.Context, id primitive.ObjectID) (Audio, error)
	GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Audio, error)
	// UpdateByOwner updates mutable fields only when the audio belongs to
	// owner, returning the updated document.
	UpdateByOwner(ctx context.Context, id, owner primitive.ObjectID, update AudioUpdate) (Audio, error)
	SetPoster(ctx context.Context, id primitive.ObjectID, poster *MediaRef) error
	GetByOwner(ctx context.Context, owner primitive.ObjectID, skip, limit int64) ([]Audio, error)
	GetLatest(ctx context.Context, limit int64) ([]Audio, error)
	// GetTopLiked returns audio ranked by like count descending. An empty
	// category set means the whole pool.
	GetTopLiked(ctx context.Context, categories []string, limit int64) ([]Audio, error)
	AddLike(ctx context.Context, id, userID primitive.ObjectID) error
	PullLike(ctx context.Context, id, userID primitive.ObjectID) error
}
