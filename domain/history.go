package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryEntry is a single play event. Entries inside History.All carry
// their own ids so clients can delete them individually.
type HistoryEntry struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Audio    primitive.ObjectID `bson:"audio" json:"audio"`
	Progress float64            `bson:"progress" json:"progress"`
	Date     time.Time          `bson:"date" json:"date"`
}

// History holds one document per user. All is kept newest-first: new
// entries are prepended, and Last mirrors the most recent event.
type History struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	Last      *HistoryEntry      `bson:"last,omitempty" json:"last,omitempty"`
	All       []HistoryEntry     `bson:"all" json:"all"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type UpdateHistoryRequest struct {
	Audio    string    `json:"audio" binding:"required"`
	Progress float64   `json:"progress"`
	Date     time.Time `json:"date" binding:"required"`
}

// HistoryDay is one calendar-day bucket of the grouped history view.
type HistoryDay struct {
	Date   string           `json:"date"`
	Audios []HistoryDayItem `json:"audios"`
}

type HistoryDayItem struct {
	ID      string    `json:"id"`
	AudioID string    `json:"audioId"`
	Title   string    `json:"title"`
	Date    time.Time `json:"date"`
}

type HistoryRepository interface {
	GetByOwner(ctx context.Context, owner primitive.ObjectID) (History, error)
	Create(ctx context.Context, history *History) error
	// UpdateEntry rewrites progress and date on the existing entry for the
	// given audio, leaving the array order untouched.
	UpdateEntry(ctx context.Context, owner, audio primitive.ObjectID, progress float64, date time.Time) error
	// PrependEntry pushes the entry at position 0 and overwrites last.
	PrependEntry(ctx context.Context, id primitive.ObjectID, entry HistoryEntry) error
	DeleteByOwner(ctx context.Context, owner primitive.ObjectID) error
	PullEntries(ctx context.Context, owner primitive.ObjectID, entryIDs []primitive.ObjectID) error
	SetLast(ctx context.Context, owner primitive.ObjectID, last *HistoryEntry) error
}

type HistoryUsecase interface {
	RecordPlay(ctx context.Context, userID primitive.ObjectID, req UpdateHistoryRequest) error
	// Remove deletes the whole history when all is true, otherwise only the
	// entries whose ids are listed.
	Remove(ctx context.Context, userID primitive.ObjectID, all bool, entryIDs []string) error
	GetHistories(ctx context.Context, userID primitive.ObjectID, page, pageSize int64) ([]HistoryDay, error)
	GetRecentlyPlayed(ctx context.Context, userID primitive.ObjectID) ([]AudioCard, error)
}
