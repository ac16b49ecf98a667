package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wavelength-audio/wavelength-backend/domain"
	"github.com/wavelength-audio/wavelength-backend/mongo"
)

type historyRepository struct {
	database   mongo.Database
	collection string
}

func NewHistoryRepository(db mongo.Database, collection string) domain.HistoryRepository {
	return &historyRepository{
		database:   db,
		collection: collection,
	}
}

func (hr *historyRepository) GetByOwner(ctx context.Context, owner primitive.ObjectID) (domain.History, error) {
	var history domain.History
	err := hr.database.Collection(hr.collection).FindOne(ctx, bson.M{"owner": owner}).Decode(&history)
	if mongo.ErrNoDocuments(err) {
		return history, domain.ErrNotFound
	}
	return history, err
}

func (hr *historyRepository) Create(ctx context.Context, history *domain.History) error {
	now := time.Now().UTC()
	history.CreatedAt = now
	history.UpdatedAt = now
	for i := range history.All {
		if history.All[i].ID.IsZero() {
			history.All[i].ID = primitive.NewObjectID()
		}
	}

	id, err := hr.database.Collection(hr.collection).InsertOne(ctx, history)
	if err != nil {
		return fmt.Errorf("insert history failed: %w", err)
	}
	if oid, ok := id.(primitive.ObjectID); ok {
		history.ID = oid
	}
	return nil
}

// UpdateEntry rewrites the matched entry in place via the positional
// operator, so a same-day replay never grows the array.
func (hr *historyRepository) UpdateEntry(ctx context.Context, owner, audio primitive.ObjectID, progress float64, date time.Time) error {
	filter := bson.M{"owner": owner, "all.audio": audio}
	update := bson.M{"$set": bson.M{
		"all.$.progress": progress,
		"all.$.date":     date,
		"updatedAt":      time.Now().UTC(),
	}}

	res, err := hr.database.Collection(hr.collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update history entry failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (hr *historyRepository) PrependEntry(ctx context.Context, id primitive.ObjectID, entry domain.HistoryEntry) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}

	update := bson.M{
		"$push": bson.M{
			"all": bson.M{
				"$each":     []domain.HistoryEntry{entry},
				"$position": 0,
			},
		},
		"$set": bson.M{
			"last":      entry,
			"updatedAt": time.Now().UTC(),
		},
	}

	_, err := hr.database.Collection(hr.collection).UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("prepend history entry failed: %w", err)
	}
	return nil
}

func (hr *historyRepository) DeleteByOwner(ctx context.Context, owner primitive.ObjectID) error {
	_, err := hr.database.Collection(hr.collection).DeleteOne(ctx, bson.M{"owner": owner})
	return err
}

func (hr *historyRepository) PullEntries(ctx context.Context, owner primitive.ObjectID, entryIDs []primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{
			"all": bson.M{"_id": bson.M{"$in": entryIDs}},
		},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}

	_, err := hr.database.Collection(hr.collection).UpdateOne(ctx, bson.M{"owner": owner}, update)
	if err != nil {
		return fmt.Errorf("pull history entries failed: %w", err)
	}
	return nil
}

func (hr *historyRepository) SetLast(ctx context.Context, owner primitive.ObjectID, last *domain.HistoryEntry) error {
	var update bson.M
	if last == nil {
		update = bson.M{"$unset": bson.M{"last": ""}, "$set": bson.M{"updatedAt": time.Now().UTC()}}
	} else {
		update = bson.M{"$set": bson.M{"last": last, "updatedAt": time.Now().UTC()}}
	}

	_, err := hr.database.Collection(hr.collection).UpdateOne(ctx, bson.M{"owner": owner}, update)
	return err
}
