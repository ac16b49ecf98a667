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

type userRepository struct {
	database   mongo.Database
	collection string
}

func NewUserRepository(db mongo.Database, collection string) domain.UserRepository {
	return &userRepository{
		database:   db,
		collection: collection,
	}
}

func (ur *userRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Tokens == nil {
		user.Tokens = []string{}
	}
	if user.Favorites == nil {
		user.Favorites = []primitive.ObjectID{}
	}
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}
	if user.Followings == nil {
		user.Followings = []primitive.ObjectID{}
	}

	id, err := ur.database.Collection(ur.collection).InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("insert user failed: %w", err)
	}
	if oid, ok := id.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (ur *userRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	err := ur.database.Collection(ur.collection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if mongo.ErrNoDocuments(err) {
		return user, domain.ErrNotFound
	}
	return user, err
}

func (ur *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (domain.User, error) {
	var user domain.User
	err := ur.database.Collection(ur.collection).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if mongo.ErrNoDocuments(err) {
		return user, domain.ErrNotFound
	}
	return user, err
}

func (ur *userRepository) GetByIDAndToken(ctx context.Context, id primitive.ObjectID, token string) (domain.User, error) {
	var user domain.User
	filter := bson.M{"_id": id, "tokens": token}
	err := ur.database.Collection(ur.collection).FindOne(ctx, filter).Decode(&user)
	if mongo.ErrNoDocuments(err) {
		return user, domain.ErrNotFound
	}
	return user, err
}

func (ur *userRepository) GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}

	cursor, err := ur.database.Collection(ur.collection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find users failed: %w", err)
	}

	var users []domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, name string, avatar *domain.MediaRef) error {
	set := bson.M{
		"name":      name,
		"updatedAt": time.Now().UTC(),
	}
	if avatar != nil {
		set["avatar"] = avatar
	}

	res, err := ur.database.Collection(ur.collection).UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update profile failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (ur *userRepository) SetVerified(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"verified": true, "updatedAt": time.Now().UTC()}}
	res, err := ur.database.Collection(ur.collection).UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("verify user failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (ur *userRepository) SetPassword(ctx context.Context, id primitive.ObjectID, hashed string) error {
	update := bson.M{"$set": bson.M{"password": hashed, "updatedAt": time.Now().UTC()}}
	res, err := ur.database.Collection(ur.collection).UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("update password failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (ur *userRepository) AddToken(ctx context.Context, id primitive.ObjectID, token string) error {
	_, err := ur.database.Collection(ur.collection).UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"tokens": token},
	})
	return err
}

func (ur *userRepository) PullToken(ctx context.Context, id primitive.ObjectID, token string) error {
	_, err := ur.database.Collection(ur.collection).UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"tokens": token},
	})
	return err
}

func (ur *userRepository) ClearTokens(ctx context.Context, id primitive.ObjectID) error {
	_, err := ur.database.Collection(ur.collection).UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"tokens": []string{}},
	})
	return err
}

func (ur *userRepository) AddFollower(ctx context.Context, profileID, followerID primitive.ObjectID) error {
	_, err := ur.database.Collection(ur.collection).UpdateOne(ctx,
		bson.M{"_id": profileID},
		bson.M{"$addToSet": bson.M{"followers": followerID}},
	)
	return err
}

func (ur *userRepository) PullFollower(ctx context.Context, profileID, followerID primitive.ObjectID) error {
	_, err := ur.database.Collection(ur.collection).UpdateOne(ctx,
		bson.M{"_id": profileID},
		bson.M{"$pull": bson.M{"followers": followerID}},
	)
	return err
}

func (ur *userRepository) AddFollowing(ctx context.Context, userID, profileID primitive.ObjectID) error {
	_, err := ur.database.Collection(ur.collection).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"followings": profileID}},
	)
	return err
}

func (ur *userRepository) PullFollowing(ctx context.Context, userID, profileID primitive.ObjectID) error {
	_, err := ur.database.Collection(ur.collection).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"followings": profileID}},
	)
	return err
}

func (ur *userRepository) IsFollower(ctx context.Context, profileID, followerID primitive.ObjectID) (bool, error) {
	filter := bson.M{"_id": profileID, "followers": followerID}
	count, err := ur.database.Collection(ur.collection).CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
