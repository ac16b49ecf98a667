package bootstrap

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wavelength-audio/wavelength-backend/domain"
	"github.com/wavelength-audio/wavelength-backend/mongo"
)

func NewMongoDatabase(env *Env) mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.NewClient(env.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	if err := client.Connect(ctx); err != nil {
		log.Fatal(err)
	}
	if err := client.Ping(ctx); err != nil {
		log.Fatal(err)
	}

	return client
}

// EnsureIndexes creates the uniqueness constraints the usecases rely on:
// one account per email and one history document per user.
func EnsureIndexes(ctx context.Context, db mongo.Database) error {
	unique := options.Index().SetUnique(true)

	_, err := db.Collection(domain.CollectionUsers).Indexes().CreateOne(ctx, driver.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(domain.CollectionHistories).Indexes().CreateOne(ctx, driver.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}},
		Options: unique,
	})
	return err
}

func CloseMongoDBConnection(client mongo.Client) {
	if client == nil {
		return
	}
	if err := client.Disconnect(context.TODO()); err != nil {
		log.Fatal(err)
	}
	log.Println("connection to mongodb closed")
}
