package bootstrap

import (
	"log"

	"github.com/wavelength-audio/wavelength-backend/internal/mailer"
	"github.com/wavelength-audio/wavelength-backend/internal/storage"
	"github.com/wavelength-audio/wavelength-backend/mongo"
)

type Application struct {
	Env     *Env
	Mongo   mongo.Client
	Storage storage.Provider
	Mailer  mailer.Mailer
}

func App() Application {
	app := Application{}
	app.Env = NewEnv()
	app.Mongo = NewMongoDatabase(app.Env)

	provider, err := storage.NewS3Provider(storage.S3Config{
		KeyID:         app.Env.StorageKeyID,
		AppKey:        app.Env.StorageAppKey,
		Endpoint:      app.Env.StorageEndpoint,
		Region:        app.Env.StorageRegion,
		Bucket:        app.Env.StorageBucket,
		PublicBaseURL: app.Env.StorageBaseURL,
	})
	if err != nil {
		log.Fatal("media storage can't be initialized: ", err)
	}
	app.Storage = provider

	app.Mailer = mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     app.Env.SMTPHost,
		Port:     app.Env.SMTPPort,
		Username: app.Env.SMTPUser,
		Password: app.Env.SMTPPassword,
		From:     app.Env.SMTPFrom,
	})

	return app
}

func (app *Application) CloseDBConnection() {
	CloseMongoDBConnection(app.Mongo)
}
