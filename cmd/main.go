package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wavelength-audio/wavelength-backend/api/route"
	"github.com/wavelength-audio/wavelength-backend/bootstrap"
)

func main() {
	app := bootstrap.App()
	defer app.CloseDBConnection()

	env := app.Env
	db := app.Mongo.Database(env.DBName)
	timeout := time.Duration(env.ContextTimeout) * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := bootstrap.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("index creation failed: ", err)
	}

	if env.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	route.Setup(env, timeout, db, app.Storage, app.Mailer, r)

	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal(err)
	}
}
