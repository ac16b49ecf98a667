package route

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wavelength-audio/wavelength-backend/api/middleware"
	"github.com/wavelength-audio/wavelength-backend/bootstrap"
	"github.com/wavelength-audio/wavelength-backend/domain"
	"github.com/wavelength-audio/wavelength-backend/internal/mailer"
	"github.com/wavelength-audio/wavelength-backend/internal/storage"
	"github.com/wavelength-audio/wavelength-backend/mongo"
	"github.com/wavelength-audio/wavelength-backend/repository"
)

func Setup(
	env *bootstrap.Env,
	timeout time.Duration,
	db mongo.Database,
	media storage.Provider,
	mail mailer.Mailer,
	r *gin.Engine,
) {
	middleware.RegisterMetrics()
	r.Use(cors.Default())
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	userRepo := repository.NewUserRepository(db, domain.CollectionUsers)
	auth := middleware.NewAuthMiddleware(userRepo, env.JWTSecret, timeout)

	v1 := r.Group("/api/v1")

	NewAuthRouter(env, timeout, db, media, mail, v1.Group("/auth"), auth)
	NewAudioRouter(timeout, db, media, v1.Group("/audio"), auth)
	NewFavoriteRouter(timeout, db, v1.Group("/favorite"), auth)
	NewPlaylistRouter(timeout, db, v1.Group("/playlist"), auth)
	NewProfileRouter(timeout, db, v1.Group("/profile"), auth)
	NewHistoryRouter(timeout, db, v1.Group("/history"), auth)
}
