package route

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wavelength-audio/wavelength-backend/api/controller"
	"github.com/wavelength-audio/wavelength-backend/api/middleware"
	"github.com/wavelength-audio/wavelength-backend/domain"
	"github.com/wavelength-audio/wavelength-backend/mongo"
	"github.com/wavelength-audio/wavelength-backend/repository"
	"github.com/wavelength-audio/wavelength-backend/usecase"
)

func NewFavoriteRouter(
	timeout time.Duration,
	db mongo.Database,
	group *gin.RouterGroup,
	auth *middleware.AuthMiddleware,
) {
	favoriteRepo := repository.NewFavoriteRepository(db, domain.CollectionFavorites)
	audioRepo := repository.NewAudioRepository(db, domain.CollectionAudios)
	userRepo := repository.NewUserRepository(db, domain.CollectionUsers)

	favoriteUsecase := usecase.NewFavoriteUsecase(favoriteRepo, audioRepo, userRepo, timeout)
	ctrl := controller.NewFavoriteController(favoriteUsecase)

	group.POST("", auth.MustAuth(), middleware.IsVerified(), ctrl.Toggle)
	group.GET("", auth.MustAuth(), ctrl.GetFavorites)
	group.GET("/is-favorite", auth.MustAuth(), ctrl.IsFavorite)
}
