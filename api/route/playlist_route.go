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

func NewPlaylistRouter(
	timeout time.Duration,
	db mongo.Database,
	group *gin.RouterGroup,
	auth *middleware.AuthMiddleware,
) {
	playlistRepo := repository.NewPlaylistRepository(db, domain.CollectionPlaylists)
	audioRepo := repository.NewAudioRepository(db, domain.CollectionAudios)
	userRepo := repository.NewUserRepository(db, domain.CollectionUsers)

	playlistUsecase := usecase.NewPlaylistUsecase(playlistRepo, audioRepo, userRepo, timeout)
	ctrl := controller.NewPlaylistController(playlistUsecase)

	group.POST("/create", auth.MustAuth(), middleware.IsVerified(), ctrl.Create)
	group.PATCH("", auth.MustAuth(), middleware.IsVerified(), ctrl.Update)
	group.DELETE("", auth.MustAuth(), middleware.IsVerified(), ctrl.Remove)
	group.GET("/by-profile", auth.MustAuth(), ctrl.GetByProfile)
	group.GET("/:playlistId", auth.MustAuth(), ctrl.GetAudios)
}
