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

func NewProfileRouter(
	timeout time.Duration,
	db mongo.Database,
	group *gin.RouterGroup,
	auth *middleware.AuthMiddleware,
) {
	userRepo := repository.NewUserRepository(db, domain.CollectionUsers)
	audioRepo := repository.NewAudioRepository(db, domain.CollectionAudios)
	historyRepo := repository.NewHistoryRepository(db, domain.CollectionHistories)
	playlistRepo := repository.NewPlaylistRepository(db, domain.CollectionPlaylists)
	autoPlaylistRepo := repository.NewAutoPlaylistRepository(db, domain.CollectionAutoGeneratedPlaylists)

	profileUsecase := usecase.NewProfileUsecase(userRepo, audioRepo, historyRepo, playlistRepo, autoPlaylistRepo, timeout)
	ctrl := controller.NewProfileController(profileUsecase)

	group.POST("/update-follower/:profileId", auth.MustAuth(), ctrl.UpdateFollower)
	group.GET("/uploads", auth.MustAuth(), ctrl.GetUploads)
	group.GET("/uploads/:profileId", ctrl.GetPublicUploads)
	group.GET("/info/:profileId", ctrl.GetPublicProfile)
	group.GET("/playlist/:profileId", ctrl.GetPublicPlaylists)
	group.GET("/recommended", auth.IsAuth(), ctrl.GetRecommendations)
	group.GET("/auto-generated-playlist", auth.MustAuth(), ctrl.GetAutoGeneratedPlaylists)
	group.GET("/followers", auth.MustAuth(), ctrl.GetFollowers)
	group.GET("/followers/:profileId", ctrl.GetPublicFollowers)
	group.GET("/followings", auth.MustAuth(), ctrl.GetFollowings)
	group.GET("/is-following/:profileId", auth.MustAuth(), ctrl.IsFollowing)
}
