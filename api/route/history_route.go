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

func NewHistoryRouter(
	timeout time.Duration,
	db mongo.Database,
	group *gin.RouterGroup,
	auth *middleware.AuthMiddleware,
) {
	historyRepo := repository.NewHistoryRepository(db, domain.CollectionHistories)
	audioRepo := repository.NewAudioRepository(db, domain.CollectionAudios)
	userRepo := repository.NewUserRepository(db, domain.CollectionUsers)

	historyUsecase := usecase.NewHistoryUsecase(historyRepo, audioRepo, userRepo, timeout)
	ctrl := controller.NewHistoryController(historyUsecase)

	group.POST("", auth.MustAuth(), ctrl.RecordPlay)
	group.DELETE("", auth.MustAuth(), ctrl.Remove)
	group.GET("", auth.MustAuth(), ctrl.GetHistories)
	group.GET("/recently-played", auth.MustAuth(), ctrl.GetRecentlyPlayed)
}
