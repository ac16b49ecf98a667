package route

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wavelength-audio/wavelength-backend/api/controller"
	"github.com/wavelength-audio/wavelength-backend/api/middleware"
	"github.com/wavelength-audio/wavelength-backend/domain"
	"github.com/wavelength-audio/wavelength-backend/internal/storage"
	"github.com/wavelength-audio/wavelength-backend/mongo"
	"github.com/wavelength-audio/wavelength-backend/repository"
	"github.com/wavelength-audio/wavelength-backend/usecase"
)

func NewAudioRouter(
	timeout time.Duration,
	db mongo.Database,
	media storage.Provider,
	group *gin.RouterGroup,
	auth *middleware.AuthMiddleware,
) {
	audioRepo := repository.NewAudioRepository(db, domain.CollectionAudios)
	userRepo := repository.NewUserRepository(db, domain.CollectionUsers)

	audioUsecase := usecase.NewAudioUsecase(audioRepo, userRepo, media, timeout)
	ctrl := controller.NewAudioController(audioUsecase)

	group.POST("/create", auth.MustAuth(), middleware.IsVerified(), ctrl.Create)
	group.PATCH("/update/:audioId", auth.MustAuth(), middleware.IsVerified(), ctrl.Update)
	group.GET("/latest", auth.MustAuth(), ctrl.GetLatest)
}
