package route

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wavelength-audio/wavelength-backend/api/controller"
	"github.com/wavelength-audio/wavelength-backend/api/middleware"
	"github.com/wavelength-audio/wavelength-backend/bootstrap"
	"github.com/wavelength-audio/wavelength-backend/domain"
	"github.com/wavelength-audio/wavelength-backend/internal/mailer"
	"github.com/wavelength-audio/wavelength-backend/internal/storage"
	"github.com/wavelength-audio/wavelength-backend/mongo"
	"github.com/wavelength-audio/wavelength-backend/repository"
	"github.com/wavelength-audio/wavelength-backend/usecase"
)

func NewAuthRouter(
	env *bootstrap.Env,
	timeout time.Duration,
	db mongo.Database,
	media storage.Provider,
	mail mailer.Mailer,
	group *gin.RouterGroup,
	auth *middleware.AuthMiddleware,
) {
	userRepo := repository.NewUserRepository(db, domain.CollectionUsers)
	verificationRepo := repository.NewOwnedTokenRepository(db, domain.CollectionEmailVerificationTokens)
	resetRepo := repository.NewOwnedTokenRepository(db, domain.CollectionPasswordResetTokens)

	authUsecase := usecase.NewAuthUsecase(
		userRepo,
		verificationRepo,
		resetRepo,
		mail,
		media,
		env.JWTSecret,
		env.PasswordResetLink,
		timeout,
	)
	ctrl := controller.NewAuthController(authUsecase)

	group.POST("/create", ctrl.Signup)
	group.POST("/verify-email", ctrl.VerifyEmail)
	group.POST("/re-verify-email", ctrl.ReVerifyEmail)
	group.POST("/forget-password", ctrl.ForgetPassword)
	group.POST("/verify-password-reset-token", ctrl.VerifyPasswordResetToken)
	group.POST("/update-password", ctrl.UpdatePassword)
	group.POST("/sign-in", ctrl.Signin)

	group.GET("/is-auth", auth.MustAuth(), ctrl.IsAuth)
	group.POST("/update-profile", auth.MustAuth(), ctrl.UpdateProfile)
	group.POST("/log-out", auth.MustAuth(), ctrl.Logout)
}
