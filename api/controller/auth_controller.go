package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wavelength-audio/wavelength-backend/api/middleware"
	"github.com/wavelength-audio/wavelength-backend/domain"
)

type AuthController struct {
	AuthUsecase domain.AuthUsecase
}

func NewAuthController(authUsecase domain.AuthUsecase) *AuthController {
	return &AuthController{AuthUsecase: authUsecase}
}

func (ac *AuthController) Signup(c *gin.Context) {
	var req domain.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, domain.NewErrorResponse(err.Error()))
		return
	}

	profile, err := ac.AuthUsecase.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "user": profile})
}

func (ac *AuthController) VerifyEmail(c *gin.Context) {
	var req domain.VerifyEmailRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, domain.NewErrorResponse(err.Error()))
		return
	}

	if err := ac.AuthUsecase.VerifyEmail(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.NewSuccessResponse("your email is verified"))
}

func (ac *AuthController) ReVerifyEmail(c *gin.Context) {
	var req domain.ReVerifyEmailRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, domain.NewErrorResponse(err.Error()))
		return
	}

	if err := ac.AuthUsecase.ReVerifyEmail(c.Request.Context(), req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.NewSuccessResponse("please check your mail"))
}

func (ac *AuthController) ForgetPassword(c *gin.Context) {
	var req domain.ForgetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, domain.NewErrorResponse(err.Error()))
		return
	}

	if err := ac.AuthUsecase.ForgetPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.NewSuccessResponse("please check your registered mail"))
}

func (ac *AuthController) VerifyPasswordResetToken(c *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
		Token  string `json:"token" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, domain.NewErrorResponse(err.Error()))
		return
	}

	if err := ac.AuthUsecase.ValidResetToken(c.Request.Context(), req.UserID, req.Token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "valid": true})
}

func (ac *AuthController) UpdatePassword(c *gin.Context) {
	var req domain.UpdatePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, domain.NewErrorResponse(err.Error()))
		return
	}

	if err := ac.AuthUsecase.UpdatePassword(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.NewSuccessResponse("password reset successfully"))
}

func (ac *AuthController) Signin(c *gin.Context) {
	var req domain.SigninRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, domain.NewErrorResponse(err.Error()))
		return
	}

	profile, token, err := ac.AuthUsecase.Signin(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.SigninResponse{
		Status:  "success",
		Profile: profile,
		Token:   token,
	})
}

// IsAuth echoes the session's profile; MustAuth has already resolved it.
func (ac *AuthController) IsAuth(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "profile": user.Profile()})
}

func (ac *AuthController) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	name := c.PostForm("name")
	avatar, err := c.FormFile("avatar")
	if err != nil && err != http.ErrMissingFile {
		c.JSON(http.StatusUnprocessableEntity, domain.NewErrorResponse(err.Error()))
		return
	}

	profile, err := ac.AuthUsecase.UpdateProfile(c.Request.Context(), user.ID, name, avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "profile": profile})
}

func (ac *AuthController) Logout(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}
	token, _ := middleware.CurrentToken(c)
	fromAll := c.Query("fromAll") == "yes"

	if err := ac.AuthUsecase.Logout(c.Request.Context(), user.ID, token, fromAll); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.NewSuccessResponse("signed out"))
}
