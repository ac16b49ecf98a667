package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wavelength-audio/wavelength-backend/api/middleware"
	"github.com/wavelength-audio/wavelength-backend/domain"
)

type FavoriteController struct {
	FavoriteUsecase domain.FavoriteUsecase
}

func NewFavoriteController(favoriteUsecase domain.FavoriteUsecase) *FavoriteController {
	return &FavoriteController{FavoriteUsecase: favoriteUsecase}
}

func (fc *FavoriteController) Toggle(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	status, err := fc.FavoriteUsecase.Toggle(c.Request.Context(), user.ID, c.Query("audioId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "favorite": status})
}

func (fc *FavoriteController) GetFavorites(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	cards, err := fc.FavoriteUsecase.GetFavorites(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "audios": cards})
}

func (fc *FavoriteController) IsFavorite(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	favorite, err := fc.FavoriteUsecase.IsFavorite(c.Request.Context(), user.ID, c.Query("audioId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "result": favorite})
}
