package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wavelength-audio/wavelength-backend/api/middleware"
	"github.com/wavelength-audio/wavelength-backend/domain"
)

type PlaylistController struct {
	PlaylistUsecase domain.PlaylistUsecase
}

func NewPlaylistController(playlistUsecase domain.PlaylistUsecase) *PlaylistController {
	return &PlaylistController{PlaylistUsecase: playlistUsecase}
}

func (pc *PlaylistController) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	var req domain.CreatePlaylistRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, domain.NewErrorResponse(err.Error()))
		return
	}

	info, err := pc.PlaylistUsecase.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "playlist": info})
}

func (pc *PlaylistController) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	var req domain.UpdatePlaylistRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, domain.NewErrorResponse(err.Error()))
		return
	}

	info, err := pc.PlaylistUsecase.Update(c.Request.Context(), user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "playlist": info})
}

func (pc *PlaylistController) Remove(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	err := pc.PlaylistUsecase.Remove(
		c.Request.Context(),
		user.ID,
		c.Query("playlistId"),
		c.Query("resId"),
		c.Query("all") == "yes",
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.NewSuccessResponse("playlist updated"))
}

func (pc *PlaylistController) GetByProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	page, pageSize := pagination(c)
	infos, err := pc.PlaylistUsecase.GetByProfile(c.Request.Context(), user.ID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "playlist": infos})
}

func (pc *PlaylistController) GetAudios(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	list, err := pc.PlaylistUsecase.GetAudios(c.Request.Context(), user.ID, c.Param("playlistId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "list": list})
}
