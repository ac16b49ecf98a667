package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wavelength-audio/wavelength-backend/api/middleware"
	"github.com/wavelength-audio/wavelength-backend/domain"
)

type AudioController struct {
	AudioUsecase domain.AudioUsecase
}

func NewAudioController(audioUsecase domain.AudioUsecase) *AudioController {
	return &AudioController{AudioUsecase: audioUsecase}
}

func (ac *AudioController) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, domain.NewErrorResponse("audio file is missing"))
		return
	}
	poster, err := c.FormFile("poster")
	if err != nil && err != http.ErrMissingFile {
		c.JSON(http.StatusUnprocessableEntity, domain.NewErrorResponse(err.Error()))
		return
	}

	card, err := ac.AudioUsecase.Create(
		c.Request.Context(),
		user,
		c.PostForm("title"),
		c.PostForm("about"),
		c.PostForm("category"),
		file,
		poster,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "audio": card})
}

func (ac *AudioController) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	poster, err := c.FormFile("poster")
	if err != nil && err != http.ErrMissingFile {
		c.JSON(http.StatusUnprocessableEntity, domain.NewErrorResponse(err.Error()))
		return
	}

	update := domain.AudioUpdate{
		Title:    c.PostForm("title"),
		About:    c.PostForm("about"),
		Category: c.PostForm("category"),
	}

	card, err := ac.AudioUsecase.Update(c.Request.Context(), user, c.Param("audioId"), update, poster)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "audio": card})
}

func (ac *AudioController) GetLatest(c *gin.Context) {
	cards, err := ac.AudioUsecase.GetLatest(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "audios": cards})
}
