package controller

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wavelength-audio/wavelength-backend/api/middleware"
	"github.com/wavelength-audio/wavelength-backend/domain"
)

type HistoryController struct {
	HistoryUsecase domain.HistoryUsecase
}

func NewHistoryController(historyUsecase domain.HistoryUsecase) *HistoryController {
	return &HistoryController{HistoryUsecase: historyUsecase}
}

func (hc *HistoryController) RecordPlay(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	var req domain.UpdateHistoryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, domain.NewErrorResponse(err.Error()))
		return
	}

	if err := hc.HistoryUsecase.RecordPlay(c.Request.Context(), user.ID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.NewSuccessResponse("history updated"))
}

// Remove accepts either all=yes or a histories query parameter holding a
// JSON array of entry ids.
func (hc *HistoryController) Remove(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	all := c.Query("all") == "yes"

	var entryIDs []string
	if raw := c.Query("histories"); !all && raw != "" {
		if err := json.Unmarshal([]byte(raw), &entryIDs); err != nil {
			c.JSON(http.StatusUnprocessableEntity, domain.NewErrorResponse("histories must be a JSON array of ids"))
			return
		}
	}

	if err := hc.HistoryUsecase.Remove(c.Request.Context(), user.ID, all, entryIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.NewSuccessResponse("history removed"))
}

func (hc *HistoryController) GetHistories(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	page, pageSize := pagination(c)
	days, err := hc.HistoryUsecase.GetHistories(c.Request.Context(), user.ID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "histories": days})
}

func (hc *HistoryController) GetRecentlyPlayed(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	cards, err := hc.HistoryUsecase.GetRecentlyPlayed(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "audios": cards})
}
