package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wavelength-audio/wavelength-backend/api/middleware"
	"github.com/wavelength-audio/wavelength-backend/domain"
)

type ProfileController struct {
	ProfileUsecase domain.ProfileUsecase
}

func NewProfileController(profileUsecase domain.ProfileUsecase) *ProfileController {
	return &ProfileController{ProfileUsecase: profileUsecase}
}

func (pc *ProfileController) UpdateFollower(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	status, err := pc.ProfileUsecase.ToggleFollower(c.Request.Context(), user.ID, c.Param("profileId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "follower": status})
}

func (pc *ProfileController) GetUploads(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	page, pageSize := pagination(c)
	cards, err := pc.ProfileUsecase.GetUploads(c.Request.Context(), user, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "audios": cards})
}

func (pc *ProfileController) GetPublicUploads(c *gin.Context) {
	page, pageSize := pagination(c)
	cards, err := pc.ProfileUsecase.GetPublicUploads(c.Request.Context(), c.Param("profileId"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "audios": cards})
}

func (pc *ProfileController) GetPublicProfile(c *gin.Context) {
	profile, err := pc.ProfileUsecase.GetPublicProfile(c.Request.Context(), c.Param("profileId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "profile": profile})
}

func (pc *ProfileController) GetPublicPlaylists(c *gin.Context) {
	page, pageSize := pagination(c)
	infos, err := pc.ProfileUsecase.GetPublicPlaylists(c.Request.Context(), c.Param("profileId"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "playlist": infos})
}

// GetRecommendations serves both identities: authenticated callers get the
// affinity-biased ranking, everyone else the global one.
func (pc *ProfileController) GetRecommendations(c *gin.Context) {
	var user *domain.User
	if current, ok := middleware.CurrentUser(c); ok {
		user = &current
	}

	cards, err := pc.ProfileUsecase.GetRecommendations(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "audios": cards})
}

func (pc *ProfileController) GetAutoGeneratedPlaylists(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	infos, err := pc.ProfileUsecase.GetAutoGeneratedPlaylists(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "playlist": infos})
}

func (pc *ProfileController) GetFollowers(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	page, pageSize := pagination(c)
	profiles, err := pc.ProfileUsecase.GetFollowers(c.Request.Context(), user.ID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "followers": profiles})
}

func (pc *ProfileController) GetPublicFollowers(c *gin.Context) {
	page, pageSize := pagination(c)
	profiles, err := pc.ProfileUsecase.GetPublicFollowers(c.Request.Context(), c.Param("profileId"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "followers": profiles})
}

func (pc *ProfileController) GetFollowings(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	page, pageSize := pagination(c)
	profiles, err := pc.ProfileUsecase.GetFollowings(c.Request.Context(), user.ID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "followings": profiles})
}

func (pc *ProfileController) IsFollowing(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	following, err := pc.ProfileUsecase.IsFollowing(c.Request.Context(), user.ID, c.Param("profileId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "result": following})
}
