// internal/handlers/social.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/swellapp/swell-backend/internal/middleware"
	"github.com/swellapp/swell-backend/internal/services"
	"github.com/swellapp/swell-backend/internal/utils"
)

type SocialHandler struct {
	socialService *services.SocialService
}

func NewSocialHandler(socialService *services.SocialService) *SocialHandler {
	return &SocialHandler{socialService: socialService}
}

// GET /followers/:id
func (h *SocialHandler) Followers(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		utils.EnvelopeBadToken(c)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.EnvelopeError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	users, err := h.socialService.Followers(id)
	if err != nil {
		utils.EnvelopeStorageError(c, err)
		return
	}

	utils.EnvelopeData(c, users)
}

// GET /followees/:id
func (h *SocialHandler) Followees(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		utils.EnvelopeBadToken(c)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.EnvelopeError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	users, err := h.socialService.Followees(id)
	if err != nil {
		utils.EnvelopeStorageError(c, err)
		return
	}

	utils.EnvelopeData(c, users)
}

// GET /follow/:id
func (h *SocialHandler) Follow(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.Status(http.StatusForbidden)
		return
	}

	followeeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusForbidden)
		return
	}

	if err := h.socialService.Follow(followeeID, callerID); err != nil {
		logrus.WithError(err).Error("Follow failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusCreated)
}

// GET /unfollow/:id
func (h *SocialHandler) Unfollow(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.Status(http.StatusForbidden)
		return
	}

	followeeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusForbidden)
		return
	}

	if err := h.socialService.Unfollow(followeeID, callerID); err != nil {
		logrus.WithError(err).Error("Unfollow failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusCreated)
}
