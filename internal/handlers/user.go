// internal/handlers/user.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/swellapp/swell-backend/internal/middleware"
	"github.com/swellapp/swell-backend/internal/models"
	"github.com/swellapp/swell-backend/internal/services"
	"github.com/swellapp/swell-backend/internal/utils"
)

type UserHandler struct {
	userService    *services.UserService
	storageService *services.StorageService
	defaultBio     string
}

func NewUserHandler(userService *services.UserService, storageService *services.StorageService, defaultBio string) *UserHandler {
	return &UserHandler{
		userService:    userService,
		storageService: storageService,
		defaultBio:     defaultBio,
	}
}

// POST /register
func (h *UserHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.EnvelopeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			utils.EnvelopeError(c, http.StatusConflict, "Username already taken")
		case len(utils.GetValidationErrors(errors.Unwrap(err))) > 0:
			utils.EnvelopeError(c, http.StatusBadRequest, err.Error())
		default:
			utils.EnvelopeStorageError(c, err)
		}
		return
	}

	utils.EnvelopeData(c, user)
}

// GET /get_user_by_id/:id
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.EnvelopeError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	h.replyUser(c, id)
}

// GET /get_my_profile
func (h *UserHandler) GetMyProfile(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		utils.EnvelopeBadToken(c)
		return
	}

	h.replyUser(c, callerID)
}

// GET /get_user_by_username/:username
func (h *UserHandler) GetUserByUsername(c *gin.Context) {
	user, err := h.userService.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.EnvelopeNotFound(c, "User not found")
			return
		}
		utils.EnvelopeStorageError(c, err)
		return
	}

	utils.EnvelopeData(c, user)
}

// GET /get_user_by_eth/:eth_address
func (h *UserHandler) GetUserByEthAddress(c *gin.Context) {
	user, err := h.userService.GetUserByEthAddress(c.Param("eth_address"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.EnvelopeNotFound(c, "User not found")
			return
		}
		utils.EnvelopeStorageError(c, err)
		return
	}

	utils.EnvelopeData(c, user)
}

// GET /is_registered/:eth_address
func (h *UserHandler) IsRegistered(c *gin.Context) {
	_, err := h.userService.GetUserByEthAddress(c.Param("eth_address"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		logrus.WithError(err).Error("Storage error")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// POST /search
func (h *UserHandler) Search(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		utils.EnvelopeBadToken(c)
		return
	}

	var req services.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.EnvelopeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	users, err := h.userService.SearchByPrefix(callerID, req.Pattern)
	if err != nil {
		utils.EnvelopeStorageError(c, err)
		return
	}

	utils.EnvelopeData(c, users)
}

// POST /upload_profile
func (h *UserHandler) UploadProfile(c *gin.Context) {
	if _, ok := middleware.CallerID(c); !ok {
		c.Status(http.StatusForbidden)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	profile, err := DecodeProfileUploadForm(form, h.defaultBio)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	saved, err := h.storageService.SaveUpload(profile.Avatar, models.MediaTypeImage)
	if err != nil {
		logrus.WithError(err).Error("Avatar upload failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	if err := h.userService.UpdateProfile(profile.ID, profile.Bio, saved.Path); err != nil {
		h.storageService.Remove(saved.Path)
		logrus.WithError(err).Error("Profile update failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

func (h *UserHandler) replyUser(c *gin.Context, id int64) {
	user, err := h.userService.GetUserByID(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.EnvelopeNotFound(c, "User not found")
			return
		}
		utils.EnvelopeStorageError(c, err)
		return
	}

	utils.EnvelopeData(c, user)
}
