// internal/handlers/message.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swellapp/swell-backend/internal/middleware"
	"github.com/swellapp/swell-backend/internal/services"
	"github.com/swellapp/swell-backend/internal/utils"
)

type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// POST /send_message
func (h *MessageHandler) SendMessage(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		utils.EnvelopeBadToken(c)
		return
	}

	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.EnvelopeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.messageService.Send(callerID, &req)
	if err != nil {
		if len(utils.GetValidationErrors(errors.Unwrap(err))) > 0 {
			utils.EnvelopeError(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.EnvelopeStorageError(c, err)
		return
	}

	utils.EnvelopeData(c, message)
}

// POST /get_all_messages
//
// The caller must be one of the two participants; anyone else is refused
// before the storage layer is consulted.
func (h *MessageHandler) GetAllMessages(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		utils.EnvelopeBadToken(c)
		return
	}

	var req services.AllMessagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.EnvelopeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if callerID != req.User1 && callerID != req.User2 {
		utils.EnvelopeError(c, http.StatusUnauthorized, "not a conversation participant")
		return
	}

	messages, err := h.messageService.Conversation(req.User1, req.User2)
	if err != nil {
		utils.EnvelopeStorageError(c, err)
		return
	}

	utils.EnvelopeData(c, messages)
}

// GET /get_my_threads
func (h *MessageHandler) GetMyThreads(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		utils.EnvelopeBadToken(c)
		return
	}

	threads, err := h.messageService.Threads(callerID)
	if err != nil {
		utils.EnvelopeStorageError(c, err)
		return
	}

	utils.EnvelopeData(c, threads)
}
