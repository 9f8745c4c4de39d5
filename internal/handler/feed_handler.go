package handler

import (
	"net/http"

	"github.com/enigma-chat/enigma/internal/services"
	"github.com/enigma-chat/enigma/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	chat *services.ChatService
}

func NewFeedHandler(chat *services.ChatService) *FeedHandler {
	return &FeedHandler{chat: chat}
}

// Get returns the merged public+private feed for the session's handle,
// oldest first. Safe to poll: reading has no side effects.
func (h *FeedHandler) Get(c *gin.Context) {
	id, _ := services.IdentityFromContext(c.Request.Context())

	items, err := h.chat.Feed(c.Request.Context(), id.Handle)
	if err != nil {
		respondUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FeedResponse{Messages: items}))
}
