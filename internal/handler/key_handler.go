package handler

import (
	"net/http"

	"github.com/enigma-chat/enigma/internal/services"
	"github.com/enigma-chat/enigma/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type KeyHandler struct {
	chat *services.ChatService
}

func NewKeyHandler(chat *services.ChatService) *KeyHandler {
	return &KeyHandler{chat: chat}
}

// Get returns the keys this handle has minted via the in-band marker, plus
// any keys other users shared with it. Clients use these to decrypt the
// encrypted entries in the feed.
func (h *KeyHandler) Get(c *gin.Context) {
	id, _ := services.IdentityFromContext(c.Request.Context())
	if id.Handle == "" {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.KeysResponse{
			Keys:   []httpdto.KeyGrantDTO{},
			Shared: []httpdto.ShareGrantDTO{},
		}))
		return
	}

	ctx := c.Request.Context()
	grants, err := h.chat.Keys(ctx, id.Handle)
	if err != nil {
		respondUnavailable(c, err)
		return
	}
	shares, err := h.chat.SharedWith(ctx, id.Handle)
	if err != nil {
		respondUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.KeysResponse{
		Keys:   httpdto.FromKeyGrants(grants),
		Shared: httpdto.FromShareGrants(shares),
	}))
}
