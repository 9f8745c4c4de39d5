package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/enigma-chat/enigma/internal/services"
	"github.com/enigma-chat/enigma/internal/transport/httpdto"
	enigma_errors "github.com/enigma-chat/enigma/pkg/errors"

	"github.com/gin-gonic/gin"
)

type CallHandler struct {
	calls *services.CallService
}

func NewCallHandler(calls *services.CallService) *CallHandler {
	return &CallHandler{calls: calls}
}

// Pending lists invites still waiting on this session's handle. Clients poll
// this alongside the feed to learn about incoming video requests.
func (h *CallHandler) Pending(c *gin.Context) {
	id, _ := services.IdentityFromContext(c.Request.Context())
	if id.Handle == "" {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.PendingInvitesResponse{Invites: []httpdto.InviteDTO{}}))
		return
	}

	invites, err := h.calls.PendingFor(c.Request.Context(), id.Handle)
	if err != nil {
		respondUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.PendingInvitesResponse{Invites: httpdto.FromInvites(invites)}))
}

// PostSignal appends one handshake record to the room. Participants only;
// everyone else gets a 404 so room tokens stay unguessable.
func (h *CallHandler) PostSignal(c *gin.Context) {
	id, _ := services.IdentityFromContext(c.Request.Context())
	room := c.Param("room")

	var req httpdto.SignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	err := h.calls.Signal(c.Request.Context(), id.Handle, room, req.Kind, req.Payload)
	switch {
	case errors.Is(err, enigma_errors.ErrNotFound):
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("room not found", "NOT_FOUND"))
	case errors.Is(err, enigma_errors.ErrInvalidTransition):
		c.JSON(http.StatusConflict, httpdto.NewErrorResponse("call was rejected", "CALL_CLOSED"))
	case err != nil:
		respondUnavailable(c, err)
	default:
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(struct{}{}))
	}
}

// GetSignals returns the room's handshake records past ?offset=N.
func (h *CallHandler) GetSignals(c *gin.Context) {
	id, _ := services.IdentityFromContext(c.Request.Context())
	room := c.Param("room")

	offset, err := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid offset", "INVALID_REQUEST"))
		return
	}

	signals, err := h.calls.Signals(c.Request.Context(), id.Handle, room, offset)
	switch {
	case errors.Is(err, enigma_errors.ErrNotFound):
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("room not found", "NOT_FOUND"))
	case err != nil:
		respondUnavailable(c, err)
	default:
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.SignalsResponse{Signals: signals}))
	}
}
