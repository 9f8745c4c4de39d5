package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/enigma-chat/enigma/internal/services"
	"github.com/enigma-chat/enigma/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps the /img payload read into memory.
const maxUploadBytes = 10 << 20

type CommandHandler struct {
	executor *services.CommandExecutor
}

func NewCommandHandler(executor *services.CommandExecutor) *CommandHandler {
	return &CommandHandler{executor: executor}
}

// Execute runs one slash-command for the session identity. The body is
// either JSON {input} or, for /img, a multipart form with an input field and
// an image file. Re-submitting is not idempotent: a repeated /msg resends
// the message.
func (h *CommandHandler) Execute(c *gin.Context) {
	id, ok := services.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("no session", "NO_SESSION"))
		return
	}

	var input string
	var upload *services.MediaUpload

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		input = c.PostForm("input")
		if header, err := c.FormFile("image"); err == nil {
			file, err := header.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("unreadable upload", "INVALID_REQUEST"))
				return
			}
			defer file.Close()
			data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
			if err != nil {
				c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("unreadable upload", "INVALID_REQUEST"))
				return
			}
			upload = &services.MediaUpload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			}
		}
	} else {
		var req httpdto.CommandRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
			return
		}
		input = req.Input
	}

	outcome, err := h.executor.Execute(c.Request.Context(), id, input, upload)
	if err != nil {
		respondUnavailable(c, err)
		return
	}

	// The outcome IS the wire envelope: {status, message, ...}.
	c.JSON(http.StatusOK, outcome)
}
