package handler

import (
	"net/http"

	"github.com/enigma-chat/enigma/internal/transport/httpdto"
	"github.com/enigma-chat/enigma/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondUnavailable surfaces a storage-layer failure. These are the only
// fatal class: the request aborts with 503 and the error is logged, never
// swallowed.
func respondUnavailable(c *gin.Context, err error) {
	if l := logger.GetGlobalLogger(); l != nil {
		l.WithContext(c.Request.Context()).Sugar().Errorf("storage failure: %v", err)
	}
	c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse("service unavailable", "SERVICE_UNAVAILABLE"))
}
