package handler

import (
	"net/http"

	"github.com/enigma-chat/enigma/internal/services"
	"github.com/enigma-chat/enigma/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	stats *services.StatsService
}

func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get is the poll endpoint: it never increments the visit counter.
func (h *StatsHandler) Get(c *gin.Context) {
	snapshot, err := h.stats.Snapshot(c.Request.Context())
	if err != nil {
		respondUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(snapshot))
}

// Visit records one page-level visit and returns the updated stats.
func (h *StatsHandler) Visit(c *gin.Context) {
	snapshot, err := h.stats.RecordVisit(c.Request.Context())
	if err != nil {
		respondUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(snapshot))
}
