package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/browse"
)

// BrowseHandler serves the precomputed home shelves
type BrowseHandler struct {
	svc *browse.Service
}

// NewBrowseHandler creates a new BrowseHandler instance
func NewBrowseHandler(svc *browse.Service) *BrowseHandler {
	return &BrowseHandler{svc: svc}
}

// GetBrowse returns the three shelves from the latest refresh cycle.
// The refresher rebuilds them in the background; this is a pure read.
func (h *BrowseHandler) GetBrowse(c *gin.Context) {
	shelves := h.svc.Shelves()

	c.JSON(http.StatusOK, gin.H{
		"data": shelves,
		"meta": gin.H{
			"total":        shelves.Total(),
			"refreshed_at": h.svc.LastRefreshed(),
		},
	})
}
