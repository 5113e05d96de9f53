package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/storage"
)

// CoverHandler serves album artwork out of the storage backend
type CoverHandler struct {
	store *storage.Client
}

// NewCoverHandler creates a new CoverHandler instance
func NewCoverHandler(store *storage.Client) *CoverHandler {
	return &CoverHandler{store: store}
}

// GetCover streams one cover image, whichever provider holds it
func (h *CoverHandler) GetCover(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("path"), "/")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing cover key"})
		return
	}

	obj, err := h.store.GetCover(key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cover not found"})
		return
	}

	// Always close the storage stream to prevent connection leaks
	defer obj.Body.Close()
	if seeker, ok := obj.Body.(io.ReadSeeker); ok {
		http.ServeContent(c.Writer, c.Request, key, obj.LastModified, seeker)
		return
	}

	// Fallback for non-seekable streams (S3 bodies)
	extraHeaders := map[string]string{
		"Cache-Control": "public, max-age=86400",
	}
	c.DataFromReader(http.StatusOK, obj.ContentLength, obj.ContentType, obj.Body, extraHeaders)
}
