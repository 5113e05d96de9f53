package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/models"
)

// TrackHandler handles library track requests
type TrackHandler struct {
	db *gorm.DB
}

// NewTrackHandler creates a new TrackHandler instance
func NewTrackHandler(db *gorm.DB) *TrackHandler {
	return &TrackHandler{db: db}
}

// LibraryTrack is the lightweight list shape. It keeps a 200-row page from
// dragging every column over the network.
type LibraryTrack struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	CoverURL string `json:"cover_url"`
	Duration int    `json:"duration"`
}

// GetTracks returns a paginated, lightweight list of tracks
func (h *TrackHandler) GetTracks(c *gin.Context) {
	// 1. Parse Query Parameters
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	search := c.Query("search")
	sortBy := c.DefaultQuery("sort", "newest")

	if limit > 200 {
		limit = 200 // Hard cap to protect the server
	}

	// 2. Build the Query
	query := h.db.Model(&models.Track{})

	// 3. Apply Search
	if search != "" {
		searchTerm := "%" + search + "%"
		// LOWER(...) LIKE instead of ILIKE so postgres, sqlite and
		// sqlserver all match case-insensitively.
		query = query.Where("LOWER(artist) LIKE LOWER(?) OR LOWER(title) LIKE LOWER(?)", searchTerm, searchTerm)
	}

	// 4. Get Total Count (Required for infinite scroll math on the client)
	var total int64
	query.Count(&total)

	// 5. Apply Sorting
	switch sortBy {
	case "alphabetical":
		query = query.Order("title ASC")
	case "plays":
		query = query.Order("play_count DESC")
	default: // "newest"
		// Because ID is sequential, sorting by ID DESC is much faster
		// than sorting by created_at DESC, and yields the same result.
		query = query.Order("id DESC")
	}

	// 6. Fetch ONLY the required columns into our lightweight struct
	var tracks []LibraryTrack
	result := query.Select("id, title, artist, album, cover_url, duration").
		Limit(limit).
		Offset(offset).
		Find(&tracks)

	if result.Error != nil {
		slog.Error("Failed to fetch tracks", "error", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// 7. Return Response
	c.JSON(http.StatusOK, gin.H{
		"data": tracks,
		"meta": gin.H{
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}

// GetTrack returns the FULL metadata for a single track
func (h *TrackHandler) GetTrack(c *gin.Context) {
	id := c.Param("id")

	var track models.Track
	if err := h.db.First(&track, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Track not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, track)
}

func (h *TrackHandler) UpdateTrack(c *gin.Context) {
	id := c.Param("id")

	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	// Protect read-only fields from being modified via the API
	delete(updateData, "id")
	delete(updateData, "file_path")
	delete(updateData, "play_count")
	delete(updateData, "last_played")

	// Perform the update
	result := h.db.Model(&models.Track{}).Where("id = ?", id).Updates(updateData)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update track metadata"})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Track not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Track updated successfully"})
}

// DeleteTrack removes a track and cleans up its playlist associations
func (h *TrackHandler) DeleteTrack(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid track ID"})
		return
	}

	var affected int64
	err = h.db.Transaction(func(tx *gorm.DB) error {
		// 1. Drop the playlist links first
		if err := tx.Where("track_id = ?", id).Delete(&models.PlaylistTrack{}).Error; err != nil {
			return err
		}

		// 2. Soft delete the track itself
		result := tx.Delete(&models.Track{}, id)
		affected = result.RowsAffected
		return result.Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete track"})
		return
	}

	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Track not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Track deleted successfully"})
}

// RecordPlay bumps the play counter and appends to the listening history.
// The history rows feed the Recently Played shelf on the next refresh.
func (h *TrackHandler) RecordPlay(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid track ID"})
		return
	}

	now := time.Now()
	var track models.Track

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&track, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"play_count":  gorm.Expr("play_count + 1"),
			"last_played": now,
		}
		if err := tx.Model(&track).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Create(&models.PlayHistory{TrackID: track.ID, PlayedAt: now}).Error
	})

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Track not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record play"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "recorded",
		"track_id":   track.ID,
		"play_count": track.PlayCount + 1,
	})
}
