package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/models"
)

// PlaylistHandler handles playlist-related requests independently of the main server
type PlaylistHandler struct {
	db *gorm.DB
}

// NewPlaylistHandler creates a new PlaylistHandler instance
func NewPlaylistHandler(db *gorm.DB) *PlaylistHandler {
	return &PlaylistHandler{db: db}
}

// CreatePlaylist creates a new empty playlist container
func (h *PlaylistHandler) CreatePlaylist(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	playlist := models.Playlist{
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
	}

	if err := h.db.Create(&playlist).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create playlist"})
		return
	}

	c.JSON(http.StatusCreated, playlist)
}

// GetPlaylist returns one playlist with its tracks in playlist order
func (h *PlaylistHandler) GetPlaylist(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid playlist ID"})
		return
	}

	var playlist models.Playlist
	if err := h.db.First(&playlist, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Playlist not found"})
		return
	}

	// Load tracks through the join table so the saved sort order survives.
	// A plain Preload("Tracks") hands them back in whatever order the
	// database feels like.
	h.db.Model(&models.Track{}).
		Joins("JOIN playlist_tracks ON playlist_tracks.track_id = tracks.id").
		Where("playlist_tracks.playlist_id = ?", id).
		Order("playlist_tracks.sort_order ASC").
		Find(&playlist.Tracks)

	c.JSON(http.StatusOK, playlist)
}

// GetPlaylists fetches all playlists
func (h *PlaylistHandler) GetPlaylists(c *gin.Context) {
	var playlists []models.Playlist

	result := h.db.Preload("Tracks").Order("name asc").Find(&playlists)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch playlists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": playlists,
	})
}

func (h *PlaylistHandler) UpdatePlaylist(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid playlist ID"})
		return
	}

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
		CoverURL    string `json:"cover_url"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var playlist models.Playlist
	if err := h.db.First(&playlist, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Playlist not found"})
		return
	}

	// Update fields if they were provided in the JSON payload
	if input.Name != "" {
		playlist.Name = input.Name
	}
	// We always update the description (even if empty string) so users can clear it
	playlist.Description = input.Description

	if input.Color != "" {
		playlist.Color = input.Color
	}
	if input.CoverURL != "" {
		playlist.CoverURL = input.CoverURL
	}

	if err := h.db.Save(&playlist).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update playlist metadata"})
		return
	}

	c.JSON(http.StatusOK, playlist)
}

// UpdatePlaylistTracks reorders and replaces tracks in a playlist
func (h *PlaylistHandler) UpdatePlaylistTracks(c *gin.Context) {
	idStr := c.Param("id")
	playlistID, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid playlist ID"})
		return
	}

	var input struct {
		TrackIDs []uint `json:"track_ids" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Track IDs"})
		return
	}

	// Declare totalDuration outside the transaction so we can return it at the end
	var totalDuration int

	err = h.db.Transaction(func(tx *gorm.DB) error {
		// 1. Remove existing associations
		if err := tx.Where("playlist_id = ?", playlistID).Delete(&models.PlaylistTrack{}).Error; err != nil {
			return err
		}

		// 2. Insert new associations and calculate duration
		for i, trackID := range input.TrackIDs {
			assoc := models.PlaylistTrack{
				PlaylistID: uint(playlistID),
				TrackID:    trackID,
				SortOrder:  i,
			}
			if err := tx.Create(&assoc).Error; err != nil {
				return err
			}

			// Fetch track to get duration
			var t models.Track
			if err := tx.First(&t, trackID).Error; err != nil {
				return err
			}

			totalDuration += t.Duration
		}

		// 3. Update Playlist metadata
		return tx.Model(&models.Playlist{}).Where("id = ?", playlistID).Update("total_duration", totalDuration).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"total_duration": totalDuration,
	})
}

// DeletePlaylist removes a playlist and cleans up its track associations
func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	// Use a transaction to ensure we delete the playlist and its associations cleanly
	err = h.db.Transaction(func(tx *gorm.DB) error {
		// 1. Delete the associations in the join table first
		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistTrack{}).Error; err != nil {
			return err
		}

		// 2. Delete the playlist itself
		if err := tx.Delete(&models.Playlist{}, id).Error; err != nil {
			return err
		}
		return nil
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete playlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Playlist deleted successfully"})
}
