package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/browse"
	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/models"
)

// StatsHandler aggregates dashboard numbers from the typed library and the
// browse pipeline
type StatsHandler struct {
	db     *gorm.DB
	browse *browse.Service
}

// NewStatsHandler creates a new StatsHandler instance
func NewStatsHandler(db *gorm.DB, svc *browse.Service) *StatsHandler {
	return &StatsHandler{db: db, browse: svc}
}

// GetStats returns aggregated dashboard statistics
func (h *StatsHandler) GetStats(c *gin.Context) {
	var totalTracks int64
	var totalPlaylists int64
	var totalPlays int64
	var uniqueArtists int64

	// 1. Library Aggregates
	h.db.Model(&models.Track{}).Count(&totalTracks)
	h.db.Model(&models.Playlist{}).Count(&totalPlaylists)
	h.db.Model(&models.PlayHistory{}).Count(&totalPlays)
	h.db.Model(&models.Track{}).Distinct("artist").Count(&uniqueArtists)

	// 2. Fetch Recent Tracks (History)
	var recentTracks []models.Track
	h.db.Table("tracks").
		Joins("JOIN play_histories ON play_histories.track_id = tracks.id").
		Order("play_histories.played_at DESC").
		Limit(5).
		Find(&recentTracks)

	// 3. Shelf fill levels from the last browse cycle
	shelves := h.browse.Shelves()

	// 4. Build Response
	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"total_tracks":    totalTracks,
			"total_playlists": totalPlaylists,
			"total_plays":     totalPlays,
			"unique_artists":  uniqueArtists,
		},
		"shelves": gin.H{
			"recently_played": len(shelves.RecentlyPlayed),
			"made_for_you":    len(shelves.MadeForYou),
			"popular_albums":  len(shelves.PopularAlbums),
			"refreshed_at":    h.browse.LastRefreshed(),
		},
		"recent_tracks": recentTracks,
	})
}
