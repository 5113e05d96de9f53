package models

import (
	"time"

	"gorm.io/gorm"
)

// Playlist represents a curated collection of tracks
type Playlist struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // Hiding DeletedAt from the API

	Name          string  `json:"name" gorm:"not null"`
	Description   string  `json:"description"`
	CoverURL      string  `json:"cover_url"`
	Color         string  `json:"color" gorm:"default:'#3182ce'"`
	TotalDuration int     `json:"total_duration"`
	Tracks        []Track `json:"tracks" gorm:"many2many:playlist_tracks;"`
}

// PlaylistTrack is the join table that stores the specific order of tracks
type PlaylistTrack struct {
	PlaylistID uint `gorm:"primaryKey" json:"playlist_id"`
	TrackID    uint `gorm:"primaryKey" json:"track_id"`
	SortOrder  int  `json:"sort_order"`
}
