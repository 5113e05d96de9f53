package models

import (
	"time"

	"gorm.io/gorm"
)

// Track represents one song in the catalog
type Track struct {
	gorm.Model

	// Core Metadata
	Title  string `gorm:"index"`
	Artist string `gorm:"index"`
	Album  string `gorm:"index"`
	Genre  string `gorm:"index"`
	Year   string

	// Artwork
	CoverURL string

	// Tech Details
	Duration int    // In seconds
	Format   string // mp3, flac, etc.
	FilePath string `gorm:"uniqueIndex"` // Where the importer found the file

	// Listening stats
	PlayCount  int        `gorm:"default:0"`
	LastPlayed *time.Time `gorm:"index"`
}

// PlayHistory records every time a track is played
type PlayHistory struct {
	gorm.Model
	TrackID  uint
	Track    Track
	PlayedAt time.Time `gorm:"index"`
}
