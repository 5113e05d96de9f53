package database

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/config"
	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/models"
)

// SeedAdminUser creates the initial admin account from config.
// Skipped when no admin password is configured; credentials never live in code.
func SeedAdminUser(db *gorm.DB, cfg *config.Config) {
	if cfg.Auth.AdminPassword == "" {
		log.Println("⚠️ No admin password configured (ORCHIDS_AUTH_ADMIN_PASSWORD), skipping admin seed")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("⚠️ Failed to hash admin password: %v", err)
		return
	}

	admin := models.Users{
		Username:     cfg.Auth.AdminUser,
		PasswordHash: string(hash),
		Role:         "admin",
	}

	db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoNothing: true,
	}).Create(&admin)
}

// Demo listening-history rows. Deliberately named song_name/image so the
// browse pipeline has to work through its fallback chains.
type recentlyPlayedSong struct {
	ID       uint `gorm:"primaryKey"`
	SongName string
	Artist   string
	Album    string
	Image    string
	Duration int
	PlayedAt time.Time
}

func (recentlyPlayedSong) TableName() string { return "recently_played_songs" }

type madeForYouMix struct {
	ID          uint `gorm:"primaryKey"`
	Name        string
	Description string
	Image       string
}

func (madeForYouMix) TableName() string { return "made_for_you" }

type popularAlbum struct {
	ID         uint `gorm:"primaryKey"`
	AlbumName  string
	Artist     string
	CoverImage string
	Year       int
}

func (popularAlbum) TableName() string { return "popular_albums" }

// SeedDemoTables populates three standalone music tables so the browse
// shelves have content on a fresh install. Each table uses a different
// column vocabulary on purpose.
func SeedDemoTables(db *gorm.DB) {
	if err := db.AutoMigrate(&recentlyPlayedSong{}, &madeForYouMix{}, &popularAlbum{}); err != nil {
		log.Printf("⚠️ Demo table migration failed: %v", err)
		return
	}

	var count int64
	db.Table("recently_played_songs").Count(&count)
	if count > 0 {
		return // Already seeded
	}

	now := time.Now()
	songs := []recentlyPlayedSong{
		{SongName: "Cruel Summer", Artist: "Taylor Swift", Album: "Lover", Image: "https://picsum.photos/seed/cruel-summer/300", Duration: 178, PlayedAt: now.Add(-10 * time.Minute)},
		{SongName: "Blinding Lights", Artist: "The Weeknd", Album: "After Hours", Image: "https://picsum.photos/seed/blinding-lights/300", Duration: 200, PlayedAt: now.Add(-25 * time.Minute)},
		{SongName: "As It Was", Artist: "Harry Styles", Album: "Harry's House", Image: "https://picsum.photos/seed/as-it-was/300", Duration: 167, PlayedAt: now.Add(-1 * time.Hour)},
		{SongName: "Flowers", Artist: "Miley Cyrus", Album: "Endless Summer Vacation", Image: "https://picsum.photos/seed/flowers/300", Duration: 200, PlayedAt: now.Add(-2 * time.Hour)},
		{SongName: "August", Artist: "Taylor Swift", Album: "folklore", Image: "https://picsum.photos/seed/august/300", Duration: 261, PlayedAt: now.Add(-3 * time.Hour)},
		{SongName: "Espresso", Artist: "Sabrina Carpenter", Album: "Short n' Sweet", Image: "https://picsum.photos/seed/espresso/300", Duration: 175, PlayedAt: now.Add(-5 * time.Hour)},
	}

	mixes := []madeForYouMix{
		{Name: "Discover Weekly", Description: "Your weekly mixtape of fresh music", Image: "https://picsum.photos/seed/discover-weekly/300"},
		{Name: "Daily Mix 1", Description: "Taylor Swift, Olivia Rodrigo, Gracie Abrams and more", Image: "https://picsum.photos/seed/daily-mix-1/300"},
		{Name: "Release Radar", Description: "Catch all the latest music from artists you follow", Image: "https://picsum.photos/seed/release-radar/300"},
		{Name: "Chill Mix", Description: "Laid back tracks for winding down", Image: "https://picsum.photos/seed/chill-mix/300"},
		{Name: "Deep Focus", Description: "Keep calm and focus with ambient and post-rock", Image: "https://picsum.photos/seed/deep-focus/300"},
		{Name: "On Repeat", Description: "Songs you can't stop playing", Image: "https://picsum.photos/seed/on-repeat/300"},
	}

	albums := []popularAlbum{
		{AlbumName: "1989 (Taylor's Version)", Artist: "Taylor Swift", CoverImage: "https://picsum.photos/seed/1989-tv/300", Year: 2023},
		{AlbumName: "Harry's House", Artist: "Harry Styles", CoverImage: "https://picsum.photos/seed/harrys-house/300", Year: 2022},
		{AlbumName: "Un Verano Sin Ti", Artist: "Bad Bunny", CoverImage: "https://picsum.photos/seed/un-verano/300", Year: 2022},
		{AlbumName: "SOS", Artist: "SZA", CoverImage: "https://picsum.photos/seed/sos/300", Year: 2022},
		{AlbumName: "Renaissance", Artist: "Beyoncé", CoverImage: "https://picsum.photos/seed/renaissance/300", Year: 2022},
		{AlbumName: "Guts", Artist: "Olivia Rodrigo", CoverImage: "https://picsum.photos/seed/guts/300", Year: 2023},
	}

	log.Printf("🌱 Seeding demo music: %d songs, %d mixes, %d albums...", len(songs), len(mixes), len(albums))
	db.Create(&songs)
	db.Create(&mixes)
	db.Create(&albums)
}
