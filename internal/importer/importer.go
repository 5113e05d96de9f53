package importer

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/config"
	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/metadata"
	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/models"
	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/storage"
	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/utils"
)

var (
	files = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orchids_import_files_total",
			Help: "Total files seen by the importer",
		},
		[]string{"status"},
	)
	duration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orchids_import_duration_seconds",
			Help:    "Time taken to import a single file",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(files, duration)
}

// Worker scans a music directory and fills the track library: local tags
// first, iTunes enrichment for the gaps, embedded artwork into storage.
type Worker struct {
	cfg     *config.Config
	db      *gorm.DB
	storage *storage.Client
}

func New(cfg *config.Config, db *gorm.DB, store *storage.Client) *Worker {
	return &Worker{cfg: cfg, db: db, storage: store}
}

// Run does one full scan of the music directory.
func (w *Worker) Run() error {
	dir := w.cfg.Importer.MusicDir
	log.Printf("🔍 Scanning '%s'...", dir)

	var seen, imported int
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedFormat(path) {
			return nil
		}

		seen++
		if w.alreadyImported(path) {
			files.WithLabelValues("skipped").Inc()
			return nil
		}

		if err := w.processFile(path); err != nil {
			log.Printf("❌ FAILED %s: %v", filepath.Base(path), err)
			files.WithLabelValues("failure").Inc()
		} else {
			imported++
			files.WithLabelValues("success").Inc()
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}

	log.Printf("✅ Scan complete: %d imported, %d audio files total", imported, seen)
	return nil
}

// RunWatch rescans the directory on a fixed interval until ctx is
// cancelled, so new files show up in the library without a restart.
func (w *Worker) RunWatch(ctx context.Context) {
	interval := time.Duration(w.cfg.Importer.WatchIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 60 * time.Second
	}

	log.Printf("🔄 Watching '%s' every %s", w.cfg.Importer.MusicDir, interval)
	if err := w.Run(); err != nil {
		log.Printf("⚠️ Scan failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Importer stopping...")
			return
		case <-ticker.C:
			if err := w.Run(); err != nil {
				log.Printf("⚠️ Scan failed: %v", err)
			}
		}
	}
}

func (w *Worker) alreadyImported(path string) bool {
	var count int64
	w.db.Model(&models.Track{}).Where("file_path = ?", path).Count(&count)
	return count > 0
}

func (w *Worker) processFile(path string) error {
	timer := prometheus.NewTimer(duration)
	defer timer.ObserveDuration()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	meta := models.Track{
		FilePath: path,
		Format:   strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
	}

	// 1. Local tags first
	tags, tagErr := tag.ReadFrom(f)
	if tagErr == nil {
		meta.Title = strings.TrimSpace(tags.Title())
		meta.Artist = strings.TrimSpace(tags.Artist())
		meta.Album = strings.TrimSpace(tags.Album())
		meta.Genre = strings.TrimSpace(tags.Genre())
		if y := tags.Year(); y != 0 {
			meta.Year = strconv.Itoa(y)
		}
	} else {
		log.Printf("   ⚠️ No readable tags in %s", filepath.Base(path))
	}

	// 2. Embedded artwork goes into cover storage
	if tagErr == nil {
		if pic := tags.Picture(); pic != nil && len(pic.Data) > 0 {
			key := coverKey(meta.Artist, meta.Album, pic.Ext)
			if !w.storage.HasCover(key) {
				if putErr := w.storage.PutCover(key, bytes.NewReader(pic.Data), pic.MIMEType); putErr != nil {
					log.Printf("   ⚠️ Cover upload failed: %v", putErr)
				}
			}
			meta.CoverURL = w.storage.CoverURL(key)
		}
	}

	// 3. ENRICHMENT: Call iTunes if tags are missing
	if w.cfg.Importer.Enrich && (meta.Title == "" || meta.Artist == "" || meta.CoverURL == "") {
		baseName := filepath.Base(path)
		log.Printf("   🔍 Querying iTunes for: %s", baseName)
		enriched, enrichErr := metadata.EnrichViaITunes(baseName)
		if enrichErr != nil {
			log.Printf("   ⚠️ iTunes lookup failed: %v", enrichErr)
		} else {
			// Merge: local tags win, iTunes fills the gaps
			if meta.Title == "" {
				meta.Title = enriched.Title
			}
			if meta.Artist == "" {
				meta.Artist = enriched.Artist
			}
			if meta.Album == "" {
				meta.Album = enriched.Album
			}
			if meta.Genre == "" {
				meta.Genre = enriched.Genre
			}
			if meta.Year == "" {
				meta.Year = enriched.Year
			}
			if meta.CoverURL == "" {
				meta.CoverURL = enriched.ArtworkURL
			}
			log.Printf("   ✨ Enriched: %s - %s (%s)", meta.Artist, meta.Title, meta.Year)
		}
	}

	// 4. Final check: Use filename if still empty
	if meta.Title == "" {
		base := filepath.Base(path)
		meta.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if meta.Artist == "" {
		meta.Artist = "Unknown Artist"
	}

	// 5. DB Persistence
	var track models.Track
	if err := w.db.Where(models.Track{FilePath: path}).Assign(meta).FirstOrCreate(&track).Error; err != nil {
		return err
	}

	log.Printf("   ✅ IMPORTED %s - %s", track.Artist, track.Title)
	return nil
}

// coverKey builds a stable storage key per album so tracks from the same
// record share one stored image.
func coverKey(artist, album, ext string) string {
	a := utils.Sanitize(artist, "Unknown_Artist")
	b := utils.Sanitize(album, "Unknown_Album")
	e := strings.ToLower(strings.TrimPrefix(ext, "."))
	if e == "" {
		e = "jpg"
	}
	return fmt.Sprintf("%s/%s.%s", a, b, e)
}

func isSupportedFormat(filename string) bool {
	// Only formats the tag reader understands
	extensions := []string{".mp3", ".flac", ".m4a", ".mp4", ".ogg"}
	lower := strings.ToLower(filename)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
