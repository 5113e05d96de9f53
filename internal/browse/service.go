package browse

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/config"
	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/scheduler"
)

// Service runs the discovery pipeline and holds the latest shelves. Reads
// and refreshes may come from different goroutines; readers always see one
// fully-computed result set.
type Service struct {
	source   Source
	rules    *Rules
	detector *Detector
	norm     *Normalizer
	class    *Classifier
	limit    int
	clock    scheduler.Clock

	mu          sync.RWMutex
	shelves     Shelves
	refreshedAt time.Time
}

func New(source Source, rules *Rules, cfg *config.Config) *Service {
	if rules == nil {
		rules = DefaultRules()
	}
	limit := cfg.Browse.SampleLimit
	if limit <= 0 {
		limit = 50
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Service{
		source:   source,
		rules:    rules,
		detector: NewDetector(rules),
		norm:     NewNormalizer(rules, rng),
		class:    NewClassifier(rules),
		limit:    limit,
		clock:    scheduler.RealClock{},
	}
}

// Refresh recomputes all three shelves and swaps them in as one unit.
func (s *Service) Refresh() Shelves {
	shelves := s.compute()

	s.mu.Lock()
	s.shelves = shelves
	s.refreshedAt = s.clock.Now()
	s.mu.Unlock()

	shelfSize.WithLabelValues(string(ShelfRecentlyPlayed)).Set(float64(len(shelves.RecentlyPlayed)))
	shelfSize.WithLabelValues(string(ShelfMadeForYou)).Set(float64(len(shelves.MadeForYou)))
	shelfSize.WithLabelValues(string(ShelfPopularAlbums)).Set(float64(len(shelves.PopularAlbums)))

	return shelves
}

// Shelves returns the latest computed result set. Empty until the first
// refresh completes.
func (s *Service) Shelves() Shelves {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shelves
}

// LastRefreshed reports when the shelves were last rebuilt, zero before the
// first cycle.
func (s *Service) LastRefreshed() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

func (s *Service) compute() Shelves {
	timer := prometheus.NewTimer(refreshDuration)
	defer timer.ObserveDuration()

	tables, err := s.source.ListTables()
	if err != nil {
		// No backend means empty shelves this cycle, nothing more.
		log.Printf("⚠️ Table discovery failed: %v", err)
		refreshes.WithLabelValues("failure").Inc()
		return Shelves{}
	}

	var detected []TableRows
	for _, table := range tables {
		if s.excluded(table) {
			continue
		}

		rows, err := s.source.FetchRows(table, s.limit)
		if err != nil {
			log.Printf("⚠️ Fetch failed for table %s: %v", table, err)
			continue
		}
		if len(rows) == 0 || !s.detector.LooksLikeMusic(rows[0]) {
			continue
		}

		records := make([]Record, 0, len(rows))
		for _, row := range rows {
			rec := s.norm.Normalize(row)
			// Namespace by table so ids stay unique across the batch.
			rec.ID = fmt.Sprintf("%s-%s", table, rec.ID)
			records = append(records, rec)
		}
		detected = append(detected, TableRows{Table: table, Rows: records})
	}

	shelves := s.class.Classify(detected)
	refreshes.WithLabelValues("success").Inc()
	return shelves
}

// excluded filters engine catalogs and app tables that should never feed
// the shelves.
func (s *Service) excluded(table string) bool {
	lower := strings.ToLower(table)
	if strings.HasPrefix(lower, "sqlite_") || strings.HasPrefix(lower, "pg_") {
		return true
	}
	for _, t := range s.rules.ExcludeTables {
		if lower == strings.ToLower(t) {
			return true
		}
	}
	return false
}
