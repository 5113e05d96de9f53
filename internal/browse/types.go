package browse

// Row is one database row as fetched, column name to scalar value. The
// schema is whatever the table happens to have; nothing here is known
// statically.
type Row map[string]any

// Record is the canonical track shape every shelf holds. Every field is
// always populated; missing source data is covered by placeholders, so
// renderers never need nil checks.
type Record struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Image    string `json:"image"`
	Duration int    `json:"duration"` // Seconds. Non-authoritative when the source row had none.
}

// Shelves is one fully-computed browse result set. A refresh replaces the
// whole value, readers never see a half-built set.
type Shelves struct {
	RecentlyPlayed []Record `json:"recently_played"`
	MadeForYou     []Record `json:"made_for_you"`
	PopularAlbums  []Record `json:"popular_albums"`
}

// Total counts records across all three shelves.
func (s *Shelves) Total() int {
	return len(s.RecentlyPlayed) + len(s.MadeForYou) + len(s.PopularAlbums)
}

func (s *Shelves) bucket(shelf Shelf) *[]Record {
	switch shelf {
	case ShelfMadeForYou:
		return &s.MadeForYou
	case ShelfPopularAlbums:
		return &s.PopularAlbums
	default:
		return &s.RecentlyPlayed
	}
}
