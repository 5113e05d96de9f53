package browse

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Shelf identifies one of the three browse sections.
type Shelf string

const (
	ShelfRecentlyPlayed Shelf = "recently_played"
	ShelfMadeForYou     Shelf = "made_for_you"
	ShelfPopularAlbums  Shelf = "popular_albums"
)

// shelfOrder is the order name matching and tie-breaks walk the shelves.
var shelfOrder = [3]Shelf{ShelfRecentlyPlayed, ShelfMadeForYou, ShelfPopularAlbums}

// Rules holds every keyword table the pipeline consults. Keeping them as
// data (and loadable from YAML) means tuning the heuristics never touches
// classifier code.
type Rules struct {
	// Column names that mark a table as music-ish. One match is enough.
	MusicColumns []string `yaml:"music_columns"`

	// Table-name keywords per shelf, consulted in shelfOrder.
	TableKeywords map[Shelf][]string `yaml:"table_keywords"`

	// Phrases that make a row read like a curated mix rather than a song.
	ContentPhrases []string `yaml:"content_phrases"`

	// Column fallback chains for normalization, first real value wins.
	TitleColumns  []string `yaml:"title_columns"`
	ArtistColumns []string `yaml:"artist_columns"`
	AlbumColumns  []string `yaml:"album_columns"`
	ImageColumns  []string `yaml:"image_columns"`

	// Substrings that disqualify a candidate from being shown as a label.
	GenericLabels []string `yaml:"generic_labels"`

	// Fallback values when no candidate survives.
	UnknownTitle     string `yaml:"unknown_title"`
	UnknownArtist    string `yaml:"unknown_artist"`
	UnknownAlbum     string `yaml:"unknown_album"`
	PlaceholderImage string `yaml:"placeholder_image"`

	// App tables the pipeline should never read (auth data etc.).
	ExcludeTables []string `yaml:"exclude_tables"`
}

// DefaultRules returns the built-in keyword tables.
func DefaultRules() *Rules {
	return &Rules{
		MusicColumns: []string{
			"name", "title", "artist", "song", "album", "track",
			"playlist", "music", "id", "image", "cover", "duration", "time",
		},
		TableKeywords: map[Shelf][]string{
			ShelfRecentlyPlayed: {"recent", "played", "listened", "history", "activity", "song", "track"},
			ShelfMadeForYou:     {"made", "for", "you", "personal", "recommend", "playlist", "mix", "weekly", "daily", "curated", "personalized"},
			ShelfPopularAlbums:  {"popular", "album", "trending", "chart", "hit", "top", "new", "release"},
		},
		ContentPhrases: []string{
			"mix", "playlist", "weekly", "discover", "radar", "on repeat",
			"time capsule", "chill", "peaceful", "deep focus", "instrumental",
		},
		TitleColumns:  []string{"title", "song_name", "track_name", "name", "album", "album_name"},
		ArtistColumns: []string{"artist", "artist_name", "creator"},
		AlbumColumns:  []string{"album", "album_name", "albumname"},
		ImageColumns:  []string{"image", "cover_image", "cover"},
		GenericLabels: []string{"id", "unknown", "test"},

		UnknownTitle:     "Unknown Title",
		UnknownArtist:    "Unknown Artist",
		UnknownAlbum:     "Unknown Album",
		PlaceholderImage: "https://via.placeholder.com/300",

		ExcludeTables: []string{"users", "schema_migrations"},
	}
}

// LoadRules reads a YAML rules file and fills any missing sections from the
// defaults, so a partial override file stays valid.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	r.fillDefaults()

	log.Printf("🎛️ Browse rules loaded from %s (%d music columns, %d content phrases)",
		path, len(r.MusicColumns), len(r.ContentPhrases))
	return &r, nil
}

func (r *Rules) fillDefaults() {
	def := DefaultRules()

	if len(r.MusicColumns) == 0 {
		r.MusicColumns = def.MusicColumns
	}
	if len(r.TableKeywords) == 0 {
		r.TableKeywords = def.TableKeywords
	} else {
		for _, shelf := range shelfOrder {
			if len(r.TableKeywords[shelf]) == 0 {
				r.TableKeywords[shelf] = def.TableKeywords[shelf]
			}
		}
	}
	if len(r.ContentPhrases) == 0 {
		r.ContentPhrases = def.ContentPhrases
	}
	if len(r.TitleColumns) == 0 {
		r.TitleColumns = def.TitleColumns
	}
	if len(r.ArtistColumns) == 0 {
		r.ArtistColumns = def.ArtistColumns
	}
	if len(r.AlbumColumns) == 0 {
		r.AlbumColumns = def.AlbumColumns
	}
	if len(r.ImageColumns) == 0 {
		r.ImageColumns = def.ImageColumns
	}
	if len(r.GenericLabels) == 0 {
		r.GenericLabels = def.GenericLabels
	}
	if r.UnknownTitle == "" {
		r.UnknownTitle = def.UnknownTitle
	}
	if r.UnknownArtist == "" {
		r.UnknownArtist = def.UnknownArtist
	}
	if r.UnknownAlbum == "" {
		r.UnknownAlbum = def.UnknownAlbum
	}
	if r.PlaceholderImage == "" {
		r.PlaceholderImage = def.PlaceholderImage
	}
	if len(r.ExcludeTables) == 0 {
		r.ExcludeTables = def.ExcludeTables
	}
}
