package browse

import (
	"math/rand"
	"testing"
)

func testNormalizer() *Normalizer {
	// Fixed seed so duration fillers are reproducible
	return NewNormalizer(DefaultRules(), rand.New(rand.NewSource(42)))
}

func TestNormalize_TitleFallbackChain(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name string
		row  Row
		want string
	}{
		{
			name: "Direct title wins",
			row:  Row{"title": "Cruel Summer", "song_name": "Wrong"},
			want: "Cruel Summer",
		},
		{
			name: "Falls through to song_name",
			row:  Row{"song_name": "Flowers"},
			want: "Flowers",
		},
		{
			name: "Falls through to track_name",
			row:  Row{"track_name": "As It Was"},
			want: "As It Was",
		},
		{
			name: "Falls through to name",
			row:  Row{"name": "Discover Weekly"},
			want: "Discover Weekly",
		},
		{
			name: "Album can stand in for a missing title",
			row:  Row{"album": "Renaissance"},
			want: "Renaissance",
		},
		{
			name: "No candidates at all",
			row:  Row{"foo": "bar"},
			want: "Unknown Title",
		},
		{
			name: "Empty candidates skip to fallback",
			row:  Row{"title": "", "song_name": "  "},
			want: "Unknown Title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.row).Title; got != tt.want {
				t.Errorf("Title = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize_PreferRealFilter(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name string
		row  Row
		want string
	}{
		{
			name: "Technical id-ish value rejected, chain continues",
			row:  Row{"title": "track_id_442", "song_name": "Espresso"},
			want: "Espresso",
		},
		{
			name: "Unknown-ish value rejected",
			row:  Row{"title": "unknown-7", "name": "Daily Mix 1"},
			want: "Daily Mix 1",
		},
		{
			name: "Test fixture value rejected",
			row:  Row{"title": "test row 3"},
			want: "Unknown Title",
		},
		{
			name: "Single character rejected",
			row:  Row{"title": "x"},
			want: "Unknown Title",
		},
		{
			name: "Filter is case-insensitive",
			row:  Row{"title": "UNKNOWN THING"},
			want: "Unknown Title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.row).Title; got != tt.want {
				t.Errorf("Title = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize_ArtistAndAlbum(t *testing.T) {
	n := testNormalizer()

	rec := n.Normalize(Row{"artist_name": "SZA", "albumname": "SOS"})
	if rec.Artist != "SZA" {
		t.Errorf("Artist = %q, want SZA", rec.Artist)
	}
	if rec.Album != "SOS" {
		t.Errorf("Album = %q, want SOS", rec.Album)
	}

	rec = n.Normalize(Row{"creator": "Bad Bunny"})
	if rec.Artist != "Bad Bunny" {
		t.Errorf("Artist via creator = %q, want Bad Bunny", rec.Artist)
	}

	rec = n.Normalize(Row{"foo": "bar"})
	if rec.Artist != "Unknown Artist" || rec.Album != "Unknown Album" {
		t.Errorf("Fallbacks = %q / %q, want Unknown Artist / Unknown Album", rec.Artist, rec.Album)
	}
}

func TestNormalize_Image(t *testing.T) {
	n := testNormalizer()

	// URLs with "id" inside must survive; the label filter does not apply
	rec := n.Normalize(Row{"cover_image": "https://cdn.example.com/id/123.jpg"})
	if rec.Image != "https://cdn.example.com/id/123.jpg" {
		t.Errorf("Image = %q, want the original URL", rec.Image)
	}

	rec = n.Normalize(Row{"cover": "https://example.com/a.png", "image": ""})
	if rec.Image != "https://example.com/a.png" {
		t.Errorf("Image = %q, want the cover value", rec.Image)
	}

	rec = n.Normalize(Row{"title": "No Art Here"})
	if rec.Image != DefaultRules().PlaceholderImage {
		t.Errorf("Image = %q, want the placeholder", rec.Image)
	}
}

func TestNormalize_Duration(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name string
		row  Row
		want int
	}{
		{name: "Int duration", row: Row{"duration": 178}, want: 178},
		{name: "Int64 duration (database driver)", row: Row{"duration": int64(200)}, want: 200},
		{name: "Float duration truncated", row: Row{"duration": 181.0}, want: 181},
		{name: "Numeric string duration", row: Row{"duration": "167"}, want: 167},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.row).Duration; got != tt.want {
				t.Errorf("Duration = %d, want %d", got, tt.want)
			}
		})
	}

	// Missing or junk duration gets decorative filler in [120, 420)
	for i := 0; i < 50; i++ {
		got := n.Normalize(Row{"title": "Filler"}).Duration
		if got < 120 || got >= 420 {
			t.Fatalf("Filler duration %d out of [120, 420)", got)
		}
	}
	got := n.Normalize(Row{"duration": "3:45"}).Duration
	if got < 120 || got >= 420 {
		t.Errorf("Unparseable duration should fall back to filler, got %d", got)
	}
}

func TestNormalize_ID(t *testing.T) {
	n := testNormalizer()

	if got := n.Normalize(Row{"id": int64(42)}).ID; got != "42" {
		t.Errorf("ID = %q, want 42", got)
	}
	if got := n.Normalize(Row{"ID": "abc-1"}).ID; got != "abc-1" {
		t.Errorf("ID = %q, want abc-1 (case-insensitive column)", got)
	}

	// Missing id mints a token; two calls should not collide
	a := n.Normalize(Row{"title": "Same Row"}).ID
	b := n.Normalize(Row{"title": "Same Row"}).ID
	if a == "" || b == "" {
		t.Fatal("Fallback ID must be non-empty")
	}
	if a == b {
		t.Error("Fallback IDs should be fresh per call")
	}
}

func TestNormalize_Idempotence(t *testing.T) {
	n := testNormalizer()
	row := Row{"title": "Anti-Hero", "artist": "Taylor Swift", "album": "folklore", "image": "https://example.com/a.jpg"}

	first := n.Normalize(row)
	second := n.Normalize(row)

	// Everything except duration/id randomness must be stable
	if first.Title != second.Title || first.Artist != second.Artist ||
		first.Album != second.Album || first.Image != second.Image {
		t.Errorf("Normalization not idempotent: %+v vs %+v", first, second)
	}
}

func TestNormalize_CaseInsensitiveColumns(t *testing.T) {
	n := testNormalizer()

	rec := n.Normalize(Row{"Title": "Espresso", "ARTIST": "Sabrina Carpenter"})
	if rec.Title != "Espresso" {
		t.Errorf("Title = %q, want Espresso", rec.Title)
	}
	if rec.Artist != "Sabrina Carpenter" {
		t.Errorf("Artist = %q, want Sabrina Carpenter", rec.Artist)
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "String trimmed", in: "  hello  ", want: "hello"},
		{name: "Bytes", in: []byte("bytes"), want: "bytes"},
		{name: "Int64", in: int64(99), want: "99"},
		{name: "Float without trailing zeros", in: 31.0, want: "31"},
		{name: "Nil", in: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stringify(tt.in); got != tt.want {
				t.Errorf("stringify(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
