package browse

import "testing"

func TestLooksLikeMusic(t *testing.T) {
	d := NewDetector(DefaultRules())

	tests := []struct {
		name string
		row  Row
		want bool
	}{
		{
			name: "Full music row",
			row:  Row{"title": "Cruel Summer", "artist": "Taylor Swift", "album": "Lover"},
			want: true,
		},
		{
			name: "Single matching column is enough",
			row:  Row{"song_name": "Flowers", "foo": "bar"},
			want: true,
		},
		{
			name: "Column names matched case-insensitively",
			row:  Row{"TrackName": "As It Was"},
			want: true,
		},
		{
			name: "Substring match inside longer column name",
			row:  Row{"cover_image_url": "https://example.com/a.jpg"},
			want: true,
		},
		{
			name: "No music columns at all",
			row:  Row{"foo": "bar", "baz": 12},
			want: false,
		},
		{
			name: "Empty row",
			row:  Row{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.LooksLikeMusic(tt.row); got != tt.want {
				t.Errorf("LooksLikeMusic(%v) = %v, want %v", tt.row, got, tt.want)
			}
		})
	}
}

func TestLooksLikeMusic_PermissiveIDColumn(t *testing.T) {
	// A bare id column passes on purpose. The detector is a coarse filter;
	// normalization handles whatever comes through.
	d := NewDetector(DefaultRules())
	if !d.LooksLikeMusic(Row{"id": 1, "payload": "x"}) {
		t.Error("Expected row with id column to pass the detector")
	}
}
