package utils

import "testing"

func TestCleanFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cruel_summer.mp3", "cruel summer"},
		{"taylor-swift-lover.flac", "taylor swift lover"},
		{"plain.ogg", "plain"},
		{"no extension", "no extension"},
	}

	for _, tt := range tests {
		if got := CleanFilename(tt.in); got != tt.want {
			t.Errorf("CleanFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		def  string
		want string
	}{
		{"Taylor Swift", "x", "Taylor_Swift"},
		{"AC/DC", "x", "ACDC"},
		{"", "Unknown_Artist", "Unknown_Artist"},
		{"  spaced  out  ", "x", "spaced__out"},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.in, tt.def); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeYear(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2023-08-11T07:00:00Z", "2023"},
		{"1989", "1989"},
		{"19", "0000"},
		{"abcd-01-01", "0000"},
		{"", "0000"},
	}

	for _, tt := range tests {
		if got := SanitizeYear(tt.in); got != tt.want {
			t.Errorf("SanitizeYear(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidTableName(t *testing.T) {
	valid := []string{"tracks", "recently_played_songs", "_private", "Table2"}
	for _, name := range valid {
		if !ValidTableName(name) {
			t.Errorf("ValidTableName(%q) = false, want true", name)
		}
	}

	invalid := []string{"", "2tracks", "tracks;drop", "tracks table", `tracks"`, "tracks-2"}
	for _, name := range invalid {
		if ValidTableName(name) {
			t.Errorf("ValidTableName(%q) = true, want false", name)
		}
	}
}
