package agent

import "testing"

func TestExtractSQL(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			"Fenced with language tag",
			"Here you go:\n```sql\nSELECT * FROM tracks;\n```\nLet me know!",
			"SELECT * FROM tracks;",
		},
		{
			"Fenced without tag",
			"```\nSELECT count(*) FROM playlists\n```",
			"SELECT count(*) FROM playlists",
		},
		{
			"Uppercase tag",
			"```SQL\nSELECT 1\n```",
			"SELECT 1",
		},
		{
			"Bare statement",
			"  SELECT title FROM tracks LIMIT 5  ",
			"SELECT title FROM tracks LIMIT 5",
		},
		{
			"Multiline statement",
			"```sql\nSELECT title, artist\nFROM tracks\nWHERE artist = 'Taylor Swift'\n```",
			"SELECT title, artist\nFROM tracks\nWHERE artist = 'Taylor Swift'",
		},
		{
			"First of two blocks wins",
			"```sql\nSELECT 1\n```\nor maybe\n```sql\nSELECT 2\n```",
			"SELECT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSQL(tt.response); got != tt.want {
				t.Errorf("ExtractSQL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Go fence", "```go\npackage main\n```", "package main"},
		{"Plain fence", "```\nhello: world\n```", "hello: world"},
		{"No fence passes through", "plain content", "plain content"},
		{"Unclosed fence passes through", "```go\npackage main", "```go\npackage main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.in); got != tt.want {
				t.Errorf("StripFences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsReadOnly(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want bool
	}{
		{"Plain select", "SELECT * FROM tracks", true},
		{"Lowercase select", "select count(*) from playlists", true},
		{"Leading comment", "-- most played\nSELECT title FROM tracks", true},
		{"Explain", "EXPLAIN SELECT 1", true},
		{"Pragma", "PRAGMA table_info(tracks)", true},
		{"Select mentioning created_at", "SELECT created_at FROM tracks", true},
		{"Select from updates table", "SELECT * FROM updates", true},

		{"Insert", "INSERT INTO tracks (title) VALUES ('x')", false},
		{"Update", "UPDATE tracks SET play_count = 0", false},
		{"Delete", "delete from play_histories", false},
		{"Drop", "DROP TABLE tracks", false},
		{"Sneaky second statement", "SELECT 1; DROP TABLE tracks", false},
		{"CTE fronting a delete", "WITH old AS (SELECT id FROM tracks) DELETE FROM tracks WHERE id IN (SELECT id FROM old)", false},
		{"CTE fronting a select", "WITH top AS (SELECT id FROM tracks ORDER BY play_count DESC LIMIT 5) SELECT * FROM top", true},
		{"Empty string", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsReadOnly(tt.sql); got != tt.want {
				t.Errorf("IsReadOnly(%q) = %v, want %v", tt.sql, got, tt.want)
			}
		})
	}
}
