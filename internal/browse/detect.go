package browse

import "strings"

// Detector decides from column names alone whether a table looks like music
// data. Deliberately permissive: a single matching column passes the table.
// False positives are fine because normalization degrades to placeholders.
type Detector struct {
	rules *Rules
}

func NewDetector(rules *Rules) *Detector {
	return &Detector{rules: rules}
}

// LooksLikeMusic checks one sample row's column names against the music
// column keywords, case-insensitively.
func (d *Detector) LooksLikeMusic(sample Row) bool {
	for col := range sample {
		lower := strings.ToLower(col)
		for _, kw := range d.rules.MusicColumns {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
