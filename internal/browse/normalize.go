package browse

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Normalizer maps arbitrary row shapes onto Records via ordered column
// fallbacks. It is a pure lookup over the row; no reflection, no schema.
type Normalizer struct {
	rules *Rules
	rng   *rand.Rand
}

// NewNormalizer builds a normalizer around a rule set. The rng feeds the
// duration filler; tests pass a fixed seed for reproducible output.
func NewNormalizer(rules *Rules, rng *rand.Rand) *Normalizer {
	return &Normalizer{rules: rules, rng: rng}
}

// Normalize returns a Record with every field populated.
func (n *Normalizer) Normalize(row Row) Record {
	return Record{
		ID:       n.resolveID(row),
		Title:    n.resolveLabel(row, n.rules.TitleColumns, n.rules.UnknownTitle),
		Artist:   n.resolveLabel(row, n.rules.ArtistColumns, n.rules.UnknownArtist),
		Album:    n.resolveLabel(row, n.rules.AlbumColumns, n.rules.UnknownAlbum),
		Image:    n.resolveImage(row),
		Duration: n.resolveDuration(row),
	}
}

// resolveLabel walks the fallback chain and returns the first candidate
// that reads like a real human-facing value.
func (n *Normalizer) resolveLabel(row Row, chain []string, fallback string) string {
	for _, col := range chain {
		v, ok := lookup(row, col)
		if !ok {
			continue
		}
		if s := stringify(v); n.isRealLabel(s) {
			return s
		}
	}
	return fallback
}

// isRealLabel rejects empty, single-character, and technical-looking values
// so raw identifiers never show up as display text.
func (n *Normalizer) isRealLabel(s string) bool {
	if len(s) <= 1 {
		return false
	}
	lower := strings.ToLower(s)
	for _, g := range n.rules.GenericLabels {
		if strings.Contains(lower, g) {
			return false
		}
	}
	return true
}

// resolveImage is looser than the label filter: URLs routinely contain "id"
// substrings, so only emptiness disqualifies a candidate.
func (n *Normalizer) resolveImage(row Row) string {
	for _, col := range n.rules.ImageColumns {
		v, ok := lookup(row, col)
		if !ok {
			continue
		}
		if s := stringify(v); len(s) > 1 {
			return s
		}
	}
	return n.rules.PlaceholderImage
}

// resolveDuration takes the row's duration when it parses as a positive
// number. Otherwise it fills in a random 2 to 7 minute value; that filler is
// decoration for missing data, never an authoritative length.
func (n *Normalizer) resolveDuration(row Row) int {
	if v, ok := lookup(row, "duration"); ok {
		if secs, ok := toSeconds(v); ok && secs > 0 {
			return secs
		}
	}
	return 120 + n.rng.Intn(300)
}

// resolveID stringifies the row's id when present, otherwise mints a fresh
// token. Tokens are fresh per call, nothing more.
func (n *Normalizer) resolveID(row Row) string {
	if v, ok := lookup(row, "id"); ok {
		if s := stringify(v); s != "" {
			return s
		}
	}
	return uuid.NewString()
}

// lookup finds a non-nil column value by name, case-insensitively.
func lookup(row Row, col string) (any, bool) {
	if v, ok := row[col]; ok && v != nil {
		return v, true
	}
	for k, v := range row {
		if v != nil && strings.EqualFold(k, col) {
			return v, true
		}
	}
	return nil, false
}

// stringify renders a scalar the way it should appear in a label. Drivers
// hand back strings, []byte, int64 or float64 depending on backend.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []byte:
		return strings.TrimSpace(string(t))
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func toSeconds(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case float32:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		if secs, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return secs, true
		}
	case []byte:
		if secs, err := strconv.Atoi(strings.TrimSpace(string(t))); err == nil {
			return secs, true
		}
	}
	return 0, false
}
