package browse

import "strings"

// TableRows pairs a table name with its normalized rows, the unit the
// classifier works on. A whole table lands on one shelf unless nothing
// matches and its rows fall through to redistribution.
type TableRows struct {
	Table string
	Rows  []Record
}

// Classifier assigns each table's rows to a shelf: table-name keywords
// first, row-content scoring second, even redistribution last.
type Classifier struct {
	rules *Rules
}

func NewClassifier(rules *Rules) *Classifier {
	return &Classifier{rules: rules}
}

// Classify buckets every table's rows, then spreads whatever neither pass
// could place. No row is ever dropped: the shelf totals always add up to
// the rows that came in.
func (c *Classifier) Classify(tables []TableRows) Shelves {
	var shelves Shelves
	var unassigned []Record

	for _, t := range tables {
		if shelf, ok := c.classifyByName(t.Table); ok {
			bucket := shelves.bucket(shelf)
			*bucket = append(*bucket, t.Rows...)
			continue
		}
		if shelf, ok := c.classifyByContent(t.Rows); ok {
			bucket := shelves.bucket(shelf)
			*bucket = append(*bucket, t.Rows...)
			continue
		}
		unassigned = append(unassigned, t.Rows...)
	}

	c.redistribute(&shelves, unassigned)
	return shelves
}

// classifyByName returns the first shelf whose keywords appear in the table
// name. Shelves are checked in a fixed order so overlapping keywords
// resolve the same way every time.
func (c *Classifier) classifyByName(table string) (Shelf, bool) {
	lower := strings.ToLower(table)
	for _, shelf := range shelfOrder {
		for _, kw := range c.rules.TableKeywords[shelf] {
			if strings.Contains(lower, kw) {
				return shelf, true
			}
		}
	}
	return "", false
}

// classifyByContent scores rows by what they read like: curated-mix
// phrasing, album-ish, or plain songs. A row can feed several counters.
// Returns false when nothing scores at all, leaving the rows for
// redistribution.
func (c *Classifier) classifyByContent(rows []Record) (Shelf, bool) {
	var mixScore, albumScore, songScore int

	for _, rec := range rows {
		phrased := c.hasPhrase(rec.Title) || c.hasPhrase(rec.Artist) || c.hasPhrase(rec.Album)
		if phrased {
			mixScore++
		}
		if rec.Album != c.rules.UnknownAlbum && !c.hasPhrase(rec.Album) {
			albumScore++
		}
		if rec.Title != c.rules.UnknownTitle && rec.Artist != c.rules.UnknownArtist && !phrased {
			songScore++
		}
	}

	if mixScore == 0 && albumScore == 0 && songScore == 0 {
		return "", false
	}

	// Ties favor Made For You, then Popular Albums.
	if mixScore >= albumScore && mixScore >= songScore {
		return ShelfMadeForYou, true
	}
	if albumScore >= songScore {
		return ShelfPopularAlbums, true
	}
	return ShelfRecentlyPlayed, true
}

func (c *Classifier) hasPhrase(s string) bool {
	lower := strings.ToLower(s)
	for _, p := range c.rules.ContentPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// redistribute first tops up shelves that ended up empty (Recently Played
// first, at most 6 records each from an even cut of the pool), then splits
// the rest roughly into thirds.
func (c *Classifier) redistribute(shelves *Shelves, pool []Record) {
	if len(pool) == 0 {
		return
	}

	cut := (len(pool) + 2) / 3
	if cut > 6 {
		cut = 6
	}
	for _, shelf := range shelfOrder {
		if len(pool) == 0 {
			break
		}
		bucket := shelves.bucket(shelf)
		if len(*bucket) > 0 {
			continue
		}
		take := cut
		if take > len(pool) {
			take = len(pool)
		}
		*bucket = append(*bucket, pool[:take]...)
		pool = pool[take:]
	}

	if len(pool) == 0 {
		return
	}
	third := (len(pool) + 2) / 3
	for _, shelf := range shelfOrder {
		if len(pool) == 0 {
			break
		}
		take := third
		if take > len(pool) {
			take = len(pool)
		}
		bucket := shelves.bucket(shelf)
		*bucket = append(*bucket, pool[:take]...)
		pool = pool[take:]
	}
}
