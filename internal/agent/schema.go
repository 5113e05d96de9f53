package agent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/browse"
)

// TableInfo is one discovered table's shape, compact enough to embed in a
// prompt without blowing the context window.
type TableInfo struct {
	Name    string
	Columns []string
	Rows    int
	Sample  browse.Row
}

// Inspector walks every table the connection can see and samples a few rows
// from each. It rides on the same read boundary the browse pipeline uses,
// so the agent and the shelves always agree on what the database contains.
type Inspector struct {
	source browse.Source
	limit  int
}

func NewInspector(source browse.Source, sampleLimit int) *Inspector {
	if sampleLimit <= 0 {
		sampleLimit = 5
	}
	return &Inspector{source: source, limit: sampleLimit}
}

// Inspect returns the discovered tables sorted by name. A table that cannot
// be read is skipped, not fatal; the agent should describe what it can.
func (i *Inspector) Inspect() ([]TableInfo, error) {
	names, err := i.source.ListTables()
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	sort.Strings(names)

	tables := make([]TableInfo, 0, len(names))
	for _, name := range names {
		rows, err := i.source.FetchRows(name, i.limit)
		if err != nil {
			continue
		}

		info := TableInfo{Name: name, Rows: len(rows)}
		if len(rows) > 0 {
			info.Sample = rows[0]
		}

		// Column set is the union across the sample, since schema-less
		// rows may omit null fields.
		seen := map[string]bool{}
		for _, row := range rows {
			for col := range row {
				if !seen[col] {
					seen[col] = true
					info.Columns = append(info.Columns, col)
				}
			}
		}
		sort.Strings(info.Columns)

		tables = append(tables, info)
	}
	return tables, nil
}

// Summarize renders the table list as the plain-text schema block embedded
// in prompts and printed by the schema command.
func Summarize(tables []TableInfo) string {
	if len(tables) == 0 {
		return "(no tables found)"
	}

	var b strings.Builder
	for _, t := range tables {
		fmt.Fprintf(&b, "table %s (%d sampled rows)\n", t.Name, t.Rows)
		if len(t.Columns) == 0 {
			b.WriteString("  columns: (empty table)\n")
			continue
		}
		fmt.Fprintf(&b, "  columns: %s\n", strings.Join(t.Columns, ", "))
		for _, col := range t.Columns {
			if v, ok := t.Sample[col]; ok && v != nil {
				fmt.Fprintf(&b, "  e.g. %s = %s\n", col, truncateValue(v))
			}
		}
	}
	return b.String()
}

// truncateValue formats a sample cell, capped so one long text column
// cannot dominate the prompt.
func truncateValue(v any) string {
	s := fmt.Sprintf("%v", v)
	if len(s) > 60 {
		s = s[:57] + "..."
	}
	return fmt.Sprintf("%q", s)
}
