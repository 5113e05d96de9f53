package agent

import (
	"regexp"
	"strings"
)

// Models wrap SQL in markdown fences most of the time, but not always, and
// the language tag varies. Take the first fenced block. (?s) lets the body
// span lines.
var fencedBlock = regexp.MustCompile("(?s)```(?:sql|SQL)?[ \t]*\n(.*?)```")

// ExtractSQL pulls the SQL statement out of a model response. Falls back to
// the whole response when no fence is present, since a bare statement is a
// valid (and common) reply shape.
func ExtractSQL(response string) string {
	if m := fencedBlock.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(response)
}

// StripFences removes a markdown fence wrapping a full-file response.
// Handles ```go, ```python, plain ``` and leaves unfenced content alone.
func StripFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}
	firstNewline := strings.Index(trimmed, "\n")
	if firstNewline == -1 {
		return s
	}
	lastFence := strings.LastIndex(trimmed, "```")
	if lastFence <= firstNewline {
		return s
	}
	return strings.TrimSpace(trimmed[firstNewline+1 : lastFence])
}

var writeKeyword = regexp.MustCompile(`(?i)\b(insert|update|delete|drop|alter|create|truncate|replace|merge|grant|revoke|attach|vacuum)\b`)

// IsReadOnly reports whether every statement in sql is non-mutating. The
// check leans conservative: anything it cannot positively identify as a
// read counts as a write, so the worst failure mode is asking the caller
// for --allow-writes unnecessarily.
func IsReadOnly(sql string) bool {
	for _, stmt := range splitStatements(sql) {
		if !statementIsRead(stmt) {
			return false
		}
	}
	return true
}

func statementIsRead(stmt string) bool {
	switch firstKeyword(stmt) {
	case "select", "show", "explain", "describe", "pragma", "values":
		return true
	case "with":
		// A CTE can front DML (WITH x AS (...) DELETE FROM ...), so the
		// body still has to be scanned.
		return !writeKeyword.MatchString(stmt)
	default:
		return false
	}
}

func splitStatements(sql string) []string {
	var stmts []string
	for _, part := range strings.Split(sql, ";") {
		if s := strings.TrimSpace(part); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// firstKeyword returns the first word of a statement, lowercased, skipping
// line comments the model sometimes prepends.
func firstKeyword(stmt string) string {
	for _, line := range strings.Split(stmt, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		return strings.ToLower(strings.TrimLeft(fields[0], "("))
	}
	return ""
}
