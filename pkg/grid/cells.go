package grid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	separatorRe = regexp.MustCompile(`(?i)[,/;&]|\band\b`)
	gapRe       = regexp.MustCompile(`(?i)\s*\(\s*gap\s*\)\s*$`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

var placeholders = map[string]bool{
	"UNCOVERED": true,
	"OPEN":      true,
	"TBD":       true,
	"NONE":      true,
	"OFF":       true,
}

type providerToken struct {
	name string
	gap  bool
}

// splitProviders breaks a cell into provider names, dropping placeholders and
// recording a trailing "(Gap)" marker on the token it was attached to
func splitProviders(cell string) []providerToken {
	var tokens []providerToken
	for _, raw := range separatorRe.Split(cell, -1) {
		if tok, ok := parseProviderToken(raw); ok {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func parseProviderToken(raw string) (providerToken, bool) {
	name := strings.TrimSpace(raw)
	gap := gapRe.MatchString(name)
	if gap {
		name = strings.TrimSpace(gapRe.ReplaceAllString(name, ""))
	}
	name = spaceRe.ReplaceAllString(name, " ")
	if name == "" || placeholders[strings.ToUpper(name)] {
		return providerToken{}, false
	}
	return providerToken{name: name, gap: gap}, true
}

// CellString renders any cell value the sheet readers return as trimmed text
func CellString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(c)
	case float64:
		if c == float64(int64(c)) {
			return strconv.FormatInt(int64(c), 10)
		}
		return strconv.FormatFloat(c, 'f', -1, 64)
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case time.Time:
		return c.Format("2006-01-02")
	default:
		return strings.TrimSpace(fmt.Sprint(c))
	}
}

func cellAt(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return CellString(row[idx])
}

// splitSiteShift splits a "<Site> - <ShiftCode>" header on its last separator
func splitSiteShift(header string) (site, shift string, ok bool) {
	idx := strings.LastIndex(header, " - ")
	if idx < 0 {
		return "", "", false
	}
	site = strings.TrimSpace(header[:idx])
	shift = strings.TrimSpace(header[idx+3:])
	if site == "" || shift == "" {
		return "", "", false
	}
	return site, shift, true
}
