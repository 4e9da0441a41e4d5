// Package reftables parses the reference tables that sit alongside a schedule:
// facility volumes, provider contracts, credentialing and facility coverage.
package reftables

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/grid"
)

// headerSearchRows is how far down a sheet the header row may sit
const headerSearchRows = 5

// columnSpec names a logical column and the header texts it may appear as
type columnSpec struct {
	field    string
	aliases  []string
	required bool
}

// table is a reference sheet with its header located
type table struct {
	rows      [][]interface{}
	dataStart int
	index     map[string]int
}

// normalizeHeader makes "Provider Name", "provider_name" and "PROVIDER-NAME" equal
func normalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// locate finds the first row within headerSearchRows containing every required column
func locate(name string, raw [][]interface{}, specs []columnSpec) (*table, error) {
	for i := 0; i < len(raw) && i < headerSearchRows; i++ {
		index := matchHeader(raw[i], specs)
		if index == nil {
			continue
		}
		return &table{rows: raw, dataStart: i + 1, index: index}, nil
	}

	var missing []string
	for _, s := range specs {
		if s.required {
			missing = append(missing, s.aliases[0])
		}
	}
	return nil, fmt.Errorf("%s table: no header row with columns %s", name, strings.Join(missing, ", "))
}

func matchHeader(row []interface{}, specs []columnSpec) map[string]int {
	index := make(map[string]int)
	for _, s := range specs {
		for j, cell := range row {
			key := normalizeHeader(grid.CellString(cell))
			if key == "" {
				continue
			}
			if matchesAlias(key, s.aliases) {
				index[s.field] = j
				break
			}
		}
		if _, ok := index[s.field]; !ok && s.required {
			return nil
		}
	}
	return index
}

func matchesAlias(key string, aliases []string) bool {
	for _, a := range aliases {
		if key == normalizeHeader(a) {
			return true
		}
	}
	return false
}

func (t *table) field(row []interface{}, name string) string {
	j, ok := t.index[name]
	if !ok || j >= len(row) {
		return ""
	}
	return grid.CellString(row[j])
}

func (t *table) raw(row []interface{}, name string) interface{} {
	j, ok := t.index[name]
	if !ok || j >= len(row) {
		return nil
	}
	return row[j]
}

func (t *table) dataRows() [][]interface{} {
	if t.dataStart >= len(t.rows) {
		return nil
	}
	return t.rows[t.dataStart:]
}

// parseNumber reads a numeric cell; blank, "NC", non-finite values and other text are absent
func parseNumber(v interface{}) *float64 {
	var f float64
	switch c := v.(type) {
	case float64:
		f = c
	case int:
		f = float64(c)
	case int64:
		f = float64(c)
	default:
		s := strings.ReplaceAll(grid.CellString(v), ",", "")
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func parseCount(v interface{}) *int {
	f := parseNumber(v)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

// splitList splits a comma, semicolon or slash separated cell into trimmed items
func splitList(s string) []string {
	var items []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '/'
	}) {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	return items
}
