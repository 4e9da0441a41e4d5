package model

import (
	"strings"
	"unicode"
)

type ShiftType string

const (
	ShiftMD1   ShiftType = "MD1"
	ShiftMD2   ShiftType = "MD2"
	ShiftPM    ShiftType = "PM"
	ShiftOther ShiftType = "Other"
)

// CountedShiftTypes are the shift types tracked by counts, volume and contracts
var CountedShiftTypes = []ShiftType{ShiftMD1, ShiftMD2, ShiftPM}

var shiftCodes = []struct {
	code      string
	shiftType ShiftType
}{
	{"MD1", ShiftMD1},
	{"MD2", ShiftMD2},
	{"PM", ShiftPM},
}

// ClassifyShift maps a raw shift code onto a ShiftType.
// A code matches exactly, or by prefix when the next rune is not alphanumeric,
// so "MD1 AM" is MD1 while "MD10" is Other.
func ClassifyShift(code string) ShiftType {
	c := strings.ToUpper(strings.TrimSpace(code))
	for _, sc := range shiftCodes {
		if c == sc.code {
			return sc.shiftType
		}
	}
	for _, sc := range shiftCodes {
		if !strings.HasPrefix(c, sc.code) {
			continue
		}
		next := []rune(c[len(sc.code):])[0]
		if !unicode.IsLetter(next) && !unicode.IsDigit(next) {
			return sc.shiftType
		}
	}
	return ShiftOther
}

// ParseShiftType parses an exact shift type name, case-insensitively
func ParseShiftType(s string) (ShiftType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MD1":
		return ShiftMD1, true
	case "MD2":
		return ShiftMD2, true
	case "PM":
		return ShiftPM, true
	}
	return ShiftOther, false
}

func (s ShiftType) IsCounted() bool {
	return s == ShiftMD1 || s == ShiftMD2 || s == ShiftPM
}
