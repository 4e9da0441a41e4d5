package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorBold   = "\033[1m"
)

const argDateLayout = "2006-01-02"

// remainingColor flags over-limit values red and exhausted ones yellow
func remainingColor(r model.Remaining, green, yellow, red string) string {
	if r.IsNegative() {
		return red
	}
	if v, ok := r.Value(); ok && v == 0 {
		return yellow
	}
	return green
}

// scoreColor buckets a 0-10 satisfaction score
func scoreColor(score float64, green, yellow, red string) string {
	switch {
	case score >= 7:
		return green
	case score >= 4:
		return yellow
	default:
		return red
	}
}

// colored pads s to width before wrapping it in color, so columns stay aligned
func colored(s string, width int, color string) string {
	return fmt.Sprintf("%s%-*s%s", color, width, s, colorReset)
}

func formatVolume(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseDateArg(s string) (time.Time, error) {
	d, err := time.Parse(argDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD, got %q", s)
	}
	return d, nil
}
