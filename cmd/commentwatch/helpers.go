package main

import (
	"strconv"
	"time"
	"unicode/utf8"
)

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04:05")
}

func formatProbability(p float64) string {
	return strconv.FormatFloat(p, 'f', 3, 64)
}

func truncate(value string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(value) <= limit {
		return value
	}
	runes := []rune(value)
	return string(runes[:limit-1]) + "…"
}
