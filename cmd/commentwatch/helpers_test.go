package main

import (
	"strings"
	"testing"
	"time"

	"commentwatch/internal/session"
)

func TestFormatTime(t *testing.T) {
	if got := formatTime(time.Time{}); got != "-" {
		t.Fatalf("zero time should format as dash, got %q", got)
	}
	ts := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	if got := formatTime(ts); !strings.Contains(got, "2024-06-01") {
		t.Fatalf("unexpected time format: %q", got)
	}
}

func TestFormatProbability(t *testing.T) {
	if got := formatProbability(0.91); got != "0.910" {
		t.Fatalf("expected 0.910, got %q", got)
	}
	if got := formatProbability(0); got != "0.000" {
		t.Fatalf("expected 0.000, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("short value should pass through, got %q", got)
	}
	got := truncate(strings.Repeat("a", 20), 10)
	if len([]rune(got)) != 10 || !strings.HasSuffix(got, "…") {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncate("héllo wörld", 5); len([]rune(got)) != 5 {
		t.Fatalf("multibyte truncation wrong length: %q", got)
	}
}

func TestRenderTableAlignsAndPads(t *testing.T) {
	out := renderTable(
		[]string{"Name", "Count"},
		[][]string{{"alpha", "3"}, {"beta"}},
		[]columnAlignment{alignLeft, alignRight},
	)
	requireContains(t, out, "Name")
	requireContains(t, out, "alpha")
	requireContains(t, out, "beta")
}

func TestRenderResultsTableColumns(t *testing.T) {
	out := renderResultsTable([]session.CommentResult{
		{Comment: "hello", Probability: 0.5, Status: session.StatusClean, Rule: ""},
		{Comment: strings.Repeat("x", 100), Probability: 0.9, Status: session.StatusToxic, Rule: "insult"},
	})
	requireContains(t, out, "Comment")
	requireContains(t, out, "0.500")
	requireContains(t, out, "insult")
	if strings.Contains(out, strings.Repeat("x", 100)) {
		t.Fatal("long comment should be truncated")
	}
}
