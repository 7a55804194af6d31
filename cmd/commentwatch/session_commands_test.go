package main

import (
	"strings"
	"testing"

	"commentwatch/internal/session"
	"commentwatch/internal/testsupport"
)

func TestAnalyzeCreatesSession(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "analyze", "you are terrible", "nice work")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	requireContains(t, out, "saved (2 comments)")
	requireContains(t, out, "Toxic")
	requireContains(t, out, "Clean")
	requireContains(t, out, "insult")
}

func TestAnalyzeRejectsEmptyInput(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env.configPath, "analyze")
	if err == nil {
		t.Fatal("expected error for empty input")
	}
	requireContains(t, err.Error(), "no comments")
}

func TestSessionsListShowsCurrentMarker(t *testing.T) {
	env := setupCLITestEnv(t)
	first := analyzeSession(t, env, "one")
	second := analyzeSession(t, env, "two")

	out, _, err := runCLI(t, env.configPath, "sessions", "list")
	if err != nil {
		t.Fatalf("sessions list: %v", err)
	}
	requireContains(t, out, first)
	requireContains(t, out, second)

	var marked string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "*") {
			marked = line
		}
	}
	if !strings.Contains(marked, second) {
		t.Fatalf("expected current marker on %s, got line %q", second, marked)
	}
}

func TestSessionsListEmptyStore(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "sessions", "list")
	if err != nil {
		t.Fatalf("sessions list: %v", err)
	}
	requireContains(t, out, "No sessions yet")
}

func TestSessionsShowDefaultsToCurrent(t *testing.T) {
	env := setupCLITestEnv(t)
	id := analyzeSession(t, env, "hello", "world")

	out, _, err := runCLI(t, env.configPath, "sessions", "show")
	if err != nil {
		t.Fatalf("sessions show: %v", err)
	}
	requireContains(t, out, id)
	requireContains(t, out, "2 comments")
}

func TestSessionsShowStatusFilter(t *testing.T) {
	env := setupCLITestEnv(t)
	analyzeSession(t, env, "hello", "world")

	out, _, err := runCLI(t, env.configPath, "sessions", "show", "--status", "Toxic")
	if err != nil {
		t.Fatalf("sessions show: %v", err)
	}
	requireContains(t, out, `1 results with status "Toxic"`)
}

func TestSessionsUseSwitchesCurrent(t *testing.T) {
	env := setupCLITestEnv(t)
	first := analyzeSession(t, env, "one")
	analyzeSession(t, env, "two")

	out, _, err := runCLI(t, env.configPath, "sessions", "use", first)
	if err != nil {
		t.Fatalf("sessions use: %v", err)
	}
	requireContains(t, out, first)

	out, _, err = runCLI(t, env.configPath, "sessions", "show")
	if err != nil {
		t.Fatalf("sessions show: %v", err)
	}
	requireContains(t, out, first)
}

func TestSessionsUseUnknownIDFails(t *testing.T) {
	env := setupCLITestEnv(t)
	analyzeSession(t, env, "one")

	_, _, err := runCLI(t, env.configPath, "sessions", "use", "20240101-000000-deadbeef")
	if err == nil {
		t.Fatal("expected error for unknown session")
	}
	requireContains(t, err.Error(), "not found")
}

func TestSessionsDeleteAndClear(t *testing.T) {
	env := setupCLITestEnv(t)
	first := analyzeSession(t, env, "one")
	analyzeSession(t, env, "two")

	if _, _, err := runCLI(t, env.configPath, "sessions", "delete", first); err != nil {
		t.Fatalf("sessions delete: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "sessions", "list")
	if err != nil {
		t.Fatalf("sessions list: %v", err)
	}
	if strings.Contains(out, first) {
		t.Fatalf("deleted session still listed:\n%s", out)
	}

	out, _, err = runCLI(t, env.configPath, "sessions", "clear")
	if err != nil {
		t.Fatalf("sessions clear: %v", err)
	}
	requireContains(t, out, "Cleared 1 sessions")
}

func TestReanalyzeKeepsSessionID(t *testing.T) {
	env := setupCLITestEnv(t)
	id := analyzeSession(t, env, "hello", "world")

	out, _, err := runCLI(t, env.configPath, "reanalyze")
	if err != nil {
		t.Fatalf("reanalyze: %v", err)
	}
	requireContains(t, out, "Session "+id+" rescored")
}

func TestResolveSessionID(t *testing.T) {
	store := testsupport.NewStore(t)

	if _, err := resolveSessionID(store, nil); err == nil {
		t.Fatal("expected error with no current session")
	}

	id := store.Create(nil)
	got, err := resolveSessionID(store, nil)
	if err != nil {
		t.Fatalf("resolveSessionID: %v", err)
	}
	if got != id {
		t.Fatalf("expected current session %s, got %s", id, got)
	}

	got, err = resolveSessionID(store, []string{"explicit"})
	if err != nil {
		t.Fatalf("resolveSessionID: %v", err)
	}
	if got != "explicit" {
		t.Fatalf("expected explicit argument to win, got %s", got)
	}
}

func TestFilterByStatus(t *testing.T) {
	results := []session.CommentResult{
		{Comment: "a", Status: session.StatusToxic},
		{Comment: "b", Status: session.StatusClean},
		{Comment: "c", Status: session.StatusToxic},
	}

	if got := filterByStatus(results, ""); len(got) != 3 {
		t.Fatalf("empty filter should keep all, got %d", len(got))
	}
	got := filterByStatus(results, session.StatusToxic)
	if len(got) != 2 || got[0].Comment != "a" || got[1].Comment != "c" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
	if got := filterByStatus(results, "Missing"); len(got) != 0 {
		t.Fatalf("unknown status should match nothing, got %d", len(got))
	}
}
