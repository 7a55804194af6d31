package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"commentwatch/internal/session"
)

func TestExportCSVToStdout(t *testing.T) {
	env := setupCLITestEnv(t)
	analyzeSession(t, env, "hello", "world")

	out, _, err := runCLI(t, env.configPath, "export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "comment,probability,status,rule,timestamp")
	requireContains(t, out, "insult")
	if got := strings.Count(strings.TrimSpace(out), "\n"); got != 2 {
		t.Fatalf("expected header plus 2 rows, got %d newlines:\n%s", got, out)
	}
}

func TestExportJSONToFile(t *testing.T) {
	env := setupCLITestEnv(t)
	id := analyzeSession(t, env, "hello")

	target := filepath.Join(t.TempDir(), "session.json")
	out, _, err := runCLI(t, env.configPath, "export", id, "--format", "json", "--output", target)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "Exported session "+id)

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if sess.ID != id {
		t.Fatalf("expected session %s in export, got %s", id, sess.ID)
	}
	if len(sess.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(sess.Results))
	}
}

func TestExportUnknownFormatFails(t *testing.T) {
	env := setupCLITestEnv(t)
	analyzeSession(t, env, "hello")

	_, _, err := runCLI(t, env.configPath, "export", "--format", "xml")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestExportUnknownSessionFails(t *testing.T) {
	env := setupCLITestEnv(t)
	analyzeSession(t, env, "hello")

	_, _, err := runCLI(t, env.configPath, "export", "20240101-000000-deadbeef")
	if err == nil {
		t.Fatal("expected error for unknown session")
	}
	requireContains(t, err.Error(), "not found")
}
