package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"commentwatch/internal/testsupport"
)

const cliWorkerResponse = `{"results":[{"probability":0.91,"status":"Violates rule","rule":"insult"},{"probability":0.05,"status":"Safe","rule":""}]}`

type cliTestEnv struct {
	configPath string
	dataDir    string
	logDir     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	command, args := testsupport.WorkerScript(t, testsupport.EchoWorkerBody(cliWorkerResponse))

	dataDir := filepath.Join(base, "data")
	logDir := filepath.Join(base, "logs")
	configPath := filepath.Join(homeDir, ".config", "commentwatch", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, dataDir, logDir, command, args)

	return &cliTestEnv{
		configPath: configPath,
		dataDir:    dataDir,
		logDir:     logDir,
	}
}

func writeTestConfig(t *testing.T, path, dataDir, logDir, command string, args []string) {
	t.Helper()

	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		quoted = append(quoted, fmt.Sprintf("%q", arg))
	}
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[worker]
command = %q
args = [%s]
startup_timeout = 5
response_timeout = 5

[logging]
format = "json"
level = "error"
`, dataDir, logDir, command, strings.Join(quoted, ", "))

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

var sessionIDPattern = regexp.MustCompile(`\d{8}-\d{6}-[0-9a-f]{8}`)

// analyzeSession runs an analyze command against the fake worker and returns
// the new session's ID scraped from the output.
func analyzeSession(t *testing.T, env *cliTestEnv, comments ...string) string {
	t.Helper()

	out, _, err := runCLI(t, env.configPath, append([]string{"analyze"}, comments...)...)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	id := sessionIDPattern.FindString(out)
	if id == "" {
		t.Fatalf("no session ID in analyze output:\n%s", out)
	}
	return id
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
