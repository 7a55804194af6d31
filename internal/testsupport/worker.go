package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WorkerScript writes a shell script standing in for the scoring worker and
// returns the command and args that launch it. The body runs after the
// shebang; it is responsible for emitting the readiness line and any
// responses the test needs.
func WorkerScript(t testing.TB, body string) (string, []string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fake_worker.sh")
	script := "#!/bin/sh\n" + body
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write worker script: %v", err)
	}
	return "/bin/sh", []string{path}
}

// EchoWorkerBody returns a worker script body that signals readiness and
// then answers every request line with the given response line.
func EchoWorkerBody(response string) string {
	return "echo ready\nwhile read line; do\n  echo '" + response + "'\ndone\n"
}
