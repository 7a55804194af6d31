package main

import (
	"testing"
)

func TestWorkerPingHealthy(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "worker", "ping")
	if err != nil {
		t.Fatalf("worker ping: %v", err)
	}
	requireContains(t, out, "Worker ready in")
	requireContains(t, out, "Probe scored in")
}

func TestWorkerPingMissingCommandFails(t *testing.T) {
	env := setupCLITestEnv(t)
	writeTestConfig(t, env.configPath, env.dataDir, env.logDir, "/nonexistent/worker", nil)

	_, _, err := runCLI(t, env.configPath, "worker", "ping")
	if err == nil {
		t.Fatal("expected error for missing worker command")
	}
	requireContains(t, err.Error(), "start worker")
}
