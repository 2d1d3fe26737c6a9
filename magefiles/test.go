//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets.
type Test mg.Namespace

// surrealdb container settings for Test:Surreal.
const (
	surrealImage     = "surrealdb/surrealdb:latest"
	surrealContainer = "hobbyist-surrealdb-test"
	surrealPort      = "18000"
	surrealUser      = "root"
	surrealPass      = "root"
)

// All runs all tests. The surrealdb tests skip unless SURREALDB_URL is set.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-v", "./...")
}

// Unit runs tests with the race detector and without external services.
func (Test) Unit() error {
	env := map[string]string{"SURREALDB_URL": ""}
	return sh.RunWithV(env, binGo, "test", "-race", "./...")
}

// Cover writes a coverage profile to bin/coverage.out and prints the summary.
func (Test) Cover() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	profile := filepath.Join(binaryDir, "coverage.out")
	if err := sh.RunV(binGo, "test", "-coverprofile="+profile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+profile)
}

// Surreal starts a throwaway surrealdb container and runs the surrealdb
// backend tests against it.
func (Test) Surreal() error {
	rt := containerRuntime()
	if rt == "" {
		return fmt.Errorf("no container runtime found (tried podman, docker)")
	}

	_ = exec.Command(rt, "rm", "-f", surrealContainer).Run()
	err := sh.RunV(rt, "run", "-d", "--rm",
		"--name", surrealContainer,
		"-p", surrealPort+":8000",
		surrealImage,
		"start", "--user", surrealUser, "--pass", surrealPass, "memory")
	if err != nil {
		return fmt.Errorf("starting surrealdb: %w", err)
	}
	defer func() { _ = exec.Command(rt, "rm", "-f", surrealContainer).Run() }()

	// The server needs a moment before it accepts connections.
	time.Sleep(2 * time.Second)

	env := map[string]string{
		"SURREALDB_URL":  "ws://localhost:" + surrealPort,
		"SURREALDB_USER": surrealUser,
		"SURREALDB_PASS": surrealPass,
	}
	return sh.RunWithV(env, binGo, "test", "-v", "-count=1", "./internal/surreal/...")
}

// containerRuntime returns "podman" or "docker" if a working runtime
// is available, or "" if neither is usable.
func containerRuntime() string {
	for _, name := range []string{"podman", "docker"} {
		if _, err := exec.LookPath(name); err != nil {
			continue
		}
		if exec.Command(name, "info").Run() != nil {
			fmt.Fprintf(os.Stderr, "WARNING: %s found on PATH but not usable (is the daemon/machine running?)\n", name)
			continue
		}
		return name
	}
	return ""
}
