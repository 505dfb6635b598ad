//go:build mage

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/dkoosis/clarity/clarity"
	"github.com/dkoosis/clarity/internal/executor"
)

const (
	modulePath = "github.com/dkoosis/clarity"
	binPath    = "./bin/clarity"
)

// Default target - build the binary
var Default = Build

// step runs one command through clarity and fails on a non-zero exit.
func step(name string, args ...string) error {
	fmt.Printf("── %s\n", strings.Join(append([]string{name}, args...), " "))
	runner := clarity.NewRunner(clarity.Config{Color: clarity.IsTerminal(os.Stdout), Spinner: true})
	code := runner.Run(context.Background(), executor.Invocation{Command: name, Args: args}, clarity.Options{
		Full: mg.Verbose(),
	})
	if code != 0 {
		return mg.Fatalf(code, "%s exited with %d", name, code)
	}
	return nil
}

// Build builds the clarity binary
func Build() error {
	version := gitOutput("dev", "describe", "--tags", "--always", "--dirty", "--match=v*")
	commit := gitOutput("unknown", "rev-parse", "--short", "HEAD")
	date := time.Now().UTC().Format(time.RFC3339)

	ldflags := fmt.Sprintf("-s -w -X '%[1]s/internal/version.Version=%[2]s' -X '%[1]s/internal/version.CommitHash=%[3]s' -X '%[1]s/internal/version.BuildDate=%[4]s'",
		modulePath, version, commit, date)
	return step("go", "build", "-ldflags", ldflags, "-o", binPath, "./cmd/clarity")
}

// Clean removes build artifacts
func Clean() error {
	if err := sh.Rm("./bin"); err != nil {
		return err
	}
	return step("go", "clean", "-testcache")
}

// Lint namespace for linting commands
type Lint mg.Namespace

// All runs all linters
func (Lint) All() {
	mg.SerialDeps(Lint.Vet, Lint.Golangci)
}

// Vet runs go vet
func (Lint) Vet() error {
	return step("go", "vet", "./...")
}

// Golangci runs golangci-lint
func (Lint) Golangci() error {
	return step("golangci-lint", "run", "--timeout=5m", "./...")
}

// Test namespace for testing commands
type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	return step("go", "test", "./...")
}

// Race runs tests with race detector
func (Test) Race() error {
	return step("go", "test", "-race", "./...")
}

func gitOutput(fallback string, args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil || strings.TrimSpace(out) == "" {
		return fallback
	}
	return strings.TrimSpace(out)
}
