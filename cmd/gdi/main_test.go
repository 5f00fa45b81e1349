package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestMainVersion(t *testing.T) {
	var out bytes.Buffer
	if err := execute([]string{"gdi", "--version"}, &out, &out); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Fatalf("expected version output, got %q", out.String())
	}
}

func TestMainVersionCommand(t *testing.T) {
	var out bytes.Buffer
	if err := execute([]string{"gdi", "version"}, &out, &out); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if strings.TrimSpace(out.String()) != versionString() {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}

func TestMainHelp(t *testing.T) {
	var out bytes.Buffer
	if err := execute([]string{"gdi"}, &out, &out); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	for _, want := range []string{"install", "plan", "restart"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in help output, got %q", want, out.String())
		}
	}
}

func TestRunMainSuccess(t *testing.T) {
	var out bytes.Buffer
	called := false
	runMain([]string{"gdi", "--version"}, &out, &out, func(code int) {
		called = true
	})
	if called {
		t.Fatalf("unexpected exit")
	}
}

func TestRunMainError(t *testing.T) {
	var out bytes.Buffer
	code := 0
	runMain([]string{"gdi", "unknown"}, &out, &out, func(exitCode int) {
		code = exitCode
	})
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out.String(), "unknown command") {
		t.Fatalf("expected error output, got %q", out.String())
	}
}

func TestRunMainSilentExit(t *testing.T) {
	orig := executeFunc
	t.Cleanup(func() { executeFunc = orig })
	executeFunc = func([]string, io.Writer, io.Writer) error { return &SilentExitError{Code: 3} }

	var out bytes.Buffer
	code := 0
	runMain([]string{"gdi"}, &out, &out, func(c int) { code = c })
	if code != 3 {
		t.Fatalf("expected exit code 3, got %d", code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestMainCallsExecute(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	os.Args = []string{"gdi", "--version"}
	main()
}

func TestVersionString(t *testing.T) {
	origVersion, origCommit, origBuild := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = origVersion, origCommit, origBuild })

	Version, Commit, BuildDate = "v1.0.0", "unknown", "unknown"
	if got := versionString(); got != "v1.0.0" {
		t.Fatalf("unexpected version: %q", got)
	}
	Commit, BuildDate = "abc123", "2026-01-02"
	if got := versionString(); got != "v1.0.0 (commit abc123, built 2026-01-02)" {
		t.Fatalf("unexpected version: %q", got)
	}
}
