package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestRun_solvesSimpleArithmetic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("+ 3 4\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := &config{inputFile: path, maxSolutions: 100}
	out := captureStdout(t, func() {
		if err := run(cfg); err != nil {
			t.Fatalf("run: %v", err)
		}
	})

	if !strings.Contains(out, "?1=7") {
		t.Errorf("output missing ?1=7, got:\n%s", out)
	}
	if !strings.Contains(out, "1 solution(s)") {
		t.Errorf("expected exactly one solution, got:\n%s", out)
	}
}

func TestRun_solvesNegativeResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("= a - 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := &config{inputFile: path, maxSolutions: 100}
	out := captureStdout(t, func() {
		if err := run(cfg); err != nil {
			t.Fatalf("run: %v", err)
		}
	})

	if !strings.Contains(out, "a=-1") {
		t.Errorf("output missing a=-1, got:\n%s", out)
	}
}

func TestRun_reportsParseErrorsAndContinues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	// A malformed expression followed by a valid one: the bad one should be
	// reported to stderr, not abort the whole run. "~" is punctuation but not
	// a recognized operator, so it fails immediately without consuming any
	// further tokens.
	if err := os.WriteFile(path, []byte("~\n+ 1 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := &config{inputFile: path, maxSolutions: 100}
	out := captureStdout(t, func() {
		if err := run(cfg); err != nil {
			t.Fatalf("run: %v", err)
		}
	})

	if !strings.Contains(out, "?1=2") {
		t.Errorf("expected the valid expression after the bad one to still be solved, got:\n%s", out)
	}
}

func TestOpenInput_fallsBackToStdin(t *testing.T) {
	cfg := &config{}
	rc, err := openInput(cfg)
	if err != nil {
		t.Fatalf("openInput: %v", err)
	}
	defer rc.Close()
	if rc == nil {
		t.Fatalf("expected a non-nil reader for stdin fallback")
	}
}
