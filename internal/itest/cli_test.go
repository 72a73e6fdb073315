//go:build integration

package itest

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const cliTimeout = 2 * time.Minute

type cliRunResult struct {
	exitCode int
	output   string
}

func runCLI(t *testing.T, repoRoot string, args ...string) cliRunResult {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), cliTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "go", append([]string{"run", "."}, args...)...)
	cmd.Dir = repoRoot
	b, err := cmd.CombinedOutput()

	res := cliRunResult{output: string(b)}
	if err == nil {
		return res
	}
	var xe *exec.ExitError
	if errors.As(err, &xe) {
		res.exitCode = xe.ExitCode()
		return res
	}
	t.Fatalf("run cli: %v\n%s", err, string(b))
	return res
}

func mustRepoRoot(t *testing.T) string {
	t.Helper()
	root, err := findRepoRoot()
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}
	return root
}

func TestCLI_DryRunPrintsCommandsAndSucceeds(t *testing.T) {
	repoRoot := mustRepoRoot(t)
	outDir := filepath.Join(t.TempDir(), "out")

	res := runCLI(t, repoRoot,
		"https://youtu.be/abc123",
		"--dry-run",
		"--out-dir", outDir,
		"--x-map", "4:0.38,20:0.66",
		"--anchor-map", "38.372:left,44.461:right",
	)
	if res.exitCode != 0 {
		t.Fatalf("exit code %d, output:\n%s", res.exitCode, res.output)
	}
	for _, want := range []string{
		"Command:",
		"yt-dlp",
		"ffmpeg",
		"0.38*iw",
		"dry run complete",
		"using x-map",
	} {
		if !strings.Contains(res.output, want) {
			t.Fatalf("output missing %q:\n%s", want, res.output)
		}
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read out dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("dry run produced artifacts: %v", entries)
	}
}

func TestCLI_RejectsMalformedHints(t *testing.T) {
	repoRoot := mustRepoRoot(t)

	res := runCLI(t, repoRoot,
		"https://youtu.be/abc123",
		"--dry-run",
		"--anchor-map", "38:middle",
	)
	if res.exitCode == 0 {
		t.Fatalf("expected failure, output:\n%s", res.output)
	}
	if !strings.Contains(res.output, "unsupported anchor") {
		t.Fatalf("expected anchor parse error, output:\n%s", res.output)
	}
}

func TestCLI_ArgsValidation(t *testing.T) {
	repoRoot := mustRepoRoot(t)

	cases := []struct {
		name         string
		args         []string
		wantContains string
	}{
		{"no args", nil, "accepts 1 arg(s), received 0"},
		{"unknown flag", []string{"https://youtu.be/abc123", "--wat"}, "unknown flag: --wat"},
		{"zero duration", []string{"https://youtu.be/abc123", "--dry-run", "--duration", "0"}, "duration must be > 0"},
		{"bad anchor", []string{"https://youtu.be/abc123", "--dry-run", "--anchor", "middle"}, "unsupported anchor"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := runCLI(t, repoRoot, tc.args...)
			if res.exitCode == 0 {
				t.Fatalf("expected non-zero exit, output:\n%s", res.output)
			}
			if !strings.Contains(res.output, tc.wantContains) {
				t.Fatalf("output missing %q:\n%s", tc.wantContains, res.output)
			}
		})
	}
}
