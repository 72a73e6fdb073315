// Package ytdlp drives the yt-dlp downloader: acquisition and the
// advertised-format quality probe.
package ytdlp

import (
	"context"
	"os/exec"
	"regexp"
	"strconv"

	"github.com/forPelevin/vertcut/internal/ports"
	"github.com/forPelevin/vertcut/internal/types"
)

type Adapter struct {
	cmd    []string
	runner ports.Runner
}

// New builds an adapter around a resolved tool invocation, e.g.
// ["yt-dlp"] or ["python3", "-m", "yt_dlp"].
func New(cmd []string, r ports.Runner) *Adapter {
	if len(cmd) == 0 {
		cmd = []string{"yt-dlp"}
	}
	return &Adapter{cmd: cmd, runner: r}
}

// ResolveCommand finds a usable yt-dlp invocation: the binary on PATH, or
// the python module fallback.
func ResolveCommand(ctx context.Context) ([]string, bool) {
	if _, err := exec.LookPath("yt-dlp"); err == nil {
		return []string{"yt-dlp"}, true
	}
	for _, py := range []string{"python3", "python"} {
		if _, err := exec.LookPath(py); err != nil {
			continue
		}
		check := exec.CommandContext(ctx, py, "-m", "yt_dlp", "--version")
		if check.Run() == nil {
			return []string{py, "-m", "yt_dlp"}, true
		}
	}
	return nil, false
}

func (a *Adapter) Fetch(ctx context.Context, req types.FetchRequest) error {
	return a.runner.Run(ctx, a.fetchArgs(req))
}

func (a *Adapter) fetchArgs(req types.FetchRequest) []string {
	args := a.prefixArgs(req)
	args = append(args,
		"--newline",
		"--extractor-args", req.ExtractorArgs,
		"-S", "res,fps,codec:h264",
		"-f", req.Format,
		"-o", req.OutputTemplate,
		req.URL,
	)
	return args
}

var heightPattern = regexp.MustCompile(`\b(\d{3,4})p\b`)

// MaxListedHeight lists available formats and returns the tallest
// advertised height. Probe failures and dry runs report not-ok; the
// caller treats that as "unknown", never as an error.
func (a *Adapter) MaxListedHeight(ctx context.Context, req types.FetchRequest) (int, bool) {
	args := a.prefixArgs(req)
	args = append(args, "-F", "--extractor-args", req.ExtractorArgs, req.URL)

	out, err := a.runner.Capture(ctx, args)
	if err != nil {
		return 0, false
	}

	max := 0
	for _, m := range heightPattern.FindAllStringSubmatch(out, -1) {
		if h, err := strconv.Atoi(m[1]); err == nil && h > max {
			max = h
		}
	}
	return max, max > 0
}

// prefixArgs is the tool invocation plus auth/proxy parameters, which go
// in front of every subcommand's own flags.
func (a *Adapter) prefixArgs(req types.FetchRequest) []string {
	args := append([]string(nil), a.cmd...)
	if req.CookiesFromBrowser != "" {
		args = append(args, "--cookies-from-browser", req.CookiesFromBrowser)
	}
	if req.Proxy != "" {
		args = append(args, "--proxy", req.Proxy)
	}
	return args
}
