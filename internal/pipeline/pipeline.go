package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/forPelevin/vertcut/internal/domain/focal"
	"github.com/forPelevin/vertcut/internal/ports"
	"github.com/forPelevin/vertcut/internal/ports/adapters/execrun"
	"github.com/forPelevin/vertcut/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/vertcut/internal/ports/adapters/ytdlp"
	"github.com/forPelevin/vertcut/internal/usecase"
)

// Exit code when a required external tool is entirely absent.
const ExitToolMissing = 127

const lockFileName = ".vertcut.lock"

type Config struct {
	URL        string
	OutDir     string
	OutputName string

	StartSec    float64
	DurationSec float64
	Width       int
	Height      int

	DefaultAnchor string
	AnchorMap     string
	XMap          string

	ExtractorArgs      string
	DownloadFormat     string
	CookiesFromBrowser string
	Proxy              string

	VideoCRF     int
	VideoPreset  string
	AudioBitrate string

	DryRun bool

	FFmpegPath  string
	FFprobePath string

	Logf  func(format string, args ...any)
	Warnf func(format string, args ...any)
}

func (c Config) Validate() error {
	if c.URL == "" {
		return errors.New("url is empty")
	}
	if c.OutDir == "" {
		return errors.New("output directory is empty")
	}
	if c.OutputName == "" {
		return errors.New("output filename is empty")
	}
	if c.DurationSec <= 0 {
		return errors.New("duration must be > 0")
	}
	if c.StartSec < 0 {
		return errors.New("start must be >= 0")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New("width and height must be > 0")
	}
	if c.VideoCRF < 0 || c.VideoCRF > 51 {
		return fmt.Errorf("video crf %d outside x264 range [0, 51]", c.VideoCRF)
	}
	if _, err := focal.ParseAnchor(c.DefaultAnchor); err != nil {
		return err
	}
	return nil
}

// Run wires the collaborators and drives the pipeline. Tool resolution is
// skipped entirely in dry mode: a dry run only needs to construct and
// print commands, and always announces the canonical "yt-dlp" prefix. A
// real run on a host without the binary resolves the python module
// fallback instead, so the announced prefix can differ on such hosts.
func Run(ctx context.Context, cfg Config) error {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	anchor, err := focal.ParseAnchor(cfg.DefaultAnchor)
	if err != nil {
		return err
	}

	dlCmd := []string{"yt-dlp"}
	if !cfg.DryRun {
		var ok bool
		dlCmd, ok = ytdlp.ResolveCommand(ctx)
		if !ok {
			return &ports.ExitError{Code: ExitToolMissing, Msg: "yt-dlp is not installed (binary or python module)"}
		}
		if _, err := exec.LookPath(cfg.FFmpegPath); err != nil {
			return &ports.ExitError{Code: ExitToolMissing, Msg: fmt.Sprintf("%s is not installed or not on PATH", cfg.FFmpegPath)}
		}
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return err
	}

	if !cfg.DryRun {
		lock := flock.New(filepath.Join(cfg.OutDir, lockFileName))
		locked, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("lock output dir: %w", err)
		}
		if !locked {
			return fmt.Errorf("output directory %s is in use by another run", cfg.OutDir)
		}
		defer func() { _ = lock.Unlock() }()
	}

	var runner ports.Runner
	if cfg.DryRun {
		runner = execrun.NewDry(logf)
	} else {
		runner = execrun.New(logf)
	}

	uc := usecase.New(usecase.Deps{
		Downloader: ytdlp.New(dlCmd, runner),
		Transcoder: ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath, runner),
		Verifier:   ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath, runner),
	})

	res, err := uc.Run(ctx, usecase.Input{
		URL:                cfg.URL,
		OutDir:             cfg.OutDir,
		OutputName:         cfg.OutputName,
		StartSec:           cfg.StartSec,
		DurationSec:        cfg.DurationSec,
		Width:              cfg.Width,
		Height:             cfg.Height,
		DefaultAnchor:      anchor,
		AnchorMap:          cfg.AnchorMap,
		XMap:               cfg.XMap,
		ExtractorArgs:      cfg.ExtractorArgs,
		Format:             cfg.DownloadFormat,
		CookiesFromBrowser: cfg.CookiesFromBrowser,
		Proxy:              cfg.Proxy,
		VideoCRF:           cfg.VideoCRF,
		VideoPreset:        cfg.VideoPreset,
		AudioBitrate:       cfg.AudioBitrate,
		DryRun:             cfg.DryRun,
		Logf:               logf,
		Warnf:              cfg.Warnf,
	})
	if err != nil {
		return err
	}

	if cfg.DryRun {
		logf("dry run complete; would write %s", res.OutputPath)
		return nil
	}
	logf("output: %s", res.OutputPath)
	return nil
}

// ensure adapters implement ports
var _ ports.Acquirer = (*ytdlp.Adapter)(nil)
var _ ports.Transcoder = (*ffmpeg.Adapter)(nil)
var _ ports.Verifier = (*ffmpeg.Adapter)(nil)
var _ ports.Runner = (*execrun.Exec)(nil)
var _ ports.Runner = (*execrun.Dry)(nil)
