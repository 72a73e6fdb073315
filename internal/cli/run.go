package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forPelevin/vertcut/internal/config"
	"github.com/forPelevin/vertcut/internal/pipeline"
)

func run(cmd *cobra.Command, url string) error {
	fl := cmd.Flags()

	fileCfg := config.Default()
	if path, _ := fl.GetString("config"); path != "" {
		var err error
		fileCfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}

	pick := func(flag, fromFile string) string {
		if v, _ := fl.GetString(flag); v != "" {
			return v
		}
		return fromFile
	}

	crf := fileCfg.Encode.VideoCRF
	if v, _ := fl.GetInt("crf"); fl.Changed("crf") {
		crf = v
	}

	// Proxy resolution is explicit: flag, then config file, then the
	// VERTCUT_PROXY variable, handed down as a plain value. Nothing below
	// the CLI reads the environment.
	proxy := pick("proxy", fileCfg.Download.Proxy)
	if proxy == "" {
		proxy = os.Getenv("VERTCUT_PROXY")
	}

	outDir, _ := fl.GetString("out-dir")
	outputName, _ := fl.GetString("output")
	start, _ := fl.GetFloat64("start")
	duration, _ := fl.GetFloat64("duration")
	width, _ := fl.GetInt("width")
	height, _ := fl.GetInt("height")
	anchor, _ := fl.GetString("anchor")
	anchorMap, _ := fl.GetString("anchor-map")
	xMap, _ := fl.GetString("x-map")
	dryRun, _ := fl.GetBool("dry-run")

	cfg := pipeline.Config{
		URL:        url,
		OutDir:     outDir,
		OutputName: outputName,

		StartSec:    start,
		DurationSec: duration,
		Width:       width,
		Height:      height,

		DefaultAnchor: anchor,
		AnchorMap:     anchorMap,
		XMap:          xMap,

		ExtractorArgs:      pick("extractor-args", fileCfg.Download.ExtractorArgs),
		DownloadFormat:     pick("format", fileCfg.Download.Format),
		CookiesFromBrowser: pick("cookies-from-browser", fileCfg.Download.CookiesFromBrowser),
		Proxy:              proxy,

		VideoCRF:     crf,
		VideoPreset:  pick("preset", fileCfg.Encode.VideoPreset),
		AudioBitrate: pick("audio-bitrate", fileCfg.Encode.AudioBitrate),

		DryRun: dryRun,

		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",

		Logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stdout, format+"\n", args...)
		},
		Warnf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
		},
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return pipeline.Run(context.Background(), cfg)
}
