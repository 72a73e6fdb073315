package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/forPelevin/vertcut/internal/ports"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "vertcut <url>",
		Short:        "Render a Shorts-ready 9:16 cut whose crop window tracks a moving subject",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	f := root.Flags()
	f.String("out-dir", ".", "Output directory")
	f.String("output", "short_9x16.mp4", "Output filename")
	f.Float64("start", 0, "Start time in seconds")
	f.Float64("duration", 60, "Duration in seconds")
	f.Int("width", 1080, "Output width")
	f.Int("height", 1920, "Output height")
	f.String("anchor", "center", "Default crop anchor (left|center|right)")
	f.String("anchor-map", "", "Time-keyed anchor shifts, e.g. '38.372:left,44.461:right'")
	f.String("x-map", "", "Time-keyed focal x positions in [0..1], e.g. '4:0.38,20:0.66'")
	f.String("extractor-args", "", "yt-dlp extractor args")
	f.String("format", "", "yt-dlp format selector")
	f.String("cookies-from-browser", "", "Browser name for authenticated pulls")
	f.String("proxy", "", "Proxy URL for acquisition (also VERTCUT_PROXY)")
	f.Int("crf", 0, "x264 CRF")
	f.String("preset", "", "x264 preset")
	f.String("audio-bitrate", "", "AAC bitrate")
	f.String("config", "", "Path to a vertcut.toml with download/encode defaults")
	f.Bool("dry-run", false, "Print commands without executing anything (downloader is shown as 'yt-dlp' without resolving it)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var xe *ports.ExitError
		if errors.As(err, &xe) {
			os.Exit(xe.Code)
		}
		os.Exit(1)
	}
}
