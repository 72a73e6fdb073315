// Package config loads optional file-based defaults for acquisition and
// encoding. Flags always win over file values; file values win over the
// built-in defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// File is the on-disk configuration shape.
type File struct {
	Download Download `toml:"download"`
	Encode   Encode   `toml:"encode"`
}

// Download holds acquisition defaults. Proxy and cookie settings live
// here (or in flags) so network configuration is always explicit; no
// component reads ambient environment for them.
type Download struct {
	ExtractorArgs      string `toml:"extractor_args"`
	Format             string `toml:"format"`
	CookiesFromBrowser string `toml:"cookies_from_browser"`
	Proxy              string `toml:"proxy"`
}

// Encode holds transcoder defaults.
type Encode struct {
	VideoCRF     int    `toml:"video_crf"`
	VideoPreset  string `toml:"video_preset"`
	AudioBitrate string `toml:"audio_bitrate"`
}

// Default returns the built-in defaults.
func Default() File {
	return File{
		Download: Download{
			ExtractorArgs: "youtube:player_client=ios,android,web_safari",
			Format:        "bv*+ba/b",
		},
		Encode: Encode{
			VideoCRF:     18,
			VideoPreset:  "slow",
			AudioBitrate: "192k",
		},
	}
}

// Load reads a TOML config file over the built-in defaults. Keys absent
// from the file keep their default values.
func Load(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	cfg := Default()
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return File{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Sample returns the annotated sample configuration.
func Sample() string { return sampleConfig }
