package types

// FetchRequest describes a single acquisition call against the downloader.
type FetchRequest struct {
	URL                string
	ExtractorArgs      string
	Format             string
	OutputTemplate     string
	CookiesFromBrowser string
	Proxy              string
}

// CropPlan is the compiled focal-crop description for one render. Both
// expressions are symbolic filter-language terms over playback time t and
// the frame widths iw/ow, resolved by the transcoder at render time.
type CropPlan struct {
	OutputWidth  int
	OutputHeight int
	CenterExpr   string
	LeftEdgeExpr string
}

// RenderJob is an immutable description of one transcode invocation.
type RenderJob struct {
	SourcePath   string
	OutputPath   string
	StartSec     float64
	DurationSec  float64
	Plan         CropPlan
	VideoCRF     int
	VideoPreset  string
	AudioBitrate string
}

type StreamInfo struct {
	Index      int
	CodecType  string
	CodecName  string
	Width      int
	Height     int
	SampleRate string
	Channels   int
}

type FormatInfo struct {
	DurationSec float64
	SizeBytes   int64
	BitRate     int64
}

// MediaReport is the verifier's view of a produced file.
type MediaReport struct {
	Path    string
	Streams []StreamInfo
	Format  FormatInfo
}
