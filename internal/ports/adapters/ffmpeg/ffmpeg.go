// Package ffmpeg drives the transcoder and the ffprobe verifier.
package ffmpeg

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/forPelevin/vertcut/internal/ports"
	"github.com/forPelevin/vertcut/internal/types"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
	runner  ports.Runner
}

func New(ffmpegPath, ffprobePath string, r ports.Runner) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath, runner: r}
}

func (a *Adapter) Render(ctx context.Context, job types.RenderJob) error {
	return a.runner.Run(ctx, a.renderArgs(job))
}

func (a *Adapter) renderArgs(job types.RenderJob) []string {
	return []string{
		a.ffmpeg,
		"-y",
		"-ss", fmtSeconds(job.StartSec),
		"-i", job.SourcePath,
		"-t", fmtSeconds(job.DurationSec),
		"-map", "0:v:0",
		"-map", "0:a:0?",
		"-vf", FilterGraph(job.Plan),
		"-c:v", "libx264",
		"-preset", job.VideoPreset,
		"-crf", strconv.Itoa(job.VideoCRF),
		"-c:a", "aac",
		"-ar", "48000",
		"-ac", "2",
		"-b:a", job.AudioBitrate,
		"-movflags", "+faststart",
		job.OutputPath,
	}
}

// FilterGraph renders the scale/crop/sharpen chain for a crop plan. The
// crop x expression runs against the already-scaled frame, so iw/ow
// inside it refer to post-scale dimensions.
func FilterGraph(plan types.CropPlan) string {
	return fmt.Sprintf(
		"scale=-2:%d:flags=lanczos,crop=%d:%d:%s:0,unsharp=5:5:0.75:3:3:0.35,setsar=1,format=yuv420p",
		plan.OutputHeight, plan.OutputWidth, plan.OutputHeight, plan.LeftEdgeExpr,
	)
}

func (a *Adapter) Inspect(ctx context.Context, mediaPath string) (types.MediaReport, error) {
	args := []string{
		a.ffprobe,
		"-v", "error",
		"-show_entries", "stream=index,codec_type,codec_name,width,height,sample_rate,channels",
		"-show_entries", "format=duration,size,bit_rate",
		"-of", "json",
		mediaPath,
	}
	out, err := a.runner.Capture(ctx, args)
	if err != nil {
		return types.MediaReport{}, err
	}
	return parseReport(mediaPath, out), nil
}

// parseReport reads ffprobe's JSON. ffprobe emits format numbers as
// strings; gjson converts them on access.
func parseReport(path, raw string) types.MediaReport {
	rep := types.MediaReport{Path: path}
	for _, s := range gjson.Get(raw, "streams").Array() {
		rep.Streams = append(rep.Streams, types.StreamInfo{
			Index:      int(s.Get("index").Int()),
			CodecType:  s.Get("codec_type").String(),
			CodecName:  s.Get("codec_name").String(),
			Width:      int(s.Get("width").Int()),
			Height:     int(s.Get("height").Int()),
			SampleRate: s.Get("sample_rate").String(),
			Channels:   int(s.Get("channels").Int()),
		})
	}
	f := gjson.Get(raw, "format")
	rep.Format = types.FormatInfo{
		DurationSec: f.Get("duration").Float(),
		SizeBytes:   f.Get("size").Int(),
		BitRate:     f.Get("bit_rate").Int(),
	}
	return rep
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'g', -1, 64)
}
