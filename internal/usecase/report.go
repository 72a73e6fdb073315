package usecase

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/forPelevin/vertcut/internal/types"
)

// renderReport formats the verifier's stream/container metadata for the
// progress stream.
func renderReport(rep types.MediaReport) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "Type", "Codec", "Resolution", "Sample rate", "Channels"})
	for _, s := range rep.Streams {
		res := "-"
		if s.Width > 0 && s.Height > 0 {
			res = fmt.Sprintf("%dx%d", s.Width, s.Height)
		}
		sr := s.SampleRate
		if sr == "" {
			sr = "-"
		}
		ch := "-"
		if s.Channels > 0 {
			ch = fmt.Sprintf("%d", s.Channels)
		}
		tw.AppendRow(table.Row{s.Index, s.CodecType, s.CodecName, res, sr, ch})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "verified %s\n", rep.Path)
	b.WriteString(tw.Render())
	fmt.Fprintf(&b, "\nduration=%.3fs size=%d bytes bit_rate=%d b/s",
		rep.Format.DurationSec, rep.Format.SizeBytes, rep.Format.BitRate)
	return b.String()
}
