package usecase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/forPelevin/vertcut/internal/domain/focal"
	"github.com/forPelevin/vertcut/internal/domain/source"
	"github.com/forPelevin/vertcut/internal/ports"
	"github.com/forPelevin/vertcut/internal/types"
)

// Best heights at or below this are warned about: the render upscales.
const lowResThreshold = 360

type Deps struct {
	Downloader ports.Acquirer
	Transcoder ports.Transcoder
	Verifier   ports.Verifier
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	URL        string
	OutDir     string
	OutputName string

	StartSec    float64
	DurationSec float64
	Width       int
	Height      int

	DefaultAnchor focal.Anchor
	AnchorMap     string
	XMap          string

	ExtractorArgs      string
	Format             string
	CookiesFromBrowser string
	Proxy              string

	VideoCRF     int
	VideoPreset  string
	AudioBitrate string

	DryRun bool
	Logf   func(format string, args ...any)
	Warnf  func(format string, args ...any)
}

type Result struct {
	Plan       types.CropPlan
	SourcePath string
	OutputPath string
	Report     types.MediaReport
}

// Run drives the four stages in order: acquire, plan, render, verify.
// Stages are strictly sequential; any collaborator failure aborts the
// run and its exit code surfaces unchanged via *ports.ExitError. In dry
// mode the collaborators only announce their commands and the verify
// stage is skipped entirely.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	warnf := in.Warnf
	if warnf == nil {
		warnf = func(string, ...any) {}
	}

	// Hint parsing must fail before any external command is constructed.
	plan, err := compilePlan(in, warnf)
	if err != nil {
		return Result{}, err
	}

	req := types.FetchRequest{
		URL:                in.URL,
		ExtractorArgs:      in.ExtractorArgs,
		Format:             in.Format,
		OutputTemplate:     filepath.Join(in.OutDir, source.Stem+".%(ext)s"),
		CookiesFromBrowser: in.CookiesFromBrowser,
		Proxy:              in.Proxy,
	}

	if h, ok := u.d.Downloader.MaxListedHeight(ctx, req); ok && h <= lowResThreshold {
		warnf("highest listed source format is %dp; output will be upscaled", h)
	}

	if err := u.d.Downloader.Fetch(ctx, req); err != nil {
		return Result{}, err
	}

	srcPath := filepath.Join(in.OutDir, source.Stem+".mp4")
	if !in.DryRun {
		name, err := source.Pick(os.DirFS(in.OutDir), source.Stem)
		if err != nil {
			return Result{}, err
		}
		srcPath = filepath.Join(in.OutDir, name)
	}

	outPath := filepath.Join(in.OutDir, in.OutputName)
	job := types.RenderJob{
		SourcePath:   srcPath,
		OutputPath:   outPath,
		StartSec:     in.StartSec,
		DurationSec:  in.DurationSec,
		Plan:         plan,
		VideoCRF:     in.VideoCRF,
		VideoPreset:  in.VideoPreset,
		AudioBitrate: in.AudioBitrate,
	}
	if err := u.d.Transcoder.Render(ctx, job); err != nil {
		return Result{}, err
	}

	res := Result{Plan: plan, SourcePath: srcPath, OutputPath: outPath}
	if in.DryRun {
		return res, nil
	}

	rep, err := u.d.Verifier.Inspect(ctx, outPath)
	if err != nil {
		return res, err
	}
	res.Report = rep
	logf("%s", renderReport(rep))
	return res, nil
}

// compilePlan normalizes both hint tables and compiles the crop
// expressions. When both kinds are supplied, the x-map wins entirely and
// the anchor map is discarded.
func compilePlan(in Input, warnf func(string, ...any)) (types.CropPlan, error) {
	anchorTable, err := focal.ParseAnchorMap(in.AnchorMap, in.DefaultAnchor)
	if err != nil {
		return types.CropPlan{}, err
	}
	xTable, err := focal.ParseXMap(in.XMap)
	if err != nil {
		return types.CropPlan{}, err
	}

	table := anchorTable
	if len(xTable) > 0 {
		if len(anchorTable) > 0 {
			warnf("both x-map and anchor-map provided; using x-map")
		}
		table = xTable
	}

	center := focal.CenterExpr(in.DefaultAnchor, table)
	return types.CropPlan{
		OutputWidth:  in.Width,
		OutputHeight: in.Height,
		CenterExpr:   center,
		LeftEdgeExpr: focal.LeftEdgeExpr(center),
	}, nil
}
