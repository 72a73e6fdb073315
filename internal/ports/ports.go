package ports

import (
	"context"
	"fmt"

	"github.com/forPelevin/vertcut/internal/types"
)

// Runner executes external commands. Implementations must announce every
// command before deciding whether to execute it, so a dry run prints the
// exact argv a real run would.
type Runner interface {
	Run(ctx context.Context, argv []string) error
	Capture(ctx context.Context, argv []string) (string, error)
}

type Acquirer interface {
	Fetch(ctx context.Context, req types.FetchRequest) error
	// MaxListedHeight probes the advertised formats for the request's URL
	// and reports the tallest one. ok is false when the probe failed, was
	// skipped, or listed no recognizable heights.
	MaxListedHeight(ctx context.Context, req types.FetchRequest) (height int, ok bool)
}

type Transcoder interface {
	Render(ctx context.Context, job types.RenderJob) error
}

type Verifier interface {
	Inspect(ctx context.Context, mediaPath string) (types.MediaReport, error)
}

// ExitError carries the exit status of a failed external command, or of a
// pipeline abort that must surface a specific process exit code.
type ExitError struct {
	Code int
	Msg  string
}

func (e *ExitError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("exit status %d", e.Code)
}
