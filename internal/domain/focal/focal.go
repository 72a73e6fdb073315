// Package focal turns sparse time-keyed crop hints into a single
// piecewise-constant crop-position function of playback time.
//
// The compiled output is symbolic: positions are expressed in terms of the
// transcoder's iw/ow frame widths so the actual pixel geometry is resolved
// at render time. The same breakpoint table can also be evaluated
// numerically (CenterAt, LeftEdgeAt) so the step semantics and the clamp
// invariant are testable without running the transcoder.
package focal

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Anchor is a named horizontal alignment of the crop window.
type Anchor string

const (
	AnchorLeft   Anchor = "left"
	AnchorCenter Anchor = "center"
	AnchorRight  Anchor = "right"
)

// ParseAnchor validates and normalizes an anchor name.
func ParseAnchor(s string) (Anchor, error) {
	switch a := Anchor(strings.ToLower(strings.TrimSpace(s))); a {
	case AnchorLeft, AnchorCenter, AnchorRight:
		return a, nil
	default:
		return "", fmt.Errorf("unsupported anchor %q", s)
	}
}

// centerExpr is the symbolic horizontal center of a crop window aligned to
// the anchor, in source-frame coordinates.
func (a Anchor) centerExpr() string {
	switch a {
	case AnchorLeft:
		return "ow/2"
	case AnchorRight:
		return "iw-ow/2"
	default:
		return "iw/2"
	}
}

func (a Anchor) centerAt(inW, outW float64) float64 {
	switch a {
	case AnchorLeft:
		return outW / 2
	case AnchorRight:
		return inW - outW/2
	default:
		return inW / 2
	}
}

// Position is a crop-window center: either a named anchor or a fraction of
// the source frame width.
type Position struct {
	anchor Anchor
	frac   float64
	isFrac bool
}

func AnchorPosition(a Anchor) Position { return Position{anchor: a} }

func FracPosition(f float64) Position { return Position{frac: f, isFrac: true} }

// Expr renders the position as a symbolic filter-language term.
func (p Position) Expr() string {
	if p.isFrac {
		return formatFloat(p.frac) + "*iw"
	}
	return p.anchor.centerExpr()
}

// CenterAt evaluates the position against concrete frame widths.
func (p Position) CenterAt(inW, outW float64) float64 {
	if p.isFrac {
		return p.frac * inW
	}
	return p.anchor.centerAt(inW, outW)
}

// Breakpoint is one normalized time-keyed crop hint.
type Breakpoint struct {
	Time float64
	Pos  Position
}

// Table is an ordered sequence of breakpoints, sorted ascending by time.
// All breakpoints in a table come from one hint kind; anchor and fraction
// hints are never merged.
type Table []Breakpoint

// ParseError reports a malformed hint entry.
type ParseError struct {
	Entry  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid focal hint %q: %s", e.Entry, e.Reason)
}

// ParseAnchorMap parses comma-separated "time:anchor" entries into a
// breakpoint table sorted by time. Entries at time <= 0 that match the
// default anchor are dropped: they would only add a no-op branch in front
// of the default. An empty input yields an empty table.
func ParseAnchorMap(raw string, def Anchor) (Table, error) {
	table, err := parseEntries(raw, func(item, posRaw string) (Position, error) {
		a, err := ParseAnchor(posRaw)
		if err != nil {
			return Position{}, &ParseError{Entry: item, Reason: err.Error()}
		}
		return AnchorPosition(a), nil
	})
	if err != nil {
		return nil, err
	}

	out := table[:0]
	for _, bp := range table {
		if bp.Time <= 0 && !bp.Pos.isFrac && bp.Pos.anchor == def {
			continue
		}
		out = append(out, bp)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// ParseXMap parses comma-separated "time:fraction" entries, fractions in
// [0,1] of the source frame width, into a breakpoint table sorted by time.
func ParseXMap(raw string) (Table, error) {
	return parseEntries(raw, func(item, posRaw string) (Position, error) {
		f, err := strconv.ParseFloat(posRaw, 64)
		if err != nil {
			return Position{}, &ParseError{Entry: item, Reason: "position is not numeric"}
		}
		if f < 0 || f > 1 {
			return Position{}, &ParseError{Entry: item, Reason: fmt.Sprintf("position must be within [0.0, 1.0], got %s", posRaw)}
		}
		return FracPosition(f), nil
	})
}

func parseEntries(raw string, parsePos func(item, posRaw string) (Position, error)) (Table, error) {
	if raw == "" {
		return nil, nil
	}

	var table Table
	for _, entry := range strings.Split(raw, ",") {
		item := strings.TrimSpace(entry)
		if item == "" {
			continue
		}
		tRaw, posRaw, found := strings.Cut(item, ":")
		if !found {
			return nil, &ParseError{Entry: item, Reason: "missing time:value separator"}
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(tRaw), 64)
		if err != nil {
			return nil, &ParseError{Entry: item, Reason: "time is not numeric"}
		}
		pos, err := parsePos(item, strings.TrimSpace(posRaw))
		if err != nil {
			return nil, err
		}
		table = append(table, Breakpoint{Time: t, Pos: pos})
	}

	// Stable so same-time entries keep input order.
	sort.SliceStable(table, func(i, j int) bool { return table[i].Time < table[j].Time })
	return table, nil
}

// CenterExpr folds the table into nested time-conditional terms over the
// default anchor's center. Breakpoints are processed in ascending time
// order and each new term wraps the accumulated expression, so the latest
// breakpoint whose time has been reached always wins: a step function that
// switches exactly at each breakpoint and holds in between.
//
// Commas are escaped because the result is spliced into a filter-graph
// argument where bare commas separate filter parameters.
func CenterExpr(def Anchor, table Table) string {
	expr := AnchorPosition(def).Expr()
	for _, bp := range table {
		expr = fmt.Sprintf(`if(gte(t\,%s)\,%s\,%s)`, formatFloat(bp.Time), bp.Pos.Expr(), expr)
	}
	return expr
}

// LeftEdgeExpr derives the crop-left-edge term from a center term,
// clamped so the crop window never leaves the source frame.
func LeftEdgeExpr(centerExpr string) string {
	return fmt.Sprintf(`clip((%s)-ow/2\,0\,iw-ow)`, centerExpr)
}

// CenterAt evaluates the step function numerically at playback time t.
func CenterAt(def Anchor, table Table, t, inW, outW float64) float64 {
	pos := AnchorPosition(def)
	for _, bp := range table {
		if t >= bp.Time {
			pos = bp.Pos
		}
	}
	return pos.CenterAt(inW, outW)
}

// LeftEdgeAt is the numeric twin of LeftEdgeExpr: the clamped left edge of
// the crop window at playback time t.
func LeftEdgeAt(def Anchor, table Table, t, inW, outW float64) float64 {
	left := CenterAt(def, table, t, inW, outW) - outW/2
	if left < 0 {
		return 0
	}
	if max := inW - outW; left > max {
		return max
	}
	return left
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
