package focal

import (
	"errors"
	"testing"
)

func TestParseAnchorMap_SortsByTime(t *testing.T) {
	table, err := ParseAnchorMap("44.461:right,38.372:left", AnchorCenter)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected 2 breakpoints, got %d", len(table))
	}
	for i := 1; i < len(table); i++ {
		if table[i-1].Time > table[i].Time {
			t.Fatalf("table not sorted: %v before %v", table[i-1].Time, table[i].Time)
		}
	}
}

func TestParseAnchorMap_DropsRedundantDefaultAtZero(t *testing.T) {
	table, err := ParseAnchorMap("0:center,12:left", AnchorCenter)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(table) != 1 {
		t.Fatalf("expected redundant 0:center to be dropped, got %d breakpoints", len(table))
	}
	if table[0].Time != 12 {
		t.Fatalf("unexpected surviving breakpoint time: %v", table[0].Time)
	}
}

func TestParseAnchorMap_KeepsNonDefaultAtZero(t *testing.T) {
	table, err := ParseAnchorMap("0:left", AnchorCenter)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(table) != 1 {
		t.Fatalf("expected 0:left to be retained, got %d breakpoints", len(table))
	}
}

func TestParseAnchorMap_EmptyAndBlankEntries(t *testing.T) {
	if table, err := ParseAnchorMap("", AnchorCenter); err != nil || table != nil {
		t.Fatalf("empty input: table=%v err=%v", table, err)
	}
	table, err := ParseAnchorMap(" 5:left , ,7:right ", AnchorCenter)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected blank entries skipped, got %d breakpoints", len(table))
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		fn   func() (Table, error)
	}{
		{"anchor missing separator", func() (Table, error) { return ParseAnchorMap("38left", AnchorCenter) }},
		{"anchor time not numeric", func() (Table, error) { return ParseAnchorMap("x:left", AnchorCenter) }},
		{"unknown anchor", func() (Table, error) { return ParseAnchorMap("5:middle", AnchorCenter) }},
		{"x missing separator", func() (Table, error) { return ParseXMap("4.038") }},
		{"x time not numeric", func() (Table, error) { return ParseXMap("a:0.4") }},
		{"x position not numeric", func() (Table, error) { return ParseXMap("4:b") }},
		{"x position above range", func() (Table, error) { return ParseXMap("4:1.5") }},
		{"x position below range", func() (Table, error) { return ParseXMap("4:-0.1") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.fn()
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
		})
	}
}

func TestCenterExpr_AnchorScenario(t *testing.T) {
	table, err := ParseAnchorMap("38.372:left,44.461:right", AnchorCenter)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := CenterExpr(AnchorCenter, table)
	want := `if(gte(t\,44.461)\,iw-ow/2\,if(gte(t\,38.372)\,ow/2\,iw/2))`
	if got != want {
		t.Fatalf("center expr\n got: %s\nwant: %s", got, want)
	}
}

func TestCenterExpr_FractionScenario(t *testing.T) {
	table, err := ParseXMap("4:0.38,20:0.66")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := CenterExpr(AnchorCenter, table)
	want := `if(gte(t\,20)\,0.66*iw\,if(gte(t\,4)\,0.38*iw\,iw/2))`
	if got != want {
		t.Fatalf("center expr\n got: %s\nwant: %s", got, want)
	}
}

func TestCenterExpr_Idempotent(t *testing.T) {
	const raw = "4:0.38,20:0.66"
	first, err := ParseXMap(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	second, err := ParseXMap(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if a, b := CenterExpr(AnchorCenter, first), CenterExpr(AnchorCenter, second); a != b {
		t.Fatalf("expected identical expressions, got %q and %q", a, b)
	}
}

func TestCenterExpr_EmptyTableIsDefault(t *testing.T) {
	if got := CenterExpr(AnchorLeft, nil); got != "ow/2" {
		t.Fatalf("unexpected default expr: %s", got)
	}
	if got := CenterExpr(AnchorRight, nil); got != "iw-ow/2" {
		t.Fatalf("unexpected default expr: %s", got)
	}
}

func TestLeftEdgeExpr_WrapsCenterInClamp(t *testing.T) {
	got := LeftEdgeExpr("iw/2")
	want := `clip((iw/2)-ow/2\,0\,iw-ow)`
	if got != want {
		t.Fatalf("left edge expr\n got: %s\nwant: %s", got, want)
	}
}

func TestCenterAt_StepSemantics(t *testing.T) {
	table, err := ParseXMap("4:0.38,20:0.66")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	const inW, outW = 1920.0, 607.0

	cases := []struct {
		t    float64
		want float64
	}{
		{0, inW / 2},
		{3.999, inW / 2},
		{4, 0.38 * inW},
		{10, 0.38 * inW}, // holds the latest breakpoint, no interpolation
		{19.999, 0.38 * inW},
		{20, 0.66 * inW},
		{3600, 0.66 * inW},
	}
	for _, tc := range cases {
		if got := CenterAt(AnchorCenter, table, tc.t, inW, outW); got != tc.want {
			t.Fatalf("CenterAt(t=%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestCenterAt_AnchorStepSemantics(t *testing.T) {
	table, err := ParseAnchorMap("38.372:left,44.461:right", AnchorCenter)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	const inW, outW = 1920.0, 607.0

	cases := []struct {
		t    float64
		want float64
	}{
		{0, inW / 2},
		{38.371, inW / 2},
		{38.372, outW / 2},
		{44.460, outW / 2},
		{44.461, inW - outW/2},
		{120, inW - outW/2},
	}
	for _, tc := range cases {
		if got := CenterAt(AnchorCenter, table, tc.t, inW, outW); got != tc.want {
			t.Fatalf("CenterAt(t=%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestLeftEdgeAt_StaysInsideFrame(t *testing.T) {
	anchors, err := ParseAnchorMap("5:left,10:right", AnchorCenter)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	fracs, err := ParseXMap("0:0,2:1,8:0.5")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	widths := []struct{ inW, outW float64 }{
		{1920, 607},
		{1080, 1080}, // degenerate: crop spans the whole frame
		{608, 607},
		{3840, 1080},
	}
	times := []float64{0, 1, 2, 4.9, 5, 7, 8, 10, 11, 600}

	for _, table := range []Table{nil, anchors, fracs} {
		for _, w := range widths {
			for _, at := range times {
				left := LeftEdgeAt(AnchorCenter, table, at, w.inW, w.outW)
				if left < 0 || left > w.inW-w.outW {
					t.Fatalf("left edge %v out of [0, %v] at t=%v inW=%v outW=%v",
						left, w.inW-w.outW, at, w.inW, w.outW)
				}
			}
		}
	}
}
