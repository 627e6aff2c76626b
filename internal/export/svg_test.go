package export

import (
	"strings"
	"testing"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/pattern"
)

func TestGridSVG(t *testing.T) {
	g, err := life.Parse(
		"O..",
		"..O",
	)
	if err != nil {
		t.Fatal(err)
	}

	svg := GridSVG(g, 10, "#ff0000")

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Errorf("not a complete svg document:\n%s", svg)
	}
	if !strings.Contains(svg, `width="30" height="20"`) {
		t.Error("expected 30x20 document")
	}
	if !strings.Contains(svg, `<g fill="#ff0000">`) {
		t.Error("expected fill colour")
	}
	if n := strings.Count(svg, `width="10" height="10"`); n != 2 {
		t.Errorf("expected 2 cells, got %d", n)
	}
	if !strings.Contains(svg, `<rect x="20" y="10"`) {
		t.Error("expected cell at row 1 col 2")
	}
}

func TestPatternSVG_FollowsOrientation(t *testing.T) {
	p, err := pattern.Parse("OOO")
	if err != nil {
		t.Fatal(err)
	}

	flat := PatternSVG(p, 4, "")
	if !strings.Contains(flat, `width="12" height="4"`) {
		t.Error("expected 12x4 document")
	}
	if !strings.Contains(flat, `fill="#00ff00"`) {
		t.Error("expected default fill")
	}

	upright := PatternSVG(p.Rotate(), 4, "")
	if !strings.Contains(upright, `width="4" height="12"`) {
		t.Error("expected 4x12 document after rotation")
	}
}

func TestSVG_Nil(t *testing.T) {
	if GridSVG(nil, 5, "") != "" || PatternSVG(nil, 5, "") != "" {
		t.Error("expected empty output for nil input")
	}
}

func TestPopulationSVG(t *testing.T) {
	if PopulationSVG([]int{3}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single sample")
	}

	svg := PopulationSVG([]int{0, 10, 5}, 100, 50, "#ffffff")
	if !strings.Contains(svg, `stroke="#ffffff"`) {
		t.Error("expected stroke colour")
	}
	if !strings.Contains(svg, "M0.0,50.0") {
		t.Errorf("expected path to start at the bottom left:\n%s", svg)
	}
	if strings.Count(svg, " L") != 2 {
		t.Error("expected two line segments")
	}
}
