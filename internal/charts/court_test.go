package charts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRenderCourtCanvas tests the overall canvas framing
func TestRenderCourtCanvas(t *testing.T) {
	out := string(RenderCourt(CourtOptions{}))

	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"), "Output should be a closed SVG document")
	assert.Contains(t, out, `width="1220" height="1100"`, "Canvas should match the fixed layout")
	assert.Contains(t, out, "fill:black", "Background should be black")
	assert.Contains(t, out, "stroke:white;stroke-width:2.0", "Default lines should be 2px white")
}

// TestRenderCourtMarkings tests that every court marking is present
func TestRenderCourtMarkings(t *testing.T) {
	out := string(RenderCourt(CourtOptions{}))

	// Rects: background, boundary, lane. Circles: free throw and basket.
	assert.Equal(t, 3, strings.Count(out, "<rect"), "Expected background, boundary and lane rects")
	assert.Equal(t, 2, strings.Count(out, "<circle"), "Expected free throw and basket circles")
	assert.Equal(t, 1, strings.Count(out, "A475,475"), "Expected three point arc at radius 475px")
	assert.Equal(t, 1, strings.Count(out, "A80,80"), "Expected restricted arc at radius 80px")
	assert.Equal(t, 3, strings.Count(out, "<line"), "Expected free throw line and two corner three lines")
}

// TestRenderCourtOptions tests title, caption and line styling options
func TestRenderCourtOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        CourtOptions
		contains    []string
		notContains []string
	}{
		{
			name:        "Bare court",
			opts:        CourtOptions{},
			notContains: []string{"<text"},
		},
		{
			name:     "Title and caption",
			opts:     CourtOptions{Title: "Court Only", Caption: "No shot data available"},
			contains: []string{"Court Only", "No shot data available"},
		},
		{
			name:        "Custom line style",
			opts:        CourtOptions{LineColor: "orange", LineWidth: 3},
			contains:    []string{"stroke:orange;stroke-width:3.0"},
			notContains: []string{"stroke:white"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := string(RenderCourt(tt.opts))
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}

// TestRenderCourtIsDeterministic tests that identical options give identical bytes
func TestRenderCourtIsDeterministic(t *testing.T) {
	opts := CourtOptions{Title: "Repeatable", LineColor: "white"}
	first := RenderCourt(opts)
	second := RenderCourt(opts)
	assert.Equal(t, first, second, "Same options should render byte-identical output")
}
