package layout

import (
	"math"

	"github.com/momogentoo/pdfprintln/internal/render"
)

// Baseline is the Y of the last committed line on the current page. Set is
// false until the first line lands on a fresh page.
type Baseline struct {
	Y   float64
	Set bool
}

// State is the cursor of the engine on its current page.
type State struct {
	Page   *render.Page
	Stream render.Stream

	EffectiveWidth  float64
	EffectiveHeight float64

	MaxLines       int
	AvailableLines int
	LinesConsumed  int

	Baseline Baseline
	CursorX  float64
	CursorY  float64
}

// Full reports whether the line budget of the page is used up.
func (s *State) Full() bool {
	return s.AvailableLines <= 0
}

func (s *State) commit(x, y float64, lines int) {
	s.CursorX = x
	s.CursorY = y
	s.Baseline = Baseline{Y: y, Set: true}
	s.LinesConsumed += lines
	s.AvailableLines -= lines
}

// EstimateMaxLines returns how many lines of lineHeight separated by
// lineSpacing fit in maxHeight between the two margins. The first line sits
// on the top margin and does not use a full step, hence the +1.
func EstimateMaxLines(maxHeight, lineHeight, lineSpacing, marginTop, marginBottom float64) int {
	step := lineHeight + lineSpacing
	if step <= 0 {
		return 1
	}
	return int(math.Floor((maxHeight-marginTop-marginBottom)/step)) + 1
}
