package layout

import "errors"

var (
	// ErrEmptyRow is returned for a row without cells.
	ErrEmptyRow = errors.New("layout: row has no cells")
	// ErrRowShape is returned when cells, weights and attributes differ in length.
	ErrRowShape = errors.New("layout: row cells, weights and attributes differ in length")
	// ErrInvalidWeights is returned for negative weights or a non-positive total.
	ErrInvalidWeights = errors.New("layout: row weights must be non-negative with a positive sum")
	// ErrInvalidFontSize is returned for a font size that is not positive.
	ErrInvalidFontSize = errors.New("layout: font size must be positive")
	// ErrClosed is returned for any drawing after Close.
	ErrClosed = errors.New("layout: engine closed")
	// ErrInvalidSpacing is returned for a negative margin or line spacing.
	ErrInvalidSpacing = errors.New("layout: margin and line spacing must not be negative")
)
