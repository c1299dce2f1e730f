package pagination

import (
	"fmt"

	"github.com/momogentoo/pdfprintln/internal/observability"
	"github.com/momogentoo/pdfprintln/internal/render"
)

// Paginator creates pages on a backend and owns the content stream of the
// current one. Opening a page always closes the previous stream first.
type Paginator struct {
	backend render.Backend
	logger  observability.Logger

	number int
	page   *render.Page
	stream render.Stream
}

// NewPaginator creates a paginator over backend.
func NewPaginator(backend render.Backend, logger observability.Logger) *Paginator {
	if logger == nil {
		logger = observability.NopLogger{}
	}
	return &Paginator{backend: backend, logger: logger}
}

// NewPage adds a page of the given size and orientation, closes the stream
// of the previous page and opens one for the new page.
func (p *Paginator) NewPage(size PageSize, orientation Orientation) (*render.Page, render.Stream, error) {
	if !size.Valid() {
		return nil, nil, fmt.Errorf("invalid page size %v", size)
	}
	page, err := p.backend.NewPage(size.Dimensions(), orientation.Rotation())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create page: %w", err)
	}
	if err := p.closeStream(); err != nil {
		return nil, nil, err
	}
	stream, err := p.backend.OpenStream(page)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open content stream: %w", err)
	}

	p.number++
	p.page = page
	p.stream = stream
	p.logger.Debug("page created",
		observability.Int("number", p.number),
		observability.String("size", size.String()),
		observability.String("orientation", orientation.String()),
		observability.Float64("width", page.EffectiveWidth()),
		observability.Float64("height", page.EffectiveHeight()),
	)
	return page, stream, nil
}

// Number is the number of the current page, counting from the value set by
// SetNumber.
func (p *Paginator) Number() int {
	return p.number
}

// SetNumber sets the current page number; the next page is n+1.
func (p *Paginator) SetNumber(n int) {
	p.number = n
}

// Page returns the current page, or nil before the first NewPage.
func (p *Paginator) Page() *render.Page {
	return p.page
}

// Close closes the stream of the current page.
func (p *Paginator) Close() error {
	return p.closeStream()
}

func (p *Paginator) closeStream() error {
	if p.stream == nil {
		return nil
	}
	s := p.stream
	p.stream = nil
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close content stream: %w", err)
	}
	return nil
}
