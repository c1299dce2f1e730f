package api

import (
	"log/slog"

	"github.com/momogentoo/pdfprintln/internal/layout"
	"github.com/momogentoo/pdfprintln/internal/pagination"
	"github.com/momogentoo/pdfprintln/internal/render"
)

// PageSize is a standard paper size
type PageSize = pagination.PageSize

// PageOrientation represents page orientation
type PageOrientation = pagination.Orientation

// Color is an RGB color
type Color = render.Color

// Alignment is the horizontal placement of a line or cell text
type Alignment = layout.Alignment

// TextAttributes style a row cell or an absolutely placed string
type TextAttributes = layout.TextAttributes

// Standard page sizes
const (
	PageSizeA0     = pagination.PageSizeA0
	PageSizeA1     = pagination.PageSizeA1
	PageSizeA2     = pagination.PageSizeA2
	PageSizeA3     = pagination.PageSizeA3
	PageSizeA4     = pagination.PageSizeA4
	PageSizeA5     = pagination.PageSizeA5
	PageSizeA6     = pagination.PageSizeA6
	PageSizeLetter = pagination.PageSizeLetter
	PageSizeLegal  = pagination.PageSizeLegal
)

const (
	// PageOrientationPortrait sets the page to portrait orientation
	PageOrientationPortrait = pagination.Portrait
	// PageOrientationLandscape sets the page to landscape orientation
	PageOrientationLandscape = pagination.Landscape
)

// ParsePageSize and ParseOrientation look up page settings by name, as
// accepted on the command line.
var (
	ParsePageSize    = pagination.ParsePageSize
	ParseOrientation = pagination.ParseOrientation
)

const (
	AlignLeft   = layout.AlignLeft
	AlignMiddle = layout.AlignMiddle
	AlignRight  = layout.AlignRight
)

// Backend selects the PDF writer.
type Backend string

const (
	// BackendFpdf writes with go-pdf/fpdf and supports the 14 core fonts
	BackendFpdf Backend = "fpdf"
	// BackendCanvas writes with tdewolff/canvas using the Go fonts
	BackendCanvas Backend = "canvas"
)

// Options represents configuration options for a document
type Options struct {
	// Page geometry
	PageSize        PageSize
	PageOrientation PageOrientation
	// Margin applies to all four page edges
	Margin      float64
	LineSpacing float64

	// Session font. FontFile, when set, is loaded through the resource
	// loader and registered under FontFamily.
	FontFamily string
	FontStyle  string
	FontFile   string
	FontSize   float64

	// Page number footer
	OutputPageNumber   bool
	PageNumberPattern  string
	PageNumberFontSize float64

	// Rendering options
	Backend  Backend
	Compress bool
	Debug    bool
	// Logger receives structured logs; nil logs to stderr when Debug is
	// set and discards otherwise.
	Logger *slog.Logger

	// Resource paths searched for fonts and documents
	ResourcePaths []string

	// Document metadata
	Title    string
	Author   string
	Subject  string
	Keywords string
}

// Option is a function that modifies Options
type Option func(*Options)

// DefaultOptions returns the default options: US Letter landscape pages,
// 12pt Helvetica Bold, 40pt margins, 5pt line spacing and a 6pt
// "Page Number %d" footer.
func DefaultOptions() Options {
	return Options{
		PageSize:        PageSizeLetter,
		PageOrientation: PageOrientationLandscape,
		Margin:          40,
		LineSpacing:     5,

		FontFamily: "Helvetica",
		FontStyle:  "B",
		FontSize:   12,

		OutputPageNumber:   true,
		PageNumberPattern:  "Page Number %d",
		PageNumberFontSize: 6,

		Backend:  BackendFpdf,
		Compress: true,

		ResourcePaths: []string{},
	}
}

// WithPageSize sets the page size
func WithPageSize(size PageSize) Option {
	return func(o *Options) {
		o.PageSize = size
	}
}

// WithPageOrientation sets the page orientation
func WithPageOrientation(orientation PageOrientation) Option {
	return func(o *Options) {
		o.PageOrientation = orientation
	}
}

// WithMargin sets the page margin
func WithMargin(margin float64) Option {
	return func(o *Options) {
		o.Margin = margin
	}
}

// WithLineSpacing sets the gap between lines
func WithLineSpacing(spacing float64) Option {
	return func(o *Options) {
		o.LineSpacing = spacing
	}
}

// WithFontSize sets the text font size
func WithFontSize(size float64) Option {
	return func(o *Options) {
		o.FontSize = size
	}
}

// WithFont sets the font family and style (B, I, BI or empty)
func WithFont(family, style string) Option {
	return func(o *Options) {
		o.FontFamily = family
		o.FontStyle = style
	}
}

// WithFontFile loads a TrueType font and uses it as the session font.
// family names it in the document.
func WithFontFile(family, path string) Option {
	return func(o *Options) {
		o.FontFamily = family
		o.FontStyle = ""
		o.FontFile = path
	}
}

// WithPageNumbering configures the page number footer. An empty pattern
// or a non-positive size keeps the current value.
func WithPageNumbering(on bool, pattern string, size float64) Option {
	return func(o *Options) {
		o.OutputPageNumber = on
		if pattern != "" {
			o.PageNumberPattern = pattern
		}
		if size > 0 {
			o.PageNumberFontSize = size
		}
	}
}

// WithBackend selects the PDF writer
func WithBackend(backend Backend) Option {
	return func(o *Options) {
		o.Backend = backend
	}
}

// WithCompression toggles content stream compression
func WithCompression(compress bool) Option {
	return func(o *Options) {
		o.Compress = compress
	}
}

// WithDebug sets the debug mode
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithResourcePath adds a path to search for resources
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}
