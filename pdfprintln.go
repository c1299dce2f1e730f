// Package pdfprintln prints lines of text onto automatically paginated PDF
// pages. It re-exports the pkg/api types for callers that only need the
// top-level import.
package pdfprintln

import (
	"github.com/momogentoo/pdfprintln/pkg/api"
)

type Document = api.Document
type Converter = api.Converter
type Options = api.Options
type Option = api.Option
type Format = api.Format
type Backend = api.Backend
type PageSize = api.PageSize
type PageOrientation = api.PageOrientation
type Color = api.Color
type Alignment = api.Alignment
type TextAttributes = api.TextAttributes

func New(opts ...Option) (*Document, error)             { return api.New(opts...) }
func NewWithOptions(options Options) (*Document, error) { return api.NewWithOptions(options) }
func NewConverter() *Converter                          { return api.NewConverter() }
func DefaultOptions() Options                           { return api.DefaultOptions() }

func NewConverterWithOptions(options Options) *Converter {
	return api.NewConverterWithOptions(options)
}

var (
	WithPageSize        = api.WithPageSize
	WithPageOrientation = api.WithPageOrientation
	WithMargin          = api.WithMargin
	WithLineSpacing     = api.WithLineSpacing
	WithFontSize        = api.WithFontSize
	WithFont            = api.WithFont
	WithFontFile        = api.WithFontFile
	WithPageNumbering   = api.WithPageNumbering
	WithBackend         = api.WithBackend
	WithCompression     = api.WithCompression
	WithDebug           = api.WithDebug
	WithLogger          = api.WithLogger
	WithResourcePath    = api.WithResourcePath
	WithTitle           = api.WithTitle
	WithAuthor          = api.WithAuthor
	WithSubject         = api.WithSubject
	WithKeywords        = api.WithKeywords

	ParseFormat      = api.ParseFormat
	DetectFormat     = api.DetectFormat
	ParsePageSize    = api.ParsePageSize
	ParseOrientation = api.ParseOrientation
)

var (
	ErrClosed          = api.ErrClosed
	ErrInvalidFontSize = api.ErrInvalidFontSize
	ErrEmptyRow        = api.ErrEmptyRow
	ErrRowShape        = api.ErrRowShape
	ErrInvalidWeights  = api.ErrInvalidWeights
)

const (
	PageSizeA0     = api.PageSizeA0
	PageSizeA1     = api.PageSizeA1
	PageSizeA2     = api.PageSizeA2
	PageSizeA3     = api.PageSizeA3
	PageSizeA4     = api.PageSizeA4
	PageSizeA5     = api.PageSizeA5
	PageSizeA6     = api.PageSizeA6
	PageSizeLetter = api.PageSizeLetter
	PageSizeLegal  = api.PageSizeLegal

	PageOrientationPortrait  = api.PageOrientationPortrait
	PageOrientationLandscape = api.PageOrientationLandscape

	AlignLeft   = api.AlignLeft
	AlignMiddle = api.AlignMiddle
	AlignRight  = api.AlignRight

	BackendFpdf   = api.BackendFpdf
	BackendCanvas = api.BackendCanvas

	FormatAuto     = api.FormatAuto
	FormatScript   = api.FormatScript
	FormatHTML     = api.FormatHTML
	FormatMarkdown = api.FormatMarkdown
)
