package api

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/momogentoo/pdfprintln/internal/observability"
	"github.com/momogentoo/pdfprintln/internal/parser/dsl"
	"github.com/momogentoo/pdfprintln/internal/parser/html"
	"github.com/momogentoo/pdfprintln/internal/parser/markdown"
	"github.com/momogentoo/pdfprintln/internal/res"
	"github.com/momogentoo/pdfprintln/internal/script"
)

// Format is the language of a source document.
type Format string

const (
	// FormatAuto detects the format from the file name or the content
	FormatAuto     Format = "auto"
	FormatScript   Format = "script"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts auto, script, html, markdown or md.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "script", "pln":
		return FormatScript, nil
	case "html", "htm":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// DetectFormat guesses the format of a source. The MIME type derived from
// name wins; otherwise content starting with '<' is HTML, content that
// parses as a script is a script and anything else is Markdown.
func DetectFormat(name string, data []byte) Format {
	switch res.TypeOf(name) {
	case res.ResourceTypeHTML:
		return FormatHTML
	case res.ResourceTypeMarkdown:
		return FormatMarkdown
	case res.ResourceTypeScript:
		return FormatScript
	}
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("<")) {
		return FormatHTML
	}
	if _, err := dsl.ParseASTString(name, string(data)); err == nil {
		return FormatScript
	}
	return FormatMarkdown
}

// Import reads a source document and prints it into d. name is used for
// format detection and error positions and may be empty.
func (d *Document) Import(name string, r io.Reader, format Format) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	prog, err := d.compile(name, data, format)
	if err != nil {
		return err
	}
	return d.run(prog)
}

// ImportString prints a source held in a string.
func (d *Document) ImportString(src string, format Format) error {
	return d.Import("", strings.NewReader(src), format)
}

// ImportFile loads a source from a path or URL and prints it. Relative
// references resolve against the resource paths.
func (d *Document) ImportFile(ref string, format Format) error {
	r, err := d.loader.Load(ref)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", ref, err)
	}
	return d.Import(r.URL, r.Reader(), format)
}

func (d *Document) compile(name string, data []byte, format Format) (*script.Program, error) {
	if format == FormatAuto || format == "" {
		format = DetectFormat(name, data)
	}
	d.logger.Debug("compiling source",
		observability.String("name", name),
		observability.String("format", string(format)),
		observability.Int("bytes", len(data)),
	)

	var (
		prog *script.Program
		err  error
	)
	switch format {
	case FormatScript:
		prog, err = dsl.Parse(name, bytes.NewReader(data))
	case FormatHTML:
		prog, err = html.Convert(bytes.NewReader(data), html.Options{FontSize: d.TextFontSize(), Logger: d.logger})
	case FormatMarkdown:
		prog, err = markdown.Convert(data, markdown.Options{FontSize: d.TextFontSize(), Logger: d.logger})
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s source: %w", format, err)
	}
	return prog, nil
}

// Converter turns script, HTML and Markdown sources into PDF files, one
// Document per conversion.
type Converter struct {
	options Options
	format  Format
}

// NewConverter creates a converter with the default options
func NewConverter() *Converter {
	return NewConverterWithOptions(DefaultOptions())
}

// NewConverterWithOptions creates a converter with the specified options
func NewConverterWithOptions(options Options) *Converter {
	return &Converter{options: options, format: FormatAuto}
}

// WithOption returns a new converter with the specified option set
func (c *Converter) WithOption(option Option) *Converter {
	options := c.options
	options.ResourcePaths = append([]string(nil), c.options.ResourcePaths...)
	option(&options)
	return &Converter{options: options, format: c.format}
}

// WithFormat returns a new converter that reads sources as format.
func (c *Converter) WithFormat(format Format) *Converter {
	return &Converter{options: c.options, format: format}
}

// Convert converts a source and writes the PDF to output. name helps
// format detection and may be empty.
func (c *Converter) Convert(name string, src io.Reader, output io.Writer) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}
	doc, err := c.newDocument(name, data)
	if err != nil {
		return err
	}
	defer doc.Close()

	if err := doc.Import(name, bytes.NewReader(data), c.format); err != nil {
		return err
	}
	_, err = doc.WriteTo(output)
	return err
}

// ConvertBytes converts source bytes to PDF bytes
func (c *Converter) ConvertBytes(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Convert("", bytes.NewReader(src), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConvertFile converts a source file or URL and saves the PDF to outputPath.
func (c *Converter) ConvertFile(input, outputPath string) error {
	loader := res.NewLoader("")
	for _, p := range c.options.ResourcePaths {
		loader.AddSearchPath(p)
	}
	r, err := loader.Load(input)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", input, err)
	}

	doc, err := c.newDocument(r.URL, r.Data)
	if err != nil {
		return err
	}
	defer doc.Close()

	if err := doc.Import(r.URL, r.Reader(), c.format); err != nil {
		return err
	}
	return doc.Save(outputPath)
}

// newDocument creates the document for one conversion. HTML sources
// without an explicit title lend theirs to the PDF metadata.
func (c *Converter) newDocument(name string, data []byte) (*Document, error) {
	options := c.options
	format := c.format
	if format == FormatAuto || format == "" {
		format = DetectFormat(name, data)
	}
	if format == FormatHTML && options.Title == "" {
		if parsed, err := html.NewParser().Parse(bytes.NewReader(data)); err == nil {
			options.Title = parsed.Title()
		}
	}
	return NewWithOptions(options)
}
