package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/momogentoo/pdfprintln"
)

func main() {
	var (
		inputFile   string
		outputFile  string
		format      string
		backend     string
		pageSize    string
		orientation string
		fontFile    string
		fontSize    float64
		noNumbers   bool
		verbose     bool
	)

	flag.StringVar(&inputFile, "input", "", "Input file path or URL (script, HTML or Markdown)")
	flag.StringVar(&outputFile, "output", "", "Output PDF file path")
	flag.StringVar(&format, "format", "auto", "Input format: auto, script, html or markdown")
	flag.StringVar(&backend, "backend", string(pdfprintln.BackendFpdf), "PDF writer: fpdf or canvas")
	flag.StringVar(&pageSize, "page", "letter", "Page size, eg: A4, letter, legal")
	flag.StringVar(&orientation, "orientation", "landscape", "Page orientation: portrait or landscape")
	flag.StringVar(&fontFile, "font", "", "TrueType font file used instead of Helvetica")
	flag.Float64Var(&fontSize, "size", 12, "Font size in points")
	flag.BoolVar(&noNumbers, "no-page-numbers", false, "Do not print page numbers")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	flag.Parse()

	if inputFile == "" && flag.NArg() > 0 {
		inputFile = flag.Arg(0)
	}
	if inputFile == "" {
		fmt.Println("Error: input file is required")
		flag.Usage()
		os.Exit(1)
	}

	if outputFile == "" {
		ext := filepath.Ext(inputFile)
		outputFile = inputFile[:len(inputFile)-len(ext)] + ".pdf"
	}

	f, err := pdfprintln.ParseFormat(format)
	if err != nil {
		fail(err)
	}
	size, err := pdfprintln.ParsePageSize(pageSize)
	if err != nil {
		fail(err)
	}
	o, err := pdfprintln.ParseOrientation(orientation)
	if err != nil {
		fail(err)
	}

	converter := pdfprintln.NewConverter().
		WithFormat(f).
		WithOption(pdfprintln.WithBackend(pdfprintln.Backend(backend))).
		WithOption(pdfprintln.WithPageSize(size)).
		WithOption(pdfprintln.WithPageOrientation(o)).
		WithOption(pdfprintln.WithFontSize(fontSize)).
		WithOption(pdfprintln.WithResourcePath(filepath.Dir(inputFile)))
	if fontFile != "" {
		converter = converter.WithOption(pdfprintln.WithFontFile("", fontFile))
	}
	if noNumbers {
		converter = converter.WithOption(pdfprintln.WithPageNumbering(false, "", 0))
	}
	if verbose {
		converter = converter.WithOption(pdfprintln.WithDebug(true))
	}

	if err := converter.ConvertFile(inputFile, outputFile); err != nil {
		fmt.Printf("Error converting file: %v\n", err)
		os.Exit(1)
	}

	if verbose {
		fmt.Printf("Successfully converted %s to %s\n", inputFile, outputFile)
	}
}

func fail(err error) {
	fmt.Printf("Error: %v\n", err)
	flag.Usage()
	os.Exit(1)
}
