package api

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const reportScript = `// quarterly report
size 30
println center "This is a Report"
blank
size 12
println "Hello World"
newpage
row {
  30 "Foo" background #c0c0c0
  70 "Bar" background yellow
}
`

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatAuto, false},
		{"Auto", FormatAuto, false},
		{"pln", FormatScript, false},
		{"HTML", FormatHTML, false},
		{" md ", FormatMarkdown, false},
		{"docx", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Format
	}{
		{"report.html", "# not markdown", FormatHTML},
		{"notes.md", "<p>html</p>", FormatMarkdown},
		{"job.pln", "", FormatScript},
		{"", "  <!DOCTYPE html><p>x</p>", FormatHTML},
		{"", reportScript, FormatScript},
		{"", "# Title\n\nSome *text*.", FormatMarkdown},
	}
	for _, tt := range tests {
		if got := DetectFormat(tt.name, []byte(tt.data)); got != tt.want {
			t.Errorf("DetectFormat(%q, %q) = %q, want %q", tt.name, tt.data, got, tt.want)
		}
	}
}

func TestImportScript(t *testing.T) {
	doc := newTestDocument(t)
	if err := doc.ImportString(reportScript, FormatAuto); err != nil {
		t.Fatal(err)
	}
	if doc.PageNumber() != 2 || doc.TextFontSize() != 12 {
		t.Fatalf("page %d size %v", doc.PageNumber(), doc.TextFontSize())
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"(This is a Report) Tj", "(Foo) Tj", "(Bar) Tj"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output lacks %q", want)
		}
	}
}

func TestImportErrors(t *testing.T) {
	doc := newTestDocument(t)
	err := doc.ImportString("size 12\nprintln \"a\" color purple size 0\n", FormatScript)
	if err == nil || !strings.Contains(err.Error(), "2:") {
		t.Fatalf("err = %v", err)
	}
	if err := doc.ImportString("x", "docx"); err == nil {
		t.Fatal("unknown format accepted")
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	page := `<html><head><title>Inventory</title></head><body>
<h1>Inventory</h1>
<table>
  <tr><th width="30">Item</th><th width="70">Count</th></tr>
  <tr><td>Bolts</td><td>12</td></tr>
</table>
</body></html>`
	if err := os.WriteFile(filepath.Join(dir, "inventory.html"), []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}

	doc := newTestDocument(t, WithResourcePath(dir))
	if err := doc.ImportFile("inventory.html", FormatAuto); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"(Inventory) Tj", "(Bolts) Tj", "(12) Tj"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output lacks %q", want)
		}
	}
}

func TestConverter(t *testing.T) {
	md := "# Shopping\n\nmilk and eggs\n\n1. flour\n\n| a | b |\n|---|--:|\n| 1 | 2 |\n"
	out, err := NewConverter().WithOption(WithCompression(false)).ConvertBytes([]byte(md))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("not a PDF")
	}
	for _, want := range []string{"(Shopping) Tj", "(milk and eggs) Tj", "(1. flour) Tj"} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("output lacks %q", want)
		}
	}
}

func TestConverterWithOptionCopies(t *testing.T) {
	base := NewConverter()
	derived := base.WithOption(WithResourcePath("/tmp")).WithFormat(FormatHTML)
	if len(base.options.ResourcePaths) != 0 || base.format != FormatAuto {
		t.Fatal("base converter modified")
	}
	if len(derived.options.ResourcePaths) != 1 || derived.format != FormatHTML {
		t.Fatalf("derived = %+v", derived)
	}
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "report.pln")
	if err := os.WriteFile(input, []byte(reportScript), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "out", "report.pdf")
	for _, backend := range []Backend{BackendFpdf, BackendCanvas} {
		if err := NewConverter().WithOption(WithBackend(backend)).ConvertFile(input, output); err != nil {
			t.Fatalf("%s: %v", backend, err)
		}
		data, err := os.ReadFile(output)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Fatalf("%s: output is not a PDF", backend)
		}
	}
}
