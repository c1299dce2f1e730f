package pdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/momogentoo/pdfprintln/internal/render"
)

var helveticaBold = render.Font{Family: "Helvetica", Style: "B"}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(Options{Info: render.Info{Title: "test"}})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestCoreFontMetrics(t *testing.T) {
	r := newTestRenderer(t)
	m, err := r.Metrics(render.Font{Family: "Helvetica"})
	if err != nil {
		t.Fatal(err)
	}
	if got := m.StringWidth("Hello"); got != 2278 {
		t.Fatalf("StringWidth(Hello) = %v, want 2278", got)
	}
	if got := m.StringWidth("café"); got != m.StringWidth("cafe") {
		t.Fatalf("accented width %v differs from plain %v", got, m.StringWidth("cafe"))
	}
	if got := m.BoundingBoxHeight(); got != 1156 {
		t.Fatalf("BoundingBoxHeight = %v, want 1156", got)
	}

	bold, err := r.Metrics(helveticaBold)
	if err != nil {
		t.Fatal(err)
	}
	if got := bold.BoundingBoxHeight(); got != 1190 {
		t.Fatalf("bold BoundingBoxHeight = %v, want 1190", got)
	}
}

func TestCoreBBoxAliases(t *testing.T) {
	if got := coreBBoxHeight(render.Font{Family: "Arial", Style: "B"}); got != 1190 {
		t.Fatalf("Arial bold = %v", got)
	}
	if got := coreBBoxHeight(render.Font{Family: "Times", Style: "IB"}); got != 1139 {
		t.Fatalf("Times bold italic = %v", got)
	}
	if got := coreBBoxHeight(render.Font{Family: "Unknown"}); got != 1000 {
		t.Fatalf("unknown = %v", got)
	}
}

func TestUnknownFont(t *testing.T) {
	r := newTestRenderer(t)
	if _, err := r.Metrics(render.Font{Family: "NoSuchFont"}); err == nil {
		t.Fatal("expected error for unknown font")
	}
}

func TestDrawAndSave(t *testing.T) {
	r := newTestRenderer(t)

	page, err := r.NewPage(render.Size{Width: 612, Height: 792}, 90)
	if err != nil {
		t.Fatal(err)
	}
	s, err := r.OpenStream(page)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.FillRect(40, 560, 100, 12, render.Yellow); err != nil {
		t.Fatal(err)
	}
	if err := s.DrawText(40, 572, helveticaBold, 12, render.Black, "Hello"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.OpenStream(page); err == nil {
		t.Fatal("opened a second stream while the first is open")
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.DrawText(0, 0, helveticaBold, 12, render.Black, "late"); err == nil {
		t.Fatal("drew on a closed stream")
	}

	page2, err := r.NewPage(render.Size{Width: 297.64, Height: 419.53}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.OpenStream(page); err == nil {
		t.Fatal("opened a stream on an earlier page")
	}
	s2, err := r.OpenStream(page2)
	if err != nil {
		t.Fatal(err)
	}
	if err := s2.DrawText(20, 20, helveticaBold, 9, render.Red, "Page 2"); err != nil {
		t.Fatal(err)
	}
	if err := s2.Close(); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "%PDF") {
		t.Fatalf("output does not start with %%PDF: %q", out[:16])
	}
	for _, want := range []string{"/Count 2", "Td (Hello) Tj", "BT 40.00 572.00 Td", "Td (Page 2) Tj"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if _, err := r.NewPage(render.Size{Width: 1, Height: 1}, 0); err == nil {
		t.Fatal("NewPage after Save succeeded")
	}
}

func TestFontDataWithoutFamily(t *testing.T) {
	if _, err := NewRenderer(Options{FontData: []byte{0}}); err == nil {
		t.Fatal("expected error")
	}
}

func TestUnknownFontLeavesDocumentUsable(t *testing.T) {
	r := newTestRenderer(t)
	if _, err := r.Metrics(render.Font{Family: "NoSuchFont"}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := r.Metrics(helveticaBold); err != nil {
		t.Fatalf("document unusable after unknown font: %v", err)
	}
}
