package pagination

import (
	"errors"
	"testing"

	"github.com/momogentoo/pdfprintln/internal/render/rendertest"
)

func TestNewPageRotatesLandscape(t *testing.T) {
	b := rendertest.New()
	p := NewPaginator(b, nil)

	page, _, err := p.NewPage(PageSizeLetter, Landscape)
	if err != nil {
		t.Fatal(err)
	}
	if page.Rotation != 90 {
		t.Fatalf("rotation = %d, want 90", page.Rotation)
	}
	if page.MediaBox.Width != 612 || page.MediaBox.Height != 792 {
		t.Fatalf("media box = %+v, want portrait letter", page.MediaBox)
	}
	if page.EffectiveWidth() != 792 || page.EffectiveHeight() != 612 {
		t.Fatalf("effective = %vx%v, want 792x612", page.EffectiveWidth(), page.EffectiveHeight())
	}
}

func TestNewPageClosesPreviousStream(t *testing.T) {
	b := rendertest.New()
	p := NewPaginator(b, nil)

	for i := 0; i < 3; i++ {
		if _, _, err := p.NewPage(PageSizeA6, Portrait); err != nil {
			t.Fatalf("page %d: %v", i+1, err)
		}
	}
	if p.Number() != 3 {
		t.Fatalf("Number = %d, want 3", p.Number())
	}
	for i, s := range b.Streams[:2] {
		if !s.Closed() {
			t.Fatalf("stream %d left open", i)
		}
	}
	if b.Streams[2].Closed() {
		t.Fatal("current stream closed early")
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if !b.Streams[2].Closed() {
		t.Fatal("Close did not close current stream")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestSetNumber(t *testing.T) {
	p := NewPaginator(rendertest.New(), nil)
	p.SetNumber(9)
	if _, _, err := p.NewPage(PageSizeA4, Portrait); err != nil {
		t.Fatal(err)
	}
	if p.Number() != 10 {
		t.Fatalf("Number = %d, want 10", p.Number())
	}
}

func TestNewPageBackendError(t *testing.T) {
	b := rendertest.New()
	boom := errors.New("disk full")
	b.FailNewPage = boom
	p := NewPaginator(b, nil)

	if _, _, err := p.NewPage(PageSizeA4, Portrait); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if p.Number() != 0 || p.Page() != nil {
		t.Fatal("failed NewPage changed state")
	}
}

func TestInvalidPageSize(t *testing.T) {
	p := NewPaginator(rendertest.New(), nil)
	if _, _, err := p.NewPage(PageSize(42), Portrait); err == nil {
		t.Fatal("expected error for unknown page size")
	}
}

func TestParsePageSize(t *testing.T) {
	for _, name := range []string{"A0", "a1", "A2", "A3", "A4", "A5", "a6", "letter", "LEGAL"} {
		s, err := ParsePageSize(name)
		if err != nil {
			t.Fatalf("ParsePageSize(%q): %v", name, err)
		}
		if d := s.Dimensions(); d.Width <= 0 || d.Height <= d.Width {
			t.Fatalf("%s has non-portrait dimensions %+v", s, d)
		}
	}
	if _, err := ParsePageSize("B5"); err == nil {
		t.Fatal("expected error for B5")
	}
}

func TestParseOrientation(t *testing.T) {
	if o, err := ParseOrientation("Landscape"); err != nil || o != Landscape {
		t.Fatalf("got %v, %v", o, err)
	}
	if o, err := ParseOrientation("portrait"); err != nil || o != Portrait {
		t.Fatalf("got %v, %v", o, err)
	}
	if _, err := ParseOrientation("sideways"); err == nil {
		t.Fatal("expected error")
	}
}
