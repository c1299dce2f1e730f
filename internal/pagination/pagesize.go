package pagination

import (
	"fmt"
	"strings"

	"github.com/momogentoo/pdfprintln/internal/render"
)

// PageSize names a standard paper size.
type PageSize int

const (
	PageSizeA0 PageSize = iota
	PageSizeA1
	PageSizeA2
	PageSizeA3
	PageSizeA4
	PageSizeA5
	PageSizeA6
	PageSizeLetter
	PageSizeLegal
)

type pageSizeInfo struct {
	Name   string
	Width  float64
	Height float64
}

// Standard page sizes in points (1/72 inch), portrait
var pageSizes = map[PageSize]pageSizeInfo{
	PageSizeA0:     {Name: "A0", Width: 2383.94, Height: 3370.39},
	PageSizeA1:     {Name: "A1", Width: 1683.78, Height: 2383.94},
	PageSizeA2:     {Name: "A2", Width: 1190.55, Height: 1683.78},
	PageSizeA3:     {Name: "A3", Width: 841.89, Height: 1190.55},
	PageSizeA4:     {Name: "A4", Width: 595.28, Height: 841.89},
	PageSizeA5:     {Name: "A5", Width: 419.53, Height: 595.28},
	PageSizeA6:     {Name: "A6", Width: 297.64, Height: 419.53},
	PageSizeLetter: {Name: "Letter", Width: 612.00, Height: 792.00},
	PageSizeLegal:  {Name: "Legal", Width: 612.00, Height: 1008.00},
}

// Valid reports whether s is one of the known sizes.
func (s PageSize) Valid() bool {
	_, ok := pageSizes[s]
	return ok
}

// Dimensions returns the portrait media box of s.
func (s PageSize) Dimensions() render.Size {
	info := pageSizes[s]
	return render.Size{Width: info.Width, Height: info.Height}
}

func (s PageSize) String() string {
	if info, ok := pageSizes[s]; ok {
		return info.Name
	}
	return fmt.Sprintf("PageSize(%d)", int(s))
}

// ParsePageSize looks up a size by name, ignoring case.
func ParsePageSize(name string) (PageSize, error) {
	for size, info := range pageSizes {
		if strings.EqualFold(info.Name, strings.TrimSpace(name)) {
			return size, nil
		}
	}
	return 0, fmt.Errorf("unknown page size %q", name)
}

// Orientation is the reading direction of a page.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

// Rotation is the page rotation in degrees applied for o.
func (o Orientation) Rotation() int {
	if o == Landscape {
		return 90
	}
	return 0
}

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// ParseOrientation accepts "portrait" or "landscape" in any case.
func ParseOrientation(name string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "portrait", "p":
		return Portrait, nil
	case "landscape", "l":
		return Landscape, nil
	}
	return 0, fmt.Errorf("unknown orientation %q", name)
}
