package pdf

import (
	"strings"

	"github.com/momogentoo/pdfprintln/internal/render"
)

var coreFamilies = map[string]bool{
	"courier":      true,
	"helvetica":    true,
	"arial":        true,
	"times":        true,
	"symbol":       true,
	"zapfdingbats": true,
}

// fpdf ships no descriptors for the core fonts, so their bounding box
// heights (Ymax-Ymin, thousandths of an em) come from the Adobe AFM files.
var coreBBoxHeights = map[string]float64{
	"helvetica":    1156,
	"helveticaB":   1190,
	"helveticaI":   1156,
	"helveticaBI":  1190,
	"times":        1116,
	"timesB":       1153,
	"timesI":       1100,
	"timesBI":      1139,
	"courier":      1055,
	"courierB":     1051,
	"courierI":     1055,
	"courierBI":    1051,
	"symbol":       1303,
	"zapfdingbats": 963,
}

func coreBBoxHeight(font render.Font) float64 {
	key := fontKey(font)
	if strings.HasPrefix(key, "arial") {
		key = "helvetica" + strings.TrimPrefix(key, "arial")
	}
	if h, ok := coreBBoxHeights[key]; ok {
		return h
	}
	return 1000
}
