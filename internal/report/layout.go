// Package report implements the photo report composition core: grid
// geometry shared by both render targets, a thumbnail composer for page
// previews, and a PDF builder producing the final paginated document.
package report

// Page dimensions in mm (A4 portrait).
const (
	PageW = 210.0
	PageH = 297.0
)

// Layout holds the fixed geometry of a printed report page. All values are mm.
type Layout struct {
	HeaderRowH float64 // project name row at the top margin
	BandX      float64 // shaded band behind the collage
	BandY      float64
	BandW      float64
	BandH      float64
	CollageX   float64 // image grid region inside the band
	CollageY   float64
	CollageW   float64
	CollageH   float64
	CellGap    float64 // gap between grid cells
	CaptionX   float64 // left edge of the caption rows
	CaptionW   float64
	DescY      float64 // top of the subject bar
	DescRowH   float64 // height of every caption row
	DescRows   int     // fixed description row count per page
	FooterRise float64 // footer block offset above the bottom edge
	FolioRise  float64 // page number offset above the bottom edge
}

// DefaultLayout returns the print geometry: a 127x90mm collage centered over
// a shaded band, a subject bar plus ten caption rows below it, and a footer
// anchored to the bottom margin.
func DefaultLayout() Layout {
	return Layout{
		HeaderRowH: 10,
		BandX:      10,
		BandY:      20,
		BandW:      190,
		BandH:      100,
		CollageX:   41,
		CollageY:   25,
		CollageW:   127,
		CollageH:   90,
		CellGap:    5,
		CaptionX:   10,
		CaptionW:   190,
		DescY:      125,
		DescRowH:   10,
		DescRows:   10,
		FooterRise: 30,
		FolioRise:  10,
	}
}

// GridLayout returns the (rows, cols) grid for n images, capped at 2x2.
// One image fills a single cell, two sit side by side, three or four use the
// full grid (the fourth cell stays empty for three).
func GridLayout(n int) (rows, cols int) {
	rows, cols = 1, 1
	if n > 1 {
		cols = 2
	}
	if n > 2 {
		rows = 2
	}
	return rows, cols
}

// Rect is an axis-aligned rectangle. Units follow the caller: mm on the
// printed page, px in the thumbnail.
type Rect struct {
	X, Y, W, H float64
}

// CellSize returns the collage cell dimensions for a grid, dividing the
// region evenly after subtracting inter-cell gaps.
func (l Layout) CellSize(rows, cols int) (w, h float64) {
	w = (l.CollageW - l.CellGap*float64(cols-1)) / float64(cols)
	h = (l.CollageH - l.CellGap*float64(rows-1)) / float64(rows)
	return w, h
}

// CellRect returns the i-th grid cell in page coordinates, filling the grid
// left to right, top to bottom.
func (l Layout) CellRect(i, rows, cols int) Rect {
	w, h := l.CellSize(rows, cols)
	return Rect{
		X: l.CollageX + (w+l.CellGap)*float64(i%cols),
		Y: l.CollageY + (h+l.CellGap)*float64(i/cols),
		W: w,
		H: h,
	}
}

// Contain fits an image of imgW x imgH pixels inside cell without cropping,
// preserving aspect ratio and centering on both axes. The constrained axis
// always spans the full cell, so images smaller than the cell scale up.
func Contain(imgW, imgH int, cell Rect) Rect {
	imgAspect := float64(imgW) / float64(imgH)
	boxAspect := cell.W / cell.H

	var drawW, drawH float64
	if imgAspect > boxAspect {
		drawW = cell.W
		drawH = cell.W / imgAspect
	} else {
		drawH = cell.H
		drawW = cell.H * imgAspect
	}

	return Rect{
		X: cell.X + (cell.W-drawW)/2,
		Y: cell.Y + (cell.H-drawH)/2,
		W: drawW,
		H: drawH,
	}
}

// ThumbLayout holds the fixed geometry of a preview thumbnail. All values
// are px.
type ThumbLayout struct {
	W, H      int // canvas size
	TitleX    int // title anchor
	TitleY    int
	GridX     int // image grid origin
	GridY     int
	CellW     int // cell bounding box, images scale down into it
	CellH     int
	CellGap   int
	DescX     int // description block anchor
	DescY     int
	LineH     int
	DescLines int // lines beyond this are dropped
}

// DefaultThumbLayout returns the 600x400 preview geometry.
func DefaultThumbLayout() ThumbLayout {
	return ThumbLayout{
		W:         600,
		H:         400,
		TitleX:    10,
		TitleY:    10,
		GridX:     10,
		GridY:     40,
		CellW:     140,
		CellH:     100,
		CellGap:   10,
		DescX:     10,
		DescY:     220,
		LineH:     20,
		DescLines: 6,
	}
}

// CellOrigin returns the top-left corner of the i-th thumbnail cell.
// Thumbnail images anchor to the cell corner without centering.
func (t ThumbLayout) CellOrigin(i, cols int) (x, y int) {
	x = t.GridX + (i%cols)*(t.CellW+t.CellGap)
	y = t.GridY + (i/cols)*(t.CellH+t.CellGap)
	return x, y
}
