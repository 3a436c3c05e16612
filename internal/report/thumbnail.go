package report

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Thumbnail canvas colors.
var (
	thumbBackground = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	thumbTextColor  = color.NRGBA{A: 255}
)

// Composer renders preview thumbnails of report pages. The font face loads
// once at construction; Compose is safe for concurrent use.
type Composer struct {
	mu     sync.Mutex
	layout ThumbLayout
	face   font.Face
	ascent int
}

// NewComposer creates a thumbnail composer. fontPath may be empty; when the
// font cannot be loaded the composer logs a warning and uses the built-in
// face instead.
func NewComposer(fontPath string) *Composer {
	face, err := loadFace(fontPath)
	if err != nil {
		log.Printf("WARNING: thumbnail font unavailable, using built-in face: %v", err)
	}
	return &Composer{
		layout: DefaultThumbLayout(),
		face:   face,
		ascent: face.Metrics().Ascent.Ceil(),
	}
}

// Compose renders a 600x400 preview of one page: title line, image grid, and
// up to six description lines. Images beyond MaxImages are ignored; any
// decode failure aborts the whole composition.
func (c *Composer) Compose(page Page) (*image.NRGBA, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	canvas := imaging.New(c.layout.W, c.layout.H, thumbBackground)
	c.drawText(canvas, c.layout.TitleX, c.layout.TitleY, "Subject: "+page.Title)

	blobs := page.Images
	if len(blobs) > MaxImages {
		blobs = blobs[:MaxImages]
	}
	_, cols := GridLayout(len(blobs))
	for i, blob := range blobs {
		img, err := decodeImage(blob)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image %d: %w", i+1, err)
		}
		// Scale down only, keeping aspect ratio; small images stay as is.
		fitted := imaging.Fit(img, c.layout.CellW, c.layout.CellH, imaging.Lanczos)
		x, y := c.layout.CellOrigin(i, cols)
		canvas = imaging.Paste(canvas, fitted, image.Pt(x, y))
	}

	lines := page.DescriptionLines()
	if len(lines) > c.layout.DescLines {
		lines = lines[:c.layout.DescLines]
	}
	for i, line := range lines {
		c.drawText(canvas, c.layout.DescX, c.layout.DescY+i*c.layout.LineH, line)
	}

	return canvas, nil
}

// drawText draws a single line with its top-left corner at (x, y).
func (c *Composer) drawText(dst *image.NRGBA, x, y int, text string) {
	if text == "" {
		return
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(thumbTextColor),
		Face: c.face,
		Dot:  fixed.P(x, y+c.ascent),
	}
	d.DrawString(text)
}
