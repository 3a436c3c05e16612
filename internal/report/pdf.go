package report

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/go-pdf/fpdf"
)

// defaultJPEGQuality is the encode quality for flattened collage images.
const defaultJPEGQuality = 90

// ErrDocumentFinalized is returned when a sealed builder is used again.
var ErrDocumentFinalized = errors.New("report document already finalized")

// jpegBufPool recycles the per-image encode buffers. Buffers are returned on
// every code path, so a failed placement cannot leak its artifact.
var jpegBufPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Builder assembles a multi-page report PDF. Pages are appended in order and
// the document is sealed by Finalize; a Builder is single-use and not safe
// for concurrent use.
type Builder struct {
	meta      Meta
	layout    Layout
	quality   int
	pdf       *fpdf.Fpdf
	pages     int
	finalized bool
}

// NewBuilder starts an empty A4 portrait report for the given metadata.
// Automatic page breaks are disabled; every page is laid out manually.
func NewBuilder(meta Meta) *Builder {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	return &Builder{
		meta:    meta,
		layout:  DefaultLayout(),
		quality: defaultJPEGQuality,
		pdf:     pdf,
	}
}

// SetJPEGQuality overrides the encode quality used when flattening collage
// images. Values outside 1..100 keep the current quality.
func (b *Builder) SetJPEGQuality(quality int) {
	if quality >= 1 && quality <= 100 {
		b.quality = quality
	}
}

// PageCount returns the number of pages appended so far.
func (b *Builder) PageCount() int {
	return b.pages
}

// AddPage renders one report page onto a new PDF page. Page numbers follow
// append order starting at 1. Any image decode failure aborts the build; the
// document must not be serialized after a failed AddPage.
func (b *Builder) AddPage(page Page) error {
	if b.finalized {
		return ErrDocumentFinalized
	}
	b.pages++

	b.pdf.AddPage()
	b.drawHeader()
	if err := b.drawCollage(page); err != nil {
		return fmt.Errorf("failed to render page %d: %w", b.pages, err)
	}
	b.drawCaptions(page)
	b.drawFooter(b.pages)

	if b.pdf.Err() {
		return fmt.Errorf("failed to render page %d: %w", b.pages, b.pdf.Error())
	}
	return nil
}

// Finalize serializes the document and seals the builder.
func (b *Builder) Finalize() ([]byte, error) {
	if b.finalized {
		return nil, ErrDocumentFinalized
	}
	b.finalized = true

	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize report: %w", err)
	}
	return buf.Bytes(), nil
}

// Render builds a complete report from pages in input order and returns the
// PDF bytes. This is the one-shot path used by the export surfaces.
func Render(meta Meta, pages []Page) ([]byte, error) {
	b := NewBuilder(meta)
	for _, page := range pages {
		if err := b.AddPage(page); err != nil {
			return nil, err
		}
	}
	return b.Finalize()
}

func (b *Builder) drawHeader() {
	b.pdf.SetFont("Arial", "B", 16)
	b.pdf.CellFormat(0, b.layout.HeaderRowH, b.meta.ProjectName, "", 1, "C", false, 0, "")
}

func (b *Builder) drawCollage(page Page) error {
	l := b.layout
	b.pdf.SetFillColor(220, 220, 220)
	b.pdf.Rect(l.BandX, l.BandY, l.BandW, l.BandH, "F")

	rows, cols := GridLayout(len(page.Images))
	for i, blob := range page.Images {
		img, err := decodeImage(blob)
		if err != nil {
			return fmt.Errorf("failed to decode image %d: %w", i+1, err)
		}
		cell := l.CellRect(i, rows, cols)
		bounds := img.Bounds()
		if err := b.placeImage(img, i, Contain(bounds.Dx(), bounds.Dy(), cell)); err != nil {
			return fmt.Errorf("failed to place image %d: %w", i+1, err)
		}
	}
	return nil
}

// placeImage flattens img to an in-memory JPEG artifact and places it on the
// current page. fpdf copies the data during registration, so the pooled
// buffer can be released as soon as this returns.
func (b *Builder) placeImage(img image.Image, idx int, draw Rect) error {
	buf := jpegBufPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		jpegBufPool.Put(buf)
	}()

	if err := flattenJPEG(buf, img, b.quality); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	name := fmt.Sprintf("page%d-img%d", b.pages, idx)
	opts := fpdf.ImageOptions{ImageType: "JPG", ReadDpi: false}
	b.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(buf.Bytes()))
	b.pdf.ImageOptions(name, draw.X, draw.Y, draw.W, draw.H, false, opts, 0, "")
	return nil
}

// drawCaptions draws the subject bar, the description label, and exactly
// DescRows caption rows. Short descriptions pad with blank rows, long ones
// lose everything past the budget.
func (b *Builder) drawCaptions(page Page) {
	l := b.layout
	b.pdf.SetXY(l.CaptionX, l.DescY)
	b.pdf.SetFillColor(255, 255, 255)
	b.pdf.SetFont("Arial", "", 12)
	b.pdf.CellFormat(l.CaptionW, l.DescRowH, " Subject: "+page.Title, "", 1, "", true, 0, "")

	b.pdf.SetFillColor(240, 240, 240)
	b.pdf.CellFormat(l.CaptionW, l.DescRowH, "Description:", "", 1, "", true, 0, "")

	for _, line := range PadLines(page.DescriptionLines(), l.DescRows) {
		b.pdf.CellFormat(l.CaptionW, l.DescRowH, line, "", 1, "", true, 0, "")
	}
}

func (b *Builder) drawFooter(pageNum int) {
	l := b.layout
	b.pdf.SetY(-l.FooterRise)
	b.pdf.SetFont("Arial", "I", 10)
	b.pdf.CellFormat(0, 10, "Created by: "+b.meta.Author, "", 1, "", false, 0, "")
	b.pdf.CellFormat(0, 10, "Date: "+b.meta.DateString(), "", 1, "", false, 0, "")

	b.pdf.SetY(-l.FolioRise)
	b.pdf.SetFont("Arial", "", 10)
	b.pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pageNum), "", 0, "C", false, 0, "")
}
