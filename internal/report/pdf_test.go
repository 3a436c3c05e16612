package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func testMeta() Meta {
	return Meta{
		ProjectName: "Riverside Tower",
		Author:      "Jana Novotna",
		Date:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuilderPageNumbering(t *testing.T) {
	b := NewBuilder(testMeta())
	for i := 0; i < 3; i++ {
		page := Page{
			Images:      [][]byte{makeJPEG(t, 120, 80, testRed)},
			Title:       fmt.Sprintf("Set %d", i+1),
			Description: "one line",
		}
		if err := b.AddPage(page); err != nil {
			t.Fatalf("AddPage %d failed: %v", i+1, err)
		}
		if b.PageCount() != i+1 {
			t.Errorf("PageCount after page %d: expected %d, got %d", i+1, i+1, b.PageCount())
		}
	}

	out, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if !bytes.Contains(out, []byte("/Count 3")) {
		t.Error("expected a 3-page document")
	}
}

func TestBuilderSealedAfterFinalize(t *testing.T) {
	b := NewBuilder(testMeta())
	page := Page{Images: [][]byte{makeJPEG(t, 50, 50, testBlue)}, Description: "x"}
	if err := b.AddPage(page); err != nil {
		t.Fatalf("AddPage failed: %v", err)
	}
	if _, err := b.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if err := b.AddPage(page); !errors.Is(err, ErrDocumentFinalized) {
		t.Errorf("AddPage after Finalize: expected ErrDocumentFinalized, got %v", err)
	}
	if _, err := b.Finalize(); !errors.Is(err, ErrDocumentFinalized) {
		t.Errorf("second Finalize: expected ErrDocumentFinalized, got %v", err)
	}
}

func TestBuilderDecodeFailureAborts(t *testing.T) {
	b := NewBuilder(testMeta())
	err := b.AddPage(Page{
		Images:      [][]byte{makeJPEG(t, 50, 50, testRed), []byte("garbage")},
		Description: "broken",
	})
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "failed to render page 1") {
		t.Errorf("error should name the page: %v", err)
	}
	if !strings.Contains(err.Error(), "failed to decode image 2") {
		t.Errorf("error should name the image: %v", err)
	}
}

func TestRender(t *testing.T) {
	pages := []Page{
		{
			Images:      [][]byte{makeJPEG(t, 400, 300, testRed), makePNG(t, 300, 400, testGreen)},
			Title:       "Facade",
			Description: "west side\nafter cleaning",
		},
		{
			Images:      [][]byte{makeJPEG(t, 640, 480, testBlue)},
			Title:       "Roof",
			Description: "no defects found",
		},
	}

	out, err := Render(testMeta(), pages)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
	if !bytes.Contains(out, []byte("%%EOF")) {
		t.Error("output has no PDF trailer")
	}
	if !bytes.Contains(out, []byte("/Count 2")) {
		t.Error("expected a 2-page document")
	}
	// Every input image is flattened to JPEG, PNG included.
	if got := bytes.Count(out, []byte("DCTDecode")); got != 3 {
		t.Errorf("expected 3 embedded JPEG images, got %d", got)
	}
	// Regular, bold, and italic core fonts are all in use.
	for _, font := range []string{"Helvetica", "Helvetica-Bold", "Helvetica-Oblique"} {
		if !bytes.Contains(out, []byte(font)) {
			t.Errorf("expected font %s in the document", font)
		}
	}
}

func TestRenderThreeImagePage(t *testing.T) {
	lines := make([]string, 12)
	for i := range lines {
		lines[i] = fmt.Sprintf("observation %d", i+1)
	}
	page := Page{
		Images: [][]byte{
			makeJPEG(t, 800, 600, testRed),
			makeJPEG(t, 600, 800, testGreen),
			makeJPEG(t, 500, 500, testBlue),
		},
		Title:       "Foundation Crack",
		Description: strings.Join(lines, "\n"),
	}

	out, err := Render(testMeta(), []Page{page})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.Contains(out, []byte("/Count 1")) {
		t.Error("expected a single-page document")
	}
	if got := bytes.Count(out, []byte("DCTDecode")); got != 3 {
		t.Errorf("expected 3 embedded images, got %d", got)
	}
}

func TestRenderSingleImageEmptyDescription(t *testing.T) {
	// The core renders what it is given; an empty description produces ten
	// blank caption rows rather than an error.
	page := Page{Images: [][]byte{makeJPEG(t, 1024, 768, testGray)}}
	out, err := Render(testMeta(), []Page{page})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.Contains(out, []byte("/Count 1")) {
		t.Error("expected a single-page document")
	}
}

func TestBuilderSetJPEGQuality(t *testing.T) {
	b := NewBuilder(testMeta())
	if b.quality != defaultJPEGQuality {
		t.Fatalf("default quality: expected %d, got %d", defaultJPEGQuality, b.quality)
	}
	b.SetJPEGQuality(50)
	if b.quality != 50 {
		t.Errorf("expected quality 50, got %d", b.quality)
	}
	b.SetJPEGQuality(0)
	if b.quality != 50 {
		t.Errorf("out-of-range quality must be ignored, got %d", b.quality)
	}
	b.SetJPEGQuality(101)
	if b.quality != 50 {
		t.Errorf("out-of-range quality must be ignored, got %d", b.quality)
	}
}
