package report

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// thumbFontSize is the point size of all thumbnail text.
const thumbFontSize = 16

// loadFace loads a TTF face from path at the thumbnail text size. An empty
// path or any load failure yields the built-in face plus the cause, so
// composition never fails on fonts.
func loadFace(path string) (font.Face, error) {
	if path == "" {
		return basicfont.Face7x13, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return basicfont.Face7x13, fmt.Errorf("failed to read font file: %w", err)
	}

	ft, err := opentype.Parse(data)
	if err != nil {
		return basicfont.Face7x13, fmt.Errorf("failed to parse font file: %w", err)
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    thumbFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}
