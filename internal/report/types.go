package report

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MinImages and MaxImages bound the number of images on a single page.
const (
	MinImages = 1
	MaxImages = 4
)

// Page is one report page as supplied by the caller: an ordered set of raw
// image blobs plus caption text. The render core treats it as read-only and
// assumes it already passed Validate.
type Page struct {
	Images      [][]byte
	Title       string
	Description string
}

// DescriptionLines splits the description into display lines. A trailing
// newline does not produce an extra blank line.
func (p Page) DescriptionLines() []string {
	d := strings.ReplaceAll(p.Description, "\r\n", "\n")
	d = strings.TrimSuffix(d, "\n")
	if d == "" {
		return nil
	}
	return strings.Split(d, "\n")
}

// PadLines fits lines to an exact row count: shorter input is padded with
// blank rows, longer input is cut at the budget.
func PadLines(lines []string, rows int) []string {
	out := make([]string, rows)
	copy(out, lines)
	return out
}

// Meta is the report-level metadata printed on every page.
type Meta struct {
	ProjectName string
	Author      string
	Date        time.Time
}

// DateString renders the report date as YYYY-MM-DD, defaulting to today when
// the date is unset.
func (m Meta) DateString() string {
	if m.Date.IsZero() {
		return time.Now().Format("2006-01-02")
	}
	return m.Date.Format("2006-01-02")
}

// Validation errors surfaced to caller code. The render core itself does not
// re-check these.
var (
	ErrImageCount       = errors.New("page must contain between 1 and 4 images")
	ErrEmptyDescription = errors.New("page description must not be empty")
	ErrMissingMeta      = errors.New("project name and author are required")
)

// Validate checks a page before it enters a draft or a render call.
func Validate(p Page) error {
	if len(p.Images) < MinImages || len(p.Images) > MaxImages {
		return fmt.Errorf("%w, got %d", ErrImageCount, len(p.Images))
	}
	if strings.TrimSpace(p.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// ValidateMeta checks report metadata before export.
func ValidateMeta(m Meta) error {
	if strings.TrimSpace(m.ProjectName) == "" || strings.TrimSpace(m.Author) == "" {
		return ErrMissingMeta
	}
	return nil
}
