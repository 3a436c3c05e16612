// Package manifest reads report descriptions from YAML files for the
// command line workflow. A manifest names the project and lists the
// pages with their photo files, so whole reports can be rebuilt from
// sources kept next to the photos.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/photo-report/internal/report"
)

// PageSpec describes one report page in a manifest.
type PageSpec struct {
	Title       string   `yaml:"title,omitempty"`
	Description string   `yaml:"description"`
	Images      []string `yaml:"images"`
}

// Manifest is the YAML description of a whole report.
type Manifest struct {
	Project string     `yaml:"project"`
	Author  string     `yaml:"author"`
	Date    string     `yaml:"date,omitempty"`
	Pages   []PageSpec `yaml:"pages"`

	date time.Time
}

// Parse decodes and validates a manifest. Unknown YAML fields are
// rejected so typos in page keys do not silently drop content.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if m.Date != "" {
		date, err := time.Parse("2006-01-02", m.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", m.Date)
		}
		m.date = date
	}

	if len(m.Pages) == 0 {
		return nil, fmt.Errorf("manifest contains no pages")
	}
	for i, page := range m.Pages {
		if n := len(page.Images); n < report.MinImages || n > report.MaxImages {
			return nil, fmt.Errorf("page %d: must list between %d and %d images, got %d",
				i+1, report.MinImages, report.MaxImages, n)
		}
		if strings.TrimSpace(page.Description) == "" {
			return nil, fmt.Errorf("page %d: description must not be empty", i+1)
		}
	}

	return &m, nil
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}

// Meta returns the report metadata of the manifest.
func (m *Manifest) Meta() report.Meta {
	return report.Meta{
		ProjectName: m.Project,
		Author:      m.Author,
		Date:        m.date,
	}
}

// LoadPages reads the image files of every page into memory. Relative
// image paths are resolved against baseDir, which callers usually set
// to the manifest's own directory.
func (m *Manifest) LoadPages(baseDir string) ([]report.Page, error) {
	pages := make([]report.Page, 0, len(m.Pages))
	for i, spec := range m.Pages {
		blobs := make([][]byte, 0, len(spec.Images))
		for _, imgPath := range spec.Images {
			resolved := imgPath
			if !filepath.IsAbs(resolved) {
				resolved = filepath.Join(baseDir, resolved)
			}
			blob, err := os.ReadFile(resolved)
			if err != nil {
				return nil, fmt.Errorf("page %d: failed to read image %s: %w", i+1, imgPath, err)
			}
			blobs = append(blobs, blob)
		}
		pages = append(pages, report.Page{
			Images:      blobs,
			Title:       spec.Title,
			Description: spec.Description,
		})
	}
	return pages, nil
}
