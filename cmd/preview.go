package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-report/internal/config"
	"github.com/kozaktomas/photo-report/internal/manifest"
	"github.com/kozaktomas/photo-report/internal/report"
)

var previewCmd = &cobra.Command{
	Use:   "preview <manifest.yaml>",
	Short: "Compose PNG thumbnail previews for every page of a manifest",
	Long: `Compose a 600x400 PNG preview for every page of a report manifest.

Previews show the photo grid, the subject line and the first lines of
the description, so page layouts can be checked without rendering the
full PDF.

Example:
  photo-report preview inspection.yaml
  photo-report preview inspection.yaml --out-dir /tmp/previews`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().String("out-dir", "previews", "Directory to write PNG previews into")
	previewCmd.Flags().String("font", "", "TrueType font file for preview text (defaults to REPORT_FONT_PATH)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	manifestPath := args[0]
	cfg := config.Load()

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	pages, err := m.LoadPages(filepath.Dir(manifestPath))
	if err != nil {
		return err
	}

	outDir := mustGetString(cmd, "out-dir")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fontPath := mustGetString(cmd, "font")
	if fontPath == "" {
		fontPath = cfg.Render.FontPath
	}
	composer := report.NewComposer(fontPath)

	fmt.Printf("Composing %d preview(s)\n\n", len(pages))

	bar := progressbar.NewOptions(len(pages),
		progressbar.OptionSetDescription("Composing"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("pages"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	for i, page := range pages {
		img, err := composer.Compose(page)
		if err != nil {
			fmt.Println()
			return fmt.Errorf("page %d: %w", i+1, err)
		}

		outPath := filepath.Join(outDir, fmt.Sprintf("page_%02d.png", i+1))
		f, err := os.Create(outPath)
		if err != nil {
			fmt.Println()
			return fmt.Errorf("failed to create %s: %w", outPath, err)
		}
		if err := report.EncodePNG(f, img); err != nil {
			f.Close()
			fmt.Println()
			return fmt.Errorf("failed to encode %s: %w", outPath, err)
		}
		if err := f.Close(); err != nil {
			fmt.Println()
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		bar.Add(1)
	}
	fmt.Println()

	fmt.Printf("\nDone! Wrote %d preview(s) to %s\n", len(pages), outDir)
	return nil
}
