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

var renderCmd = &cobra.Command{
	Use:   "render <manifest.yaml>",
	Short: "Render a report manifest into the final PDF",
	Long: `Render a report manifest into a paginated A4 PDF.

The manifest is a YAML file naming the project, the author and the
pages. Relative image paths are resolved against the manifest's
directory.

Example:
  photo-report render inspection.yaml
  photo-report render inspection.yaml -o site_visit.pdf --quality 80`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("output", "o", "", "Output PDF path (defaults to a name derived from the project)")
	renderCmd.Flags().Int("quality", 0, "JPEG quality for embedded photos, 1-100 (defaults to REPORT_JPEG_QUALITY)")
}

func runRender(cmd *cobra.Command, args []string) error {
	manifestPath := args[0]
	cfg := config.Load()

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	meta := m.Meta()
	if err := report.ValidateMeta(meta); err != nil {
		return err
	}

	pages, err := m.LoadPages(filepath.Dir(manifestPath))
	if err != nil {
		return err
	}

	fmt.Printf("Rendering %d page(s) for project '%s'\n\n", len(pages), meta.ProjectName)

	bar := progressbar.NewOptions(len(pages),
		progressbar.OptionSetDescription("Rendering"),
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

	builder := report.NewBuilder(meta)
	if quality := mustGetInt(cmd, "quality"); quality > 0 {
		builder.SetJPEGQuality(quality)
	} else {
		builder.SetJPEGQuality(cfg.Render.JPEGQuality)
	}

	for _, page := range pages {
		if err := builder.AddPage(page); err != nil {
			fmt.Println()
			return err
		}
		bar.Add(1)
	}
	fmt.Println()

	data, err := builder.Finalize()
	if err != nil {
		return err
	}

	outPath := mustGetString(cmd, "output")
	if outPath == "" {
		outPath = report.Filename(meta.ProjectName)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	fmt.Printf("\nDone! Wrote %d page(s) to %s\n", builder.PageCount(), outPath)
	return nil
}
