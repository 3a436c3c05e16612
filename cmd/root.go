package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "photo-report",
	Short: "Generate paginated A4 photo reports from annotated photos",
	Long: `Photo Report turns annotated photo sets into print-ready documents.
Each report page holds up to four photos in a collage, a subject line
and a fixed description block, rendered either as a quick PNG preview
or as the final multi-page A4 PDF.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
