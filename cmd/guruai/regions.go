package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/guruai/guruai/internal/config"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the known cultural regions",
	Long: `List the region keys available for localizing generated content.
Pass a key to --region on other commands to bias stories, examples and
worksheets toward that region's crops, festivals and daily life.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cultures, err := loadCultures(cfg)
		if err != nil {
			return fmt.Errorf("loading cultural profiles: %w", err)
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		for _, key := range cultures.Regions() {
			profile, _ := cultures.Resolve(key)
			if key == cfg.Culture.DefaultRegion {
				bold.Fprintf(os.Stdout, "%s (default)\n", key)
			} else {
				bold.Fprintln(os.Stdout, key)
			}
			if len(profile.CulturalElements) > 0 {
				faint.Printf("  %s\n", strings.Join(profile.CulturalElements, ", "))
			}
		}
		return nil
	},
}
