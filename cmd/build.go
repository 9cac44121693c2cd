package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/mdtabs/internal/progress"
	"github.com/ziadkadry99/mdtabs/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the markdown sources into a static site",
	Long: `Renders every markdown source below source_dir into output_dir, replacing
tab blocks with tabbed HTML and bundling the tab runtime next to the pages.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	buildCmd.Flags().String("source", "", "override source directory")
	buildCmd.Flags().String("name", "", "project name shown in page titles")
	buildCmd.Flags().Bool("no-progress", false, "disable the progress display")
	buildCmd.Flags().Bool("strict", false, "fail when a source has warnings")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}
	if src, _ := cmd.Flags().GetString("source"); src != "" {
		cfg.SourceDir = src
	}

	// Warnings are summarized after the build; verbose mode also logs them
	// as they are found.
	logOut := io.Discard
	if verbose {
		logOut = os.Stderr
	}
	opts := []site.Option{site.WithLogger(log.New(logOut, "", 0))}
	if name, _ := cmd.Flags().GetString("name"); name != "" {
		opts = append(opts, site.WithProjectName(name))
	}
	if noProgress, _ := cmd.Flags().GetBool("no-progress"); !noProgress {
		opts = append(opts, site.WithReporter(progress.NewReporter()))
	}

	generator, err := site.NewSiteGenerator(cfg, opts...)
	if err != nil {
		return err
	}

	logVerbose("Building %s -> %s", cfg.SourceDir, cfg.OutputDir)
	res, err := generator.Generate(cmd.Context())
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	withTabs := 0
	for _, p := range res.Pages {
		if p.Tabs {
			withTabs++
		}
		logVerbose("  %s -> %s", p.Source, p.Output)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Site built: %s (%d pages, %d with tabs)\n", cfg.OutputDir, len(res.Pages), withTabs)

	if len(res.Warnings) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d warning(s):\n", len(res.Warnings))
		for _, w := range res.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", w)
		}
		if strict, _ := cmd.Flags().GetBool("strict"); strict {
			return fmt.Errorf("build produced %d warning(s)", len(res.Warnings))
		}
	}
	return nil
}
