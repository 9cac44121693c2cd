package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/mdtabs/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it for preview",
	Long: `Builds the site and starts a local HTTP server for it. Pages requested with
a ?tabs= selection are served with that selection already applied.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "port for the preview server")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	serveCmd.Flags().Bool("no-build", false, "serve the existing output without rebuilding")
	serveCmd.Flags().Bool("cors-all", false, "allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if noBuild, _ := cmd.Flags().GetBool("no-build"); !noBuild {
		generator, err := site.NewSiteGenerator(cfg)
		if err != nil {
			return err
		}
		res, err := generator.Generate(cmd.Context())
		if err != nil {
			return fmt.Errorf("building site: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Site built: %s (%d pages)\n", cfg.OutputDir, len(res.Pages))
	} else if _, err := os.Stat(cfg.OutputDir); err != nil {
		return fmt.Errorf("output directory not found at %s\nRun `mdtabs build` first", cfg.OutputDir)
	}

	port, _ := cmd.Flags().GetInt("port")
	allowAll, _ := cmd.Flags().GetBool("cors-all")
	srv := site.NewPreviewServer(site.PreviewConfig{
		Port:        port,
		Dir:         cfg.OutputDir,
		AllowAll:    allowAll,
		Persistence: cfg.ControllerOptions(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if open, _ := cmd.Flags().GetBool("open"); open {
		go site.OpenBrowser(fmt.Sprintf("http://localhost:%d", port))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving at http://localhost:%d (press Ctrl+C to stop)\n", port)
	return srv.Start()
}
