package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/mdtabs/internal/site"
	"github.com/ziadkadry99/mdtabs/internal/token"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a single markdown file to an HTML fragment",
	Long: `Renders one markdown file (or stdin when no file or "-" is given) to an
HTML fragment on stdout. Runtime assets are not copied.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().Bool("tokens", false, "print the transformed token stream as JSON instead of HTML")
	renderCmd.Flags().Bool("meta", false, "print the runtime assets the fragment needs to stderr")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Bundle = false

	name := "-"
	if len(args) == 1 {
		name = args[0]
	}
	var src []byte
	if name == "-" {
		src, err = io.ReadAll(cmd.InOrStdin())
	} else {
		src, err = os.ReadFile(name)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}

	generator, err := site.NewSiteGenerator(cfg)
	if err != nil {
		return err
	}
	c, err := generator.Convert(name, src, token.NewEnv())
	if err != nil {
		return err
	}

	for _, w := range c.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	if meta, _ := cmd.Flags().GetBool("meta"); meta {
		enc := json.NewEncoder(cmd.ErrOrStderr())
		if err := enc.Encode(c.Meta); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if asTokens, _ := cmd.Flags().GetBool("tokens"); asTokens {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(c.Tokens)
	}
	_, err = io.WriteString(out, c.HTML)
	return err
}
