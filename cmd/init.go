package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/mdtabs/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize mdtabs configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure mdtabs for your project and writes the config file (default .mdtabs.yml).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(cfgFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfgFile)
		}
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
