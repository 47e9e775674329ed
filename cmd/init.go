package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doctrove/doctrove/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize doctrove configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure doctrove and writes a doctrove.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard()
		if err != nil {
			return err
		}
		if err := cfg.Save(cfgFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Configuration written to %s\n", cfgFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
