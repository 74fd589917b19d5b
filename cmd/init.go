package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/wa-bridge/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create a .wabridge.yml configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.RunWizard(); err != nil {
			return fmt.Errorf("configuration wizard: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
