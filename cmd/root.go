package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "wabridge",
	Short: "Webhook bridge between a WhatsApp gateway and a command bot",
	Long: `wabridge receives signed webhook events from a WhatsApp HTTP
gateway, normalizes sender identities, and routes recognized text
commands to handlers that reply through the gateway's send API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; explicit env vars and the YAML file win.
		_ = godotenv.Load()

		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".wabridge.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
