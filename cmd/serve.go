package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/wa-bridge/internal/bot"
	"github.com/ziadkadry99/wa-bridge/internal/config"
	"github.com/ziadkadry99/wa-bridge/internal/gateway"
	"github.com/ziadkadry99/wa-bridge/internal/server"
	"github.com/ziadkadry99/wa-bridge/internal/webhook"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook bridge server",
	Long:  `Starts the HTTP server that receives gateway webhooks and dispatches bot commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		client := gateway.New(cfg.GatewayURL, cfg.GatewayUsername, cfg.GatewayPassword, cfg.RequestTimeout())

		commandBot := bot.New(client, bot.Options{
			Timezone:         cfg.Location(),
			AssetsDir:        cfg.AssetsDir,
			AllowSelfMessage: cfg.AllowSelfMessage,
		})

		eventLog := webhook.NewEventLog()
		hook := webhook.NewHandler(cfg.WebhookSecret, eventLog, commandBot)

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		})
		webhook.RegisterRoutes(srv.Router(), hook)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "wabridge v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Gateway: %s\n", cfg.GatewayURL)
		fmt.Fprintf(os.Stderr, "  Timezone: %s\n", cfg.Location())

		return srv.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
