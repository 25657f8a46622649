package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/booking-window/internal/auth"
	"github.com/example/booking-window/internal/config"
	"github.com/example/booking-window/internal/logging"
	"github.com/example/booking-window/internal/web"
)

func newServerCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the booking window preview panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			log := logging.New(os.Stdout, "bookingwin", cfg.LogLevel, cfg.LogFormat)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			gate := auth.Gate{Hash: cfg.AdminPasswordHash}
			if !gate.Enabled() {
				log.Warn("ADMIN_PASSWORD_HASH not set; panel is open to anyone who can reach it")
			}

			ws := &web.Server{
				Sessions:    web.NewSessionManager(cfg.CookieHashKey, cfg.CookieBlockKey),
				Gate:        gate,
				Log:         log,
				DefaultLang: cfg.DefaultLang,
				Refresh:     cfg.RefreshInterval,
			}
			return web.Start(ctx, cfg.ListenAddr, ws.Routes(), log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides LISTEN_ADDR)")
	return cmd
}
