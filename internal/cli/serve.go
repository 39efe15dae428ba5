package cli

import (
	"context"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gosignal/internal/config"
	"github.com/njchilds90/gosignal/internal/mcptool"
	"github.com/njchilds90/gosignal/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyzer over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := notifyContext(cmd.Context())
			defer stop()
			return server.New(a.analyzer, a.cfg.Server, a.log).Run(ctx)
		},
	}
	cmd.Flags().String("addr", ":8000", "listen address")
	cmd.Flags().StringSlice("allowed-origins", []string{"http://localhost:3000"}, "CORS origins allowed to call the API")
	_ = a.v.BindPFlag(config.KeyServerAddr, cmd.Flags().Lookup("addr"))
	_ = a.v.BindPFlag(config.KeyAllowedOrigins, cmd.Flags().Lookup("allowed-origins"))
	return cmd
}

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the analyzer as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := notifyContext(cmd.Context())
			defer stop()
			s := mcptool.NewServer(a.analyzer, a.version, a.log)
			return mcptool.ServeStdio(ctx, s, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return ossignal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
