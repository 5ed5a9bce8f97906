package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tick loop and the ops HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := buildApplication(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		s := server.Default(server.WithHostPorts(cfg.Server.Addr))
		a.handler.RegisterRoutes(s)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return a.loop.Run(gctx)
		})
		g.Go(func() error {
			return s.Run()
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return s.Shutdown(shutdownCtx)
		})

		logger.Info("clawcolony serving",
			zap.String("addr", cfg.Server.Addr),
			zap.Duration("tick", cfg.Server.TickInterval()),
			zap.Bool("postgres", cfg.Database.DSN != ""),
			zap.Bool("redis", cfg.Redis.URL != ""))
		return g.Wait()
	},
}
