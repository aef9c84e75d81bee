package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/server"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/source"
)

const shutdownTimeout = 5 * time.Second

var (
	ServeCmd = &cobra.Command{
		Use:   ServeCmdName,
		Short: ServeCmdShort,
		Long:  ServeCmdLong,
		RunE:  serveCmdFunc(),
	}
)

func init() {
	flags := ServeCmd.Flags()
	flags.String("address", ":8080", "address to listen on")
	flags.Bool("watch", false, "reload catalog files when they change")
	bindFlag("server.address", flags.Lookup("address"))
	bindFlag("catalog.watch", flags.Lookup("watch"))
}

func serveCmdFunc() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		a.logger.Info("Started serve cmd")

		serve := server.NewHTTPServer(server.Config{
			Addr:         a.cfg.Server.Address,
			ReadTimeout:  a.cfg.Server.ReadTimeout,
			WriteTimeout: a.cfg.Server.WriteTimeout,
		}, a.browser, a.prefs, a.metrics, a.logger)

		g, ctx := errgroup.WithContext(cmd.Context())

		g.Go(func() error {
			a.logger.Info("carfinder API available", "addr", serve.Addr)
			if err := serve.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		if files, ok := a.source.(*source.File); ok && a.cfg.Catalog.Watch {
			g.Go(func() error {
				return files.Watch(ctx, 0)
			})
		}

		g.Go(func() error {
			<-ctx.Done()
			a.logger.Info("Shutting down the server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := serve.Shutdown(shutdownCtx); err != nil {
				a.logger.Error("Server shutdown failed", "err", err)
				return err
			}
			a.logger.Info("Server stopped")
			return nil
		})

		return g.Wait()
	}
}
