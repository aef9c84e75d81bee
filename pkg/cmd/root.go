package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/browse"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/config"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/kv"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/metrics"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/prefs"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/source"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/wishlist"
)

var (
	vip        = config.New()
	configFile string
)

var RootCmd = &cobra.Command{
	Use:           RootCmdName,
	Short:         RootCmdShort,
	Long:          RootCmdLong,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env file if present (ignore errors)
		_ = godotenv.Load()
		if configFile != "" {
			vip.SetConfigFile(configFile)
		}
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ./carfinder.yaml or $HOME/.config/carfinder/carfinder.yaml)")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("catalog-source", config.SourceStatic, "catalog source: static, file, http or postgres")
	flags.String("catalog-path", "catalog.yaml", "catalog file or glob pattern for the file source")
	flags.String("catalog-url", "", "base URL of the remote catalog API")
	flags.Duration("catalog-delay", source.DefaultDelay, "artificial delay of the static source")
	flags.String("wishlist-backend", config.BackendFile, "wishlist store: memory, file, postgres or nats")
	flags.String("wishlist-path", "wishlist.json", "wishlist file for the file backend")

	bindFlag("log.level", flags.Lookup("log-level"))
	bindFlag("catalog.source", flags.Lookup("catalog-source"))
	bindFlag("catalog.path", flags.Lookup("catalog-path"))
	bindFlag("catalog.url", flags.Lookup("catalog-url"))
	bindFlag("catalog.delay", flags.Lookup("catalog-delay"))
	bindFlag("wishlist.backend", flags.Lookup("wishlist-backend"))
	bindFlag("wishlist.path", flags.Lookup("wishlist-path"))

	RootCmd.AddCommand(ServeCmd, SearchCmd, ShowCmd, WishlistCmd, BrowseCmd, CatalogCmd)
}

// app is the wiring shared by all subcommands.
type app struct {
	cfg         config.Config
	logger      *slog.Logger
	metrics     *metrics.Metrics
	store       kv.Store
	source      source.Source
	closeSource func() error
	browser     *browse.Browser
	prefs       *prefs.Prefs
}

// openApp loads the configuration, installs the logger and opens the
// catalog source and the store.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(vip, nil)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	store, err := cfg.OpenStore(ctx, logger)
	if err != nil {
		return nil, err
	}
	src, closeSource, err := cfg.OpenSource(ctx, logger)
	if err != nil {
		_ = kv.Close(store)
		return nil, err
	}

	m := metrics.New()
	browser := browse.New(src, wishlist.New(store, logger),
		browse.WithLogger(logger),
		browse.WithMetrics(m),
		browse.WithPageSize(cfg.Page.Size))

	logger.Debug("carfinder ready",
		"catalog", cfg.Catalog.Source,
		"wishlist", cfg.Wishlist.Backend)

	return &app{
		cfg:         cfg,
		logger:      logger,
		metrics:     m,
		store:       store,
		source:      src,
		closeSource: closeSource,
		browser:     browser,
		prefs:       prefs.New(store, logger),
	}, nil
}

func (a *app) Close() {
	if err := a.closeSource(); err != nil {
		a.logger.Warn("Unable to close catalog source", "err", err)
	}
	if err := kv.Close(a.store); err != nil {
		a.logger.Warn("Unable to close store", "err", err)
	}
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := vip.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
