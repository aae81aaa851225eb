package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/danielwaldman/cadence/internal/cli"
	"github.com/danielwaldman/cadence/internal/config"
	"github.com/danielwaldman/cadence/internal/identity"
	"github.com/danielwaldman/cadence/internal/llm"
	"github.com/danielwaldman/cadence/internal/store"
	"github.com/danielwaldman/cadence/internal/variations"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := os.Getenv("CADENCE_CONFIG")
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // stderr sync failure is uninteresting

	items, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	app := &cli.App{
		Config: cfg,
		Source: newSource(logger),
		Items:  items,
		Ident:  identity.Identity{UserID: cfg.Auth.LocalUser},
		Logger: logger,
	}

	return cli.NewRootCmd(app).Execute()
}

func newLogger() (*zap.Logger, error) {
	if os.Getenv("CADENCE_DEBUG") != "" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newSource picks the variation source: the completion client when enabled,
// otherwise the deterministic local generator.
func newSource(logger *zap.Logger) variations.Source {
	llmCfg := llm.LoadConfig()
	if !llmCfg.Enabled {
		return variations.NewLocalSource()
	}
	client := llm.NewOpenAIClient(llmCfg, llm.ZapObserver{Logger: logger})
	return variations.NewLLMSource(client, logger)
}

func openStore(cfg config.Config) (store.ItemStore, func(), error) {
	switch cfg.Store.Backend {
	case "postgrest":
		tokens := identity.StaticTokenProvider{Value: cfg.Store.PostgRESTKey}
		s := store.NewPostgRESTStore(store.PostgRESTConfig{
			BaseURL: cfg.Store.PostgRESTURL,
			APIKey:  cfg.Store.PostgRESTKey,
			Table:   cfg.Store.Table,
		}, tokens)
		return s, func() {}, nil
	default:
		db, err := store.OpenDB(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store.NewSQLiteItemStore(db), func() { db.Close() }, nil
	}
}
