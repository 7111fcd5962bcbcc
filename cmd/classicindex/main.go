package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/JingYiJun/ClassicIndex/internal/client"
	"github.com/JingYiJun/ClassicIndex/internal/config"
	"github.com/JingYiJun/ClassicIndex/internal/log"
	"github.com/JingYiJun/ClassicIndex/internal/prefs"
)

func main() {
	app := &cli.Command{
		Name:  "classicindex",
		Usage: "Semantic search over the classics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: defaultConfigPath(),
			},
			&cli.StringFlag{
				Name:  "server",
				Usage: "Search proxy URL (overrides server_url)",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "Directory for saved preferences (overrides data_dir)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			log.SetGlobalDebug(c.Bool("debug"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			SearchCommand(),
			TUICommand(),
			TopKCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return "config.toml"
	}
	return path
}

// session bundles what every command needs; Close releases the preference store
type session struct {
	cfg      *config.ClientConfig
	store    *prefs.BadgerStore
	searcher *client.HTTPSearcher
	client   *client.Client
}

func openSession(c *cli.Command, opts ...client.Option) (*session, error) {
	cfg, err := config.LoadClient(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if server := c.String("server"); server != "" {
		cfg.ServerURL = server
	}
	if dir := c.String("data-dir"); dir != "" {
		cfg.DataDir = dir
	}

	store, err := prefs.Open(cfg.PreferencesDir())
	if err != nil {
		return nil, err
	}

	searcher := client.NewHTTPSearcher(cfg.ServerURL, nil)
	qc, err := client.New(searcher, append([]client.Option{client.WithPreferences(store)}, opts...)...)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &session{cfg: cfg, store: store, searcher: searcher, client: qc}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		log.ForService("classicindex").Warnf("closing preferences: %v", err)
	}
}
