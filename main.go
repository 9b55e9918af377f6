package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/llehouerou/top2000/internal/api"
	"github.com/llehouerou/top2000/internal/app"
	"github.com/llehouerou/top2000/internal/config"
	"github.com/llehouerou/top2000/internal/icons"
	"github.com/llehouerou/top2000/internal/logging"
	"github.com/llehouerou/top2000/internal/session"
)

// env holds what every command needs: configuration, logger and client.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	client  *api.Client
	closers []io.Closer
}

func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if !cfg.HasAPIConfig() {
		return nil, fmt.Errorf("no API configured: set api.base_url in config.toml or %s", config.EnvAPIURL)
	}

	icons.Init(cfg.UI.Icons)

	e := &env{cfg: cfg}
	logger, logFile, err := logging.Open(cfg.GetLogConfig())
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	e.logger = logger
	e.closers = append(e.closers, logFile)

	sessions, err := session.OpenDefault()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open session store: %w", err)
	}
	e.closers = append(e.closers, sessions)

	apiCfg := cfg.GetAPIConfig()
	searchCfg := cfg.GetSearchConfig()
	e.client = api.NewClient(api.Options{
		BaseURL:   apiCfg.BaseURL,
		UserAgent: apiCfg.UserAgent,
		Timeout:   apiCfg.Timeout(),
		RateLimit: apiCfg.RateLimit,
		Retries:   apiCfg.Retries,
		Sessions:  sessions,
		CacheSize: searchCfg.CacheSize,
		CacheTTL:  searchCfg.CacheTTL(),
	})
	return e, nil
}

// Close releases resources in reverse order of acquisition.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i].Close()
	}
}

// withEnv wraps a command action with environment setup and teardown.
func withEnv(action func(c *cli.Context, e *env) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()
		return action(c, e)
	}
}

func runTUI(c *cli.Context, e *env) error {
	m := app.New(app.Options{
		Client:    e.client,
		Search:    e.cfg.GetSearchConfig(),
		Chart:     e.cfg.GetChartConfig(),
		StartPath: c.String("open"),
		Logger:    e.logger,
	})

	e.logger.Info("starting", "api", e.cfg.API.BaseURL)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if fm, ok := final.(app.Model); ok {
		fm.Popups.HideAll()
	}
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "top2000",
		Usage: "browse the Top 2000 chart from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "open",
				Usage: "page to open on start, e.g. /chart/1999 or /artist/42",
			},
		},
		Action: withEnv(runTUI),
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "search songs and artists",
				ArgsUsage: "<query>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "songs-only", Usage: "search song titles only"},
					&cli.BoolFlag{Name: "json", Usage: "print results as JSON"},
					&cli.IntFlag{Name: "limit", Usage: "maximum number of results"},
				},
				Action: withEnv(searchCommand),
			},
			{
				Name:  "chart",
				Usage: "print the chart of a year",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "year", Usage: "chart year (default: configured year)"},
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "number of entries, 0 for all"},
				},
				Action: withEnv(chartCommand),
			},
			{
				Name:   "artists",
				Usage:  "list all artists",
				Action: withEnv(artistsCommand),
			},
			{
				Name:  "stats",
				Usage: "print the statistics of a year",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "year", Usage: "chart year (default: configured year)"},
				},
				Action: withEnv(statsCommand),
			},
			{
				Name:   "login",
				Usage:  "log in and store the session",
				Flags:  credentialFlags(),
				Action: withEnv(authCommand(false)),
			},
			{
				Name:   "register",
				Usage:  "create an account and log in",
				Flags:  credentialFlags(),
				Action: withEnv(authCommand(true)),
			},
			{
				Name:   "logout",
				Usage:  "forget the stored session",
				Action: withEnv(logoutCommand),
			},
			{
				Name:   "whoami",
				Usage:  "print the logged in account",
				Action: withEnv(whoamiCommand),
			},
			{
				Name:   "playlists",
				Usage:  "list your playlists",
				Action: withEnv(playlistsCommand),
			},
			adminCommand(),
		},
	}
}

func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "email", Required: true},
		&cli.StringFlag{Name: "password", Usage: "read from stdin when omitted"},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
