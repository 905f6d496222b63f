package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lepinkainen/marquee/internal/config"
	apperrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/movies"
	"github.com/lepinkainen/marquee/internal/stats"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

const (
	appName        = "marquee"
	appDescription = "Browse TMDB genres and popular movies, and build genre based home pages."
)

// CLI represents the complete command structure for the marquee application
type CLI struct {
	// Global flags
	Config   string `help:"Path to a YAML config file (defaults to ./config.yaml when present)" type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error)"`
	StatsDB  string `help:"Path to the genre statistics SQLite database"`

	Genres     GenresCmd     `cmd:"" help:"List TMDB movie genres"`
	Discover   DiscoverCmd   `cmd:"" help:"Discover one page of popular movies"`
	Categorize CategorizeCmd `cmd:"" help:"Discover movies and group them by genre id"`
	Home       HomeCmd       `cmd:"" help:"Build the home page movie lists for the most viewed genres"`
	Stats      StatsCmd      `cmd:"" help:"Manage genre view statistics"`
	Serve      ServeCmd      `cmd:"" help:"Run the HTTP API"`
}

// App carries the resolved configuration and output stream into command Run methods.
type App struct {
	Config *config.Config
	Out    io.Writer

	ctx context.Context
}

// Context returns the command context, cancelled on SIGINT or SIGTERM.
func (a *App) Context() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

// Client builds a TMDB client from the configuration.
func (a *App) Client() (*tmdb.Client, error) {
	if err := a.Config.RequireAPIKey(); err != nil {
		return nil, err
	}
	return tmdb.NewClient(a.Config.TMDB.APIKey,
		tmdb.WithBaseURL(a.Config.TMDB.BaseURL),
		tmdb.WithImageBaseURL(a.Config.TMDB.ImageBaseURL),
		tmdb.WithTimeout(a.Config.TMDB.Timeout),
	), nil
}

// Service builds the movie service on top of a TMDB client.
func (a *App) Service() (*movies.Service, error) {
	client, err := a.Client()
	if err != nil {
		return nil, err
	}
	return movies.NewService(client, movies.NewProjector(client.ImageBaseURL()), a.Config.Home.Concurrency), nil
}

// OpenStats opens the genre statistics store.
func (a *App) OpenStats() (*stats.Store, error) {
	return stats.Open(a.Config.Stats.DBFile)
}

// Execute runs the Kong-based CLI
func Execute() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name(appName),
		kong.Description(appDescription),
		kong.UsageOnError(),
	)

	if err := run(kctx, &cli, os.Stdout); err != nil {
		if apperrors.IsStopProcessingError(err) {
			slog.Info("Stopped", "reason", err.Error())
			return
		}
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func run(kctx *kong.Context, cli *CLI, out io.Writer) error {
	cfg, err := initConfig(viper.GetViper(), cli)
	if err != nil {
		return err
	}

	logCloser, err := initLogging(cfg.Log, os.Stdout)
	if err != nil {
		return err
	}
	defer func() { _ = logCloser.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return kctx.Run(&App{Config: cfg, Out: out, ctx: ctx})
}

// initConfig loads .env, config.yaml and the environment into v, then applies flag overrides.
func initConfig(v *viper.Viper, cli *CLI) (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config.SetDefaults(v)
	if err := config.BindEnv(v); err != nil {
		return nil, err
	}

	if cli.Config != "" {
		v.SetConfigFile(cli.Config)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cli.Config != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		slog.Debug("Config file not found, using defaults and environment")
	}

	applyFlagOverrides(v, cli)

	return config.Load(v)
}

func applyFlagOverrides(v *viper.Viper, cli *CLI) {
	if cli.LogLevel != "" {
		v.Set(config.KeyLogLevel, cli.LogLevel)
	}
	if cli.StatsDB != "" {
		v.Set(config.KeyStatsDBFile, cli.StatsDB)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// initLogging installs a humanlog handler as the default logger. When a log
// file is configured, output is also written to a rotating file.
func initLogging(cfg config.LogConfig, stdout io.Writer) (io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.Level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	w := stdout
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		w = io.MultiWriter(stdout, rotating)
		closer = rotating
	}

	handler := humanlog.NewHandler(w, &humanlog.Options{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	return closer, nil
}
