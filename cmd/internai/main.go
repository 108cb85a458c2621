// Package main is the internai CLI entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/hyperjump/internai/internal/cli"
	"github.com/hyperjump/internai/internal/client"
	"github.com/hyperjump/internai/internal/config"
	"github.com/hyperjump/internai/internal/mentor"
	"github.com/hyperjump/internai/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

// app holds the flags and the components built from them once per invocation.
type app struct {
	configPath string
	apiURL     string
	debug      bool
	output     string

	out       io.Writer
	lookupEnv func(string) (string, bool)

	cfg     *config.Config
	logger  *zap.Logger
	mentor  *mentor.Mentor
	printer *cli.Printer
}

func main() {
	a := &app{out: os.Stdout, lookupEnv: os.LookupEnv}
	root := newRootCmd(a)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	stop()
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if err != nil {
		if a.printer != nil {
			a.printer.Error(err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "internai",
		Short:         "Learning journal and mentor for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file path (default "+config.DefaultPath()+")")
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "backend base URL (overrides "+config.EnvAPIURL+")")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", string(cli.OutputText), "output format: text or json")

	root.AddCommand(a.logCmd())
	root.AddCommand(a.showCmd())
	root.AddCommand(a.listCmd())
	root.AddCommand(a.summaryCmd())
	root.AddCommand(a.askCmd())
	root.AddCommand(a.explainCmd())
	root.AddCommand(a.guidanceCmd())
	root.AddCommand(a.searchCmd())
	root.AddCommand(a.dashboardCmd())
	root.AddCommand(a.healthCmd())
	root.AddCommand(a.watchCmd())
	root.AddCommand(a.stubCmd())
	root.AddCommand(a.configCmd())
	root.AddCommand(a.versionCmd())
	return root
}

// setup resolves configuration once and builds the logger, client and printer.
func (a *app) setup() error {
	format, err := cli.ParseOutputFormat(a.output)
	if err != nil {
		return err
	}
	styled := false
	if f, ok := a.out.(*os.File); ok && format == cli.OutputText {
		styled = cli.IsTerminal(f)
	}
	a.printer = cli.NewPrinter(a.out, format, cli.WithStyle(styled))

	cfg, path, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ResolveAPI(a.lookupEnv, a.apiURL); err != nil {
		return err
	}
	a.cfg = cfg

	debug := cfg.Debug || a.debug
	logger, err := utils.NewLogger(debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = logger
	logger.Debug("config loaded",
		zap.String("config_path", path),
		zap.String("base_url", cfg.API.BaseURL),
		zap.Bool("debug", debug),
	)

	c, err := client.New(cfg.API, client.WithLogger(logger))
	if err != nil {
		return err
	}
	a.mentor = mentor.New(c, mentor.WithLogger(logger))
	return nil
}

// loadConfig loads config from path. With no path it uses ./config.yaml when present (for
// development), otherwise the default path, where a missing file means defaults.
// Returns the config and the path that was actually used.
func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	if cwd, err := os.Getwd(); err == nil {
		fallback := filepath.Join(cwd, "config.yaml")
		if _, statErr := os.Stat(fallback); statErr == nil {
			cfg, loadErr := config.Load(fallback)
			if loadErr != nil {
				return nil, "", loadErr
			}
			return cfg, fallback, nil
		}
	}
	path = config.DefaultPath()
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
