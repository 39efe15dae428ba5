// Package cli wires the gosignal command tree.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/njchilds90/gosignal/internal/config"
	"github.com/njchilds90/gosignal/signal"
)

// app is the state shared by subcommands once configuration is loaded.
type app struct {
	v        *viper.Viper
	cfgFile  string
	version  string
	cfg      config.Config
	log      *logrus.Logger
	analyzer *signal.Analyzer
}

// NewRootCmd builds the command tree with its own viper instance.
func NewRootCmd(version string) *cobra.Command {
	a := &app{v: viper.New(), version: version}
	config.SetDefaults(a.v)

	rootCmd := &cobra.Command{
		Use:   "gosignal",
		Short: "Classify signals f(t) and compute their energy, power and mean",
		Long: `gosignal parses a signal written in t, decides whether it is periodic,
decaying or neither, and reports its period, energy, average power and mean.

The same analysis is served over HTTP (serve) and as MCP tools (mcp).`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.load(cmd) },
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.gosignal.yaml)")
	pf.String("log-level", "info", "log level: trace, debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")
	pf.Duration("timeout", signal.DefaultTimeout, "per-analysis time budget (0 disables)")

	_ = a.v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, pf.Lookup("log-format"))
	_ = a.v.BindPFlag(config.KeyTimeout, pf.Lookup("timeout"))

	rootCmd.AddCommand(newCalcCmd(a), newServeCmd(a), newMCPCmd(a))
	return rootCmd
}

// Execute runs the command tree against os.Args.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}

// load reads the config file and environment, then builds the logger and
// analyzer.
func (a *app) load(cmd *cobra.Command) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(home)
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".gosignal")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = cfg.NewLogger(cmd.ErrOrStderr())
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.WithField("file", filepath.Clean(used)).Debug("using config file")
	}
	a.analyzer = signal.New(cfg.AnalyzerOptions(a.log)...)
	return nil
}
