// Package config loads gosignal settings from viper and builds the logger
// they describe.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/njchilds90/gosignal/signal"
)

// Keys understood by Load.
const (
	KeyTimeout        = "timeout"
	KeyMaxConcurrency = "max_concurrency"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeyServerAddr     = "server.addr"
	KeyAllowedOrigins = "server.allowed_origins"
	KeyMaxBodyBytes   = "server.max_body_bytes"
)

// EnvPrefix is prepended to upper-cased keys when reading the environment,
// so server.addr is GOSIGNAL_SERVER_ADDR.
const EnvPrefix = "GOSIGNAL"

type Config struct {
	Timeout        time.Duration
	MaxConcurrency int
	Log            LogConfig
	Server         ServerConfig
}

type LogConfig struct {
	Level  string
	Format string // text or json
}

type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
	MaxBodyBytes   int64
}

var (
	ErrTimeout      = errors.New("config: timeout must not be negative")
	ErrLogFormat    = errors.New("config: log.format must be text or json")
	ErrMaxBodyBytes = errors.New("config: server.max_body_bytes must be positive")
)

// SetDefaults registers every key's default on v and enables environment
// lookup under EnvPrefix.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyTimeout, signal.DefaultTimeout)
	v.SetDefault(KeyMaxConcurrency, 0)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyServerAddr, ":8000")
	v.SetDefault(KeyAllowedOrigins, []string{"http://localhost:3000"})
	v.SetDefault(KeyMaxBodyBytes, int64(1<<20))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads and validates a Config from v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Timeout:        v.GetDuration(KeyTimeout),
		MaxConcurrency: v.GetInt(KeyMaxConcurrency),
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString(KeyLogLevel)),
			Format: strings.ToLower(v.GetString(KeyLogFormat)),
		},
		Server: ServerConfig{
			Addr:           v.GetString(KeyServerAddr),
			AllowedOrigins: v.GetStringSlice(KeyAllowedOrigins),
			MaxBodyBytes:   v.GetInt64(KeyMaxBodyBytes),
		},
	}
	if cfg.Timeout < 0 {
		return Config{}, ErrTimeout
	}
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return Config{}, fmt.Errorf("config: log.level: %w", err)
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return Config{}, ErrLogFormat
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		return Config{}, ErrMaxBodyBytes
	}
	return cfg, nil
}

// NewLogger builds a logger writing to out at the configured level and format.
func (c Config) NewLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	if lvl, err := logrus.ParseLevel(c.Log.Level); err == nil {
		l.SetLevel(lvl)
	}
	if c.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}

// AnalyzerOptions translates the config into signal.Analyzer options.
func (c Config) AnalyzerOptions(log logrus.FieldLogger) []signal.Option {
	opts := []signal.Option{signal.WithLogger(log), signal.WithTimeout(c.Timeout)}
	if c.MaxConcurrency > 0 {
		opts = append(opts, signal.WithMaxConcurrency(c.MaxConcurrency))
	}
	return opts
}
