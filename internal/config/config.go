// Package config reads settings from command line flags, falling back to the
// environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	ForumBaseURL string
	HTTPAddr     string
	Username     string
	Password     string
	PageCapacity int
	LogLevel     string

	// Args holds the positional arguments left after the flags.
	Args []string
}

const (
	defaultHTTPAddr     = "0.0.0.0:8080"
	defaultPageCapacity = 1024
	defaultLogLevel     = "info"
)

// ParseFlags parses args with a flag set named name. Flags win over the
// environment.
func ParseFlags(name string, args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVar(&cfg.ForumBaseURL, "forum", "", "Forum base URL")
	fs.StringVar(&cfg.HTTPAddr, "addr", "", "UI server listen address")
	fs.StringVar(&cfg.Username, "user", "", "Forum username")
	fs.StringVar(&cfg.Password, "password", "", "Forum password (prefer env)")
	fs.IntVar(&cfg.PageCapacity, "pages", 0, "Maximum number of open pages")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Args = fs.Args()

	if cfg.ForumBaseURL == "" {
		cfg.ForumBaseURL = os.Getenv("FORUM_BASE_URL")
	}
	if cfg.ForumBaseURL == "" {
		return Config{}, errors.New("forum URL required (use -forum or FORUM_BASE_URL env)")
	}
	u, err := url.Parse(cfg.ForumBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, fmt.Errorf("invalid forum URL %q", cfg.ForumBaseURL)
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
		if cfg.HTTPAddr == "" {
			cfg.HTTPAddr = defaultHTTPAddr
		}
	}

	if cfg.Username == "" {
		cfg.Username = os.Getenv("FORUM_USERNAME")
	}
	if cfg.Password == "" {
		cfg.Password = os.Getenv("FORUM_PASSWORD")
	}
	if (cfg.Username == "") != (cfg.Password == "") {
		return Config{}, errors.New("FORUM_USERNAME and FORUM_PASSWORD must be set together")
	}

	if cfg.PageCapacity == 0 {
		if s := os.Getenv("PAGE_CAPACITY"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid PAGE_CAPACITY env variable")
			}
			cfg.PageCapacity = n
		} else {
			cfg.PageCapacity = defaultPageCapacity
		}
	}
	if cfg.PageCapacity < 1 {
		return Config{}, errors.New("page capacity must be positive")
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
		if cfg.LogLevel == "" {
			cfg.LogLevel = defaultLogLevel
		}
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("invalid log level: %w", err)
	}

	return cfg, nil
}

func (c Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// NewLogger builds a production logger at the configured level.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
