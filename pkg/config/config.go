// Package config holds the settings shared by the obituary server and CLI. A
// YAML file provides the base values and command-line flags override them.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-obituary/pkg/templates"
)

// Config is the runtime configuration.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string `yaml:"addr"`
	// ShutdownGrace bounds graceful shutdown of the HTTP server.
	ShutdownGrace time.Duration `yaml:"shutdown_grace"`
	// Endpoint is the remote generator URL. Empty means every submission uses
	// the local templates.
	Endpoint string `yaml:"endpoint"`
	// Timeout bounds the remote call. Zero leaves the HTTP client default.
	Timeout time.Duration `yaml:"timeout"`
	// ValidateContract checks remote responses against the embedded OpenAPI
	// response schema.
	ValidateContract bool `yaml:"validate_contract"`
	// TemplatesDir overrides the embedded fallback template set.
	TemplatesDir string `yaml:"templates_dir"`
	// WatchTemplates reloads TemplatesDir when its files change.
	WatchTemplates bool `yaml:"watch_templates"`
	// PageTemplatesDir overrides the embedded HTML page templates.
	PageTemplatesDir string `yaml:"page_templates_dir"`
	// DateLayout formats the [Date] placeholder.
	DateLayout string `yaml:"date_layout"`
	// ThemeVariant selects a variant of the page theme ("" or "dark").
	ThemeVariant string `yaml:"theme_variant"`
	// Title is the page and terminal heading.
	Title string `yaml:"title"`
	// BasePath is where the server mounts its handlers.
	BasePath string `yaml:"base_path"`
	// DownloadDir is where the CLI writes obituary.txt.
	DownloadDir string `yaml:"download_dir"`
	// Metrics exposes Prometheus metrics on the server's metrics route.
	Metrics bool `yaml:"metrics"`
}

// Default returns the configuration used when neither file nor flags set a
// value.
func Default() Config {
	return Config{
		Addr:             ":8080",
		ShutdownGrace:    5 * time.Second,
		ValidateContract: true,
		DateLayout:       templates.DefaultDateLayout,
		BasePath:         "/",
		DownloadDir:      ".",
	}
}

// Load reads a YAML file on top of Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := decode(bytes.NewReader(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Parse builds the configuration for a command: defaults, then the file named
// by -config (when given), then any flag set explicitly on the command line.
func Parse(name string, args []string, output io.Writer) (Config, error) {
	base := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}

	var (
		file  string
		flags = base
	)
	fs.StringVar(&file, "config", "", "Path to a YAML config file")
	fs.StringVar(&flags.Addr, "addr", base.Addr, "HTTP listen address")
	fs.DurationVar(&flags.ShutdownGrace, "grace", base.ShutdownGrace, "Shutdown grace period")
	fs.StringVar(&flags.Endpoint, "endpoint", base.Endpoint, "Remote generator URL (empty uses local templates only)")
	fs.DurationVar(&flags.Timeout, "timeout", base.Timeout, "Timeout for the remote generator call (0 disables)")
	fs.BoolVar(&flags.ValidateContract, "validate-contract", base.ValidateContract, "Validate generator responses against the embedded OpenAPI contract")
	fs.StringVar(&flags.TemplatesDir, "templates", base.TemplatesDir, "Directory with fallback template YAML files")
	fs.BoolVar(&flags.WatchTemplates, "watch-templates", base.WatchTemplates, "Reload fallback templates when files in -templates change")
	fs.StringVar(&flags.PageTemplatesDir, "page-templates", base.PageTemplatesDir, "Directory with HTML page templates")
	fs.StringVar(&flags.DateLayout, "date-layout", base.DateLayout, "Go time layout used for [Date]")
	fs.StringVar(&flags.ThemeVariant, "theme-variant", base.ThemeVariant, "Page theme variant (e.g. dark)")
	fs.StringVar(&flags.Title, "title", base.Title, "Page title")
	fs.StringVar(&flags.BasePath, "base-path", base.BasePath, "URL prefix the server handlers are mounted under")
	fs.StringVar(&flags.DownloadDir, "download-dir", base.DownloadDir, "Directory where the CLI saves obituary.txt")
	fs.BoolVar(&flags.Metrics, "metrics", base.Metrics, "Expose Prometheus metrics")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := base
	if strings.TrimSpace(file) != "" {
		loaded, err := Load(file)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = flags.Addr
		case "grace":
			cfg.ShutdownGrace = flags.ShutdownGrace
		case "endpoint":
			cfg.Endpoint = flags.Endpoint
		case "timeout":
			cfg.Timeout = flags.Timeout
		case "validate-contract":
			cfg.ValidateContract = flags.ValidateContract
		case "templates":
			cfg.TemplatesDir = flags.TemplatesDir
		case "watch-templates":
			cfg.WatchTemplates = flags.WatchTemplates
		case "page-templates":
			cfg.PageTemplatesDir = flags.PageTemplatesDir
		case "date-layout":
			cfg.DateLayout = flags.DateLayout
		case "theme-variant":
			cfg.ThemeVariant = flags.ThemeVariant
		case "title":
			cfg.Title = flags.Title
		case "base-path":
			cfg.BasePath = flags.BasePath
		case "download-dir":
			cfg.DownloadDir = flags.DownloadDir
		case "metrics":
			cfg.Metrics = flags.Metrics
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c Config) Validate() error {
	if c.Endpoint != "" {
		u, err := url.Parse(c.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config: endpoint %q must be an absolute http(s) URL", c.Endpoint)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: timeout must not be negative")
	}
	if c.ShutdownGrace < 0 {
		return fmt.Errorf("config: shutdown grace must not be negative")
	}
	if strings.TrimSpace(c.DateLayout) == "" {
		return fmt.Errorf("config: date layout is required")
	}
	if c.WatchTemplates && strings.TrimSpace(c.TemplatesDir) == "" {
		return fmt.Errorf("config: watching templates requires a templates directory")
	}
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("config: base path %q must start with /", c.BasePath)
	}
	return nil
}
