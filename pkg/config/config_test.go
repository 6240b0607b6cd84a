package config

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse("test", nil, io.Discard)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_FileThenFlags(t *testing.T) {
	path := filepath.Join("testdata", "server.yaml")
	cfg, err := Parse("test", []string{"-config", path, "-addr", ":7070", "-grace", "2s", "-metrics", "-date-layout", "2006-01-02"}, io.Discard)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := Default()
	want.Addr = ":7070"
	want.ShutdownGrace = 2 * time.Second
	want.Metrics = true
	want.Endpoint = "https://generator.example.com/exec"
	want.Timeout = 15 * time.Second
	want.ValidateContract = false
	want.ThemeVariant = "dark"
	want.Title = "In Memoriam"
	want.DateLayout = "2006-01-02"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	if _, err := Load(filepath.Join("testdata", "unknown.yaml")); err == nil {
		t.Fatalf("expected unknown key to fail")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join("testdata", "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"relative endpoint": func(c *Config) { c.Endpoint = "/exec" },
		"ftp endpoint":      func(c *Config) { c.Endpoint = "ftp://example.com/exec" },
		"negative timeout":  func(c *Config) { c.Timeout = -time.Second },
		"negative grace":    func(c *Config) { c.ShutdownGrace = -time.Second },
		"empty layout":      func(c *Config) { c.DateLayout = " " },
		"bad base path":     func(c *Config) { c.BasePath = "obituary" },
		"watch without dir": func(c *Config) { c.WatchTemplates = true },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestParse_InvalidFlag(t *testing.T) {
	if _, err := Parse("test", []string{"-endpoint", "not a url"}, io.Discard); err == nil {
		t.Fatalf("expected invalid endpoint to fail")
	}
}
