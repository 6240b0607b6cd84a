package templates

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-obituary/pkg/model"
)

// Store keeps one template per tone. It is safe for concurrent readers once
// constructed.
type Store struct {
	templates map[model.Tone]model.Template
}

var (
	defaultStoreOnce sync.Once
	defaultStore     *Store
)

// Default returns the store built from the embedded template set.
func Default() *Store {
	defaultStoreOnce.Do(func() {
		store, err := LoadFS(DefaultsFS())
		if err != nil {
			panic(fmt.Errorf("templates: load embedded defaults: %w", err))
		}
		defaultStore = store
	})
	return defaultStore
}

// LoadFS walks fsys and parses every JSON/YAML file into a single store. Each
// tone may be defined once across all files and the default tone must be
// present so Lookup stays total.
func LoadFS(fsys fs.FS) (*Store, error) {
	if fsys == nil {
		return nil, fmt.Errorf("templates: filesystem is required")
	}

	store := &Store{templates: make(map[model.Tone]model.Template)}
	sources := make(map[model.Tone]string)

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isTemplateFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("templates: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for key, body := range doc.Templates {
			tone, ok := model.ParseTone(key)
			if !ok {
				return fmt.Errorf("templates: file %s defines unknown tone %q", path, key)
			}
			if prev, exists := sources[tone]; exists {
				return fmt.Errorf("templates: tone %q defined in both %s and %s", tone, prev, path)
			}
			if strings.TrimSpace(body) == "" {
				return fmt.Errorf("templates: file %s defines an empty body for tone %q", path, tone)
			}
			sources[tone] = path
			store.templates[tone] = model.Template{Tone: tone, Body: body}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, ok := store.templates[model.DefaultTone]; !ok {
		return nil, fmt.Errorf("templates: default tone %q is not defined", model.DefaultTone)
	}
	return store, nil
}

// Lookup returns the template for tone, falling back to the heartfelt
// template when tone is empty, unknown or missing from the store.
func (s *Store) Lookup(tone model.Tone) model.Template {
	if s == nil || len(s.templates) == 0 {
		return Default().Lookup(tone)
	}
	if resolved, ok := model.ParseTone(string(tone)); ok {
		if tpl, exists := s.templates[resolved]; exists {
			return tpl
		}
	}
	return s.templates[model.DefaultTone]
}

// Tones lists the tones defined in the store, sorted.
func (s *Store) Tones() []model.Tone {
	if s == nil {
		return nil
	}
	out := make([]model.Tone, 0, len(s.templates))
	for tone := range s.templates {
		out = append(out, tone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type documentFile struct {
	Templates map[string]string `json:"templates" yaml:"templates"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("templates: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("templates: parse %s: invalid JSON or YAML", source)
}

func isTemplateFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
