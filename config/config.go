// Copyright 2025 Vendisearch Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vendisearch/vendisearch/core"
)

// Field is the YAML form of a schema field.
type Field struct {
	Index      int    `yaml:"index"`
	Name       string `yaml:"name"`
	Label      string `yaml:"label"`
	Type       string `yaml:"type"`
	Searchable bool   `yaml:"searchable"`
	Weight     int    `yaml:"weight"`
	InCard     bool   `yaml:"in_card"`
	Filterable bool   `yaml:"filterable"`
}

// SchemaConfig describes the record layout.
type SchemaConfig struct {
	Version string  `yaml:"version"`
	Fields  []Field `yaml:"fields"`
}

// SearchConfig holds query and index-build tuning.
type SearchConfig struct {
	TopK             int     `yaml:"top_k"`
	Threshold        float32 `yaml:"threshold"`
	Repetition       int     `yaml:"repetition"`
	BatchSize        int     `yaml:"batch_size"`
	MaxConcurrent    int     `yaml:"max_concurrent"`
	EmbedTimeoutSecs int     `yaml:"embed_timeout_secs"`
}

// EmbedderConfig points at an OpenAI-compatible embedding endpoint.
type EmbedderConfig struct {
	Host  string `yaml:"host"`
	Model string `yaml:"model"`
}

// Config is the root file configuration.
type Config struct {
	Schema   SchemaConfig        `yaml:"schema"`
	Keywords map[string][]string `yaml:"keywords"`
	Search   SearchConfig        `yaml:"search"`
	Embedder EmbedderConfig      `yaml:"embedder"`
}

// Load reads a config from path. A missing file yields Default(); a
// present file has defaults applied to any omitted section.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to path, creating directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func applyDefaults(cfg *Config) {
	def := Default()
	if len(cfg.Schema.Fields) == 0 {
		cfg.Schema = def.Schema
	}
	if cfg.Schema.Version == "" {
		cfg.Schema.Version = def.Schema.Version
	}
	if cfg.Keywords == nil {
		cfg.Keywords = def.Keywords
	}
	if cfg.Search.TopK == 0 {
		cfg.Search.TopK = def.Search.TopK
	}
	if cfg.Search.Threshold == 0 {
		cfg.Search.Threshold = def.Search.Threshold
	}
	if cfg.Search.Repetition == 0 {
		cfg.Search.Repetition = def.Search.Repetition
	}
	if cfg.Search.BatchSize == 0 {
		cfg.Search.BatchSize = def.Search.BatchSize
	}
	if cfg.Search.MaxConcurrent == 0 {
		cfg.Search.MaxConcurrent = def.Search.MaxConcurrent
	}
	if cfg.Search.EmbedTimeoutSecs == 0 {
		cfg.Search.EmbedTimeoutSecs = def.Search.EmbedTimeoutSecs
	}
	if cfg.Embedder.Host == "" {
		cfg.Embedder.Host = def.Embedder.Host
	}
	if cfg.Embedder.Model == "" {
		cfg.Embedder.Model = def.Embedder.Model
	}
}

// CoreSchema converts the YAML schema into a validated core.Schema.
func (c *Config) CoreSchema() (*core.Schema, error) {
	fields := make([]core.FieldDefinition, len(c.Schema.Fields))
	for i, f := range c.Schema.Fields {
		fieldType, err := parseFieldType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		fields[i] = core.FieldDefinition{
			Index:      f.Index,
			Name:       f.Name,
			Label:      f.Label,
			Type:       fieldType,
			Searchable: f.Searchable,
			Weight:     f.Weight,
			InCard:     f.InCard,
			Filterable: f.Filterable,
		}
	}
	schema := &core.Schema{Version: c.Schema.Version, Fields: fields}
	if err := core.ValidateSchema(schema); err != nil {
		return nil, err
	}
	return schema, nil
}

// KeywordSet converts the YAML keyword map.
func (c *Config) KeywordSet() core.KeywordSet {
	if len(c.Keywords) == 0 {
		return nil
	}
	set := make(core.KeywordSet, len(c.Keywords))
	for topic, variants := range c.Keywords {
		set[topic] = variants
	}
	return set
}

func parseFieldType(s string) (core.FieldType, error) {
	switch s {
	case "", "text":
		return core.FieldTypeText, nil
	case "number":
		return core.FieldTypeNumber, nil
	case "boolean":
		return core.FieldTypeBoolean, nil
	default:
		return 0, fmt.Errorf("%w: unknown field type %q", core.ErrInvalidSchema, s)
	}
}
