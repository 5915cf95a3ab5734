/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"dirpx.dev/lookup/apis"
)

// File is the on-disk form of the snooping settings. Unset keys keep the
// value of the configuration they are merged into.
type File struct {
	IncludePrivate     *bool   `yaml:"includePrivate" json:"includePrivate"`
	IncludeStatic      *bool   `yaml:"includeStatic" json:"includeStatic"`
	IncludeFields      *bool   `yaml:"includeFields" json:"includeFields"`
	IncludeEvents      *bool   `yaml:"includeEvents" json:"includeEvents"`
	IncludeUnsupported *bool   `yaml:"includeUnsupported" json:"includeUnsupported"`
	IncludeExtensions  *bool   `yaml:"includeExtensions" json:"includeExtensions"`
	MaxUnwrap          *int    `yaml:"maxUnwrap" json:"maxUnwrap"`
	MaxRedirects       *int    `yaml:"maxRedirects" json:"maxRedirects"`
	MaxItems           *int    `yaml:"maxItems" json:"maxItems"`
	Workers            *int    `yaml:"workers" json:"workers"`
	HierarchyCacheSize *int    `yaml:"hierarchyCacheSize" json:"hierarchyCacheSize"`
	SlowCallThreshold  *string `yaml:"slowCallThreshold" json:"slowCallThreshold"`
}

// LoadFile reads settings from path (YAML or JSON based on extension) and
// merges them over base.
func LoadFile(path string, base apis.Config) (apis.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading config file: %w", err)
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return base, fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return base, fmt.Errorf("parsing JSON config: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, &f); err != nil {
			if err := json.Unmarshal(data, &f); err != nil {
				return base, fmt.Errorf("unable to parse config as YAML or JSON")
			}
		}
	}
	return f.Merge(base)
}

// Merge applies the keys set in f over base.
func (f File) Merge(base apis.Config) (apis.Config, error) {
	cfg := base
	setBool(&cfg.IncludePrivate, f.IncludePrivate)
	setBool(&cfg.IncludeStatic, f.IncludeStatic)
	setBool(&cfg.IncludeFields, f.IncludeFields)
	setBool(&cfg.IncludeEvents, f.IncludeEvents)
	setBool(&cfg.IncludeUnsupported, f.IncludeUnsupported)
	setBool(&cfg.IncludeExtensions, f.IncludeExtensions)
	setInt(&cfg.MaxUnwrap, f.MaxUnwrap)
	setInt(&cfg.MaxRedirects, f.MaxRedirects)
	setInt(&cfg.MaxItems, f.MaxItems)
	setInt(&cfg.Workers, f.Workers)
	setInt(&cfg.HierarchyCacheSize, f.HierarchyCacheSize)
	if f.SlowCallThreshold != nil {
		d, err := time.ParseDuration(strings.TrimSpace(*f.SlowCallThreshold))
		if err != nil {
			return base, fmt.Errorf("parsing slowCallThreshold: %w", err)
		}
		cfg.SlowCallThreshold = d
	}
	return Sanitize(cfg), nil
}

// Environment variables read by FromEnv.
const (
	EnvIncludePrivate     = "LOOKUP_INCLUDE_PRIVATE"
	EnvIncludeStatic      = "LOOKUP_INCLUDE_STATIC"
	EnvIncludeFields      = "LOOKUP_INCLUDE_FIELDS"
	EnvIncludeEvents      = "LOOKUP_INCLUDE_EVENTS"
	EnvIncludeUnsupported = "LOOKUP_INCLUDE_UNSUPPORTED"
	EnvIncludeExtensions  = "LOOKUP_INCLUDE_EXTENSIONS"
	EnvMaxRedirects       = "LOOKUP_MAX_REDIRECTS"
	EnvMaxItems           = "LOOKUP_MAX_ITEMS"
	EnvWorkers            = "LOOKUP_WORKERS"
	EnvSlowCallThreshold  = "LOOKUP_SLOW_CALL_THRESHOLD"
)

// FromEnv loads a .env file when present and applies LOOKUP_* variables
// over base. Malformed values are reported and leave base untouched.
func FromEnv(base apis.Config) (apis.Config, error) {
	_ = godotenv.Load()

	var f File
	var err error
	if f.IncludePrivate, err = envBool(EnvIncludePrivate); err != nil {
		return base, err
	}
	if f.IncludeStatic, err = envBool(EnvIncludeStatic); err != nil {
		return base, err
	}
	if f.IncludeFields, err = envBool(EnvIncludeFields); err != nil {
		return base, err
	}
	if f.IncludeEvents, err = envBool(EnvIncludeEvents); err != nil {
		return base, err
	}
	if f.IncludeUnsupported, err = envBool(EnvIncludeUnsupported); err != nil {
		return base, err
	}
	if f.IncludeExtensions, err = envBool(EnvIncludeExtensions); err != nil {
		return base, err
	}
	if f.MaxRedirects, err = envInt(EnvMaxRedirects); err != nil {
		return base, err
	}
	if f.MaxItems, err = envInt(EnvMaxItems); err != nil {
		return base, err
	}
	if f.Workers, err = envInt(EnvWorkers); err != nil {
		return base, err
	}
	if raw := strings.TrimSpace(os.Getenv(EnvSlowCallThreshold)); raw != "" {
		f.SlowCallThreshold = &raw
	}
	return f.Merge(base)
}

func envBool(key string) (*bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", key, err)
	}
	return &b, nil
}

func envInt(key string) (*int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", key, err)
	}
	return &n, nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
