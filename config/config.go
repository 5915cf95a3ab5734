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
	"time"

	"dirpx.dev/lookup/apis"
)

const (
	// DefaultIncludePrivate represents the default for IncludePrivate.
	DefaultIncludePrivate = false
	// DefaultIncludeStatic represents the default for IncludeStatic.
	DefaultIncludeStatic = false
	// DefaultIncludeFields represents the default for IncludeFields.
	// Fields carry most of the data of Go values, so they are shown by default.
	DefaultIncludeFields = true
	// DefaultIncludeEvents represents the default for IncludeEvents.
	DefaultIncludeEvents = false
	// DefaultIncludeUnsupported represents the default for IncludeUnsupported.
	DefaultIncludeUnsupported = false
	// DefaultIncludeExtensions represents the default for IncludeExtensions.
	DefaultIncludeExtensions = true
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultMaxRedirects represents the default for MaxRedirects.
	DefaultMaxRedirects = 32
	// DefaultMaxItems represents the default for MaxItems.
	DefaultMaxItems = 1000
	// DefaultWorkers represents the default for Workers.
	DefaultWorkers = 4
	// DefaultHierarchyCacheSize represents the default for HierarchyCacheSize.
	DefaultHierarchyCacheSize = 512
	// DefaultSlowCallThreshold represents the default for SlowCallThreshold.
	DefaultSlowCallThreshold = 100 * time.Millisecond
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return Sanitize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		IncludePrivate:     DefaultIncludePrivate,
		IncludeStatic:      DefaultIncludeStatic,
		IncludeFields:      DefaultIncludeFields,
		IncludeEvents:      DefaultIncludeEvents,
		IncludeUnsupported: DefaultIncludeUnsupported,
		IncludeExtensions:  DefaultIncludeExtensions,
		MaxUnwrap:          DefaultMaxUnwrap,
		MaxRedirects:       DefaultMaxRedirects,
		MaxItems:           DefaultMaxItems,
		Workers:            DefaultWorkers,
		HierarchyCacheSize: DefaultHierarchyCacheSize,
		SlowCallThreshold:  DefaultSlowCallThreshold,
	}
}

// Sanitize resets out-of-range limits to their defaults.
// Zero MaxUnwrap is kept and means the default where types are normalized;
// zero MaxRedirects is kept and disables redirection.
func Sanitize(cfg apis.Config) apis.Config {
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.MaxRedirects < 0 {
		cfg.MaxRedirects = DefaultMaxRedirects
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultMaxItems
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.HierarchyCacheSize <= 0 {
		cfg.HierarchyCacheSize = DefaultHierarchyCacheSize
	}
	if cfg.SlowCallThreshold < 0 {
		cfg.SlowCallThreshold = 0
	}
	return cfg
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithIncludePrivate sets the IncludePrivate option.
func WithIncludePrivate(include bool) Option {
	return func(c *apis.Config) {
		c.IncludePrivate = include
	}
}

// WithIncludeStatic sets the IncludeStatic option.
func WithIncludeStatic(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeStatic = include
	}
}

// WithIncludeFields sets the IncludeFields option.
func WithIncludeFields(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeFields = include
	}
}

// WithIncludeEvents sets the IncludeEvents option.
func WithIncludeEvents(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeEvents = include
	}
}

// WithIncludeUnsupported sets the IncludeUnsupported option.
func WithIncludeUnsupported(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeUnsupported = include
	}
}

// WithIncludeExtensions sets the IncludeExtensions option.
func WithIncludeExtensions(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeExtensions = include
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithMaxRedirects sets the MaxRedirects option.
// A negative value resets to the default.
func WithMaxRedirects(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxRedirects = DefaultMaxRedirects
			return
		}
		c.MaxRedirects = max
	}
}

// WithMaxItems sets the MaxItems option.
func WithMaxItems(max int) Option {
	return func(c *apis.Config) {
		c.MaxItems = max
	}
}

// WithWorkers sets the Workers option.
func WithWorkers(n int) Option {
	return func(c *apis.Config) {
		c.Workers = n
	}
}

// WithHierarchyCacheSize sets the HierarchyCacheSize option.
func WithHierarchyCacheSize(n int) Option {
	return func(c *apis.Config) {
		c.HierarchyCacheSize = n
	}
}

// WithSlowCallThreshold sets the SlowCallThreshold option.
func WithSlowCallThreshold(d time.Duration) Option {
	return func(c *apis.Config) {
		c.SlowCallThreshold = d
	}
}
