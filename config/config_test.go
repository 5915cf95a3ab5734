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

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/lookup/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	assert.Equal(t, config.DefaultIncludePrivate, got.IncludePrivate)
	assert.Equal(t, config.DefaultIncludeStatic, got.IncludeStatic)
	assert.Equal(t, config.DefaultIncludeFields, got.IncludeFields)
	assert.Equal(t, config.DefaultIncludeEvents, got.IncludeEvents)
	assert.Equal(t, config.DefaultIncludeUnsupported, got.IncludeUnsupported)
	assert.Equal(t, config.DefaultIncludeExtensions, got.IncludeExtensions)
	assert.Equal(t, config.DefaultMaxUnwrap, got.MaxUnwrap)
	assert.Equal(t, config.DefaultMaxRedirects, got.MaxRedirects)
	assert.Equal(t, config.DefaultMaxItems, got.MaxItems)
	assert.Equal(t, config.DefaultWorkers, got.Workers)
	assert.Equal(t, config.DefaultHierarchyCacheSize, got.HierarchyCacheSize)
	assert.Equal(t, config.DefaultSlowCallThreshold, got.SlowCallThreshold)
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	assert.Equal(t, config.DefaultConfig(), config.NewConfig())
}

func TestIncludeOptions(t *testing.T) {
	c := config.NewConfig(
		config.WithIncludePrivate(true),
		config.WithIncludeStatic(true),
		config.WithIncludeFields(false),
		config.WithIncludeEvents(true),
		config.WithIncludeUnsupported(true),
		config.WithIncludeExtensions(false),
	)
	assert.True(t, c.IncludePrivate)
	assert.True(t, c.IncludeStatic)
	assert.False(t, c.IncludeFields)
	assert.True(t, c.IncludeEvents)
	assert.True(t, c.IncludeUnsupported)
	assert.False(t, c.IncludeExtensions)
}

func TestWithMaxUnwrap(t *testing.T) {
	assert.Equal(t, 3, config.NewConfig(config.WithMaxUnwrap(3)).MaxUnwrap)
	assert.Equal(t, config.DefaultMaxUnwrap, config.NewConfig(config.WithMaxUnwrap(-1)).MaxUnwrap)
}

func TestWithMaxRedirects(t *testing.T) {
	assert.Equal(t, 5, config.NewConfig(config.WithMaxRedirects(5)).MaxRedirects)
	// Zero disables redirection and is kept.
	assert.Equal(t, 0, config.NewConfig(config.WithMaxRedirects(0)).MaxRedirects)
	assert.Equal(t, config.DefaultMaxRedirects, config.NewConfig(config.WithMaxRedirects(-2)).MaxRedirects)
}

func TestLimits(t *testing.T) {
	c := config.NewConfig(
		config.WithMaxItems(10),
		config.WithWorkers(2),
		config.WithHierarchyCacheSize(64),
		config.WithSlowCallThreshold(time.Second),
	)
	assert.Equal(t, 10, c.MaxItems)
	assert.Equal(t, 2, c.Workers)
	assert.Equal(t, 64, c.HierarchyCacheSize)
	assert.Equal(t, time.Second, c.SlowCallThreshold)
}

func TestSanitize(t *testing.T) {
	c := config.NewConfig(
		config.WithMaxItems(0),
		config.WithWorkers(-1),
		config.WithHierarchyCacheSize(0),
		config.WithSlowCallThreshold(-time.Second),
	)
	assert.Equal(t, config.DefaultMaxItems, c.MaxItems)
	assert.Equal(t, config.DefaultWorkers, c.Workers)
	assert.Equal(t, config.DefaultHierarchyCacheSize, c.HierarchyCacheSize)
	assert.Equal(t, time.Duration(0), c.SlowCallThreshold)

	// Options apply in order; the last one wins.
	c = config.NewConfig(config.WithWorkers(1), config.WithWorkers(8))
	assert.Equal(t, 8, c.Workers)
}
