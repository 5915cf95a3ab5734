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

package lookup

import (
	"errors"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/lookup/apis"
	"dirpx.dev/lookup/builder"
	"dirpx.dev/lookup/config"
	"dirpx.dev/lookup/extension"
	"dirpx.dev/lookup/snoop"
	"dirpx.dev/lookup/statics"
)

// init initializes the global state.
func init() {
	s := &state{
		cfg:   config.DefaultConfig(),
		exts:  extension.NewRegistry(),
		stats: statics.NewRegistry(),
	}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.dsp = b.BuildDispatcher(s.cfg, s.reg, nil, nil)
	s.bld = b
	s.eng = s.engine()
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("lookup: builder returned nil registry")
	// ErrNilDispatcher is returned when a builder returns a nil dispatcher.
	ErrNilDispatcher = errors.New("lookup: builder returned nil dispatcher")
)

// Snoop wraps v in an Object bound to doc using the global engine.
func Snoop(v any, doc apis.Document) *snoop.Object {
	return st.Load().eng.Snoop(v, doc)
}

// SnoopStatic wraps t in an Object browsing the static members of t.
func SnoopStatic(t reflect.Type) *snoop.Object {
	return st.Load().eng.SnoopStatic(t)
}

// Build reflects v into descriptors using the global engine.
func Build(v any, doc apis.Document) []*snoop.Descriptor {
	return st.Load().eng.Build(v, doc)
}

// BuildStatic returns the static members of t using the global engine.
func BuildStatic(t reflect.Type) []*snoop.Descriptor {
	return st.Load().eng.BuildStatic(t)
}

// Describe picks the describer for v through the global dispatcher.
func Describe(v any) apis.Describer {
	s := st.Load()
	return s.dsp.Describe(v, nil, s.cfg)
}

// Register adds a type-factory mapping to the global registry.
func Register(t reflect.Type, f apis.Factory) error {
	return st.Load().reg.Register(t, f)
}

// RegisterExtension attaches a provider of computed members to t.
func RegisterExtension(t reflect.Type, p extension.Provider) error {
	return st.Load().exts.Register(t, p)
}

// RegisterStatic records a static member of t.
func RegisterStatic(t reflect.Type, name string, value any) error {
	return st.Load().stats.Register(t, name, value)
}

// Engine returns the global engine.
func Engine() *snoop.Engine {
	return st.Load().eng
}

// SetLogger sets the logger of the global engine. Nil restores slog.Default().
func SetLogger(l *slog.Logger) {
	publish(func(old, next *state) {
		next.log = l
	})
}

// SetAll explicitly sets all global state components.
//
// Nil arguments leave the corresponding component unchanged (registry and
// dispatcher are rebuilt and unpinned), except for ext which is always
// replaced.
//
// This is mainly used by tests to get a clean deterministic state.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, dsp apis.Dispatcher, bld apis.Builder) {
	publish(func(old, next *state) {
		if cfg != nil {
			next.cfg = config.Sanitize(*cfg)
		}
		next.ext = ext
		if bld != nil {
			next.bld = bld
		}

		next.reg, next.preg = reg, reg != nil
		if reg == nil {
			next.reg = next.bld.BuildRegistry(next.cfg, old.reg, next.ext)
		}
		next.dsp, next.pdsp = dsp, dsp != nil
		if dsp == nil {
			next.dsp = next.bld.BuildDispatcher(next.cfg, next.reg, old.dsp, next.ext)
		}
	})
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration and rebuilds the layers that
// are not pinned.
func SetConfig(cfg apis.Config) {
	publish(func(old, next *state) {
		next.cfg = config.Sanitize(cfg)
		next.rebuild(old)
	})
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces and pins the global registry. The dispatcher is
// rebuilt over it unless pinned.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	publish(func(old, next *state) {
		next.reg, next.preg = reg, true
		if !next.pdsp {
			next.dsp = next.bld.BuildDispatcher(next.cfg, reg, old.dsp, next.ext)
		}
	})
}

// Dispatcher returns the global dispatcher.
func Dispatcher() apis.Dispatcher {
	return st.Load().dsp
}

// SetDispatcher replaces and pins the global dispatcher.
func SetDispatcher(dsp apis.Dispatcher) {
	if dsp == nil {
		return
	}
	publish(func(old, next *state) {
		next.dsp, next.pdsp = dsp, true
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder and rebuilds the layers that are
// not pinned.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	publish(func(old, next *state) {
		next.bld = b
		next.rebuild(old)
	})
}

// SetExt replaces the extension payload handed to the builder and
// rebuilds the layers that are not pinned.
func SetExt[T any](ext T) {
	publish(func(old, next *state) {
		next.ext = ext
		next.rebuild(old)
	})
}

// ExtAs returns the global extension payload as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry keeps the global registry across rebuilds.
func PinRegistry() {
	publish(func(_, next *state) { next.preg = true })
}

// UnpinRegistry lets rebuilds replace the global registry again.
func UnpinRegistry() {
	publish(func(_, next *state) { next.preg = false })
}

// IsDispatcherPinned returns whether the global dispatcher is pinned.
func IsDispatcherPinned() bool {
	return st.Load().pdsp
}

// PinDispatcher keeps the global dispatcher across rebuilds.
func PinDispatcher() {
	publish(func(_, next *state) { next.pdsp = true })
}

// UnpinDispatcher lets rebuilds replace the global dispatcher again.
func UnpinDispatcher() {
	publish(func(_, next *state) { next.pdsp = false })
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// publish copies the current snapshot, lets mutate adjust the copy,
// rebuilds the engine and stores the copy atomically.
func publish(mutate func(old, next *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	mutate(old, &next)

	// Ensure non-nil reg and dsp.
	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	if next.dsp == nil {
		panic(ErrNilDispatcher)
	}

	next.eng = next.engine()
	st.Store(&next)
}

// state is the global snapshot.
// Immutable once published via st.Store; never mutate fields of a
// published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the extension payload handed to the builder.
	ext any
	// reg is the global registry.
	reg apis.Registry
	// dsp is the global dispatcher.
	dsp apis.Dispatcher
	// bld is the global builder.
	bld apis.Builder
	// eng is the engine built over cfg and dsp.
	eng *snoop.Engine
	// exts holds extension providers; shared by every snapshot.
	exts *extension.Registry
	// stats holds static members; shared by every snapshot.
	stats *statics.Registry
	// log is the engine logger; nil means slog.Default().
	log *slog.Logger
	// preg indicates whether reg is pinned.
	preg bool
	// pdsp indicates whether dsp is pinned.
	pdsp bool
}

// rebuild replaces the layers of s that are not pinned.
func (s *state) rebuild(old *state) {
	if !s.preg {
		s.reg = s.bld.BuildRegistry(s.cfg, old.reg, s.ext)
	}
	if !s.pdsp {
		s.dsp = s.bld.BuildDispatcher(s.cfg, s.reg, old.dsp, s.ext)
	}
}

// engine builds the engine of s.
func (s *state) engine() *snoop.Engine {
	return snoop.New(s.cfg, s.dsp,
		snoop.WithLogger(s.log),
		snoop.WithExtensions(s.exts),
		snoop.WithStatics(s.stats),
	)
}
