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

package snoop

import (
	"context"
	"log/slog"
	"reflect"

	"golang.org/x/sync/semaphore"

	"dirpx.dev/lookup/apis"
	"dirpx.dev/lookup/config"
	"dirpx.dev/lookup/extension"
	"dirpx.dev/lookup/statics"
	uref "dirpx.dev/lookup/utils/reflect"
)

// Engine builds descriptor lists. It is safe for concurrent use: a build
// only reads the engine, and every build works on fresh state.
type Engine struct {
	cfg    apis.Config
	dsp    apis.Dispatcher
	levels *uref.Hierarchy
	exts   *extension.Registry
	stats  *statics.Registry
	log    *slog.Logger
	sem    *semaphore.Weighted
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithExtensions sets the registry of externally registered extensions.
func WithExtensions(r *extension.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.exts = r
		}
	}
}

// WithStatics sets the registry of static members.
func WithStatics(r *statics.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.stats = r
		}
	}
}

// New constructs an Engine resolving describers through dsp.
// A nil dsp panics: the dispatcher is the one collaborator the engine
// cannot work without.
func New(cfg apis.Config, dsp apis.Dispatcher, opts ...Option) *Engine {
	if dsp == nil {
		panic("lookup(snoop): nil dispatcher")
	}
	cfg = config.Sanitize(cfg)
	e := &Engine{
		cfg:    cfg,
		dsp:    dsp,
		levels: uref.NewHierarchy(cfg.HierarchyCacheSize),
		exts:   extension.NewRegistry(),
		stats:  statics.NewRegistry(),
		log:    slog.Default(),
		sem:    semaphore.NewWeighted(int64(cfg.Workers)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() apis.Config { return e.cfg }

// Dispatcher returns the engine dispatcher.
func (e *Engine) Dispatcher() apis.Dispatcher { return e.dsp }

// Extensions returns the registry of external extensions.
func (e *Engine) Extensions() *extension.Registry { return e.exts }

// Statics returns the registry of static members.
func (e *Engine) Statics() *statics.Registry { return e.stats }

// Snoop wraps v in an Object bound to doc.
func (e *Engine) Snoop(v any, doc apis.Document) *Object {
	return e.newObject(v, doc, "")
}

// SnoopStatic wraps t in an Object whose members are the static members of t.
func (e *Engine) SnoopStatic(t reflect.Type) *Object {
	if t == nil {
		return e.newObject(nil, nil, "")
	}
	return e.newObject(t, nil, "")
}

// Build reflects v into an ordered descriptor list.
//
// Members are grouped per embedding level, base levels first. Within a
// level, properties come first, then methods, fields, events, static
// members and extensions. Elements of enumerable values follow the last
// level. A nil v yields an empty list; a reflect.Type yields its static
// members. Member failures become member values, so Build does not fail.
func (e *Engine) Build(v any, doc apis.Document) []*Descriptor {
	out := []*Descriptor{}
	if v == nil {
		return out
	}
	if t, ok := v.(reflect.Type); ok {
		return e.buildStatic(t, doc)
	}

	root, ok := uref.Indirect(reflect.ValueOf(v), e.cfg.MaxUnwrap)
	if !ok {
		return out
	}
	root = uref.Addressable(root)

	levels := e.levels.Levels(root.Type())
	for _, lvl := range levels {
		lv, ok := levelValue(root, lvl, e.cfg.MaxUnwrap)
		if !ok {
			continue
		}
		out = e.buildLevel(out, lv, lvl, doc)
	}

	depth := len(levels)
	owner := uref.TypeName(root.Type())
	ownerFull := uref.TypeFullName(root.Type())
	for _, it := range e.items(v) {
		out = append(out, &Descriptor{
			Name:         it.label,
			Type:         owner,
			TypeFullName: ownerFull,
			Depth:        depth,
			Value:        e.newObject(it.value, doc, ""),
		})
	}
	return out
}

// BuildStatic returns the static members registered for t, as a single
// level with depth 0.
func (e *Engine) BuildStatic(t reflect.Type) []*Descriptor {
	return e.buildStatic(t, nil)
}

func (e *Engine) buildStatic(t reflect.Type, doc apis.Document) []*Descriptor {
	out := []*Descriptor{}
	nt, err := uref.Normalize(t, e.cfg.MaxUnwrap)
	if err != nil {
		return out
	}
	for _, m := range e.stats.Members(nt) {
		out = append(out, e.staticMember(m, nt, 0, doc))
	}
	return out
}

// BuildAsync runs Build on a worker and waits for it. ctx bounds the wait
// for a worker slot and for the result; a build that already started runs
// to completion regardless.
func (e *Engine) BuildAsync(ctx context.Context, v any, doc apis.Document) ([]*Descriptor, error) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	done := make(chan []*Descriptor, 1)
	go func() {
		defer e.sem.Release(1)
		done <- e.Build(v, doc)
	}()
	select {
	case members := <-done:
		return members, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// levelValue returns the addressable value of lvl inside root. ok is
// false when a nil embedded pointer or interface hides the level.
func levelValue(root reflect.Value, lvl uref.Level, maxUnwrap int) (reflect.Value, bool) {
	if lvl.Index == nil {
		return root, true
	}
	fv, err := root.FieldByIndexErr(lvl.Index)
	if err != nil {
		return reflect.Value{}, false
	}
	fv, ok := uref.Expose(fv)
	if !ok {
		return reflect.Value{}, false
	}
	fv, ok = uref.Indirect(fv, maxUnwrap)
	if !ok {
		return reflect.Value{}, false
	}
	return uref.Addressable(fv), true
}

// levelInterface returns the value handed to describers and extension
// providers for a level: a pointer for addressable structs.
func levelInterface(lv reflect.Value) any {
	if lv.Kind() == reflect.Struct && lv.CanAddr() {
		return lv.Addr().Interface()
	}
	return uref.Interface(lv)
}
