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

// Package extension lets code attach computed members to snooped values
// without touching the dispatch table. Producers run eagerly when they
// are registered; their result, or their failure, becomes a member.
package extension

import (
	"errors"
	"reflect"
	"sync"
	"time"

	"dirpx.dev/lookup/apis"
	"dirpx.dev/lookup/utils/safe"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("lookup(extension): nil reflect.Type provided")
	// ErrNilProvider is returned when a nil provider is provided.
	ErrNilProvider = errors.New("lookup(extension): nil provider provided")
)

// Entry is one computed member.
type Entry struct {
	// Name is the member name given at registration.
	Name string
	// Value is the produced value; nil when Err is set.
	Value any
	// Err is the producer's error or recovered panic.
	Err error
	// Elapsed is the time the producer took.
	Elapsed time.Duration
}

// Manager collects computed members for one value. It is not safe for
// concurrent use; the builder owns one manager per level.
type Manager struct {
	entries []Entry
}

// Ensure Manager implements apis.ExtensionManager.
var _ apis.ExtensionManager = (*Manager)(nil)

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register invokes fn immediately and records its outcome under name.
// A nil fn records nothing.
func (m *Manager) Register(name string, fn func() (any, error)) {
	if fn == nil {
		return
	}
	res := safe.Call(fn)
	m.entries = append(m.entries, Entry{Name: name, Value: res.Value, Err: res.Err, Elapsed: res.Elapsed})
}

// Entries returns the recorded members in registration order.
func (m *Manager) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of recorded members.
func (m *Manager) Len() int {
	return len(m.entries)
}

// Bind registers a typed producer/consumer pair: fn consumes v and
// produces the member value.
func Bind[T any](m apis.ExtensionManager, name string, v T, fn func(T) (any, error)) {
	if fn == nil {
		return
	}
	m.Register(name, func() (any, error) { return fn(v) })
}

// Provider attaches computed members for a value of a registered type.
// v is the value of the level the provider was registered for.
type Provider func(doc apis.Document, v any, m apis.ExtensionManager)

// Registry holds providers registered for types by code outside the
// describers. It is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex
	m  map[reflect.Type][]Provider
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{m: make(map[reflect.Type][]Provider)}
}

// Register appends p to the providers of t. Pointer types are
// normalized to their element type.
func (r *Registry) Register(t reflect.Type, p Provider) error {
	if t == nil {
		return ErrNilType
	}
	if p == nil {
		return ErrNilProvider
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[t] = append(r.m[t], p)
	return nil
}

// Providers returns the providers registered for exactly t.
func (r *Registry) Providers(t reflect.Type) []Provider {
	if r == nil || t == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ps := r.m[t]
	out := make([]Provider, len(ps))
	copy(out, ps)
	return out
}

// Reset drops every provider.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = make(map[reflect.Type][]Provider)
}
