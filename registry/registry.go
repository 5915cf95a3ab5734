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

package registry

import (
	"errors"
	"reflect"
	"sort"
	"sync"
	"unsafe"

	"dirpx.dev/lookup/apis"
	"dirpx.dev/lookup/config"
	uref "dirpx.dev/lookup/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("lookup(registry): nil reflect.Type provided")
	// ErrNilFactory is returned when a nil factory is provided.
	ErrNilFactory = errors.New("lookup(registry): nil factory provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with a different factory.
	ErrConflictingRegistration = errors.New("lookup(registry): conflicting type registration")
)

// New constructs a Registry that normalizes types according to cfg.
// Only MaxUnwrap is used here.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency, seq and count.
	mu sync.Mutex
	// m maps reflect.Type to *entry.
	m sync.Map
	// seq numbers registrations so snapshots keep registration order.
	seq uint64
	// count tracks the number of registered entries.
	count int
}

// entry is a stored registration.
type entry struct {
	seq     uint64
	factory apis.Factory
}

// Register associates the pointer-normalized type of t with f.
// It is idempotent for the same (type, factory value) pair. Factory values
// are compared by identity: a top-level function always equals itself,
// while two closures over different captured values, or two evaluations
// of a method value, are different factories and conflict.
func (r *registry) Register(t reflect.Type, f apis.Factory) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	if f == nil {
		return ErrNilFactory
	}

	b, err := uref.Normalize(t, r.cfg.MaxUnwrap)
	if err != nil {
		return err
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(b); ok {
		return conflict(old.(*entry).factory, f)
	}

	// Write path: guard with a mutex to keep counter consistent.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(b); ok {
		return conflict(old.(*entry).factory, f)
	}

	r.seq++
	r.m.Store(b, &entry{seq: r.seq, factory: f})
	r.count++
	return nil
}

// conflict reports whether registering f over old is a conflict.
func conflict(old, f apis.Factory) error {
	if identity(old) == identity(f) {
		return nil // idempotent re-registration
	}
	return ErrConflictingRegistration
}

// identity returns the closure record behind f. Equal code pointers are
// not enough: closures of one literal share code but not captures.
func identity(f apis.Factory) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&f))
}

// Lookup returns the factory registered for t, if any.
func (r *registry) Lookup(t reflect.Type) (apis.Factory, bool) {
	if t == nil {
		return nil, false
	}
	nt, err := uref.Normalize(t, r.cfg.MaxUnwrap)
	if err != nil {
		return nil, false
	}
	if v, ok := r.m.Load(nt); ok {
		return v.(*entry).factory, true
	}
	return nil, false
}

// Entries returns a snapshot in registration order.
func (r *registry) Entries() []apis.Entry {
	type ordered struct {
		seq uint64
		e   apis.Entry
	}
	var tmp []ordered
	r.m.Range(func(key, value any) bool {
		en := value.(*entry)
		tmp = append(tmp, ordered{seq: en.seq, e: apis.Entry{Type: key.(reflect.Type), Factory: en.factory}})
		return true
	})
	sort.Slice(tmp, func(i, j int) bool { return tmp[i].seq < tmp[j].seq })

	entries := make([]apis.Entry, len(tmp))
	for i := range tmp {
		entries[i] = tmp[i].e
	}
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Range(func(key, _ any) bool {
		r.m.Delete(key)
		return true
	})
	r.count = 0
}
