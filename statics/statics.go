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

// Package statics records package-level members (constants, variables,
// constructors) under the type they belong to. Go keeps no runtime
// metadata for package-level declarations, so hosts register the ones
// worth browsing.
package statics

import (
	"errors"
	"reflect"
	"sync"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("lookup(statics): nil reflect.Type provided")
	// ErrEmptyName is returned when an empty member name is provided.
	ErrEmptyName = errors.New("lookup(statics): empty name provided")
	// ErrDuplicateMember indicates a member name already registered for the type.
	ErrDuplicateMember = errors.New("lookup(statics): duplicate static member")
)

// Member is one static member of a type.
type Member struct {
	// Name is the member name.
	Name string
	// Value is either the member value or, for producers, a func() T or
	// func() (T, error) invoked when the member is built.
	Value any
}

// IsProducer reports whether the member value is a zero-argument function
// whose result should be shown instead of the function itself.
func (m Member) IsProducer() bool {
	t := reflect.TypeOf(m.Value)
	if t == nil || t.Kind() != reflect.Func || t.NumIn() != 0 || reflect.ValueOf(m.Value).IsNil() {
		return false
	}
	switch t.NumOut() {
	case 1:
		return true
	case 2:
		return t.Out(1) == errorType
	}
	return false
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Registry maps types to their static members. It is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex
	m  map[reflect.Type][]Member
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{m: make(map[reflect.Type][]Member)}
}

// Register adds a static member to t. Pointer types are normalized to
// their element type. Members keep registration order.
func (r *Registry) Register(t reflect.Type, name string, value any) error {
	if t == nil {
		return ErrNilType
	}
	if name == "" {
		return ErrEmptyName
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.m[t] {
		if m.Name == name {
			return ErrDuplicateMember
		}
	}
	r.m[t] = append(r.m[t], Member{Name: name, Value: value})
	return nil
}

// Members returns the static members of exactly t.
func (r *Registry) Members(t reflect.Type) []Member {
	if r == nil || t == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ms := r.m[t]
	out := make([]Member, len(ms))
	copy(out, ms)
	return out
}

// Has reports whether t has static members.
func (r *Registry) Has(t reflect.Type) bool {
	if r == nil || t == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m[t]) > 0
}

// Count returns the number of types with static members.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}

// Reset drops every member.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = make(map[reflect.Type][]Member)
}
