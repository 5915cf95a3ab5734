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

package strategy

import (
	"reflect"

	"dirpx.dev/lookup/apis"
	uref "dirpx.dev/lookup/utils/reflect"
)

// NewRegistryStrategy creates an apis.Strategy that uses an apis.Registry.
func NewRegistryStrategy(reg apis.Registry) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy consults a provided apis.Registry.
type registryStrategy struct {
	reg apis.Registry
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// TryDescribe looks up a factory for v.
//
// With a declared type only that exact type is looked up. Without one,
// the closest registered type wins: v's own type first, then the types it
// embeds breadth-first (the factory then receives the embedded value),
// then registered interfaces in registration order.
func (s *registryStrategy) TryDescribe(v any, declared reflect.Type, cfg apis.Config) (apis.Describer, bool) {
	if s.reg == nil {
		return nil, false
	}
	if declared != nil {
		f, ok := s.reg.Lookup(declared)
		if !ok {
			return nil, false
		}
		return f(v), true
	}
	if v == nil {
		return nil, false
	}

	for _, c := range embedded(reflect.ValueOf(v), cfg.MaxUnwrap) {
		if f, ok := s.reg.Lookup(c.Type()); ok {
			return f(uref.Interface(c)), true
		}
	}

	rt := reflect.TypeOf(v)
	for _, e := range s.reg.Entries() {
		if e.Type.Kind() == reflect.Interface && rt.Implements(e.Type) {
			return e.Factory(v), true
		}
	}
	return nil, false
}

// embedded returns v followed by the values it embeds, breadth-first.
// Struct values are returned as pointers when addressable so factories
// can rely on pointer receivers.
func embedded(v reflect.Value, maxUnwrap int) []reflect.Value {
	out := []reflect.Value{v}
	seen := map[reflect.Type]bool{v.Type(): true}

	root, ok := uref.Indirect(v, maxUnwrap)
	if !ok || root.Kind() != reflect.Struct {
		return out
	}
	queue := []reflect.Value{uref.Addressable(root)}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		t := cur.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).Anonymous {
				continue
			}
			fv, ok := uref.Expose(cur.Field(i))
			if !ok {
				continue
			}
			inner, ok := uref.Indirect(fv, maxUnwrap)
			if !ok || seen[inner.Type()] {
				continue
			}
			seen[inner.Type()] = true
			if inner.Kind() == reflect.Struct && inner.CanAddr() {
				out = append(out, inner.Addr())
				queue = append(queue, inner)
			} else {
				out = append(out, inner)
			}
		}
	}
	return out
}
