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

package reflect

import (
	"reflect"
	"runtime"

	lru "github.com/hashicorp/golang-lru/v2"

	"dirpx.dev/lookup/config"
)

// Level is one layer of a type's embedding chain: the outermost type or
// one of the types it embeds, directly or transitively.
type Level struct {
	// Type is the pointer-normalized type of this level.
	Type reflect.Type
	// Index is the field index path from the outermost struct to the
	// embedded field holding this level. It is nil for the outermost level.
	Index []int
	// Depth is the position of the level in base-first order.
	Depth int
	// Fields lists the indices of fields declared at this level,
	// excluding embedded fields.
	Fields []int
	// Methods lists the exported methods declared at this level, in
	// reflect order. Methods promoted from embedded fields are excluded
	// unless this level overrides them.
	Methods []string
}

// Hierarchy computes and caches level chains per type.
// It is safe for concurrent use.
type Hierarchy struct {
	cache *lru.Cache[reflect.Type, []Level]
}

// NewHierarchy returns a Hierarchy caching up to size level chains.
// If size <= 0, config.DefaultHierarchyCacheSize is used.
func NewHierarchy(size int) *Hierarchy {
	if size <= 0 {
		size = config.DefaultHierarchyCacheSize
	}
	cache, err := lru.New[reflect.Type, []Level](size)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &Hierarchy{cache: cache}
}

// Levels returns the level chain of t in base-first order: embedded types
// come before the type embedding them, and the outermost type is last.
// t is expected to be pointer-normalized. The returned slice is shared
// and must not be modified.
func (h *Hierarchy) Levels(t reflect.Type) []Level {
	if t == nil {
		return nil
	}
	if lv, ok := h.cache.Get(t); ok {
		return lv
	}
	var out []Level
	collect(t, nil, map[reflect.Type]bool{}, &out)
	for i := range out {
		out[i].Depth = i
	}
	h.cache.Add(t, out)
	return out
}

// Len returns the number of cached chains.
func (h *Hierarchy) Len() int {
	return h.cache.Len()
}

// collect appends the levels of t in post-order. path guards against
// self-embedding through pointers.
func collect(t reflect.Type, index []int, path map[reflect.Type]bool, out *[]Level) {
	if path[t] {
		return
	}
	path[t] = true
	defer delete(path, t)

	lvl := Level{Type: t, Index: index}
	promoted := map[string]struct{}{}
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.Anonymous {
				lvl.Fields = append(lvl.Fields, i)
				continue
			}
			ft, err := Normalize(f.Type, 0)
			if err != nil {
				continue
			}
			for _, name := range MethodNames(ft) {
				promoted[name] = struct{}{}
			}
			child := make([]int, len(index)+1)
			copy(child, index)
			child[len(index)] = i
			collect(ft, child, path, out)
		}
	}
	for _, name := range MethodNames(t) {
		if _, ok := promoted[name]; !ok || Declares(t, name) {
			lvl.Methods = append(lvl.Methods, name)
		}
	}
	*out = append(*out, lvl)
}

// Declares reports whether t itself declares the method name, as opposed
// to only promoting it from an embedded field. Promotion wrappers are
// compiler-generated and carry no source position.
func Declares(t reflect.Type, name string) bool {
	if t.Kind() == reflect.Interface {
		return true
	}
	for _, mt := range []reflect.Type{t, reflect.PointerTo(t)} {
		m, ok := mt.MethodByName(name)
		if !ok {
			continue
		}
		fn := runtime.FuncForPC(m.Func.Pointer())
		if fn == nil {
			continue
		}
		if file, _ := fn.FileLine(fn.Entry()); file != "<autogenerated>" {
			return true
		}
	}
	return false
}

// MethodNames returns the exported method names callable on an
// addressable value of t (or on t itself for interfaces), in reflect order.
func MethodNames(t reflect.Type) []string {
	ms := t
	if t.Kind() != reflect.Interface {
		ms = reflect.PointerTo(t)
	}
	names := make([]string, 0, ms.NumMethod())
	for i := 0; i < ms.NumMethod(); i++ {
		names = append(names, ms.Method(i).Name)
	}
	return names
}
