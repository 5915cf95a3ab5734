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
	"errors"
	"reflect"

	"dirpx.dev/lookup/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTooDeep indicates that a pointer chain is longer than the
	// configured unwrap limit.
	ErrReflectTooDeep = errors.New("reflect: pointer chain exceeds unwrap limit")
)

// Normalize strips pointer layers from t and returns the pointed-to type.
// Containers (slices, maps, channels) are kept as they are: they carry
// their own describers.
//
// If maxUnwrap <= 0, config.DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, maxUnwrap int) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}
	for i := 0; t.Kind() == reflect.Pointer; i++ {
		if i >= maxUnwrap {
			return nil, ErrReflectTooDeep
		}
		t = t.Elem()
	}
	return t, nil
}

// Indirect follows pointers and interfaces in v until it reaches a
// concrete non-pointer value, a nil, or the unwrap limit. ok is false
// when a nil pointer or nil interface was met.
func Indirect(v reflect.Value, maxUnwrap int) (out reflect.Value, ok bool) {
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}
	for i := 0; v.IsValid() && i <= maxUnwrap; i++ {
		switch v.Kind() {
		case reflect.Pointer, reflect.Interface:
			if v.IsNil() {
				return v, false
			}
			v = v.Elem()
		default:
			return v, true
		}
	}
	return v, v.IsValid()
}

// IsNil reports whether v is nil or a nil value of a nillable kind.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
