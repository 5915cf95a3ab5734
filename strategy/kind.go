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
	"time"

	"dirpx.dev/lookup/apis"
	"dirpx.dev/lookup/descriptors"
	uref "dirpx.dev/lookup/utils/reflect"
)

// NewKindStrategy creates an apis.Strategy that picks a built-in
// describer from the kind of the value (or of the declared type).
func NewKindStrategy() apis.Strategy {
	return kindStrategy{}
}

// kindStrategy is the universal fallback over reflect kinds.
type kindStrategy struct{}

// Ensure kindStrategy implements apis.Strategy.
var _ apis.Strategy = (*kindStrategy)(nil)

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
)

// TryDescribe always handles the value.
//
// Without a declared type, interfaces the value satisfies are honored
// first (errors, enumerators, reflect.Type). With a declared type, only
// the declared type's own identity and kind count.
func (kindStrategy) TryDescribe(v any, declared reflect.Type, cfg apis.Config) (apis.Describer, bool) {
	if declared != nil {
		t, err := uref.Normalize(declared, cfg.MaxUnwrap)
		if err != nil {
			return descriptors.NewObject(v), true
		}
		return byType(t, v), true
	}

	if v == nil {
		return descriptors.NewNil(nil), true
	}
	switch v.(type) {
	case reflect.Type:
		return descriptors.NewType(v), true
	case *descriptors.ResolveSet, apis.Enumerator:
		return descriptors.NewEnumerable(v), true
	case error:
		return descriptors.NewError(v), true
	}

	rt := reflect.TypeOf(v)
	if rt.Kind() == reflect.Pointer && reflect.ValueOf(v).IsNil() {
		return descriptors.NewNil(nil), true
	}
	t, err := uref.Normalize(rt, cfg.MaxUnwrap)
	if err != nil {
		return descriptors.NewObject(v), true
	}
	return byType(t, v), true
}

// byType maps a pointer-normalized type to a built-in describer.
func byType(t reflect.Type, v any) apis.Describer {
	switch t {
	case timeType, durationType:
		return descriptors.NewTime(v)
	}
	switch t.Kind() {
	case reflect.Bool:
		return descriptors.NewBool(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return descriptors.NewNumber(v)
	case reflect.String:
		return descriptors.NewString(v)
	case reflect.Slice, reflect.Array, reflect.Map:
		return descriptors.NewEnumerable(v)
	case reflect.Func:
		if uref.SeqArity(t) > 0 {
			return descriptors.NewEnumerable(v)
		}
		return descriptors.NewFunc(v)
	case reflect.Chan:
		return descriptors.NewFunc(v)
	}
	return descriptors.NewObject(v)
}
