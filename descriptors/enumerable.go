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

package descriptors

import (
	"reflect"
	"strconv"

	"dirpx.dev/lookup/apis"
	uref "dirpx.dev/lookup/utils/reflect"
)

// Enumerable describes slices, arrays, maps, iterators and host
// enumerators. Children are produced by the builder, not by the describer.
type Enumerable struct {
	Value any
}

// NewEnumerable returns an Enumerable describer.
func NewEnumerable(v any) apis.Describer {
	return Enumerable{Value: v}
}

// Name implements apis.Describer.
func (d Enumerable) Name() string {
	if d.Value == nil {
		return nilName
	}
	return uref.TypeName(reflect.TypeOf(d.Value))
}

// Description implements apis.Describer. It reports the element count
// when it is known without iterating.
func (d Enumerable) Description() string {
	if set, ok := d.Value.(*ResolveSet); ok {
		return countText(set.Len())
	}
	rv := reflect.ValueOf(d.Value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		if rv.IsNil() {
			return countText(0)
		}
		return countText(rv.Len())
	case reflect.Array:
		return countText(rv.Len())
	}
	return ""
}

func countText(n int) string {
	if n == 1 {
		return "1 item"
	}
	return strconv.Itoa(n) + " items"
}

// Func describes func and chan values. They are shown by type only and
// never invoked or received from.
type Func struct {
	Value any
}

// NewFunc returns a Func describer.
func NewFunc(v any) apis.Describer {
	return Func{Value: v}
}

// Name implements apis.Describer.
func (d Func) Name() string {
	if d.Value == nil {
		return nilName
	}
	return uref.TypeName(reflect.TypeOf(d.Value))
}

// Description implements apis.Describer.
func (d Func) Description() string {
	if uref.IsNil(d.Value) {
		return "unset"
	}
	return ""
}
