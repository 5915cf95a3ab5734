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
	"fmt"
	"reflect"
	"strconv"
	"time"

	"dirpx.dev/lookup/apis"
	uref "dirpx.dev/lookup/utils/reflect"
)

// String describes string values.
type String struct {
	Value string
}

// NewString returns a String describer for a value of string kind, or a
// pointer to one.
func NewString(v any) apis.Describer {
	rv, ok := uref.Indirect(reflect.ValueOf(v), 0)
	if !ok || rv.Kind() != reflect.String {
		return String{}
	}
	return String{Value: rv.String()}
}

// Name implements apis.Describer.
func (d String) Name() string {
	if d.Value == "" {
		return "<empty>"
	}
	return d.Value
}

// Description implements apis.Describer.
func (d String) Description() string { return "" }

// Bool describes boolean values.
type Bool struct {
	Value bool
}

// NewBool returns a Bool describer for a value of bool kind, or a
// pointer to one.
func NewBool(v any) apis.Describer {
	rv, ok := uref.Indirect(reflect.ValueOf(v), 0)
	if !ok || rv.Kind() != reflect.Bool {
		return Bool{}
	}
	return Bool{Value: rv.Bool()}
}

// Name implements apis.Describer.
func (d Bool) Name() string { return strconv.FormatBool(d.Value) }

// Description implements apis.Describer.
func (Bool) Description() string { return "" }

// Number describes integer, float and complex values. Named numeric types
// implementing fmt.Stringer (enums) show their String() with the raw
// number as description.
type Number struct {
	Value any
}

// NewNumber returns a Number describer.
func NewNumber(v any) apis.Describer {
	return Number{Value: v}
}

// Name implements apis.Describer.
func (d Number) Name() string {
	if s, ok := d.Value.(fmt.Stringer); ok {
		if text, ok := safeString(s.String); ok {
			return text
		}
	}
	return d.raw()
}

// Description implements apis.Describer.
func (d Number) Description() string {
	if _, ok := d.Value.(fmt.Stringer); ok {
		return d.raw()
	}
	return ""
}

func (d Number) raw() string {
	rv, _ := uref.Indirect(reflect.ValueOf(d.Value), 0)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	case reflect.Complex64, reflect.Complex128:
		return fmt.Sprint(rv.Complex())
	}
	return fmt.Sprint(d.Value)
}

// Time describes time.Time and time.Duration values.
type Time struct {
	Value any
}

// NewTime returns a Time describer.
func NewTime(v any) apis.Describer {
	return Time{Value: v}
}

// Name implements apis.Describer.
func (d Time) Name() string {
	switch tv := d.Value.(type) {
	case time.Time:
		return tv.Format(time.RFC3339Nano)
	case *time.Time:
		if tv != nil {
			return tv.Format(time.RFC3339Nano)
		}
	case time.Duration:
		return tv.String()
	}
	return nilName
}

// Description implements apis.Describer.
func (Time) Description() string { return "" }

// Type describes reflect.Type values.
type Type struct {
	Value reflect.Type
}

// NewType returns a Type describer; v must be a reflect.Type.
func NewType(v any) apis.Describer {
	t, _ := v.(reflect.Type)
	return Type{Value: t}
}

// Name implements apis.Describer.
func (d Type) Name() string {
	if d.Value == nil {
		return nilName
	}
	return uref.TypeName(d.Value)
}

// Description implements apis.Describer.
func (d Type) Description() string {
	return uref.TypeFullName(d.Value)
}
