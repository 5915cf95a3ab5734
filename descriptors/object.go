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

	"dirpx.dev/lookup/apis"
	uref "dirpx.dev/lookup/utils/reflect"
)

// Object is the catch-all describer. Its name is the value's String()
// when the value is a fmt.Stringer, otherwise its type name.
type Object struct {
	Value any
}

// NewObject returns an Object describer for v.
func NewObject(v any) apis.Describer {
	return Object{Value: v}
}

// Name implements apis.Describer.
func (d Object) Name() string {
	if d.Value == nil {
		return nilName
	}
	if s, ok := d.Value.(fmt.Stringer); ok {
		if text, ok := safeString(s.String); ok {
			return text
		}
	}
	return uref.TypeName(reflect.TypeOf(d.Value))
}

// Description implements apis.Describer.
func (d Object) Description() string {
	return ""
}

// nilName is shown for nil values.
const nilName = "<null>"

// Nil describes nil values.
type Nil struct{}

// NewNil returns the describer for nil values.
func NewNil(any) apis.Describer {
	return Nil{}
}

// Name implements apis.Describer.
func (Nil) Name() string { return nilName }

// Description implements apis.Describer.
func (Nil) Description() string { return "" }

// safeString calls fn and reports false if it panics. Stringers with
// nil pointer receivers are common in host models.
func safeString(fn func() string) (s string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s, ok = "", false
		}
	}()
	return fn(), true
}
