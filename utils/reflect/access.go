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
	"unsafe"
)

// Addressable returns an addressable copy of v, or v itself if it already
// is addressable. Pointer-receiver methods become callable on the result.
func Addressable(v reflect.Value) reflect.Value {
	if !v.IsValid() || v.CanAddr() {
		return v
	}
	cp := reflect.New(v.Type()).Elem()
	cp.Set(v)
	return cp
}

// Expose lifts the read-only flag reflect puts on values reached through
// unexported fields, so they can be converted back to interfaces and have
// their methods called. ok is false when v is neither interfaceable nor
// addressable.
func Expose(v reflect.Value) (reflect.Value, bool) {
	if !v.IsValid() {
		return v, false
	}
	if v.CanInterface() {
		return v, true
	}
	if v.CanAddr() {
		return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem(), true
	}
	return v, false
}

// Interface returns v as an interface value, exposing it first if needed.
// A nil interface is returned when v is invalid or cannot be exposed.
func Interface(v reflect.Value) any {
	ev, ok := Expose(v)
	if !ok {
		return nil
	}
	return ev.Interface()
}
