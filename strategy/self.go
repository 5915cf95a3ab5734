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

// NewSelfStrategy creates an apis.Strategy that asks values implementing
// apis.SelfDescriber for their own describer.
func NewSelfStrategy() apis.Strategy {
	return &selfStrategy{}
}

// selfStrategy is the zero-registration fast path: if v implements
// apis.SelfDescriber, use its LookupDescriber() and stop the chain.
type selfStrategy struct{}

// Ensure selfStrategy implements apis.Strategy.
var _ apis.Strategy = (*selfStrategy)(nil)

// TryDescribe checks if v implements apis.SelfDescriber. With a declared
// level type the value must be of exactly that type (pointer-normalized)
// and must not inherit LookupDescriber from an embedded field, so a
// describer is only used at the level declaring it.
func (*selfStrategy) TryDescribe(v any, declared reflect.Type, cfg apis.Config) (apis.Describer, bool) {
	if v == nil {
		return nil, false
	}
	sd, ok := v.(apis.SelfDescriber)
	if !ok {
		return nil, false
	}
	if declared != nil {
		vt, err := uref.Normalize(reflect.TypeOf(v), cfg.MaxUnwrap)
		if err != nil {
			return nil, false
		}
		dt, err := uref.Normalize(declared, cfg.MaxUnwrap)
		if err != nil || vt != dt || promoted(dt) {
			return nil, false
		}
	}
	d := sd.LookupDescriber()
	return d, d != nil
}

var selfDescriberType = reflect.TypeOf((*apis.SelfDescriber)(nil)).Elem()

// promoted reports whether struct type t gets LookupDescriber from one of
// its embedded fields.
func promoted(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		if f.Type.Implements(selfDescriberType) {
			return true
		}
		if f.Type.Kind() != reflect.Pointer && f.Type.Kind() != reflect.Interface &&
			reflect.PointerTo(f.Type).Implements(selfDescriberType) {
			return true
		}
	}
	return false
}
