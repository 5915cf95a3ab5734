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

package dispatch

import (
	"reflect"

	"dirpx.dev/lookup/apis"
	"dirpx.dev/lookup/descriptors"
)

// New constructs an apis.Dispatcher that tries the given strategies in
// order. Nil strategies are ignored. When no strategy handles a value the
// catch-all descriptors.Object is returned, so the dispatcher is total.
// The returned dispatcher is safe for concurrent use provided strategies
// themselves are safe for concurrent TryDescribe calls.
func New(strategies ...apis.Strategy) apis.Dispatcher {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// chain is an immutable, order-preserving dispatcher over a set of strategies.
type chain struct {
	strats []apis.Strategy
}

// Describe runs strategies in order until one handles the value.
func (c chain) Describe(v any, declared reflect.Type, cfg apis.Config) apis.Describer {
	for _, s := range c.strats {
		if d, ok := try(s, v, declared, cfg); ok && d != nil {
			return d
		}
	}
	if v == nil {
		return descriptors.NewNil(nil)
	}
	return descriptors.NewObject(v)
}

// try calls s and treats a panicking strategy (usually a user factory)
// as not handling the value.
func try(s apis.Strategy, v any, declared reflect.Type, cfg apis.Config) (d apis.Describer, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			d, ok = nil, false
		}
	}()
	return s.TryDescribe(v, declared, cfg)
}
