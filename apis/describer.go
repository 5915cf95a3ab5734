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

package apis

import "reflect"

// Describer is the display strategy the dispatch table picks for a value.
// Implementations are created per value by a Factory and may optionally
// implement MemberResolver, Redirector and ExtensionProvider.
type Describer interface {
	// Name returns the display text for the described value.
	Name() string
	// Description returns optional secondary text; may be empty.
	Description() string
}

// SelfDescriber is implemented by values that choose their own describer.
// It is the first strategy consulted by the dispatch table.
type SelfDescriber interface {
	LookupDescriber() Describer
}

// Factory builds a Describer for a value of a registered type.
// v may be a typed nil pointer; factories must tolerate it.
type Factory func(v any) Describer

// Strategy is a pluggable dispatch step. A Dispatcher chains strategies
// in priority order (e.g., self -> registry -> kind).
type Strategy interface {
	// TryDescribe attempts to pick a describer for v. When declared is
	// non-nil matching is exact against declared; otherwise the closest
	// known type of v wins. It returns (nil, false) to fall through.
	TryDescribe(v any, declared reflect.Type, cfg Config) (Describer, bool)
}

// Dispatcher maps a value (and an optional declared level type) to a
// Describer. Implementations must be total: a non-nil Describer is
// returned for every input, including nil.
type Dispatcher interface {
	Describe(v any, declared reflect.Type, cfg Config) Describer
}
