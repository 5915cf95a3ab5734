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

// Registry maps types to describer factories without reflection on the
// hot path. Keep it minimal so implementations can be sync.Map-backed.
type Registry interface {
	// Register associates a (pointer-normalized) reflect.Type with a factory.
	// Implementations should be idempotent; conflicting re-registrations fail.
	Register(t reflect.Type, f Factory) error
	// Lookup returns the factory registered for exactly t (after pointer normalization).
	Lookup(t reflect.Type) (f Factory, ok bool)
	// Entries returns a snapshot in registration order.
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single (type, factory) association in a Registry snapshot.
type Entry struct {
	// Type is the registered reflect.Type.
	Type reflect.Type
	// Factory builds describers for values of Type.
	Factory Factory
}
