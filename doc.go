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

// Package lookup is an object inspector for live Go object graphs.
//
// Given any value, lookup produces a lazily expandable tree of member
// descriptors: the fields, getters, methods and computed members of the
// value, grouped by embedding level, each member wrapping its own value
// for further drill-down. Failures of individual members (errors, panics)
// are shown as member values and never abort inspection.
//
// # Design
//
// The core of lookup is a read-mostly global snapshot (state). The
// snapshot holds:
//
//   - Config: the toggles that decide which members are shown (private
//     fields, statics, events, unsupported members, extensions) and the
//     safety limits of the engine.
//
//   - Registry: a process-wide mapping from Go types to describer
//     factories. Registering a factory for a type changes how values of
//     that type, and every type embedding it, are displayed.
//
//   - Dispatcher: the dispatch table. It answers "which describer shows
//     this value?" by trying, in priority order:
//     1. the value's own describer (apis.SelfDescriber);
//     2. the closest registered type in the Registry;
//     3. a built-in describer chosen from the value's kind.
//
//   - Builder: constructs Registry and Dispatcher for a Config.
//
//   - Engine: the reflection engine built over the Dispatcher.
//
// Readers load the snapshot atomically and never take locks. Writers
// build a new snapshot under a mutex and publish it with an atomic swap.
//
// # Usage
//
//	lookup.Register(reflect.TypeOf(Element{}), NewElementDescriptor)
//
//	obj := lookup.Snoop(wall, doc)
//	for _, m := range obj.GetMembers() {
//	    fmt.Println(m.Type, m.Name, m.Value.Descriptor().Name)
//	}
//
// The document is passed explicitly to every call; lookup keeps no
// notion of a current document.
//
// # Pinning
//
// SetRegistry and SetDispatcher pin the given layer: later SetConfig or
// SetBuilder calls keep it until UnpinRegistry/UnpinDispatcher.
package lookup
