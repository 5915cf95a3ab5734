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

// Package snoop is the reflection engine: it turns any Go value into an
// ordered list of member descriptors that a presentation layer can show
// and expand lazily.
//
// # Levels
//
// Go has no class inheritance; embedding plays that role. The engine walks
// the embedding chain of a value's type and emits one group of members
// per level, base levels first and the outermost type last:
//
//	type Element struct{ ID int }
//	type Wall struct {
//	    Element
//	    Width float64
//	}
//
// yields the members of Element (depth 0) before those of Wall (depth 1).
// Each level is dispatched on its own, so a describer registered for
// Element applies to the Element group of every Wall.
//
// # Members
//
//   - Property: a method returning T or (T, error), invoked; a SetX method
//     without X is shown as a property with an unsupported value.
//   - Method: methods with parameters, offered to the level describer's
//     apis.MemberResolver; zero-argument methods returning several values.
//   - Field and Event: struct fields; func and chan fields are events and
//     are only recorded by type.
//   - Static: members registered in the statics registry.
//   - Extension: computed members from apis.ExtensionProvider describers
//     and from the extension registry.
//
// A member that fails (error result, panic) keeps its place in the list
// and carries the failure as its value.
//
// # Objects
//
// Every value, member values included, is wrapped in an Object that
// carries the document it belongs to and its own descriptor. Objects are
// redirected when their describer implements apis.Redirector, and build
// their members only when asked (GetMembers, GetMembersAsync,
// GetCachedMembersAsync).
package snoop
