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

package snoop

import (
	"time"

	"dirpx.dev/lookup/apis"
)

// Descriptor describes one reflected member, or one whole object when it
// is the descriptor an Object carries for itself.
type Descriptor struct {
	// Name is the member name, or the display text of the value for
	// object descriptors.
	Name string
	// Description is optional secondary text.
	Description string
	// Type is the short, generic-aware name of the declaring level type
	// (or of the value's type for object descriptors).
	Type string
	// TypeFullName is the package-qualified form of Type.
	TypeFullName string
	// Depth is the position of the declaring level, base first.
	Depth int
	// Attributes classifies the member.
	Attributes MemberAttributes
	// Value wraps the member value. It is never nil.
	Value *Object
	// Elapsed is the time spent evaluating the member.
	Elapsed time.Duration
	// Describer is the display strategy chosen by the dispatch table.
	// Set for object descriptors only.
	Describer apis.Describer
}
