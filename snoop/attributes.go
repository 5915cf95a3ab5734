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

import "strings"

// MemberAttributes classifies a member for display and filtering.
type MemberAttributes uint16

const (
	// Property marks getter methods and setter-only members.
	Property MemberAttributes = 1 << iota
	// Method marks other methods.
	Method
	// Field marks struct fields.
	Field
	// Event marks func- and chan-typed fields.
	Event
	// Extension marks computed members attached by extensions.
	Extension
	// Static marks members registered in the statics registry.
	Static
	// Private marks unexported members.
	Private
)

var attributeNames = []struct {
	a    MemberAttributes
	name string
}{
	{Property, "Property"},
	{Method, "Method"},
	{Field, "Field"},
	{Event, "Event"},
	{Extension, "Extension"},
	{Static, "Static"},
	{Private, "Private"},
}

// Has reports whether every bit of flag is set in a.
func (a MemberAttributes) Has(flag MemberAttributes) bool {
	return a&flag == flag
}

// String renders the set bits joined by "|", e.g. "Field|Private".
func (a MemberAttributes) String() string {
	if a == 0 {
		return "None"
	}
	var parts []string
	for _, n := range attributeNames {
		if a.Has(n.a) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
