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

// MemberResolver is implemented by describers that know how to evaluate
// members the builder cannot invoke generically, such as indexers and
// methods with parameters.
type MemberResolver interface {
	// ResolveMember returns a substitute value for the member named name
	// whose parameters have the given types. ok=false leaves the member
	// unresolved. A *descriptors.ResolveSet may be returned to expose
	// several variants.
	ResolveMember(doc Document, name string, params []reflect.Type) (v any, ok bool)
}

// Redirector is implemented by describers whose value should be shown as
// a different value (for example, an identifier shown as the entity it
// identifies). target is the member name the value was read from, or ""
// for top-level values.
type Redirector interface {
	Redirect(doc Document, target string) (v any, ok bool)
}
