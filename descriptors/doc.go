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

// Package descriptors holds the built-in describers the dispatch table
// hands out, and the ResolveSet used by member resolvers to return more
// than one result for a single member.
//
// Host-specific describers usually embed Object and add one or more of
// the optional capabilities from package apis:
//
//	type ElementDescriptor struct {
//	    descriptors.Object
//	    elem *Element
//	}
//
//	func (d ElementDescriptor) ResolveMember(doc apis.Document, name string, params []reflect.Type) (any, bool) {
//	    if name != "Parameter" {
//	        return nil, false
//	    }
//	    set := descriptors.NewResolveSet(len(d.elem.params))
//	    for _, p := range d.elem.params {
//	        set.AppendVariant(p, p.Name)
//	    }
//	    return set, true
//	}
package descriptors
