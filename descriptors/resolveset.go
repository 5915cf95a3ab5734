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

package descriptors

import (
	uref "dirpx.dev/lookup/utils/reflect"
)

// Variant is one result of a member that evaluates to several values.
type Variant struct {
	// Result is the value of this variant; never nil.
	Result any
	// Label names the variant (for example, the index key used); may be empty.
	Label string
}

// ResolveSet is an ordered queue of variants returned by a member
// resolver when one member has several semantically distinct results.
// Nil results are silently discarded. A ResolveSet is not safe for
// concurrent mutation; resolvers fill it before returning it.
type ResolveSet struct {
	variants []Variant
}

// NewResolveSet returns an empty set with room for capacity variants.
func NewResolveSet(capacity int) *ResolveSet {
	if capacity < 0 {
		capacity = 0
	}
	return &ResolveSet{variants: make([]Variant, 0, capacity)}
}

// Append enqueues an unlabeled result.
func (s *ResolveSet) Append(result any) *ResolveSet {
	return s.AppendVariant(result, "")
}

// AppendVariant enqueues a labeled result. Nil results, including typed
// nil pointers, are dropped.
func (s *ResolveSet) AppendVariant(result any, label string) *ResolveSet {
	if uref.IsNil(result) {
		return s
	}
	s.variants = append(s.variants, Variant{Result: result, Label: label})
	return s
}

// Len returns the number of variants.
func (s *ResolveSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.variants)
}

// Variants returns a copy of the variants in enqueue order.
func (s *ResolveSet) Variants() []Variant {
	if s == nil {
		return nil
	}
	out := make([]Variant, len(s.variants))
	copy(out, s.variants)
	return out
}
