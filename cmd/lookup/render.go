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

package main

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"strings"

	"dirpx.dev/lookup/snoop"
)

// renderer prints objects as an indented member tree.
type renderer struct {
	w        io.Writer
	ctx      context.Context
	maxDepth int
	// seen holds the pointers on the current path, so cycles print once.
	seen map[uintptr]bool
}

func (r *renderer) object(o *snoop.Object, depth int) error {
	d := o.Descriptor()
	fmt.Fprintf(r.w, "%s%s\n", indent(depth), label(d.Name, d.Description, d.Type))
	return r.members(o, depth)
}

func (r *renderer) members(o *snoop.Object, depth int) error {
	if depth >= r.maxDepth || !o.HasMembers() {
		return nil
	}
	if p, ok := pointer(o.Value()); ok {
		if r.seen[p] {
			return nil
		}
		r.seen[p] = true
		defer delete(r.seen, p)
	}

	ctx := r.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	members, err := o.GetCachedMembersAsync(ctx)
	if err != nil {
		return err
	}
	for _, m := range members {
		v := m.Value.Descriptor()
		fmt.Fprintf(r.w, "%s%s = %s  [%s %s]\n", indent(depth+1), m.Name, label(v.Name, v.Description, ""), m.Type, m.Attributes)
		if err := r.members(m.Value, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func label(name, description, typ string) string {
	var b strings.Builder
	b.WriteString(name)
	if description != "" {
		b.WriteString(" (")
		b.WriteString(description)
		b.WriteString(")")
	}
	if typ != "" && typ != name {
		b.WriteString(" : ")
		b.WriteString(typ)
	}
	return b.String()
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

// pointer returns the address held by reference values.
func pointer(v any) (uintptr, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Pointer(), true
	}
	return 0, false
}
