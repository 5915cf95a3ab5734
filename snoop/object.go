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
	"context"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"

	"dirpx.dev/lookup/apis"
	uref "dirpx.dev/lookup/utils/reflect"
	"dirpx.dev/lookup/utils/safe"
)

// Object pairs a value with the document it belongs to. It is the unit
// of lazy drill-down: members are only built when asked for.
type Object struct {
	engine *Engine
	value  any
	doc    apis.Document
	desc   *Descriptor

	// mu guards members and cached.
	mu      sync.Mutex
	members []*Descriptor
	cached  bool
	flight  singleflight.Group
}

// newObject redirects v, resolves its document and describes it.
// target is the member name v was read from, if any.
func (e *Engine) newObject(v any, doc apis.Document, target string) *Object {
	v, d := e.redirect(v, doc, target)
	o := &Object{
		engine: e,
		value:  v,
		doc:    documentOf(v, doc),
	}
	o.desc = e.describeObject(o, d)
	return o
}

// describeObject builds the object-level descriptor.
func (e *Engine) describeObject(o *Object, d apis.Describer) *Descriptor {
	desc := &Descriptor{Value: o, Describer: d}
	res := safe.Call(func() (any, error) {
		desc.Name = d.Name()
		desc.Description = d.Description()
		return nil, nil
	})
	if res.Err != nil {
		e.log.Debug("describer panicked", "error", res.Err)
		desc.Name = reflect.TypeOf(d).String()
	}
	if t := reflect.TypeOf(o.value); t != nil {
		desc.Type = uref.TypeName(t)
		desc.TypeFullName = uref.TypeFullName(t)
	}
	return desc
}

// documentOf picks the document a value belongs to: its own when it
// knows it, itself when it is a document, fallback otherwise.
func documentOf(v any, fallback apis.Document) apis.Document {
	if owner, ok := v.(apis.DocumentOwner); ok {
		res := safe.Call(func() (any, error) { return owner.Document(), nil })
		if doc, ok := res.Value.(apis.Document); ok && !uref.IsNil(doc) {
			return doc
		}
	}
	if doc, ok := v.(apis.Document); ok && !uref.IsNil(doc) {
		return doc
	}
	return fallback
}

// Value returns the wrapped value. It is a reflect.Type for static objects.
func (o *Object) Value() any { return o.value }

// Document returns the document the object belongs to; may be nil.
func (o *Object) Document() apis.Document { return o.doc }

// Descriptor returns the object-level descriptor.
func (o *Object) Descriptor() *Descriptor { return o.desc }

// IsStatic reports whether the object browses the static members of a type.
func (o *Object) IsStatic() bool {
	_, ok := o.value.(reflect.Type)
	return ok
}

// IsNil reports whether the wrapped value is nil.
func (o *Object) IsNil() bool { return uref.IsNil(o.value) }

// HasMembers reports whether building the object can yield members.
// Nil values and plain scalars cannot.
func (o *Object) HasMembers() bool {
	if o.IsNil() {
		return false
	}
	if o.IsStatic() {
		return o.engine.stats.Has(o.value.(reflect.Type))
	}
	t := reflect.TypeOf(o.value)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return reflect.PointerTo(t).NumMethod() > 0
	}
	return true
}

// GetMembers builds the members synchronously and caches them.
func (o *Object) GetMembers() []*Descriptor {
	members := o.engine.Build(o.value, o.doc)
	o.store(members)
	return members
}

// GetMembersAsync builds the members on a worker and caches them. ctx
// bounds the wait, not the build.
func (o *Object) GetMembersAsync(ctx context.Context) ([]*Descriptor, error) {
	members, err := o.engine.BuildAsync(ctx, o.value, o.doc)
	if err != nil {
		return nil, err
	}
	o.store(members)
	return members, nil
}

// GetCachedMembersAsync returns the cached members, building them first
// when the cache is empty. Concurrent callers share a single build, and
// every call after the first returns the same slice until Invalidate.
func (o *Object) GetCachedMembersAsync(ctx context.Context) ([]*Descriptor, error) {
	if members, ok := o.cachedMembers(); ok {
		return members, nil
	}
	ch := o.flight.DoChan("members", func() (any, error) {
		if members, ok := o.cachedMembers(); ok {
			return members, nil
		}
		// Shared by every waiter, so no single caller's ctx may cancel it.
		members, err := o.engine.BuildAsync(context.WithoutCancel(ctx), o.value, o.doc)
		if err != nil {
			return nil, err
		}
		o.store(members)
		return members, nil
	})
	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.([]*Descriptor), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Invalidate drops the cached members.
func (o *Object) Invalidate() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.members, o.cached = nil, false
}

// Enumerate flattens an enumerable value into one descriptor per
// element, named by index ("[0]") or key ("[key]"); each Value is an
// independently redirected child object. Non-enumerable values yield nil.
func (o *Object) Enumerate() []*Descriptor {
	items := o.engine.items(o.value)
	if items == nil {
		return nil
	}
	t := reflect.TypeOf(o.value)
	out := make([]*Descriptor, 0, len(items))
	for _, it := range items {
		out = append(out, &Descriptor{
			Name:         it.label,
			Type:         uref.TypeName(t),
			TypeFullName: uref.TypeFullName(t),
			Value:        o.engine.newObject(it.value, o.doc, ""),
		})
	}
	return out
}

func (o *Object) cachedMembers() ([]*Descriptor, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.members, o.cached
}

func (o *Object) store(members []*Descriptor) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.members, o.cached = members, true
}
