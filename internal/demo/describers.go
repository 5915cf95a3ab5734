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

package demo

import (
	"reflect"
	"strconv"

	"github.com/google/uuid"

	"dirpx.dev/lookup/apis"
	"dirpx.dev/lookup/descriptors"
	"dirpx.dev/lookup/extension"
)

// ElementDescriptor describes elements by name and category. It resolves
// the Parameter indexer to every parameter of the element and adds a
// few computed members.
type ElementDescriptor struct {
	descriptors.Object
	elem *Element
}

var (
	_ apis.MemberResolver    = ElementDescriptor{}
	_ apis.ExtensionProvider = ElementDescriptor{}
)

// NewElementDescriptor is the apis.Factory for Element.
func NewElementDescriptor(v any) apis.Describer {
	d := ElementDescriptor{Object: descriptors.Object{Value: v}}
	switch e := v.(type) {
	case *Element:
		d.elem = e
	case Element:
		d.elem = &e
	}
	return d
}

// Name implements apis.Describer.
func (d ElementDescriptor) Name() string {
	if d.elem == nil {
		return d.Object.Name()
	}
	if d.elem.Name == "" {
		return d.elem.Category.String() + " " + d.elem.ID().String()
	}
	return d.elem.Name
}

// Description implements apis.Describer.
func (d ElementDescriptor) Description() string {
	if d.elem == nil {
		return ""
	}
	return d.elem.Category.String() + " " + d.elem.ID().String()
}

// ResolveMember implements apis.MemberResolver.
func (d ElementDescriptor) ResolveMember(_ apis.Document, name string, _ []reflect.Type) (any, bool) {
	if d.elem == nil || name != "Parameter" {
		return nil, false
	}
	set := descriptors.NewResolveSet(len(d.elem.params))
	for _, p := range d.elem.params {
		set.AppendVariant(p, p.Name)
	}
	return set, true
}

// RegisterExtensions implements apis.ExtensionProvider.
func (d ElementDescriptor) RegisterExtensions(doc apis.Document, m apis.ExtensionManager) {
	if d.elem == nil {
		return
	}
	extension.Bind(m, "ParameterCount", d.elem, func(e *Element) (any, error) {
		return len(e.params), nil
	})
	extension.Bind(m, "SameCategory", d.elem, func(e *Element) (any, error) {
		owner, ok := doc.(*Document)
		if !ok || owner == nil {
			return nil, ErrElementNotFound
		}
		var peers []Node
		c := owner.Elements()
		for c.MoveNext() {
			n := c.Current().(Node)
			if pe := n.element(); pe != e && pe.Category == e.Category {
				peers = append(peers, n)
			}
		}
		return peers, nil
	})
}

// ElementIDDescriptor shows an element id as the element it identifies,
// except where the id is read as an element's own ID.
type ElementIDDescriptor struct {
	descriptors.Number
	id ElementID
}

var _ apis.Redirector = ElementIDDescriptor{}

// NewElementIDDescriptor is the apis.Factory for ElementID.
func NewElementIDDescriptor(v any) apis.Describer {
	d := ElementIDDescriptor{Number: descriptors.Number{Value: v}, id: InvalidElementID}
	switch id := v.(type) {
	case ElementID:
		d.id = id
	case *ElementID:
		if id != nil {
			d.id = *id
		}
	}
	return d
}

// Redirect implements apis.Redirector.
func (d ElementIDDescriptor) Redirect(doc apis.Document, target string) (any, bool) {
	if target == "ID" || target == "id" || d.id == InvalidElementID {
		return nil, false
	}
	owner, ok := doc.(*Document)
	if !ok || owner == nil {
		return nil, false
	}
	n, err := owner.Element(d.id)
	if err != nil {
		return nil, false
	}
	return n, true
}

// DocumentDescriptor describes documents by title. It resolves the
// Element indexer to every element of the document.
type DocumentDescriptor struct {
	descriptors.Object
	doc *Document
}

var _ apis.MemberResolver = DocumentDescriptor{}

// NewDocumentDescriptor is the apis.Factory for Document.
func NewDocumentDescriptor(v any) apis.Describer {
	d := DocumentDescriptor{Object: descriptors.Object{Value: v}}
	if doc, ok := v.(*Document); ok {
		d.doc = doc
	}
	return d
}

// Name implements apis.Describer.
func (d DocumentDescriptor) Name() string {
	if d.doc == nil {
		return d.Object.Name()
	}
	return d.doc.Title()
}

// Description implements apis.Describer.
func (d DocumentDescriptor) Description() string {
	if d.doc == nil {
		return ""
	}
	return d.doc.UniqueID().String()
}

// ResolveMember implements apis.MemberResolver.
func (d DocumentDescriptor) ResolveMember(_ apis.Document, name string, _ []reflect.Type) (any, bool) {
	if d.doc == nil || name != "Element" {
		return nil, false
	}
	c := d.doc.Elements()
	set := descriptors.NewResolveSet(c.Size())
	for c.MoveNext() {
		n := c.Current().(Node)
		set.AppendVariant(n, n.element().ID().String())
	}
	return set, true
}

// UUIDDescriptor shows identifiers in their canonical text form instead
// of as a byte array.
type UUIDDescriptor struct {
	id uuid.UUID
}

// NewUUIDDescriptor is the apis.Factory for uuid.UUID.
func NewUUIDDescriptor(v any) apis.Describer {
	var d UUIDDescriptor
	switch id := v.(type) {
	case uuid.UUID:
		d.id = id
	case *uuid.UUID:
		if id != nil {
			d.id = *id
		}
	}
	return d
}

// Name implements apis.Describer.
func (d UUIDDescriptor) Name() string { return d.id.String() }

// Description implements apis.Describer.
func (d UUIDDescriptor) Description() string {
	if d.id == uuid.Nil {
		return "nil"
	}
	return "version " + strconv.Itoa(int(d.id.Version()))
}
