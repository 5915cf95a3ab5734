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

// Package demo is a small building model used to exercise the snooping
// engine: a document owning elements, walls and doors embedding a common
// element base, element ids that stand for the elements they identify,
// and parameters reachable only through an indexer.
package demo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"dirpx.dev/lookup/apis"
)

var (
	// ErrElementNotFound is returned when no element has the given id.
	ErrElementNotFound = errors.New("demo: element not found")
	// ErrParameterNotFound is returned when an element has no parameter with the given name.
	ErrParameterNotFound = errors.New("demo: parameter not found")
	// ErrNoGeometry is returned by elements without a bounding box.
	ErrNoGeometry = errors.New("demo: element has no geometry")
)

// ElementID identifies an element inside its document.
type ElementID int64

// InvalidElementID is the id of elements not added to a document.
const InvalidElementID ElementID = -1

func (id ElementID) String() string {
	return "#" + strconv.FormatInt(int64(id), 10)
}

// Category groups elements.
type Category int

const (
	CategoryGeneric Category = iota
	CategoryWalls
	CategoryDoors
)

// AllCategories returns every category in declaration order.
func AllCategories() []Category {
	return []Category{CategoryGeneric, CategoryWalls, CategoryDoors}
}

func (c Category) String() string {
	switch c {
	case CategoryWalls:
		return "Walls"
	case CategoryDoors:
		return "Doors"
	}
	return "Generic"
}

// Point is a 2D location in meters.
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Point
}

// Node is implemented by every element type through the embedded Element.
type Node interface {
	element() *Element
}

// Document owns elements and hands out their ids.
type Document struct {
	title string
	uid   uuid.UUID

	mu    sync.RWMutex
	nodes []Node
	byID  map[ElementID]Node
	next  ElementID
}

// Ensure Document implements apis.Document.
var _ apis.Document = (*Document)(nil)

// NewDocument returns an empty document.
func NewDocument(title string) *Document {
	return &Document{
		title: title,
		uid:   uuid.New(),
		byID:  make(map[ElementID]Node),
		next:  1,
	}
}

// Title implements apis.Document.
func (d *Document) Title() string { return d.title }

// UniqueID returns the document's stable identifier.
func (d *Document) UniqueID() uuid.UUID { return d.uid }

// Len returns the number of elements.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.nodes)
}

// Elements returns a cursor over the elements in insertion order.
func (d *Document) Elements() *Cursor[Node] {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return newCursor(d.nodes)
}

// Element returns the element with the given id.
func (d *Document) Element(id ElementID) (Node, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	return n, nil
}

// NewWall adds a wall of the given size.
func (d *Document) NewWall(name string, start, end Point, height float64) *Wall {
	w := &Wall{
		Element:   Element{Name: name, Category: CategoryWalls},
		Start:     start,
		End:       end,
		Height:    height,
		Thickness: DefaultWallThickness,
	}
	d.add(w)
	return w
}

// NewDoor adds a door hosted by host.
func (d *Document) NewDoor(name string, host *Wall, width float64) *Door {
	dr := &Door{
		Element: Element{Name: name, Category: CategoryDoors},
		Host:    host.ID(),
		Width:   width,
	}
	d.add(dr)
	return dr
}

func (d *Document) add(n Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e := n.element()
	e.doc = d
	e.id = d.next
	e.uid = uuid.New()
	d.next++
	d.nodes = append(d.nodes, n)
	d.byID[e.id] = n
}

// Element is the base of every element type.
type Element struct {
	// Name is the display name.
	Name string
	// Category groups the element.
	Category Category
	// Changed is invoked after a parameter changes.
	Changed func(Node)

	doc      *Document
	id       ElementID
	uid      uuid.UUID
	params   []*Parameter
	box      *Box
	pinned   bool
	comment  string
	revision int
	updates  chan string
}

func (e *Element) element() *Element { return e }

// ID returns the element id, or InvalidElementID before the element is added.
func (e *Element) ID() ElementID {
	if e.doc == nil {
		return InvalidElementID
	}
	return e.id
}

// UniqueID returns the element's stable identifier.
func (e *Element) UniqueID() uuid.UUID { return e.uid }

// Document implements apis.DocumentOwner.
func (e *Element) Document() apis.Document {
	if e.doc == nil {
		return nil
	}
	return e.doc
}

// Pinned reports whether the element is locked in place.
func (e *Element) Pinned() bool { return e.pinned }

// SetPinned locks or unlocks the element.
func (e *Element) SetPinned(pinned bool) { e.pinned = pinned }

// SetComment replaces the comment. Comments are write-only.
func (e *Element) SetComment(comment string) {
	e.comment = comment
	e.revision++
}

// BoundingBox returns the extent of the element.
func (e *Element) BoundingBox() (*Box, error) {
	if e.box == nil {
		return nil, ErrNoGeometry
	}
	return e.box, nil
}

// Parameter returns the parameter with the given name.
func (e *Element) Parameter(name string) (*Parameter, error) {
	for _, p := range e.params {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q on %s", ErrParameterNotFound, name, e.ID())
}

// Parameters returns a cursor over the parameters in insertion order.
func (e *Element) Parameters() *Cursor[*Parameter] {
	return newCursor(e.params)
}

// Set adds or replaces a parameter value.
func (e *Element) Set(name string, value any) {
	e.revision++
	for _, p := range e.params {
		if p.Name == name {
			p.Value = value
			return
		}
	}
	e.params = append(e.params, &Parameter{Name: name, Value: value})
}

// Parameter is a named value attached to an element.
type Parameter struct {
	Name     string
	Value    any
	ReadOnly bool
}

// AsString formats the value for display.
func (p *Parameter) AsString() string {
	if p.Value == nil {
		return ""
	}
	return fmt.Sprint(p.Value)
}

// DefaultWallThickness is the thickness of new walls, in meters.
const DefaultWallThickness = 0.2

// Wall is a straight wall between two points.
type Wall struct {
	Element

	Start     Point
	End       Point
	Height    float64
	Thickness float64
}

// Length returns the distance between the end points.
func (w *Wall) Length() float64 {
	dx, dy := w.End.X-w.Start.X, w.End.Y-w.Start.Y
	return math.Hypot(dx, dy)
}

// Ends returns both end points.
func (w *Wall) Ends() (Point, Point) {
	return w.Start, w.End
}

// Orientation returns the unit normal of the wall. Zero-length walls have
// no orientation.
func (w *Wall) Orientation() Point {
	l := w.Length()
	if l == 0 {
		panic("demo: zero-length wall has no orientation")
	}
	return Point{X: -(w.End.Y - w.Start.Y) / l, Y: (w.End.X - w.Start.X) / l}
}

// Flip swaps the end points.
func (w *Wall) Flip() {
	w.Start, w.End = w.End, w.Start
}

// Door is an opening hosted by a wall.
type Door struct {
	Element

	// Host is the wall the door is placed in.
	Host  ElementID
	Width float64
}
