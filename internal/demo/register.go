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
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"dirpx.dev/lookup/apis"
	"dirpx.dev/lookup/extension"
	"dirpx.dev/lookup/statics"
)

// ErrNoTemplate is returned by the static wall template when none is loaded.
var ErrNoTemplate = errors.New("demo: no wall template loaded")

// DefaultWallHeight is the height of walls created without one, in meters.
const DefaultWallHeight = 3.0

// Register adds the demo describers to reg.
func Register(reg apis.Registry) error {
	return errors.Join(
		reg.Register(reflect.TypeOf(Element{}), NewElementDescriptor),
		reg.Register(reflect.TypeOf(ElementID(0)), NewElementIDDescriptor),
		reg.Register(reflect.TypeOf(Document{}), NewDocumentDescriptor),
		reg.Register(reflect.TypeOf(uuid.UUID{}), NewUUIDDescriptor),
	)
}

// RegisterStatics records the package-level members of the demo types.
func RegisterStatics(r *statics.Registry) error {
	return errors.Join(
		r.Register(reflect.TypeOf(Element{}), "InvalidElementID", InvalidElementID),
		r.Register(reflect.TypeOf(Element{}), "AllCategories", AllCategories),
		r.Register(reflect.TypeOf(Wall{}), "DefaultWallHeight", DefaultWallHeight),
		r.Register(reflect.TypeOf(Wall{}), "DefaultWallThickness", DefaultWallThickness),
		r.Register(reflect.TypeOf(Wall{}), "Template", func() (*Wall, error) {
			return nil, ErrNoTemplate
		}),
	)
}

// RegisterExtensions attaches computed members to walls and doors.
func RegisterExtensions(r *extension.Registry) error {
	return errors.Join(
		r.Register(reflect.TypeOf(Wall{}), func(_ apis.Document, v any, m apis.ExtensionManager) {
			w, ok := v.(*Wall)
			if !ok {
				return
			}
			extension.Bind(m, "Area", w, func(w *Wall) (any, error) {
				return w.Length() * w.Height, nil
			})
		}),
		r.Register(reflect.TypeOf(Door{}), func(doc apis.Document, v any, m apis.ExtensionManager) {
			dr, ok := v.(*Door)
			if !ok {
				return
			}
			extension.Bind(m, "Fits", dr, func(dr *Door) (any, error) {
				owner, ok := doc.(*Document)
				if !ok {
					return nil, ErrElementNotFound
				}
				n, err := owner.Element(dr.Host)
				if err != nil {
					return nil, err
				}
				w, ok := n.(*Wall)
				if !ok {
					return nil, fmt.Errorf("demo: host %s is not a wall", dr.Host)
				}
				return dr.Width <= w.Length(), nil
			})
		}),
	)
}

// Sample returns a small house: two walls, one door and a bare element
// without geometry.
func Sample() *Document {
	doc := NewDocument("Sample House")

	north := doc.NewWall("North wall", Point{X: 0, Y: 10}, Point{X: 10, Y: 10}, DefaultWallHeight)
	north.box = &Box{Min: Point{X: 0, Y: 9.9}, Max: Point{X: 10, Y: 10.1}}
	north.Set("Mark", "W1")
	north.Set("Fire Rating", "EI 60")
	north.SetPinned(true)

	east := doc.NewWall("East wall", Point{X: 10, Y: 10}, Point{X: 10, Y: 0}, DefaultWallHeight)
	east.box = &Box{Min: Point{X: 9.9, Y: 0}, Max: Point{X: 10.1, Y: 10}}
	east.Set("Mark", "W2")

	door := doc.NewDoor("Front door", north, 0.9)
	door.Set("Mark", "D1")

	marker := &Element{Name: "Survey point"}
	doc.add(marker)
	return doc
}
