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

import "dirpx.dev/lookup/apis"

// Cursor is a resettable enumerator over a snapshot of items.
type Cursor[T any] struct {
	items []T
	pos   int
}

// Ensure Cursor implements apis.Enumerator.
var _ apis.Enumerator = (*Cursor[int])(nil)

func newCursor[T any](items []T) *Cursor[T] {
	cp := make([]T, len(items))
	copy(cp, items)
	return &Cursor[T]{items: cp, pos: -1}
}

// Reset moves the cursor before the first item.
func (c *Cursor[T]) Reset() { c.pos = -1 }

// MoveNext advances the cursor and reports whether an item is current.
func (c *Cursor[T]) MoveNext() bool {
	if c.pos+1 >= len(c.items) {
		c.pos = len(c.items)
		return false
	}
	c.pos++
	return true
}

// Current returns the current item, or nil outside the items.
func (c *Cursor[T]) Current() any {
	if c.pos < 0 || c.pos >= len(c.items) {
		return nil
	}
	return c.items[c.pos]
}

// Size returns the number of items.
func (c *Cursor[T]) Size() int { return len(c.items) }
