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

package snoop_test

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"dirpx.dev/lookup/apis"
	"dirpx.dev/lookup/descriptors"
)

var errBoom = errors.New("boom")

// note is a minimal document.
type note struct{ title string }

func (n *note) Title() string { return n.title }

// owned knows its document.
type owned struct{ d *note }

func (o owned) Document() apis.Document {
	return o.d
}

type base struct {
	ID       int
	secret   string
	OnChange func(int)
	feed     chan int
}

func (b *base) Value() int                        { return b.ID * 10 }
func (b *base) SetValue(v int)                    { b.ID = v / 10 }
func (b *base) SetLabel(string)                   {}
func (b *base) Fail() (int, error)                { return 0, errBoom }
func (b *base) Crash() int                        { panic("crash") }
func (b *base) Lookup(key string) (string, error) { return key, nil }
func (b *base) Sum(x, y int) int                  { return x + y }
func (b *base) Reset()                            {}
func (b *base) Pair() (int, string)               { return b.ID, "pair" }

type derived struct {
	base
	Extra string
}

func (d *derived) Shout() string { return "HEY" }

// baseDescriber resolves the parameterized members of base.
type baseDescriber struct {
	descriptors.Object
	b *base
}

func newBaseDescriber(v any) apis.Describer {
	b, _ := v.(*base)
	return baseDescriber{Object: descriptors.Object{Value: v}, b: b}
}

func (d baseDescriber) ResolveMember(_ apis.Document, name string, params []reflect.Type) (any, bool) {
	switch name {
	case "Lookup":
		return descriptors.NewResolveSet(2).AppendVariant("alpha", "a").AppendVariant("beta", "b"), true
	case "Sum":
		return d.b.ID + len(params), true
	}
	return nil, false
}

func (d baseDescriber) RegisterExtensions(doc apis.Document, m apis.ExtensionManager) {
	m.Register("Doc", func() (any, error) {
		if doc == nil {
			return "none", nil
		}
		return doc.Title(), nil
	})
}

// fixed is a describer with a constant name.
type fixed string

func (f fixed) Name() string        { return string(f) }
func (f fixed) Description() string { return "" }

// badge describes itself.
type badge struct{}

func (badge) LookupDescriber() apis.Describer { return fixed("badge!") }

// crashy describes itself with a describer that cannot name it.
type crashy struct{}

func (crashy) LookupDescriber() apis.Describer { return crashDescriber{} }

type crashDescriber struct{}

func (crashDescriber) Name() string        { panic("no name") }
func (crashDescriber) Description() string { return "" }

// hop redirects to its successor until n reaches max; max < 0 never stops.
type hop struct{ n, max int }

type hopDescriber struct{ h hop }

func newHopDescriber(v any) apis.Describer {
	h, _ := v.(hop)
	return hopDescriber{h: h}
}

func (d hopDescriber) Name() string        { return "hop" }
func (d hopDescriber) Description() string { return "" }

func (d hopDescriber) Redirect(_ apis.Document, _ string) (any, bool) {
	if d.h.max >= 0 && d.h.n >= d.h.max {
		return nil, false
	}
	return hop{n: d.h.n + 1, max: d.h.max}, true
}

// counter is a resettable enumerator over 1..n.
type counter struct{ n, i, resets int }

func (c *counter) Reset()         { c.i = 0; c.resets++ }
func (c *counter) MoveNext() bool { c.i++; return c.i <= c.n }
func (c *counter) Current() any   { return c.i }

// faulty loses its position after two elements.
type faulty struct{ i int }

func (f *faulty) Reset() { f.i = 0 }
func (f *faulty) MoveNext() bool {
	f.i++
	if f.i > 2 {
		panic("cursor lost")
	}
	return true
}
func (f *faulty) Current() any { return f.i }

// tally counts how often its getter runs.
type tally struct{ calls *atomic.Int32 }

func (t tally) Count() int32 { return t.calls.Add(1) }

// slow has a getter slower than the test threshold.
type slow struct{}

func (slow) Nap() int {
	time.Sleep(2 * time.Millisecond)
	return 1
}

// plate and sign declare the same field and the same getter.
type plate struct{ Tag string }

func (p *plate) Label() string { return "plate-label" }

type sign struct {
	plate
	Tag string
}

func (s sign) Label() string { return "sign-label" }

// guarded embeds a mutex whose TryLock must not run.
type guarded struct {
	sync.Mutex
	N int
}

type shared struct {
	sync.RWMutex
	N int
}
