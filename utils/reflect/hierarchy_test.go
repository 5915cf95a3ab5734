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

package reflect_test

import (
	"iter"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uref "dirpx.dev/lookup/utils/reflect"
)

type base struct {
	ID   int
	name string
}

func (*base) Key() int      { return 1 }
func (*base) Shadowed() int { return 1 }

type mixin struct{ Tag string }

func (mixin) Label() string { return "" }

type middle struct {
	base
	Count int
}

func (*middle) Total() int { return 0 }

type derived struct {
	*middle
	mixin
	Extra string
}

func (*derived) Own() int      { return 0 }
func (*derived) Shadowed() int { return 2 }

type self struct {
	*self
	V int
}

func TestDeclares(t *testing.T) {
	dt := reflect.TypeOf(derived{})
	assert.True(t, uref.Declares(dt, "Own"))
	assert.True(t, uref.Declares(dt, "Shadowed"))
	assert.False(t, uref.Declares(dt, "Key"))
	assert.False(t, uref.Declares(dt, "Label"))
	assert.False(t, uref.Declares(dt, "Missing"))

	// Value receivers are found on the value method set.
	assert.True(t, uref.Declares(reflect.TypeOf(mixin{}), "Label"))
}

func TestHierarchy_Levels(t *testing.T) {
	h := uref.NewHierarchy(16)
	levels := h.Levels(reflect.TypeOf(derived{}))
	require.Len(t, levels, 4)

	want := []struct {
		typ     reflect.Type
		index   []int
		fields  []int
		methods []string
	}{
		{reflect.TypeOf(base{}), []int{0, 0}, []int{0, 1}, []string{"Key", "Shadowed"}},
		{reflect.TypeOf(middle{}), []int{0}, []int{1}, []string{"Total"}},
		{reflect.TypeOf(mixin{}), []int{1}, []int{0}, []string{"Label"}},
		// Shadowed is declared again by derived and belongs to both levels.
		{reflect.TypeOf(derived{}), nil, []int{2}, []string{"Own", "Shadowed"}},
	}
	for i, w := range want {
		assert.Equal(t, w.typ, levels[i].Type, "level %d", i)
		assert.Equal(t, i, levels[i].Depth, "level %d", i)
		assert.Equal(t, w.index, levels[i].Index, "level %d", i)
		assert.Equal(t, w.fields, levels[i].Fields, "level %d", i)
		assert.Equal(t, w.methods, levels[i].Methods, "level %d", i)
	}
}

func TestHierarchy_NonStruct(t *testing.T) {
	h := uref.NewHierarchy(16)
	levels := h.Levels(reflect.TypeOf(0))
	require.Len(t, levels, 1)
	assert.Empty(t, levels[0].Fields)
	assert.Empty(t, levels[0].Methods)

	assert.Nil(t, h.Levels(nil))
}

func TestHierarchy_SelfEmbedding(t *testing.T) {
	h := uref.NewHierarchy(16)
	levels := h.Levels(reflect.TypeOf(self{}))
	require.Len(t, levels, 1)
	assert.Equal(t, []int{1}, levels[0].Fields)
}

func TestHierarchy_Cache(t *testing.T) {
	h := uref.NewHierarchy(2)
	first := h.Levels(reflect.TypeOf(derived{}))
	second := h.Levels(reflect.TypeOf(derived{}))
	assert.Same(t, &first[0], &second[0], "cached chains are shared")
	assert.Equal(t, 1, h.Len())

	h.Levels(reflect.TypeOf(middle{}))
	h.Levels(reflect.TypeOf(base{}))
	assert.Equal(t, 2, h.Len(), "least recently used chains are evicted")
}

func TestHierarchy_Concurrent(t *testing.T) {
	h := uref.NewHierarchy(4)
	types := []reflect.Type{
		reflect.TypeOf(derived{}), reflect.TypeOf(middle{}), reflect.TypeOf(base{}),
		reflect.TypeOf(mixin{}), reflect.TypeOf(self{}), reflect.TypeOf(A{}),
	}
	want := []int{4, 2, 1, 1, 1, 1}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				j := i % len(types)
				if got := len(h.Levels(types[j])); got != want[j] {
					t.Errorf("Levels(%v) has %d levels, want %d", types[j], got, want[j])
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestMethodNames(t *testing.T) {
	assert.Equal(t, []string{"Key", "Shadowed"}, uref.MethodNames(reflect.TypeOf(base{})))
	assert.Equal(t, []string{"Label"}, uref.MethodNames(reflect.TypeOf(mixin{})))

	it := reflect.TypeOf((*interface{ Area() float64 })(nil)).Elem()
	assert.Equal(t, []string{"Area"}, uref.MethodNames(it))
}

func TestSeqArity(t *testing.T) {
	var seq iter.Seq[int]
	var seq2 iter.Seq2[string, int]

	assert.Equal(t, 1, uref.SeqArity(reflect.TypeOf(seq)))
	assert.Equal(t, 2, uref.SeqArity(reflect.TypeOf(seq2)))
	assert.Equal(t, 1, uref.SeqArity(reflect.TypeOf(func(func(int) bool) {})))
	assert.Equal(t, 0, uref.SeqArity(reflect.TypeOf(func(int) {})))
	assert.Equal(t, 0, uref.SeqArity(reflect.TypeOf(func(func() bool) {})))
	assert.Equal(t, 0, uref.SeqArity(reflect.TypeOf(0)))
	assert.Equal(t, 0, uref.SeqArity(nil))
}

func TestExposeAndAddressable(t *testing.T) {
	b := base{ID: 1, name: "hidden"}

	// Unexported fields of a non-addressable value cannot be exposed.
	_, ok := uref.Expose(reflect.ValueOf(b).Field(1))
	assert.False(t, ok)

	av := uref.Addressable(reflect.ValueOf(b))
	require.True(t, av.CanAddr())
	fv, ok := uref.Expose(av.Field(1))
	require.True(t, ok)
	assert.Equal(t, "hidden", fv.Interface())
	assert.Equal(t, "hidden", uref.Interface(av.Field(1)))

	assert.Nil(t, uref.Interface(reflect.Value{}))
}
