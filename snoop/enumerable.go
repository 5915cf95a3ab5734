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
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"dirpx.dev/lookup/apis"
	"dirpx.dev/lookup/descriptors"
	uref "dirpx.dev/lookup/utils/reflect"
	"dirpx.dev/lookup/utils/safe"
)

// item is one element of an enumerable value.
type item struct {
	label string
	value any
}

// items flattens v into its elements, at most Config.MaxItems of them.
// It returns nil when v is not enumerable. Strings are not enumerated.
func (e *Engine) items(v any) []item {
	switch tv := v.(type) {
	case nil:
		return nil
	case *descriptors.ResolveSet:
		return e.variantItems(tv)
	case apis.Enumerator:
		return e.enumeratorItems(tv)
	}

	rv, ok := uref.Indirect(reflect.ValueOf(v), e.cfg.MaxUnwrap)
	if !ok {
		return nil
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return e.indexItems(rv)
	case reflect.Map:
		return e.mapItems(rv)
	case reflect.Func:
		if arity := uref.SeqArity(rv.Type()); arity > 0 && !rv.IsNil() {
			return e.seqItems(rv, arity)
		}
	}
	return nil
}

func (e *Engine) variantItems(set *descriptors.ResolveSet) []item {
	out := []item{}
	for i, vr := range set.Variants() {
		if i >= e.cfg.MaxItems {
			e.truncated("ResolveSet", set.Len())
			break
		}
		label := vr.Label
		if label == "" {
			label = index(i)
		}
		out = append(out, item{label: label, value: vr.Result})
	}
	return out
}

// enumeratorItems resets en and walks it once. A panicking enumerator
// ends the walk with the failure as last element.
func (e *Engine) enumeratorItems(en apis.Enumerator) []item {
	out := []item{}
	res := safe.Call(func() (any, error) {
		en.Reset()
		for en.MoveNext() {
			if len(out) >= e.cfg.MaxItems {
				e.truncated(uref.TypeName(reflect.TypeOf(en)), -1)
				break
			}
			out = append(out, item{label: index(len(out)), value: en.Current()})
		}
		return nil, nil
	})
	if res.Err != nil {
		out = append(out, item{label: index(len(out)), value: res.Err})
	}
	return out
}

func (e *Engine) indexItems(rv reflect.Value) []item {
	n := rv.Len()
	out := make([]item, 0, min(n, e.cfg.MaxItems))
	for i := 0; i < n; i++ {
		if i >= e.cfg.MaxItems {
			e.truncated(uref.TypeName(rv.Type()), n)
			break
		}
		out = append(out, item{label: index(i), value: uref.Interface(rv.Index(i))})
	}
	return out
}

// mapItems orders entries by their formatted key.
func (e *Engine) mapItems(rv reflect.Value) []item {
	type entry struct {
		key   string
		value reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		entries = append(entries, entry{key: fmt.Sprint(uref.Interface(it.Key())), value: it.Value()})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	out := make([]item, 0, min(len(entries), e.cfg.MaxItems))
	for i, en := range entries {
		if i >= e.cfg.MaxItems {
			e.truncated(uref.TypeName(rv.Type()), len(entries))
			break
		}
		out = append(out, item{label: "[" + en.key + "]", value: uref.Interface(en.value)})
	}
	return out
}

// seqItems ranges over an iter.Seq or iter.Seq2 through a reflected
// yield function. Seq2 keys become labels.
func (e *Engine) seqItems(fn reflect.Value, arity int) []item {
	out := []item{}
	yieldType := fn.Type().In(0)
	stop := reflect.ValueOf(false).Convert(yieldType.Out(0))
	more := reflect.ValueOf(true).Convert(yieldType.Out(0))
	yield := reflect.MakeFunc(yieldType, func(args []reflect.Value) []reflect.Value {
		if len(out) >= e.cfg.MaxItems {
			e.truncated(uref.TypeName(fn.Type()), -1)
			return []reflect.Value{stop}
		}
		if arity == 2 {
			out = append(out, item{label: "[" + fmt.Sprint(uref.Interface(args[0])) + "]", value: uref.Interface(args[1])})
		} else {
			out = append(out, item{label: index(len(out)), value: uref.Interface(args[0])})
		}
		return []reflect.Value{more}
	})
	res := safe.Call(func() (any, error) {
		fn.Call([]reflect.Value{yield})
		return nil, nil
	})
	if res.Err != nil {
		out = append(out, item{label: index(len(out)), value: res.Err})
	}
	return out
}

func (e *Engine) truncated(typ string, total int) {
	e.log.Debug("enumeration truncated", "type", typ, "limit", e.cfg.MaxItems, "total", total)
}

func index(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
