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
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	uref "dirpx.dev/lookup/utils/reflect"
)

type List[T any] struct{ items []T }
type Dict[K comparable, V any] struct{ m map[K]V }

func TestMakeGenericTypeName(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"nil", nil, ""},
		{"builtin", reflect.TypeOf(0), "int"},
		{"named", reflect.TypeOf(A{}), "A"},
		{"pointer", reflect.TypeOf(&A{}), "*A"},
		{"slice", reflect.TypeOf([]*A{}), "[]*A"},
		{"array", reflect.TypeOf([3]A{}), "[3]A"},
		{"map", reflect.TypeOf(map[string][]A{}), "map[string][]A"},
		{"chan", reflect.TypeOf((<-chan A)(nil)), "<-chan A"},
		{"generic", reflect.TypeOf(G[int]{}), "G[int]"},
		{"generic_nested", reflect.TypeOf(Dict[string, List[int]]{}), "Dict[string, List[int]]"},
		{"generic_pointer_arg", reflect.TypeOf(List[*A]{}), "List[*A]"},
		{"generic_slice_arg", reflect.TypeOf(List[[]A]{}), "List[[]A]"},
		{"generic_map_arg", reflect.TypeOf(List[map[string]A]{}), "List[map[string]A]"},
		{"generic_in_slice", reflect.TypeOf([]W[A]{}), "[]W[A]"},
		{"func", reflect.TypeOf(func(A, *A) error { return nil }), "func(A, *A) error"},
		{"func_variadic", reflect.TypeOf(func(...A) {}), "func(...A)"},
		{"generic_func_arg", reflect.TypeOf(List[func(A) error]{}), "List[func(A) error]"},
		{"generic_func_pair_arg", reflect.TypeOf(Dict[string, func(A, []A)]{}), "Dict[string, func(A, []A)]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, uref.MakeGenericTypeName(tc.typ))
		})
	}
}

func TestTypeFullName(t *testing.T) {
	assert.Equal(t, "dirpx.dev/lookup/utils/reflect_test.A", uref.TypeFullName(reflect.TypeOf(A{})))
	assert.Equal(t, "*reflect_test.A", uref.TypeFullName(reflect.TypeOf(&A{})))
	assert.Equal(t, "int", uref.TypeFullName(reflect.TypeOf(0)))
	assert.Equal(t, "", uref.TypeFullName(nil))
}
