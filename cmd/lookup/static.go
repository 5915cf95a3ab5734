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
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"dirpx.dev/lookup"
	"dirpx.dev/lookup/internal/demo"
)

var staticTypes = map[string]reflect.Type{
	"element":  reflect.TypeOf(demo.Element{}),
	"wall":     reflect.TypeOf(demo.Wall{}),
	"door":     reflect.TypeOf(demo.Door{}),
	"document": reflect.TypeOf(demo.Document{}),
}

var staticCmd = &cobra.Command{
	Use:   "static <type>",
	Short: "Print the static members of a demo type",
	Long:  `Print the package-level members registered for a demo type (element, wall, door, document).`,
	Args:  cobra.ExactArgs(1),
	RunE:  runStatic,
}

func runStatic(cmd *cobra.Command, args []string) error {
	t, ok := staticTypes[strings.ToLower(args[0])]
	if !ok {
		names := make([]string, 0, len(staticTypes))
		for name := range staticTypes {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("unknown type %q (want one of %s)", args[0], strings.Join(names, ", "))
	}

	r := &renderer{w: output, ctx: cmd.Context(), maxDepth: 1, seen: map[uintptr]bool{}}
	return r.object(lookup.SnoopStatic(t), 0)
}
