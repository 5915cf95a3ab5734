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
	"strconv"

	"github.com/spf13/cobra"

	"dirpx.dev/lookup"
	"dirpx.dev/lookup/internal/demo"
)

var treeDepth int

var treeCmd = &cobra.Command{
	Use:   "tree [element-id]",
	Short: "Print the member tree of the document or of one element",
	Long: `Print the members of the sample document, or of the element with
the given id, down to --depth levels of drill-down.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func init() {
	treeCmd.Flags().IntVarP(&treeDepth, "depth", "d", 1, "levels of members to expand below the root")
}

func runTree(cmd *cobra.Command, args []string) error {
	var target any = model
	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid element id %q: %w", args[0], err)
		}
		if target, err = model.Element(demo.ElementID(id)); err != nil {
			return err
		}
	}

	r := &renderer{w: output, ctx: cmd.Context(), maxDepth: treeDepth, seen: map[uintptr]bool{}}
	return r.object(lookup.Snoop(target, model), 0)
}
