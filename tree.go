// Copyright 2024 The depscore Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resolve

import (
	"fmt"
	"io"
	"sort"
)

// PrintTree reconstructs a forest from libMap's recorded Dependents and
// writes an indented listing to w, one line per library, using
// provider.CoordSummary for each line's text. Roots (libraries with no
// dependents) are listed first, in name order; children are listed under
// each of their parents in turn, so a diamond-shaped dependency appears
// once per parent.
func PrintTree(w io.Writer, libMap LibMap, provider Provider) error {
	children := make(map[Lib][]Lib, len(libMap))
	var roots []Lib
	for lib, entry := range libMap {
		if len(entry.Dependents) == 0 {
			roots = append(roots, lib)
			continue
		}
		for dep := range entry.Dependents {
			children[dep] = append(children[dep], lib)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].Compare(roots[j]) < 0 })
	for _, libs := range children {
		sort.Slice(libs, func(i, j int) bool { return libs[i].Compare(libs[j]) < 0 })
	}

	seen := make(map[Lib]bool, len(roots))
	for _, root := range roots {
		if err := writeNode(w, libMap, provider, children, root, 0, seen); err != nil {
			return err
		}
	}
	return nil
}

// writeNode walks one root-to-leaf chain at a time, tracking the libraries
// already on the current path in seen. A child already on the path is a
// same-version revisit that closes a cycle (spec's "self-cycle terminates"
// invariant applies just as much to printing as to expansion) and is
// skipped rather than recursed into. seen is cleared of lib on return, so a
// diamond-shaped dependency is still printed once under each of its
// distinct parents.
func writeNode(w io.Writer, libMap LibMap, provider Provider, children map[Lib][]Lib, lib Lib, depth int, seen map[Lib]bool) error {
	entry, ok := libMap[lib]
	if !ok {
		return nil
	}
	if seen[lib] {
		return nil
	}
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	summary := lib.String()
	if entry.Coord != nil {
		summary = provider.CoordSummary(lib, entry.Coord)
	}
	if _, err := fmt.Fprintf(w, "%s%s\n", indent, summary); err != nil {
		return err
	}
	seen[lib] = true
	for _, child := range children[lib] {
		if err := writeNode(w, libMap, provider, children, child, depth+1, seen); err != nil {
			return err
		}
	}
	delete(seen, lib)
	return nil
}
