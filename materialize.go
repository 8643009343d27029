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

import "context"

// LibEntry is one resolved library in a LibMap: its selected coordinate,
// the local paths that coordinate contributes, and the libraries that
// depend on it directly.
type LibEntry struct {
	Coord      Coord
	Paths      []string
	Dependents LibSet
}

// LibMap is the final flat result of a resolution: every transitively
// required library mapped to its selected coordinate, materialized paths
// and direct dependents.
type LibMap map[Lib]LibEntry

// materialize implements C6: collapse the expanded VersionMap to a
// LibMap, then concurrently call CoordPaths on every entry. Top-level
// dependencies have no recorded dependents.
//
// A lib whose every recorded path has been invalidated by a later
// conflicting selection higher up the tree (invariant 3: every entry must
// have a chain of parents reaching a top dep) is an orphan and is dropped
// here rather than returned, per ParentMissing/PathLive.
func materialize(ctx context.Context, ex *Executor, provider Provider, cfg Config, vm *VersionMap) (LibMap, error) {
	out := make(LibMap, len(vm.Libs()))
	handles := make(map[Lib]*Handle[[]string], len(vm.Libs()))

	for _, lib := range vm.Libs() {
		id, ok := vm.SelectedID(lib)
		if !ok {
			continue
		}
		dependents := NewLibSet()
		live := false
		for _, p := range vm.Paths(lib, id) {
			if !vm.PathLive(p) {
				continue
			}
			live = true
			if len(p) == 0 {
				continue
			}
			_, parent := p.Parent()
			dependents[parent] = struct{}{}
		}
		if !live {
			continue
		}
		coord, _ := vm.Coord(lib, id)
		out[lib] = LibEntry{Coord: coord, Dependents: dependents}

		manifest := coord.Common().Manifest
		handles[lib] = Submit(ex, func(taskCtx context.Context) ([]string, error) {
			paths, err := provider.CoordPaths(taskCtx, lib, coord, manifest, cfg)
			if err != nil {
				return nil, &ProviderError{Lib: lib, Coord: coord, Op: "CoordPaths", Cause: err}
			}
			return paths, nil
		})
	}

	if err := ex.Wait(); err != nil {
		return nil, err
	}

	for lib, h := range handles {
		paths, err := h.Get(ctx)
		if err != nil {
			return nil, err
		}
		entry := out[lib]
		entry.Paths = paths
		out[lib] = entry
	}
	return out, nil
}
