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

// versionEntry is the per-Lib record the VersionMap maintains: every
// coordinate ever observed for the library, every parent path each
// coordinate was reached through, and which one is currently selected.
type versionEntry struct {
	versions map[CoordID]Coord
	// paths maps a CoordID to the set of parent Paths it was seen
	// through, keyed by Path.Key since Path itself isn't comparable.
	paths map[CoordID]map[string]Path

	selected    CoordID
	hasSelected bool
	top         bool
}

// VersionMap tracks, per Lib, every coordinate version observed during
// expansion, the parent paths each arrived through, and the current
// selection. It is owned exclusively by the Expansion Engine's
// coordinator goroutine: nothing else reads or writes it, so it needs no
// locking.
type VersionMap struct {
	entries map[Lib]*versionEntry
}

// NewVersionMap creates an empty VersionMap.
func NewVersionMap() *VersionMap {
	return &VersionMap{entries: make(map[Lib]*versionEntry)}
}

func (vm *VersionMap) entry(lib Lib) *versionEntry {
	e, ok := vm.entries[lib]
	if !ok {
		e = &versionEntry{
			versions: make(map[CoordID]Coord),
			paths:    make(map[CoordID]map[string]Path),
		}
		vm.entries[lib] = e
	}
	return e
}

// Has reports whether lib has ever been observed.
func (vm *VersionMap) Has(lib Lib) bool {
	_, ok := vm.entries[lib]
	return ok
}

// AddVersion registers coord (identified by id) for lib, and records that
// it was reached through parentPath. This is called even when the
// resulting node is omitted by the same-version rule (§4.5 rule 6):
// downstream orphan checks depend on every parent path being recorded,
// not just the one that first introduced the selected coordinate.
func (vm *VersionMap) AddVersion(lib Lib, coord Coord, id CoordID, parentPath Path) {
	e := vm.entry(lib)
	e.versions[id] = coord
	if e.paths[id] == nil {
		e.paths[id] = make(map[string]Path)
	}
	e.paths[id][parentPath.Key()] = parentPath.Clone()
}

// SelectVersion marks id as the selected coordinate for lib. If isTop is
// true, lib is marked as a top-level dependency; per invariant 2, once top
// is set the selection never changes again (callers must not call
// SelectVersion again for a lib with top=true).
func (vm *VersionMap) SelectVersion(lib Lib, id CoordID, isTop bool) {
	e := vm.entry(lib)
	e.selected = id
	e.hasSelected = true
	if isTop {
		e.top = true
	}
}

// SelectedID returns the currently selected CoordID for lib, if any.
func (vm *VersionMap) SelectedID(lib Lib) (CoordID, bool) {
	e, ok := vm.entries[lib]
	if !ok || !e.hasSelected {
		return nil, false
	}
	return e.selected, true
}

// SelectedCoord returns the currently selected Coord for lib, if any.
func (vm *VersionMap) SelectedCoord(lib Lib) (Coord, bool) {
	e, ok := vm.entries[lib]
	if !ok || !e.hasSelected {
		return nil, false
	}
	return e.versions[e.selected], true
}

// IsTop reports whether lib has been selected as a top-level dependency.
func (vm *VersionMap) IsTop(lib Lib) bool {
	e, ok := vm.entries[lib]
	return ok && e.top
}

// Coord returns the Coord registered for lib under id, if any.
func (vm *VersionMap) Coord(lib Lib, id CoordID) (Coord, bool) {
	e, ok := vm.entries[lib]
	if !ok {
		return nil, false
	}
	c, ok := e.versions[id]
	return c, ok
}

// Paths returns every parent Path recorded for lib under id.
func (vm *VersionMap) Paths(lib Lib, id CoordID) []Path {
	e, ok := vm.entries[lib]
	if !ok {
		return nil
	}
	m := e.paths[id]
	out := make([]Path, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	return out
}

// hasPath reports whether parentPath is recorded among the paths for
// lib's coordinate id.
func (vm *VersionMap) hasPath(lib Lib, id CoordID, parentPath Path) bool {
	e, ok := vm.entries[lib]
	if !ok {
		return false
	}
	m, ok := e.paths[id]
	if !ok {
		return false
	}
	_, ok = m[parentPath.Key()]
	return ok
}

// ParentMissing implements §4.3's parent_missing?: given a child's parent
// path p = parents ++ [parentLib], it returns true iff parents is not
// among the paths recorded for parentLib's *currently selected* coordinate.
// An empty parents (a top-level node) is never missing.
func (vm *VersionMap) ParentMissing(parents Path) bool {
	if len(parents) == 0 {
		return false
	}
	grandparents, parentLib := parents.Parent()
	id, ok := vm.SelectedID(parentLib)
	if !ok {
		return true
	}
	return !vm.hasPath(parentLib, id, grandparents)
}

// PathLive reports whether p still describes a reachable chain of
// currently-selected coordinates, root to tip. It implements invariant 3's
// orphan check at full path depth rather than ParentMissing's single level:
// an orphan can be introduced several levels below the displaced edge (a
// deeper sibling selects a newer version of some ancestor only after a
// shallower descendant of the old version was already selected), so every
// link of p, not just its last one, must still be live.
func (vm *VersionMap) PathLive(p Path) bool {
	if len(p) == 0 {
		return true
	}
	grandparents, parentLib := p.Parent()
	id, ok := vm.SelectedID(parentLib)
	if !ok {
		return false
	}
	if !vm.hasPath(parentLib, id, grandparents) {
		return false
	}
	return vm.PathLive(grandparents)
}

// Libs returns every Lib the VersionMap has ever observed, in no
// particular order.
func (vm *VersionMap) Libs() []Lib {
	out := make([]Lib, 0, len(vm.entries))
	for l := range vm.entries {
		out = append(out, l)
	}
	return out
}
