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

// cutKey identifies a (lib, version) pair for the cut map.
type cutKey struct {
	lib Lib
	id  CoordID
}

// ExclusionTracker maintains, per parent Path, the exclusion set in effect
// there, and, per (lib, version), the set of children previously withheld
// by exclusion (the "cut"). It is owned exclusively by the Expansion
// Engine's coordinator, like VersionMap.
type ExclusionTracker struct {
	exclusions map[string]LibSet // keyed by Path.Key()
	cut        map[cutKey]LibSet
}

// NewExclusionTracker creates an empty ExclusionTracker.
func NewExclusionTracker() *ExclusionTracker {
	return &ExclusionTracker{
		exclusions: make(map[string]LibSet),
		cut:        make(map[cutKey]LibSet),
	}
}

// Excluded reports whether lib is suppressed at path: walking path from
// full length down to empty, it returns true if any prefix has a
// registered exclusion set containing lib's base name (see Lib.Base).
func (t *ExclusionTracker) Excluded(path Path, lib Lib) bool {
	for i := len(path); i >= 0; i-- {
		if set, ok := t.exclusions[path[:i].Key()]; ok && set.Contains(lib) {
			return true
		}
	}
	return false
}

// Snapshot returns the current exclusions map, for attaching to a trace
// result. The returned map must not be mutated.
func (t *ExclusionTracker) Snapshot() map[string]LibSet {
	return t.exclusions
}

// includeReason names why a node's include decision went the way it did,
// per §4.5's rule table.
type includeReason string

const (
	reasonNewTopDep      includeReason = "new-top-dep"
	reasonExcluded       includeReason = "excluded"
	reasonUseTop         includeReason = "use-top"
	reasonParentOmitted  includeReason = "parent-omitted"
	reasonNewDep         includeReason = "new-dep"
	reasonSameVersion    includeReason = "same-version"
	reasonNewerVersion   includeReason = "newer-version"
	reasonOlderVersion   includeReason = "older-version"
)

// childPred decides which of a node's raw CoordDeps children should
// actually be enqueued, after exclusion narrowing.
type childPred func(Lib) bool

// alwaysEnqueue is the identity child predicate used when a node carries
// no exclusions of its own.
func alwaysEnqueue(Lib) bool { return true }

// Update implements §4.4's update_exclusions: given the include decision
// for (lib, useCoord) at usePath, it records any exclusion/cut-set changes
// and returns the predicate deciding which children to enqueue next, along
// with whether enqueuing should happen at all.
func (t *ExclusionTracker) Update(lib Lib, useCoord Coord, id CoordID, usePath Path, include bool, reason includeReason) (pred childPred, enqueue bool) {
	switch {
	case include:
		// Rules 1, 5, 7: a new or newer version was just admitted.
		excl := useCoord.Common().Exclusions
		if len(excl) == 0 {
			return alwaysEnqueue, true
		}
		t.exclusions[usePath.Key()] = excl
		t.cut[cutKey{lib, id}] = excl
		return func(c Lib) bool { return !excl.Contains(c) }, true

	case reason == reasonSameVersion:
		// A previously admitted (lib, version) is being revisited via
		// another parent; narrow the cut and enqueue only the children
		// that were withheld before but are no longer withheld now.
		key := cutKey{lib, id}
		prev := t.cut[key]
		next := useCoord.Common().Exclusions
		if len(next) > 0 {
			t.exclusions[usePath.Key()] = next
		}
		newlyUncovered := prev.Difference(next)
		t.cut[key] = prev.Intersect(next)
		if len(newlyUncovered) == 0 {
			return nil, false
		}
		return newlyUncovered.Contains, true

	default:
		// excluded, use-top, parent-omitted, older-version: no state
		// change, nothing to enqueue.
		return nil, false
	}
}
