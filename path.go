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

import "strings"

// Path is the chain of parent libraries from the root down to (but not
// including) the current node. A library's use-path is parents ++ [lib].
// A top-level dependency has an empty Path.
type Path []Lib

// Key returns a string uniquely identifying the Path, suitable for use as a
// map key (Path itself is a slice and so cannot be compared or hashed
// directly).
func (p Path) Key() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, l := range p {
		b.WriteString(l.Namespace)
		b.WriteByte('\x00')
		b.WriteString(l.Name)
		b.WriteByte('\x01')
	}
	return b.String()
}

// Parent returns the path with its last element removed, and that last
// element itself. Calling Parent on an empty Path panics; callers must
// check length first (an empty path never has per-parent context to ask
// about).
func (p Path) Parent() (Path, Lib) {
	last := len(p) - 1
	return p[:last], p[last]
}

// Append returns a new Path with child appended, without mutating p.
func (p Path) Append(child Lib) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = child
	return out
}

// Clone returns an independent copy of the Path.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}
