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

// Lib is an opaque symbolic identifier for a library: a namespace plus a
// local name, e.g. "org.clojure/clojure" or "com.google.guava/guava".
// Equality and hashing are structural, so Lib is safe to use as a map key.
type Lib struct {
	Namespace string
	Name      string
}

func (l Lib) String() string {
	if l.Namespace == "" {
		return l.Name
	}
	return l.Namespace + "/" + l.Name
}

// Compare reports whether l sorts before, at, or after o, returning -1, 0
// or 1 respectively. It orders by Namespace then Name.
func (l Lib) Compare(o Lib) int {
	if c := strings.Compare(l.Namespace, o.Namespace); c != 0 {
		return c
	}
	return strings.Compare(l.Name, o.Name)
}

// Base returns l with its local name truncated at the first "$", the
// classifier-style separator some ecosystems use for sub-libraries (e.g.
// "clojure$sources"). Exclusion sets are matched against this base form:
// excluding "org.clojure/clojure" also excludes "org.clojure/clojure$sources".
func (l Lib) Base() Lib {
	if i := strings.IndexByte(l.Name, '$'); i >= 0 {
		return Lib{Namespace: l.Namespace, Name: l.Name[:i]}
	}
	return l
}

// LibSet is a set of Lib, as used for exclusions and cut records.
type LibSet map[Lib]struct{}

// NewLibSet builds a LibSet from the given libs.
func NewLibSet(libs ...Lib) LibSet {
	s := make(LibSet, len(libs))
	for _, l := range libs {
		s[l] = struct{}{}
	}
	return s
}

// Contains reports whether lib is in the set, matching by base name per
// Lib.Base — so a set containing "g/a" contains "g/a$classifier" too.
func (s LibSet) Contains(lib Lib) bool {
	if len(s) == 0 {
		return false
	}
	if _, ok := s[lib]; ok {
		return true
	}
	base := lib.Base()
	for k := range s {
		if k.Base() == base {
			return true
		}
	}
	return false
}

// Clone returns a shallow copy of the set.
func (s LibSet) Clone() LibSet {
	c := make(LibSet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

// Intersect returns the set of elements of s that are also in other
// (by LibSet.Contains, i.e. matched on base name).
func (s LibSet) Intersect(other LibSet) LibSet {
	out := make(LibSet)
	for k := range s {
		if other.Contains(k) {
			out[k] = struct{}{}
		}
	}
	return out
}

// Difference returns the elements of s that are not in other.
func (s LibSet) Difference(other LibSet) LibSet {
	out := make(LibSet)
	for k := range s {
		if !other.Contains(k) {
			out[k] = struct{}{}
		}
	}
	return out
}
