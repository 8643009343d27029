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

// ManifestKind selects how a Provider discovers a coordinate's direct
// dependencies: an embedded manifest read from Root, a POM, a flat literal
// dependency list, and so on. The zero value means "not yet detected";
// Provider.ManifestType fills it in.
type ManifestKind string

// CoordID is a provider-dependent identity used for conflict comparison. Two
// coordinates that are logically equivalent (e.g. the same version string
// reached by different paths) must produce equal CoordIDs. Concrete CoordID
// values must be comparable, since the engine uses them as map keys.
type CoordID any

// Common holds the coordinate fields the core engine itself inspects,
// regardless of which Provider owns the rest of the coordinate: the
// exclusion set attached to this edge, the detected manifest kind, and the
// directory a relative local root should be resolved against.
type Common struct {
	// Exclusions suppresses these libraries (and anything reachable only
	// through them) for the subtree rooted at this coordinate.
	Exclusions LibSet
	// Manifest selects how dependencies are discovered for this coordinate.
	Manifest ManifestKind
	// Root is a directory to treat as the current directory when reading
	// this coordinate's manifest, for providers that resolve relative
	// local paths.
	Root string
}

// Coord is a tagged-variant coordinate: a provider identity plus whatever
// provider-specific fields it needs. The core engine never inspects
// provider-specific fields directly — all of that is delegated to a
// Provider implementation via the Kind() tag. Adding a new kind of
// coordinate means adding a new type implementing Coord and a Provider
// that understands it; it never means widening this interface.
type Coord interface {
	// Kind names the provider variant this coordinate belongs to, e.g.
	// "maven", "git", "local", "deps", "pom".
	Kind() string
	// Common returns the fields shared across all coordinate kinds.
	Common() Common
	// WithCommon returns a copy of the coordinate with Common replaced.
	WithCommon(Common) Coord
}

// MavenCoord identifies a coordinate resolved from a Maven-style repository:
// group, artifact and version strings plus an optional classifier.
type MavenCoord struct {
	CommonFields Common
	GroupID      string
	ArtifactID   string
	Version      string
	Classifier   string
}

func (c MavenCoord) Kind() string    { return "maven" }
func (c MavenCoord) Common() Common  { return c.CommonFields }
func (c MavenCoord) WithCommon(n Common) Coord {
	c.CommonFields = n
	return c
}

// GitCoord identifies a coordinate fetched from a git repository at a
// specific commit (or tag/branch, provider-dependent).
type GitCoord struct {
	CommonFields Common
	URL          string
	Sha          string
	Tag          string
}

func (c GitCoord) Kind() string   { return "git" }
func (c GitCoord) Common() Common { return c.CommonFields }
func (c GitCoord) WithCommon(n Common) Coord {
	c.CommonFields = n
	return c
}

// LocalCoord identifies a coordinate that lives in a local directory, most
// often a sibling project during development.
type LocalCoord struct {
	CommonFields Common
	Path         string
}

func (c LocalCoord) Kind() string   { return "local" }
func (c LocalCoord) Common() Common { return c.CommonFields }
func (c LocalCoord) WithCommon(n Common) Coord {
	c.CommonFields = n
	return c
}

// DepsCoord identifies a coordinate discovered by reading a flat, embedded
// dependency manifest (as opposed to a POM or other foreign format).
type DepsCoord struct {
	CommonFields Common
	Deps         map[Lib]Coord
}

func (c DepsCoord) Kind() string   { return "deps" }
func (c DepsCoord) Common() Common { return c.CommonFields }
func (c DepsCoord) WithCommon(n Common) Coord {
	c.CommonFields = n
	return c
}

// PomCoord identifies a coordinate whose dependencies are discovered by
// parsing a foreign POM-style manifest.
type PomCoord struct {
	CommonFields Common
	Path         string
}

func (c PomCoord) Kind() string   { return "pom" }
func (c PomCoord) Common() Common { return c.CommonFields }
func (c PomCoord) WithCommon(n Common) Coord {
	c.CommonFields = n
	return c
}

// ChildDep is a direct dependency edge: a library and the coordinate its
// parent requires for it. Provider.CoordDeps returns these in the order
// the manifest lists them; order is preserved for trace output and sibling
// processing order, but has no bearing on the conflict-resolution result.
type ChildDep struct {
	Lib   Lib
	Coord Coord
}
