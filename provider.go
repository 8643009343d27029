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

// Config carries provider-specific configuration alongside a DepsMap, such
// as a list of Maven repositories or a git credential source. The core
// engine never reads its contents; it is passed through to every Provider
// call unchanged.
type Config map[string]any

// Provider is the capability set a concrete coordinate system (Maven, git,
// a local directory, an embedded manifest reader, ...) must implement for
// the engine to expand coordinates of that Kind. Implementations of
// Provider, and the I/O they perform, are outside this module's scope: the
// engine only ever calls through this interface.
//
// Every method may be called concurrently, from multiple goroutines, for
// different libraries at once; implementations must serialize their own
// shared state (e.g. a registry metadata cache).
type Provider interface {
	// Canonicalize normalizes both lib and coord, e.g. resolving a
	// relative local root against the current directory.
	Canonicalize(ctx context.Context, lib Lib, coord Coord, cfg Config) (Lib, Coord, error)

	// DepID returns a stable identity for coord used for conflict
	// comparison. Two coordinates with equal DepID are considered the
	// same version.
	DepID(ctx context.Context, lib Lib, coord Coord, cfg Config) (CoordID, error)

	// ManifestType augments coord with a detected manifest kind. It is a
	// no-op if coord.Common().Manifest is already set.
	ManifestType(ctx context.Context, lib Lib, coord Coord, cfg Config) (Coord, error)

	// CoordDeps returns coord's direct dependencies. Order is preserved
	// and is significant only for trace output.
	CoordDeps(ctx context.Context, lib Lib, coord Coord, manifest ManifestKind, cfg Config) ([]ChildDep, error)

	// CompareVersions returns -1, 0 or 1 depending on whether a sorts
	// before, at, or after b in this provider's version space.
	CompareVersions(ctx context.Context, lib Lib, a, b Coord, cfg Config) (int, error)

	// CoordPaths returns the local filesystem paths coord contributes to
	// a classpath. Called only after coord has been selected.
	CoordPaths(ctx context.Context, lib Lib, coord Coord, manifest ManifestKind, cfg Config) ([]string, error)

	// LibLocation returns the expected on-disk location for coord. It may
	// be called before the coordinate has been fetched.
	LibLocation(ctx context.Context, lib Lib, coord Coord, cfg Config) (string, error)

	// CoordSummary renders a one-line human-readable summary of coord,
	// used by PrintTree.
	CoordSummary(lib Lib, coord Coord) string
}
