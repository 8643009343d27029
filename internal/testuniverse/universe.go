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

// Package testuniverse implements a small in-memory resolve.Provider
// used by the engine's own tests: coordinates are a bare version string,
// compared lexicographically, exactly as spec §8's end-to-end scenarios
// describe. It plays the same role for this package's tests that
// LocalClient plays for a version-graph resolver: a hand-built universe
// with no I/O, fully under the test's control.
package testuniverse

import (
	"context"
	"fmt"
	"strings"

	"github.com/depscore/resolve"
)

// Coord is the synthetic coordinate kind this universe deals exclusively
// in: a bare version string, optionally excluding some libraries.
type Coord struct {
	CommonFields resolve.Common
	Version      string
}

func (c Coord) Kind() string          { return "test" }
func (c Coord) Common() resolve.Common { return c.CommonFields }
func (c Coord) WithCommon(n resolve.Common) resolve.Coord {
	c.CommonFields = n
	return c
}

// V builds a Coord for the given version string, with no exclusions.
func V(version string) Coord {
	return Coord{Version: version}
}

// Excluding returns a copy of c that excludes the named libraries.
func Excluding(c Coord, libs ...resolve.Lib) Coord {
	c.CommonFields.Exclusions = resolve.NewLibSet(libs...)
	return c
}

// universeKey identifies one concrete version of a library in a Universe.
type universeKey struct {
	lib     resolve.Lib
	version string
}

// Universe is a fixed, hand-authored dependency graph: every (library,
// version) pair maps to the list of direct children that version has,
// exactly the shape spec §8's end-to-end scenarios describe (e.g. "e1 →
// [d2], e2" names two distinct versions of e with different children).
type Universe struct {
	deps map[universeKey][]resolve.ChildDep
}

// New builds an empty Universe.
func New() *Universe {
	return &Universe{deps: make(map[universeKey][]resolve.ChildDep)}
}

// Lib builds a resolve.Lib with no namespace, for the single-name
// identifiers spec §8's scenarios use (e.g. "clojure", "spec.alpha").
func Lib(name string) resolve.Lib {
	return resolve.Lib{Name: name}
}

// Add registers the direct dependencies of one version of lib. Calling
// Add again for the same (lib, version) pair replaces its children;
// versions of lib not passed to Add default to no children.
func (u *Universe) Add(lib resolve.Lib, version string, children ...resolve.ChildDep) {
	u.deps[universeKey{lib, version}] = children
}

var _ resolve.Provider = (*Universe)(nil)

// Canonicalize is a no-op: this universe's coordinates need no
// normalization.
func (u *Universe) Canonicalize(ctx context.Context, lib resolve.Lib, coord resolve.Coord, cfg resolve.Config) (resolve.Lib, resolve.Coord, error) {
	return lib, coord, nil
}

// DepID uses the version string itself as the identity.
func (u *Universe) DepID(ctx context.Context, lib resolve.Lib, coord resolve.Coord, cfg resolve.Config) (resolve.CoordID, error) {
	c, ok := coord.(Coord)
	if !ok {
		return nil, fmt.Errorf("testuniverse: unexpected coord kind %q", coord.Kind())
	}
	return c.Version, nil
}

// ManifestType is a no-op: this universe has exactly one manifest kind.
func (u *Universe) ManifestType(ctx context.Context, lib resolve.Lib, coord resolve.Coord, cfg resolve.Config) (resolve.Coord, error) {
	return coord, nil
}

// CoordDeps returns the children registered for this exact (lib, version)
// pair via Add.
func (u *Universe) CoordDeps(ctx context.Context, lib resolve.Lib, coord resolve.Coord, manifest resolve.ManifestKind, cfg resolve.Config) ([]resolve.ChildDep, error) {
	c, ok := coord.(Coord)
	if !ok {
		return nil, fmt.Errorf("testuniverse: unexpected coord kind %q", coord.Kind())
	}
	return u.deps[universeKey{lib, c.Version}], nil
}

// CompareVersions compares version strings lexicographically, exactly as
// spec §8 specifies for its synthetic provider.
func (u *Universe) CompareVersions(ctx context.Context, lib resolve.Lib, a, b resolve.Coord, cfg resolve.Config) (int, error) {
	ca, ok := a.(Coord)
	if !ok {
		return 0, fmt.Errorf("testuniverse: unexpected coord kind %q", a.Kind())
	}
	cb, ok := b.(Coord)
	if !ok {
		return 0, fmt.Errorf("testuniverse: unexpected coord kind %q", b.Kind())
	}
	return strings.Compare(ca.Version, cb.Version), nil
}

// CoordPaths returns a single synthetic path per coordinate, derived from
// the library name and version, so materialization has something
// deterministic to assert on.
func (u *Universe) CoordPaths(ctx context.Context, lib resolve.Lib, coord resolve.Coord, manifest resolve.ManifestKind, cfg resolve.Config) ([]string, error) {
	c, ok := coord.(Coord)
	if !ok {
		return nil, fmt.Errorf("testuniverse: unexpected coord kind %q", coord.Kind())
	}
	return []string{fmt.Sprintf("/universe/%s/%s.jar", lib.Name, c.Version)}, nil
}

// LibLocation returns the same path CoordPaths would, for this universe's
// purposes they coincide.
func (u *Universe) LibLocation(ctx context.Context, lib resolve.Lib, coord resolve.Coord, cfg resolve.Config) (string, error) {
	c, ok := coord.(Coord)
	if !ok {
		return "", fmt.Errorf("testuniverse: unexpected coord kind %q", coord.Kind())
	}
	return fmt.Sprintf("/universe/%s/%s.jar", lib.Name, c.Version), nil
}

// CoordSummary renders "name@version".
func (u *Universe) CoordSummary(lib resolve.Lib, coord resolve.Coord) string {
	c, ok := coord.(Coord)
	if !ok {
		return lib.String()
	}
	return fmt.Sprintf("%s@%s", lib.String(), c.Version)
}
