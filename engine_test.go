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

package resolve_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/depscore/resolve"
	"github.com/depscore/resolve/internal/testuniverse"
)

// selectedVersions extracts just the version string selected for each
// library, the level of detail every scenario below asserts on.
func selectedVersions(t *testing.T, lm resolve.LibMap) map[string]string {
	t.Helper()
	out := make(map[string]string, len(lm))
	for lib, entry := range lm {
		c, ok := entry.Coord.(testuniverse.Coord)
		if !ok {
			t.Fatalf("entry for %v has unexpected coord type %T", lib, entry.Coord)
		}
		out[lib.Name] = c.Version
	}
	return out
}

func resolveWith(t *testing.T, u *testuniverse.Universe, deps map[string]string) map[string]string {
	t.Helper()
	depsMap := make(map[resolve.Lib]resolve.Coord, len(deps))
	for name, version := range deps {
		depsMap[testuniverse.Lib(name)] = testuniverse.V(version)
	}
	lm, _, _, err := resolve.ResolveDeps(
		context.Background(),
		resolve.DepsMap{Deps: depsMap},
		resolve.ArgsMap{},
		resolve.NewSettings(),
		u,
	)
	if err != nil {
		t.Fatalf("ResolveDeps() error = %v", err)
	}
	return selectedVersions(t, lm)
}

func TestBasicTransitive(t *testing.T) {
	u := testuniverse.New()
	clojure, specAlpha, coreSpecsAlpha := testuniverse.Lib("clojure"), testuniverse.Lib("spec.alpha"), testuniverse.Lib("core.specs.alpha")
	u.Add(clojure, "1.9.0",
		resolve.ChildDep{Lib: specAlpha, Coord: testuniverse.V("0.1.124")},
		resolve.ChildDep{Lib: coreSpecsAlpha, Coord: testuniverse.V("0.1.10")},
	)

	got := resolveWith(t, u, map[string]string{"clojure": "1.9.0"})
	want := map[string]string{
		"clojure":          "1.9.0",
		"spec.alpha":       "0.1.124",
		"core.specs.alpha": "0.1.10",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ResolveDeps() mismatch (-want +got):\n%s", diff)
	}
}

func TestTopWinsOverDeeper(t *testing.T) {
	u := testuniverse.New()
	clojure, specAlpha := testuniverse.Lib("clojure"), testuniverse.Lib("spec.alpha")
	u.Add(clojure, "1.9.0", resolve.ChildDep{Lib: specAlpha, Coord: testuniverse.V("0.1.124")})

	got := resolveWith(t, u, map[string]string{"clojure": "1.9.0", "spec.alpha": "0.1.1"})
	if got["spec.alpha"] != "0.1.1" {
		t.Errorf("spec.alpha = %q, want 0.1.1 (top-dep-wins over the deeper 0.1.124)", got["spec.alpha"])
	}
}

func TestNewerWinsWhenNotTop(t *testing.T) {
	u := testuniverse.New()
	a, b, c := testuniverse.Lib("a"), testuniverse.Lib("b"), testuniverse.Lib("c")
	u.Add(a, "1",
		resolve.ChildDep{Lib: b, Coord: testuniverse.V("1")},
		resolve.ChildDep{Lib: c, Coord: testuniverse.V("2")},
	)
	u.Add(b, "1", resolve.ChildDep{Lib: c, Coord: testuniverse.V("1")})

	got := resolveWith(t, u, map[string]string{"a": "1"})
	want := map[string]string{"a": "1", "b": "1", "c": "2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ResolveDeps() mismatch (-want +got):\n%s", diff)
	}
}

func TestOrphaningByNewerSelection(t *testing.T) {
	u := testuniverse.New()
	a, b, c := testuniverse.Lib("a"), testuniverse.Lib("b"), testuniverse.Lib("c")
	d, e := testuniverse.Lib("d"), testuniverse.Lib("e")

	u.Add(a, "1", resolve.ChildDep{Lib: d, Coord: testuniverse.V("1")})
	u.Add(b, "1", resolve.ChildDep{Lib: e, Coord: testuniverse.V("1")})
	u.Add(c, "1", resolve.ChildDep{Lib: e, Coord: testuniverse.V("2")})
	u.Add(e, "1", resolve.ChildDep{Lib: d, Coord: testuniverse.V("2")})
	u.Add(e, "2") // e2 has no children; only e1 leads to d2.

	got := resolveWith(t, u, map[string]string{"a": "1", "b": "1", "c": "1"})
	want := map[string]string{"a": "1", "b": "1", "c": "1", "d": "1", "e": "2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ResolveDeps() mismatch (-want +got):\n%s", diff)
	}
}

func TestExclusionNarrowingAcrossPaths(t *testing.T) {
	for _, order := range [][2]string{{"a", "b"}, {"b", "a"}} {
		u := testuniverse.New()
		a, b, c, d := testuniverse.Lib("a"), testuniverse.Lib("b"), testuniverse.Lib("c"), testuniverse.Lib("d")

		u.Add(a, "1", resolve.ChildDep{Lib: c, Coord: testuniverse.Excluding(testuniverse.V("1"), d)})
		u.Add(b, "1", resolve.ChildDep{Lib: c, Coord: testuniverse.V("1")})
		u.Add(c, "1", resolve.ChildDep{Lib: d, Coord: testuniverse.V("1")})

		deps := map[string]string{order[0]: "1", order[1]: "1"}
		got := resolveWith(t, u, deps)
		want := map[string]string{"a": "1", "b": "1", "c": "1", "d": "1"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ResolveDeps() with order %v mismatch (-want +got):\n%s", order, diff)
		}
	}
}

func TestCycleTerminates(t *testing.T) {
	u := testuniverse.New()
	a, b, c := testuniverse.Lib("a"), testuniverse.Lib("b"), testuniverse.Lib("c")
	u.Add(a, "1",
		resolve.ChildDep{Lib: b, Coord: testuniverse.V("1")},
		resolve.ChildDep{Lib: c, Coord: testuniverse.V("2")},
	)
	u.Add(b, "1", resolve.ChildDep{Lib: c, Coord: testuniverse.V("1")})
	u.Add(c, "1", resolve.ChildDep{Lib: a, Coord: testuniverse.V("1")})
	u.Add(c, "2", resolve.ChildDep{Lib: a, Coord: testuniverse.V("1")})

	got := resolveWith(t, u, map[string]string{"a": "1"})
	want := map[string]string{"a": "1", "b": "1", "c": "2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ResolveDeps() mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyDepsYieldsEmptyLibMap(t *testing.T) {
	u := testuniverse.New()
	lm, _, _, err := resolve.ResolveDeps(
		context.Background(),
		resolve.DepsMap{Deps: map[resolve.Lib]resolve.Coord{}},
		resolve.ArgsMap{},
		resolve.NewSettings(),
		u,
	)
	if err != nil {
		t.Fatalf("ResolveDeps() error = %v", err)
	}
	if len(lm) != 0 {
		t.Errorf("len(LibMap) = %d, want 0", len(lm))
	}
}

func TestOrphanFilteredWhenConflictResolvesBelowIt(t *testing.T) {
	u := testuniverse.New()
	p, x, q := testuniverse.Lib("p"), testuniverse.Lib("x"), testuniverse.Lib("q")
	y, r := testuniverse.Lib("y"), testuniverse.Lib("r")

	u.Add(p, "1",
		resolve.ChildDep{Lib: x, Coord: testuniverse.V("1")},
		resolve.ChildDep{Lib: q, Coord: testuniverse.V("1")},
	)
	u.Add(x, "1", resolve.ChildDep{Lib: y, Coord: testuniverse.V("1")})
	u.Add(q, "1", resolve.ChildDep{Lib: r, Coord: testuniverse.V("1")})
	// r resolves to a newer x (version "2", which sorts after x's "1"
	// lexicographically, the order testuniverse.CompareVersions uses),
	// displacing x only after y was already selected under the old x.
	u.Add(r, "1", resolve.ChildDep{Lib: x, Coord: testuniverse.V("2")})
	u.Add(x, "2") // x2 has no children; it does not depend on y.

	got := resolveWith(t, u, map[string]string{"p": "1"})
	if _, ok := got["y"]; ok {
		t.Errorf("y present in resolved libs = %v, want it filtered as an orphan (its only selected parent, x@1, was displaced by x@2)", got)
	}
	want := map[string]string{"p": "1", "x": "2", "q": "1", "r": "1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ResolveDeps() mismatch (-want +got):\n%s", diff)
	}
}

func TestSameVersionRecordsAllParentPaths(t *testing.T) {
	u := testuniverse.New()
	a, b, c := testuniverse.Lib("a"), testuniverse.Lib("b"), testuniverse.Lib("c")
	u.Add(a, "1", resolve.ChildDep{Lib: c, Coord: testuniverse.V("1")})
	u.Add(b, "1", resolve.ChildDep{Lib: c, Coord: testuniverse.V("1")})

	lm, _, _, err := resolve.ResolveDeps(
		context.Background(),
		resolve.DepsMap{Deps: map[resolve.Lib]resolve.Coord{
			a: testuniverse.V("1"),
			b: testuniverse.V("1"),
		}},
		resolve.ArgsMap{},
		resolve.NewSettings(),
		u,
	)
	if err != nil {
		t.Fatalf("ResolveDeps() error = %v", err)
	}

	entry, ok := lm[c]
	if !ok {
		t.Fatalf("c missing from LibMap")
	}
	if !entry.Dependents.Contains(a) || !entry.Dependents.Contains(b) {
		t.Errorf("c.Dependents = %v, want it to contain both a and b", entry.Dependents)
	}
}
