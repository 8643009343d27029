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
	"context"
	"errors"
	"testing"
)

type fakeProvider struct {
	paths map[string][]string
}

func (p fakeProvider) Canonicalize(ctx context.Context, lib Lib, coord Coord, cfg Config) (Lib, Coord, error) {
	return lib, coord, nil
}
func (p fakeProvider) DepID(ctx context.Context, lib Lib, coord Coord, cfg Config) (CoordID, error) {
	return coord.(testSimpleCoord).Version, nil
}
func (p fakeProvider) ManifestType(ctx context.Context, lib Lib, coord Coord, cfg Config) (Coord, error) {
	return coord, nil
}
func (p fakeProvider) CoordDeps(ctx context.Context, lib Lib, coord Coord, manifest ManifestKind, cfg Config) ([]ChildDep, error) {
	return nil, nil
}
func (p fakeProvider) CompareVersions(ctx context.Context, lib Lib, a, b Coord, cfg Config) (int, error) {
	return 0, nil
}
func (p fakeProvider) CoordPaths(ctx context.Context, lib Lib, coord Coord, manifest ManifestKind, cfg Config) ([]string, error) {
	return p.paths[lib.Name], nil
}
func (p fakeProvider) LibLocation(ctx context.Context, lib Lib, coord Coord, cfg Config) (string, error) {
	return "", nil
}
func (p fakeProvider) CoordSummary(lib Lib, coord Coord) string {
	return lib.String()
}

func TestMaterializeCollapsesDependentsAndPaths(t *testing.T) {
	vm := NewVersionMap()
	a, b := Lib{Name: "a"}, Lib{Name: "b"}

	vm.AddVersion(a, testCoord("1"), "1", Path{})
	vm.SelectVersion(a, "1", true)

	vm.AddVersion(b, testCoord("1"), "1", Path{a})
	vm.SelectVersion(b, "1", false)

	provider := fakeProvider{paths: map[string][]string{
		"a": {"/a.jar"},
		"b": {"/b.jar"},
	}}

	ctx := context.Background()
	ex := NewExecutor(ctx, 2, nil)
	lm, err := materialize(ctx, ex, provider, nil, vm)
	if err != nil {
		t.Fatalf("materialize() error = %v", err)
	}

	if got := lm[a].Dependents; len(got) != 0 {
		t.Errorf("a.Dependents = %v, want empty (top dep)", got)
	}
	if got := lm[b].Dependents; !got.Contains(a) {
		t.Errorf("b.Dependents = %v, want to contain a", got)
	}
	if got := lm[a].Paths; len(got) != 1 || got[0] != "/a.jar" {
		t.Errorf("a.Paths = %v, want [/a.jar]", got)
	}
}

func TestMaterializePropagatesProviderError(t *testing.T) {
	vm := NewVersionMap()
	a := Lib{Name: "a"}
	vm.AddVersion(a, testCoord("1"), "1", Path{})
	vm.SelectVersion(a, "1", true)

	ctx := context.Background()
	ex := NewExecutor(ctx, 2, nil)
	_, err := materialize(ctx, ex, failingProvider{}, nil, vm)
	if err == nil {
		t.Fatalf("materialize() error = nil, want non-nil")
	}
}

type failingProvider struct{ fakeProvider }

func (failingProvider) CoordPaths(ctx context.Context, lib Lib, coord Coord, manifest ManifestKind, cfg Config) ([]string, error) {
	return nil, errBoom
}

var errBoom = errors.New("boom")
