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
	"path/filepath"
	"sort"
	"strings"
)

// Alias is one named bundle of extra configuration a DepsMap may carry,
// e.g. a "test" or "build" profile. Only the keys CombineAliases
// recognizes are read; anything else is left for callers.
type Alias struct {
	Deps               map[Lib]Coord
	ExtraDeps          map[Lib]Coord
	OverrideDeps       map[Lib]Coord
	DefaultDeps        map[Lib]Coord
	ClasspathOverrides map[Lib]string
	Paths              []string
	ExtraPaths         []string
	JVMOpts            []string
	MainOpts           []string
}

// ArgsMap is the merged result of combining one or more Aliases: the
// shape resolve_deps' extra_deps/override_deps/default_deps arguments
// take.
type ArgsMap struct {
	ExtraDeps          map[Lib]Coord
	OverrideDeps       map[Lib]Coord
	DefaultDeps        map[Lib]Coord
	ClasspathOverrides map[Lib]string
	Paths              []string
	ExtraPaths         []string
	JVMOpts            []string
	MainOpts           []string
}

// CombineAliases merges the named aliases (looked up in deps, in the
// order given) under the per-key rules §4.7 defines: deps/extra-deps/
// override-deps/default-deps/classpath-overrides merge as maps with the
// rightmost alias winning on key collision; paths/extra-paths concatenate
// then de-duplicate, preserving first-seen order; jvm-opts concatenates;
// main-opts keeps the last non-empty value.
//
// Each alias's Deps are merged into the result's ExtraDeps, together with
// its ExtraDeps — from resolve_deps' point of view both widen the
// dependency set the same way.
func CombineAliases(deps map[string]Alias, keys []string) (ArgsMap, error) {
	out := ArgsMap{
		ExtraDeps:          map[Lib]Coord{},
		OverrideDeps:       map[Lib]Coord{},
		DefaultDeps:        map[Lib]Coord{},
		ClasspathOverrides: map[Lib]string{},
	}

	var seenPaths, seenExtraPaths map[string]struct{}
	seenPaths = map[string]struct{}{}
	seenExtraPaths = map[string]struct{}{}

	for _, key := range keys {
		a, ok := deps[key]
		if !ok {
			return ArgsMap{}, &AliasError{Key: key}
		}
		for l, c := range a.Deps {
			out.ExtraDeps[l] = c
		}
		for l, c := range a.ExtraDeps {
			out.ExtraDeps[l] = c
		}
		for l, c := range a.OverrideDeps {
			out.OverrideDeps[l] = c
		}
		for l, c := range a.DefaultDeps {
			out.DefaultDeps[l] = c
		}
		for l, p := range a.ClasspathOverrides {
			out.ClasspathOverrides[l] = p
		}
		for _, p := range a.Paths {
			if _, dup := seenPaths[p]; !dup {
				seenPaths[p] = struct{}{}
				out.Paths = append(out.Paths, p)
			}
		}
		for _, p := range a.ExtraPaths {
			if _, dup := seenExtraPaths[p]; !dup {
				seenExtraPaths[p] = struct{}{}
				out.ExtraPaths = append(out.ExtraPaths, p)
			}
		}
		out.JVMOpts = append(out.JVMOpts, a.JVMOpts...)
		if len(a.MainOpts) > 0 {
			out.MainOpts = a.MainOpts
		}
	}
	return out, nil
}

// ClasspathOptions carries make_classpath's remaining inputs beyond the
// resolved LibMap.
type ClasspathOptions struct {
	ExtraPaths         []string
	ClasspathOverrides map[Lib]string
}

// MakeClasspath assembles a classpath string from libMap plus paths and
// opts, per §4.7: entries named in ClasspathOverrides have their paths
// replaced with the single override path; the final order is
// ExtraPaths, then paths, then each lib's own paths; blank entries are
// dropped; the result is joined by the platform path separator.
func MakeClasspath(libMap LibMap, paths []string, opts ClasspathOptions) string {
	libs := make([]Lib, 0, len(libMap))
	for lib := range libMap {
		libs = append(libs, lib)
	}
	sort.Slice(libs, func(i, j int) bool { return libs[i].Compare(libs[j]) < 0 })

	var all []string
	all = append(all, opts.ExtraPaths...)
	all = append(all, paths...)
	for _, lib := range libs {
		if override, ok := opts.ClasspathOverrides[lib]; ok {
			all = append(all, override)
			continue
		}
		all = append(all, libMap[lib].Paths...)
	}

	var nonBlank []string
	for _, p := range all {
		if strings.TrimSpace(p) != "" {
			nonBlank = append(nonBlank, p)
		}
	}
	return strings.Join(nonBlank, string(filepath.ListSeparator))
}
