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

/*
Package resolve performs transitive dependency resolution over an
extensible coordinate model.

ResolveDeps walks a set of top-level library coordinates breadth-first,
fetching child dependencies concurrently through a pluggable Provider,
applying a top-dep-wins / newer-wins conflict policy, and honoring
per-edge exclusions that narrow correctly as the same library is reached
through multiple parents. The result is a flat LibMap from every
transitively required library to the single coordinate chosen for it,
together with the local paths that coordinate contributes to a
classpath.

Apart from LoadSettingsTOML, which reads a settings file, the package
performs no I/O itself: everything that touches a registry, a
filesystem or the network during resolution is delegated to a Provider
implementation supplied by the caller.
*/
package resolve

import (
	"context"
	"sort"
)

// DepsMap is the top-level input to ResolveDeps: the coordinates listed
// directly by the project, plus whatever provider-specific configuration
// (repositories, credentials, ...) its Provider needs. The core engine
// never reads Config; it is passed through to every Provider call
// unchanged.
type DepsMap struct {
	Deps   map[Lib]Coord
	Config Config
}

// sortLibsStable orders libs by Lib.Compare, so that runs over the same
// input produce the same traversal order regardless of Go's randomized
// map iteration.
func sortLibsStable(libs []Lib) {
	sort.Slice(libs, func(i, j int) bool { return libs[i].Compare(libs[j]) < 0 })
}

// ResolveDeps expands deps transitively through provider, applying
// extra/override/default deps from args, and returns the flat LibMap of
// every library reached, each with its selected coordinate, materialized
// paths and direct dependents.
//
// A library listed in both deps.Deps and args.ExtraDeps is seeded once,
// using deps.Deps' coordinate: deps_map's own deps take priority over an
// alias's extra-deps, matching the "first listed wins" rule for
// top-vs-top conflicts.
//
// When settings.Trace is set, the returned TraceLog records every
// include decision made during expansion, and the returned exclusion
// snapshot holds the exclusion sets in effect at the end of the run,
// keyed by Path.Key.
func ResolveDeps(ctx context.Context, deps DepsMap, args ArgsMap, settings Settings, provider Provider) (LibMap, TraceLog, map[string]LibSet, error) {
	seen := make(map[Lib]bool, len(deps.Deps)+len(args.ExtraDeps))
	var order []Lib
	for lib := range deps.Deps {
		seen[lib] = true
		order = append(order, lib)
	}
	for lib := range args.ExtraDeps {
		if !seen[lib] {
			seen[lib] = true
			order = append(order, lib)
		}
	}
	sortLibsStable(order)

	top := make([]ChildDep, 0, len(order))
	for _, lib := range order {
		if c, ok := deps.Deps[lib]; ok {
			top = append(top, ChildDep{Lib: lib, Coord: c})
			continue
		}
		top = append(top, ChildDep{Lib: lib, Coord: args.ExtraDeps[lib]})
	}

	var limiter interface{ Wait(context.Context) error }
	if settings.Limiter != nil {
		limiter = settings.Limiter
	}
	ex := NewExecutor(ctx, settings.Threads, limiter)
	eng := newEngine(provider, deps.Config, settings, coordSet(args.OverrideDeps), coordSet(args.DefaultDeps))
	eng.seed(top)

	if err := eng.run(ctx, ex); err != nil {
		return nil, nil, nil, err
	}
	if err := ex.Wait(); err != nil {
		return nil, nil, nil, err
	}

	matEx := NewExecutor(ctx, settings.Threads, limiter)
	libMap, err := materialize(ctx, matEx, provider, deps.Config, eng.vmap)
	if err != nil {
		return nil, nil, nil, err
	}

	if !settings.Trace {
		return libMap, nil, nil, nil
	}
	return libMap, eng.trace, eng.tracker.Snapshot(), nil
}
