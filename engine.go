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

// queueKind distinguishes the two shapes of entry the main loop's queue
// carries: a concrete node to visit, or an in-flight fetch of a node's
// children.
type queueKind int

const (
	itemPath queueKind = iota
	itemChildLookup
)

// queueItem is an entry in q. For itemPath, path is the node to process.
// For itemChildLookup, handle yields the children discovered for
// parentPath's last element, to be filtered by pred before being turned
// into new path items.
type queueItem struct {
	kind       queueKind
	path       Path
	handle     *Handle[[]ChildDep]
	parentPath Path
	pred       childPred
}

// coordSet bundles the override-deps or default-deps maps an engine run
// was seeded with.
type coordSet map[Lib]Coord

// chooseCoord implements §4.5's choose: override wins, then the edge's
// own coord, then the default.
func chooseCoord(override, edge, def Coord) Coord {
	if override != nil {
		return override
	}
	if edge != nil {
		return edge
	}
	return def
}

// engine holds the coordinator-owned state for one resolution run. Only
// the goroutine running run() ever touches vmap, tracker, trace, edgeCoord,
// q or pendq, so none of it needs locking — exactly the single-threaded
// coordinator plus worker pool model this package follows throughout.
type engine struct {
	provider Provider
	cfg      Config
	settings Settings

	override coordSet
	def      coordSet

	vmap    *VersionMap
	tracker *ExclusionTracker
	trace   TraceLog

	// edgeCoord records, for each Path a queue item was created for, the
	// Coord that edge arrived with (Path itself carries only the Lib
	// chain). Indexed by Path.Key.
	edgeCoord map[string]Coord

	q     []queueItem
	pendq []Path
}

func newEngine(provider Provider, cfg Config, settings Settings, override, def coordSet) *engine {
	return &engine{
		provider:  provider,
		cfg:       cfg,
		settings:  settings,
		override:  override,
		def:       def,
		vmap:      NewVersionMap(),
		tracker:   NewExclusionTracker(),
		edgeCoord: make(map[string]Coord),
	}
}

// seed enqueues one path item per top-level dependency, in input order.
func (e *engine) seed(tops []ChildDep) {
	for _, top := range tops {
		p := Path{top.Lib}
		e.edgeCoord[p.Key()] = top.Coord
		e.q = append(e.q, queueItem{kind: itemPath, path: p})
	}
}

// run drives the main loop described in §4.5: repeatedly take the head of
// pendq if non-empty, else pop q, until both are exhausted. It returns the
// first error it meets, matching the all-or-nothing policy in §7: a failed
// Provider call made while processing a node returns at once, while a
// failed CoordDeps fetch is returned when its child-lookup item is popped
// from q.
func (e *engine) run(ctx context.Context, ex *Executor) error {
	for {
		var item queueItem
		switch {
		case len(e.pendq) > 0:
			item = queueItem{kind: itemPath, path: e.pendq[0]}
			e.pendq = e.pendq[1:]
		case len(e.q) > 0:
			item = e.q[0]
			e.q = e.q[1:]
		default:
			return nil
		}

		if item.kind == itemChildLookup {
			children, err := item.handle.Get(ctx)
			if err != nil {
				return err
			}
			for _, c := range children {
				if item.pred != nil && !item.pred(c.Lib) {
					continue
				}
				p := item.parentPath.Append(c.Lib)
				e.edgeCoord[p.Key()] = c.Coord
				e.pendq = append(e.pendq, p)
			}
			continue
		}

		if err := e.processNode(ctx, ex, item.path); err != nil {
			return err
		}
	}
}

// processNode implements §4.5's per-path processing and include-decision
// table for a single dequeued Path.
func (e *engine) processNode(ctx context.Context, ex *Executor, path Path) error {
	parents, lib := path.Parent()
	edge := e.edgeCoord[path.Key()]

	coord := chooseCoord(e.override[lib], edge, e.def[lib])
	lib, coord, err := e.provider.Canonicalize(ctx, lib, coord, e.cfg)
	if err != nil {
		return &ProviderError{Lib: lib, Coord: coord, Op: "Canonicalize", Cause: err}
	}
	coord, err = e.provider.ManifestType(ctx, lib, coord, e.cfg)
	if err != nil {
		return &ProviderError{Lib: lib, Coord: coord, Op: "ManifestType", Cause: err}
	}
	id, err := e.provider.DepID(ctx, lib, coord, e.cfg)
	if err != nil {
		return &ProviderError{Lib: lib, Coord: coord, Op: "DepID", Cause: err}
	}

	include, reason, addVersion, err := e.decide(ctx, parents, lib, coord, id)
	if err != nil {
		return err
	}
	if addVersion {
		e.vmap.AddVersion(lib, coord, id, parents)
	}
	if include {
		e.vmap.SelectVersion(lib, id, len(parents) == 0)
	}

	e.trace.logDecision(e.settings, TraceEntry{
		Path:          parents,
		Lib:           lib,
		Coord:         edge,
		UseCoord:      coord,
		CoordID:       id,
		OverrideCoord: e.override[lib] != nil,
		Include:       include,
		Reason:        string(reason),
	})

	pred, enqueue := e.tracker.Update(lib, coord, id, path, include, reason)
	if !enqueue {
		return nil
	}

	manifest := coord.Common().Manifest
	task := func(taskCtx context.Context) ([]ChildDep, error) {
		children, err := e.provider.CoordDeps(taskCtx, lib, coord, manifest, e.cfg)
		if err != nil {
			return nil, &ProviderError{Lib: lib, Coord: coord, Op: "CoordDeps", Cause: err}
		}
		return children, nil
	}
	handle := Submit(ex, task)
	e.q = append(e.q, queueItem{
		kind:       itemChildLookup,
		handle:     handle,
		parentPath: path,
		pred:       pred,
	})
	return nil
}

// decide implements §4.5's 8-rule include-decision table. It returns
// whether the node is included, why, and whether add_version must be
// called regardless of inclusion (rules 1, 5, 6, 7).
func (e *engine) decide(ctx context.Context, parents Path, lib Lib, coord Coord, id CoordID) (include bool, reason includeReason, addVersion bool, err error) {
	switch {
	case len(parents) == 0:
		return true, reasonNewTopDep, true, nil

	case e.tracker.Excluded(parents, lib):
		return false, reasonExcluded, false, nil

	case e.vmap.IsTop(lib):
		return false, reasonUseTop, false, nil

	case e.vmap.ParentMissing(parents):
		return false, reasonParentOmitted, false, nil

	case !e.vmap.Has(lib):
		return true, reasonNewDep, true, nil

	default:
		selected, _ := e.vmap.SelectedID(lib)
		if id == selected {
			return false, reasonSameVersion, true, nil
		}
		selectedCoord, _ := e.vmap.SelectedCoord(lib)
		cmp, cmpErr := e.provider.CompareVersions(ctx, lib, coord, selectedCoord, e.cfg)
		if cmpErr != nil {
			return false, "", false, &ProviderError{Lib: lib, Coord: coord, Op: "CompareVersions", Cause: cmpErr}
		}
		if cmp > 0 {
			return true, reasonNewerVersion, true, nil
		}
		return false, reasonOlderVersion, false, nil
	}
}
