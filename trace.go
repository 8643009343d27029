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
	"fmt"
	"io"
	"strings"
)

const (
	traceIncludeMark = "+ "
	traceOmitMark    = "- "
)

// TraceEntry records a single include decision made by the Expansion
// Engine: the path it was made at, the library and coordinates involved,
// and why the decision went the way it did.
type TraceEntry struct {
	Path          Path
	Lib           Lib
	Coord         Coord
	UseCoord      Coord
	CoordID       CoordID
	OverrideCoord bool
	Include       bool
	Reason        string
}

// TraceLog is the ordered sequence of include decisions made during one
// resolution, returned when Settings.Trace is set.
type TraceLog []TraceEntry

// logDecision appends e to the log (if tracing is on) and emits a
// structured debug record to logger, mirroring the dual
// stdout-plus-structured-log pattern of recording the same event in both
// a human-facing trace and a machine-facing log stream.
func (log *TraceLog) logDecision(s Settings, e TraceEntry) {
	if s.Trace {
		*log = append(*log, e)
	}
	s.Logger.Debug("resolve: include decision",
		"path", e.Path.Key(),
		"lib", e.Lib.String(),
		"coord_id", fmt.Sprint(e.CoordID),
		"override", e.OverrideCoord,
		"include", e.Include,
		"reason", e.Reason,
	)
}

// WriteTo writes a human-readable rendering of the trace log to w, one
// line per decision, indented by path depth — the same "| | +/-" prefix
// style resolvers in this space use for progress logs.
func (log TraceLog) WriteTo(w io.Writer) (int64, error) {
	var n int
	for _, e := range log {
		mark := traceOmitMark
		if e.Include {
			mark = traceIncludeMark
		}
		prefix := strings.Repeat("| ", len(e.Path))
		wrote, _ := fmt.Fprintf(w, "%s%s%s (%s)\n", prefix, mark, e.Lib, e.Reason)
		n += wrote
	}
	return int64(n), nil
}
