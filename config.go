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
	"io"
	"log/slog"
	"runtime"

	"github.com/BurntSushi/toml"
	"golang.org/x/time/rate"
)

// Settings configures a resolution run: spec.md's settings map
// ({trace?, threads?}), plus the ambient logging and throttling knobs this
// implementation adds.
type Settings struct {
	// Trace, when true, makes ResolveDeps attach a TraceLog and the final
	// exclusion set to its result.
	Trace bool
	// Threads bounds the number of concurrent Provider calls in flight.
	// Defaults to runtime.NumCPU().
	Threads int
	// Logger receives a structured debug record for every include
	// decision, independent of Trace. Defaults to a disabled logger.
	Logger *slog.Logger
	// Limiter, if set, throttles Provider calls made by the Executor.
	Limiter *rate.Limiter
}

// Option configures a Settings value, following the functional-options
// style used throughout this codebase for anything with more than a
// couple of optional knobs.
type Option func(*Settings)

// WithTrace enables or disables trace collection.
func WithTrace(on bool) Option {
	return func(s *Settings) { s.Trace = on }
}

// WithThreads sets the Executor's worker pool size. Values <= 0 are
// ignored, leaving the default in place.
func WithThreads(n int) Option {
	return func(s *Settings) {
		if n > 0 {
			s.Threads = n
		}
	}
}

// WithLogger sets the structured logger used for per-decision debug
// records.
func WithLogger(l *slog.Logger) Option {
	return func(s *Settings) { s.Logger = l }
}

// WithRateLimit throttles Provider calls to at most rps per second, with
// the given burst allowance. Use this when the Provider is backed by a
// real, rate-limited registry.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Settings) { s.Limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// NewSettings builds a Settings from defaults plus the given options.
func NewSettings(opts ...Option) Settings {
	s := Settings{
		Threads: runtime.NumCPU(),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.Threads <= 0 {
		s.Threads = runtime.NumCPU()
	}
	return s
}

// settingsFile is the on-disk shape LoadSettingsTOML reads. Only the
// fields spec.md's settings map defines are persisted; Logger and Limiter
// remain in-process-only concerns configured via Option.
type settingsFile struct {
	Trace   bool `toml:"trace"`
	Threads int  `toml:"threads"`
}

// LoadSettingsTOML reads a Settings from a TOML file, for callers that
// keep resolver settings alongside their coordinates in a project file
// rather than constructing Options in code.
func LoadSettingsTOML(path string, extra ...Option) (Settings, error) {
	var f settingsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return Settings{}, &ConfigError{Msg: "reading settings file " + path, Cause: err}
	}
	opts := append([]Option{WithTrace(f.Trace), WithThreads(f.Threads)}, extra...)
	return NewSettings(opts...), nil
}
