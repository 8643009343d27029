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

import "fmt"

// ProviderError wraps any failure from a Provider call: I/O, parsing, a
// missing artifact, or a malformed coordinate. The engine treats every
// ProviderError as fatal to the whole resolution.
type ProviderError struct {
	Lib   Lib
	Coord Coord
	Op    string
	Cause error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("resolve: provider %s(%s %v): %v", e.Op, e.Lib, e.Coord, e.Cause)
}

func (e *ProviderError) Unwrap() error { return e.Cause }

// AliasError reports an unrecognized alias key passed to CombineAliases.
type AliasError struct {
	Key string
}

func (e *AliasError) Error() string {
	return fmt.Sprintf("resolve: unknown alias key %q", e.Key)
}

// ConfigError reports malformed input discovered before expansion begins,
// such as an unreadable settings file.
type ConfigError struct {
	Msg   string
	Cause error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resolve: config: %s: %v", e.Msg, e.Cause)
	}
	return fmt.Sprintf("resolve: config: %s", e.Msg)
}

func (e *ConfigError) Unwrap() error { return e.Cause }
