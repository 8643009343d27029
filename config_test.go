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
	"os"
	"path/filepath"
	"testing"
)

func TestNewSettingsDefaults(t *testing.T) {
	s := NewSettings()
	if s.Threads <= 0 {
		t.Errorf("Threads = %d, want > 0", s.Threads)
	}
	if s.Logger == nil {
		t.Errorf("Logger = nil, want a discard logger")
	}
	if s.Trace {
		t.Errorf("Trace = true, want false by default")
	}
}

func TestWithThreadsIgnoresNonPositive(t *testing.T) {
	s := NewSettings(WithThreads(4))
	if s.Threads != 4 {
		t.Fatalf("Threads = %d, want 4", s.Threads)
	}
	s = NewSettings(WithThreads(4), WithThreads(0))
	if s.Threads != 4 {
		t.Errorf("Threads = %d, want 4 (WithThreads(0) should be a no-op)", s.Threads)
	}
}

func TestLoadSettingsTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	if err := os.WriteFile(path, []byte("trace = true\nthreads = 3\n"), 0o644); err != nil {
		t.Fatalf("writing settings file: %v", err)
	}

	s, err := LoadSettingsTOML(path)
	if err != nil {
		t.Fatalf("LoadSettingsTOML() error = %v", err)
	}
	if !s.Trace {
		t.Errorf("Trace = false, want true")
	}
	if s.Threads != 3 {
		t.Errorf("Threads = %d, want 3", s.Threads)
	}
}

func TestLoadSettingsTOMLMissingFile(t *testing.T) {
	if _, err := LoadSettingsTOML("/nonexistent/settings.toml"); err == nil {
		t.Errorf("LoadSettingsTOML() error = nil, want non-nil for a missing file")
	}
}
