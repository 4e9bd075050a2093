// Copyright 2024 The ccache-go Authors
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

// Package config holds the subset of ccache's configuration that the
// argument-processing core consults: direct-mode eligibility, dependency
// generation, and sloppiness relaxations. Callers own the Config; the
// processor mutates it in place for non-fatal degradations.
package config

// Sloppy is a bitset of cache-correctness relaxations a user has
// explicitly opted into, mirroring ccache's sloppiness flags.
type Sloppy uint32

const (
	// SloppyIncludeFileMtime ignores header mtimes that would otherwise
	// force a cache miss.
	SloppyIncludeFileMtime Sloppy = 1 << iota
	// SloppyTimeMacros allows caching despite __DATE__/__TIME__ use.
	SloppyTimeMacros
	// SloppyPCHDefines relaxes the precompiled-header define-set check.
	SloppyPCHDefines
	// SloppyClangIndexStore ignores -index-store-path's absolute-path
	// leakage into the compile command.
	SloppyClangIndexStore
	// SloppyModules permits caching -fmodules invocations; they are
	// accepted only with this bit set and direct and depend mode both on.
	SloppyModules
)

// Has reports whether flag is set in s.
func (s Sloppy) Has(flag Sloppy) bool { return s&flag != 0 }

// Config is the slice of ccache's configuration that argument processing
// consults to decide between direct mode and preprocessor mode, and how
// strictly to enforce cacheability.
type Config struct {
	// Direct enables direct mode (manifest lookup by input-file hash,
	// skipping invocation of the preprocessor on a cache hit).
	Direct bool
	// DependMode enables ccache's depend mode, an optimization on top of
	// direct mode that trusts a prior run's dependency list instead of
	// rehashing headers.
	DependMode bool
	// RunSecondCPP, when true, runs the real compiler on the original
	// source rather than on ccache's own preprocessed output; it is the
	// safer, slower default.
	RunSecondCPP bool
	// CompilerType names the compiler family the caller selected; empty
	// means "auto". Argument processing does not read it: ProcessArgs
	// takes the dialect from Context.Dialect, so a caller that honours an
	// override has to set that field accordingly.
	CompilerType string
	// CPPExtension is the extension (without the dot) used for
	// intermediate preprocessed files. Empty means "derive from the
	// input language", which argument processing fills in.
	CPPExtension string
	// Sloppiness is the set of sloppy relaxations currently enabled.
	Sloppiness Sloppy
}

// Default returns ccache's out-of-the-box configuration: direct mode on,
// depend mode off, conservative second-preprocessor-run on, no
// sloppiness, auto-detected dialect.
func Default() Config {
	return Config{
		Direct:       true,
		DependMode:   false,
		RunSecondCPP: true,
	}
}
