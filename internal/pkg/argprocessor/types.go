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

// Package argprocessor turns a raw compiler command line into the three
// argument vectors a cache wrapper needs (what to run the preprocessor
// with, what extra state to fold into the cache key, and what to run
// the real compiler with), plus a metadata record describing the
// invocation.
//
// Processing is a single synchronous pass over one owned state value:
// each token is dispatched through an ordered rule list, post-loop
// fixups resolve everything that depends on the invocation as a whole,
// and final assembly composes the output vectors. Every failure is a
// typed return value, never a panic or process exit.
package argprocessor

import (
	"io/fs"
	"os"

	"github.com/AlexanderLanin/ccache/internal/pkg/argv"
	"github.com/AlexanderLanin/ccache/internal/pkg/classifier"
	"github.com/AlexanderLanin/ccache/internal/pkg/config"
	"github.com/AlexanderLanin/ccache/internal/pkg/relpath"
)

// Context bundles everything one ProcessArgs call needs beyond the raw
// argument vector: a file-stat oracle, path relativization, environment
// access, and the configuration ProcessArgs may mutate (e.g. disabling
// direct mode).
type Context struct {
	// OrigArgs is the raw, unprocessed command line including argv[0].
	OrigArgs *argv.ArgVector
	// Config is read for mode flags and may be mutated (Direct set to
	// false) as a non-fatal degradation.
	Config *config.Config
	// BaseDir is the directory paths are relativized against. Empty
	// disables relativization (RelTo is a no-op against an empty base).
	BaseDir string
	// ApparentCWD is the working directory to report in places the
	// original uses getcwd(), such as the default -fprofile-generate
	// path for GCC.
	ApparentCWD string
	// Stat resolves a path to file metadata. Defaults to os.Stat when
	// nil (set in tests to a stub that does not touch the real
	// filesystem).
	Stat func(path string) (fs.FileInfo, error)
	// Getenv and Setenv expose the process environment for the
	// DEPENDENCIES_OUTPUT / SUNPRO_DEPENDENCIES fixup. Default to
	// os.Getenv/os.Setenv when nil.
	Getenv func(string) string
	Setenv func(key, value string) error
	// Classifier supplies the option predicates for the compiler
	// dialect in play; callers typically build it with
	// classifier.New(classifier.GuessDialect(argv0)).
	Classifier *classifier.OptionClassifier
	// Dialect records which family Classifier was built for, since a
	// few rules (NVCC's -optf, the GCC/Clang default profile path) key
	// directly off dialect rather than a classifier predicate.
	Dialect classifier.Dialect
	// IsColorTTY reports whether stderr is a color-capable terminal, for
	// the auto setting of -fdiagnostics-color. Defaults to a TERM-based
	// heuristic when nil (set in tests to a fixed stub).
	IsColorTTY func() bool
}

func (c *Context) isColorTTY() bool {
	if c.IsColorTTY != nil {
		return c.IsColorTTY()
	}
	term := c.getenv("TERM")
	return term != "" && term != "dumb"
}

func (c *Context) stat(path string) (fs.FileInfo, error) {
	if c.Stat != nil {
		return c.Stat(path)
	}
	return os.Stat(path)
}

func (c *Context) getenv(key string) string {
	if c.Getenv != nil {
		return c.Getenv(key)
	}
	return os.Getenv(key)
}

func (c *Context) setenv(key, value string) error {
	if c.Setenv != nil {
		return c.Setenv(key, value)
	}
	return os.Setenv(key, value)
}

func (c *Context) relativize(p string) string {
	return relpath.RelTo(c.BaseDir, p)
}

// ArgsInfo is the metadata record ProcessArgs populates as a side
// effect of classifying the command line: where the inputs and outputs
// live, what language is being compiled, and which modes the options
// put the compiler in.
type ArgsInfo struct {
	InputFile string
	OutputObj string
	OutputDep string
	OutputDwo string
	OutputCov string
	OutputSu  string
	OutputDia string

	ActualLanguage string

	ArchArgs           []string
	DebugPrefixMaps    []string
	SanitizeBlacklists []string
	DependExtraArgs    []string

	// IncludedPCHFile is the precompiled header detected on the command
	// line, for later stages to fold into the cache key.
	IncludedPCHFile string

	ProfilePath string

	GeneratingDependencies    bool
	GeneratingDebugInfo       bool
	GeneratingCoverage        bool
	ProfileArcs               bool
	GeneratingStackUsage      bool
	GeneratingDiagnostics     bool
	SeenMDMMD                 bool
	SeenSplitDwarf            bool
	ProfileGenerate           bool
	ProfileUse                bool
	UsingPrecompiledHeader    bool
	FNoPCHTimestamp           bool
	OutputIsPrecompiledHeader bool
	StripDiagnosticsColors    bool
	DirectIFile               bool
	DependencyTargetSpecified bool
}

// ProcessArgsResult is the successful outcome of ProcessArgs: the three
// derived argument vectors plus the populated ArgsInfo record.
type ProcessArgsResult struct {
	PreprocessorArgs *argv.ArgVector
	ExtraArgsToHash  *argv.ArgVector
	CompilerArgs     *argv.ArgVector
	Info             *ArgsInfo
}
