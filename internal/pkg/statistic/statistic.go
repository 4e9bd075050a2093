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

// Package statistic defines the terminal dispositions an argument-
// processing pass can report, and the error type that carries one. The
// caller treats the value both as a disposition (run the real compiler,
// fail, and so on) and as a counter key for statistics.
package statistic

import "fmt"

// Statistic names why argument processing could not produce a cacheable
// compilation.
type Statistic int

const (
	// CalledForPreprocessing means the invocation already is a
	// preprocessing invocation (-E); ccache only caches compilations.
	CalledForPreprocessing Statistic = iota
	// CalledForLink means no -c/-S was given and the compiler was invoked
	// to link, which ccache does not cache.
	CalledForLink
	// AutoconfTest means the invocation looks like an autoconf conftest.c
	// probe, which ccache intentionally declines to cache.
	AutoconfTest
	// MultipleSourceFiles means more than one input source file was given.
	MultipleSourceFiles
	// UnsupportedSourceLanguage means the input file's language could not
	// be determined to be one ccache supports.
	UnsupportedSourceLanguage
	// UnsupportedCompilerOption means an option in the too-hard table was
	// seen.
	UnsupportedCompilerOption
	// BadCompilerArguments means the arguments are malformed in a way that
	// would also cause the real compiler invocation to fail, such as an
	// option requiring a value at the end of the argument list.
	BadCompilerArguments
	// BadOutputFile means -o was given a path ccache cannot use, such as a
	// directory.
	BadOutputFile
	// OutputToStdout means the compiler was asked to write its result to
	// standard output.
	OutputToStdout
	// NoInputFile means no source file was found on the command line.
	NoInputFile
	// CouldNotUseModules means a modules-related option forced a bailout.
	CouldNotUseModules
	// CouldNotUsePrecompiledHeader means a precompiled-header option
	// combination ccache cannot reproduce through the cache was seen.
	CouldNotUsePrecompiledHeader
)

var names = [...]string{
	"called_for_preprocessing",
	"called_for_link",
	"autoconf_test",
	"multiple_source_files",
	"unsupported_source_language",
	"unsupported_compiler_option",
	"bad_compiler_arguments",
	"bad_output_file",
	"output_to_stdout",
	"no_input_file",
	"could_not_use_modules",
	"could_not_use_precompiled_header",
}

// String returns the counter name ccache-args would report for s.
func (s Statistic) String() string {
	if s < 0 || int(s) >= len(names) {
		return "unknown_statistic"
	}
	return names[s]
}

// Error is the terminal result of an argument-processing pass that
// cannot produce a cacheable invocation. It carries the Statistic to
// count plus an optional underlying cause.
type Error struct {
	Stat  Statistic
	Msg   string
	cause error
}

// New returns an *Error for stat with the given message, no cause.
func New(stat Statistic, msg string) *Error {
	return &Error{Stat: stat, Msg: msg}
}

// Wrap returns an *Error for stat whose message includes cause's text and
// whose Unwrap returns cause.
func Wrap(stat Statistic, msg string, cause error) *Error {
	return &Error{Stat: stat, Msg: msg, cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stat, e.Msg, e.cause)
	}
	if e.Msg == "" {
		return e.Stat.String()
	}
	return fmt.Sprintf("%s: %s", e.Stat, e.Msg)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }
