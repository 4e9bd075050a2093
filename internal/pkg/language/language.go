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

// Package language maps source-file extensions and -x language names to
// the internal language identifiers argprocessor tracks, and answers the
// handful of predicates argument processing needs about a resolved
// language: whether it names a precompiled header, whether it is
// already preprocessed, and which language name the real compiler
// expects once it is fed preprocessed output.
package language

import "strings"

// entry describes one language identifier's properties.
type entry struct {
	// preprocessed is the language name real compilers expect for this
	// language's already-preprocessed form.
	preprocessed string
	// cppExtension is the extension ccache gives the intermediate
	// preprocessed file for this language.
	cppExtension string
	// isPreprocessed marks a language whose files are already
	// preprocessed and need no second pass.
	isPreprocessed bool
}

var languages = map[string]entry{
	"c":                        {preprocessed: "cpp-output", cppExtension: ".i"},
	"cpp-output":               {preprocessed: "cpp-output", cppExtension: ".i", isPreprocessed: true},
	"c++":                      {preprocessed: "c++-cpp-output", cppExtension: ".ii"},
	"c++-cpp-output":           {preprocessed: "c++-cpp-output", cppExtension: ".ii", isPreprocessed: true},
	"objective-c":              {preprocessed: "objective-c-cpp-output", cppExtension: ".mi"},
	"objective-c-cpp-output":   {preprocessed: "objective-c-cpp-output", cppExtension: ".mi", isPreprocessed: true},
	"objective-c++":            {preprocessed: "objective-c++-cpp-output", cppExtension: ".mii"},
	"objective-c++-cpp-output": {preprocessed: "objective-c++-cpp-output", cppExtension: ".mii", isPreprocessed: true},
	"cu":                       {preprocessed: "cu", cppExtension: ".cu"},
	"assembler":                {preprocessed: "assembler", cppExtension: ".s"},
	"assembler-with-cpp":       {preprocessed: "assembler-with-cpp", cppExtension: ".sx"},
	"c-header":                 {preprocessed: "c-header", cppExtension: ".i"},
	"c++-header":               {preprocessed: "c++-header", cppExtension: ".ii"},
	"objective-c-header":       {preprocessed: "objective-c-header", cppExtension: ".mi"},
	"objective-c++-header":     {preprocessed: "objective-c++-header", cppExtension: ".mii"},
}

// extensionToLanguage is the extension table consulted by ForFile.
var extensionToLanguage = map[string]string{
	".c":   "c",
	".i":   "cpp-output",
	".cc":  "c++",
	".cp":  "c++",
	".cxx": "c++",
	".cpp": "c++",
	".c++": "c++",
	".C":   "c++",
	".ii":  "c++-cpp-output",
	".m":   "objective-c",
	".mi":  "objective-c-cpp-output",
	".mm":  "objective-c++",
	".M":   "objective-c++",
	".mii": "objective-c++-cpp-output",
	".cu":  "cu",
	".s":   "assembler",
	".S":   "assembler-with-cpp",
	".sx":  "assembler-with-cpp",
	".h":   "c-header",
	".hh":  "c++-header",
	".H":   "c++-header",
	".hpp": "c++-header",
	".hxx": "c++-header",
	".gch": "c++-header",
	".pch": "c++-header",
}

// ForFile returns the language implied by path's extension, or "" if the
// extension is unrecognized.
func ForFile(path string) string {
	ext := extOf(path)
	if ext == "" {
		return ""
	}
	return extensionToLanguage[ext]
}

func extOf(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	slash := strings.LastIndexAny(path, "/\\")
	if i < slash {
		return ""
	}
	return path[i:]
}

// IsSupported reports whether lang is a language ccache recognizes.
func IsSupported(lang string) bool {
	_, ok := languages[lang]
	return ok
}

// IsPreprocessed reports whether files in lang are already preprocessed
// and need no second preprocessing pass.
func IsPreprocessed(lang string) bool {
	return languages[lang].isPreprocessed
}

// IsPrecompiledHeader reports whether lang names a precompiled-header
// language.
func IsPrecompiledHeader(lang string) bool {
	return strings.HasSuffix(lang, "-header")
}

// PLanguage returns the language name the real compiler should be told
// (via -x) once ccache has already preprocessed a file in lang. Returns
// "" for an unrecognized language.
func PLanguage(lang string) string {
	return languages[lang].preprocessed
}

// CPPExtension returns the extension ccache uses for the intermediate
// preprocessed file of a source written in lang. Returns "" for an
// unrecognized language.
func CPPExtension(lang string) string {
	return languages[lang].cppExtension
}
