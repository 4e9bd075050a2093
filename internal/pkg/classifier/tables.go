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

package classifier

// commonOptions holds the option predicates shared by GCC, Clang, and
// every dialect derived from them. Options whose dedicated rule in
// argprocessor's dispatch loop comes after the generic too-hard and
// affects-comp rules (e.g. -c, -S, -MD, -fmodules, -fprofile-generate,
// --coverage, -gsplit-dwarf, -fdebug-prefix-map=) deliberately carry no
// affectsComp / tooHard predicate here: giving such an option one would
// let a generic rule claim it before its dedicated rule ever runs.
func commonOptions() map[string]option {
	return map[string]option{
		// Options that defeat caching outright: interactive or
		// output-to-elsewhere modes ccache cannot intercept.
		"-E":          {tooHard: true},
		"--help":      {tooHard: true},
		"--version":   {tooHard: true},
		"-specs":      {tooHard: true, takesArg: true},
		"--specs":     {tooHard: true, takesArg: true},
		"-save-temps": {tooHard: true},

		// -M/-MM/-MG ask the compiler to emit a makefile instead of an
		// object file; ccache has nowhere to route that output, so these
		// defeat caching outright rather than merely forcing preprocessor
		// mode.
		"-M":  {tooHard: true, affectsCPP: true},
		"-MM": {tooHard: true, affectsCPP: true},
		"-MG": {tooHard: true, affectsCPP: true},

		"-MF": {takesArg: true, takesConcatArg: true, takesPath: true},
		"-MT": {takesArg: true, takesConcatArg: true},
		"-MQ": {takesArg: true, takesConcatArg: true},

		"-o": {takesArg: true, takesPath: true},

		"-B":        {takesArg: true, takesConcatArg: true, takesPath: true},
		"--sysroot": {takesArg: true, takesConcatArg: true, takesPath: true, affectsCPP: true},

		"-I":           {takesArg: true, takesConcatArg: true, takesPath: true, affectsCPP: true},
		"-isystem":     {takesArg: true, takesConcatArg: true, takesPath: true, affectsCPP: true},
		"-iquote":      {takesArg: true, takesConcatArg: true, takesPath: true, affectsCPP: true},
		"-idirafter":   {takesArg: true, takesConcatArg: true, takesPath: true, affectsCPP: true},
		"-iprefix":     {takesArg: true, takesConcatArg: true, takesPath: true, affectsCPP: true},
		"-iwithprefix": {takesArg: true, takesConcatArg: true, takesPath: true, affectsCPP: true},
		"-include":     {takesArg: true, takesPath: true, affectsCPP: true},
		"-imacros":     {takesArg: true, takesPath: true, affectsCPP: true},
		"-include-pch": {takesArg: true, takesPath: true, affectsCPP: true},
		"-include-pth": {takesArg: true, takesPath: true, affectsCPP: true},

		"-D": {takesArg: true, takesConcatArg: true, affectsCPP: true},
		"-U": {takesArg: true, takesConcatArg: true, affectsCPP: true},

		"-x": {takesArg: true, affectsCPP: true},

		// These force a fallback to preprocessor mode (rule 6 disables
		// direct mode) but are still routed to common_args by the
		// dedicated profiling sub-protocol (rule 23), not by this table.
		"-fprofile-generate": {tooHardForDirect: true},
		"-fprofile-use":      {tooHardForDirect: true, takesConcatArg: true},

		"-Xclang":        {takesArg: true},
		"-Xlinker":       {takesArg: true, affectsComp: true},
		"-Xassembler":    {takesArg: true, affectsComp: true},
		"-Xpreprocessor": {takesArg: true, tooHardForDirect: true, affectsCPP: true},
		"-Werror":        {affectsComp: true},
		"-Wa,":           {prefixAffectsComp: true},
		"-Wp,":           {prefixAffectsCPP: true},
		"-Wl,":           {prefixAffectsComp: true},
	}
}

// nvccOptions adds/overrides entries for the CUDA device compiler
// driver: its -optf response files (expanded in argprocessor, not here)
// and its device-link options, which are too hard since NVCC may invoke
// a whole secondary compiler pipeline it does not expose to us.
func nvccOptions() map[string]option {
	return map[string]option{
		"-dlink":     {tooHard: true},
		"-dlto":      {tooHard: true},
		"-optf":      {takesArg: true},
		"-Xcompiler": {takesArg: true},
		"-Xptxas":    {takesArg: true},
	}
}

// intelOptions adds the handful of icc/icpc-only spellings that alias GCC
// options but aren't recognized by HasPrefix against the common table.
func intelOptions() map[string]option {
	return map[string]option{
		"-ipo": {tooHardForDirect: true, affectsComp: true},
	}
}

// commonPrefixes holds prefix-matched predicates, consulted after exact
// match fails. Order matters only in that the first matching prefix wins;
// the set below is mutually disjoint by construction.
func commonPrefixes() []prefixEntry {
	return []prefixEntry{
		{prefix: "-I", option: option{takesConcatArg: true, affectsCPP: true}},
		{prefix: "-D", option: option{takesConcatArg: true, affectsCPP: true}},
		{prefix: "-U", option: option{takesConcatArg: true, affectsCPP: true}},
		{prefix: "-Wp,", option: option{prefixAffectsCPP: true}},
		{prefix: "-Wa,", option: option{prefixAffectsComp: true}},
		{prefix: "-Wl,", option: option{prefixAffectsComp: true}},
		{prefix: "-fsanitize=", option: option{affectsComp: true}},
		{prefix: "-fplugin=", option: option{tooHard: true}},
		{prefix: "-specs=", option: option{tooHard: true}},
		{prefix: "--specs=", option: option{tooHard: true}},
		{prefix: "-save-temps=", option: option{tooHard: true}},
		{prefix: "--sysroot=", option: option{affectsCPP: true}},
	}
}
