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

package argprocessor

import (
	"path/filepath"
	"strings"

	log "github.com/golang/glog"

	"github.com/AlexanderLanin/ccache/internal/pkg/arg"
	"github.com/AlexanderLanin/ccache/internal/pkg/argv"
	"github.com/AlexanderLanin/ccache/internal/pkg/classifier"
	"github.com/AlexanderLanin/ccache/internal/pkg/config"
	"github.com/AlexanderLanin/ccache/internal/pkg/language"
	"github.com/AlexanderLanin/ccache/internal/pkg/statistic"
)

// colorMode mirrors the three-valued -fdiagnostics-color setting.
type colorMode int

const (
	colorAuto colorMode = iota
	colorNever
	colorAlways
)

// paramReg is one parameter registration applied to the raw argument
// vector before dispatch, so space-separated option values arrive at
// the dispatch loop already fused onto their option.
type paramReg struct {
	name   string
	splits []arg.Split
}

var paramRegistrations = []paramReg{
	{"--ccache-skip", []arg.Split{arg.Space}},
	{"-optf", []arg.Split{arg.Space}},
	{"--options-file", []arg.Split{arg.Space}},
	{"-arch", []arg.Split{arg.Space, arg.WrittenTogether}},
	{"-x", []arg.Split{arg.Space, arg.WrittenTogether}},
	{"-MF", []arg.Split{arg.Space, arg.Equal, arg.WrittenTogether}},
	{"-MQ", []arg.Split{arg.Space, arg.WrittenTogether}},
	{"-MT", []arg.Split{arg.Space, arg.WrittenTogether}},
}

// state is the workspace ProcessArgs threads through the dispatch loop:
// the per-invocation flags the rules accumulate plus the four category
// vectors the final assembly composes from.
type state struct {
	foundCOpt                         bool
	foundDCOpt                        bool
	foundSOpt                         bool
	foundPCH                          bool
	foundFpchPreprocess               bool
	foundDirectivesOnly               bool
	foundRewriteIncludes              bool
	dependencyFilenameSpecified       bool
	dependencyImplicitTargetSpecified bool
	generatingDebuginfoLevel3         bool

	colorDiagnostics colorMode

	explicitLanguage   string
	inputCharsetOption string
	includedPCHFile    string

	commonArgs       *argv.ArgVector
	cppArgs          *argv.ArgVector
	depArgs          *argv.ArgVector
	compilerOnlyArgs *argv.ArgVector

	info *ArgsInfo
}

func newState(compiler arg.Arg) *state {
	st := &state{
		colorDiagnostics: colorAuto,
		commonArgs:       argv.FromArgs(nil),
		cppArgs:          argv.FromArgs(nil),
		depArgs:          argv.FromArgs(nil),
		compilerOnlyArgs: argv.FromArgs(nil),
		info:             &ArgsInfo{},
	}
	st.commonArgs.PushBack(compiler)
	return st
}

// ProcessArgs is the single entry point: it consumes ctx.OrigArgs and
// returns the three derived argument vectors plus the populated ArgsInfo,
// or a terminal *statistic.Error explaining why the invocation cannot be
// cached.
func ProcessArgs(ctx *Context) (*ProcessArgsResult, error) {
	if ctx.Classifier == nil {
		ctx.Classifier = classifier.New(ctx.Dialect)
	}
	args := ctx.OrigArgs.Clone()
	for _, p := range paramRegistrations {
		args.AddParam(p.name, p.splits)
	}
	if args.Len() == 0 {
		return nil, statistic.New(statistic.BadCompilerArguments, "empty argument vector")
	}

	st := newState(args.At(0))

	i := 1
	for i < args.Len() {
		next, serr := dispatch(ctx, st, args, i)
		if serr != nil {
			return nil, serr
		}
		i = next
	}

	if serr := postLoopFixups(ctx, st); serr != nil {
		return nil, serr
	}

	return assemble(ctx, st), nil
}

// dispatch applies the first matching rule to args.At(i) and returns
// the index to resume from. The rule order encodes tie-breaks between
// overlapping option shapes and is load-bearing.
func dispatch(ctx *Context, st *state, args *argv.ArgVector, i int) (int, *statistic.Error) {
	a := args.At(i)
	full := a.Full()
	c := ctx.Classifier

	// Rule 1: --ccache-skip <tok> passes the next token through verbatim.
	// When the space form has been fused by AddParam, the value is right
	// here on the Arg; AddParam leaves a next token starting with "-"
	// unfused, so that one is taken from the following index.
	if a.Key() == "--ccache-skip" {
		st.commonArgs.PushBack(arg.FromToken(a.Value()))
		return i + 1, nil
	}
	if full == "--ccache-skip" {
		if i+1 >= args.Len() {
			return 0, statistic.New(statistic.BadCompilerArguments, full+" requires an argument")
		}
		st.commonArgs.PushBack(args.At(i + 1))
		return i + 2, nil
	}

	// Rule 2: -E.
	if full == "-E" {
		return 0, statistic.New(statistic.CalledForPreprocessing, "")
	}

	// Rule 3: @file / -@file response files.
	if path, ok := atFilePath(full); ok {
		if err := args.ExpandAtFile(i, path); err != nil {
			return 0, statistic.Wrap(statistic.BadCompilerArguments, "reading response file", err)
		}
		return i, nil
	}

	// Rule 4: NVCC -optf=<paths> / --options-file=<paths>.
	if ctx.Dialect == classifier.NVCC &&
		(a.Key() == "-optf" || a.Key() == "--options-file") && a.SplitChar() != arg.None {
		paths := strings.Split(a.Value(), ",")
		for j := len(paths) - 1; j >= 0; j-- {
			p := strings.TrimSpace(paths[j])
			if p == "" {
				continue
			}
			if err := args.InsertAtFile(i+1, p); err != nil {
				return 0, statistic.Wrap(statistic.BadCompilerArguments, "reading options file", err)
			}
		}
		// Drop the -optf/--options-file token itself; its content has
		// been spliced in immediately after it for re-processing.
		args.Replace(i, argv.FromArgs(nil))
		return i, nil
	}

	// Rule 5: unconditionally-too-hard options.
	if c.TooHard(full) || strings.HasPrefix(full, "-fdump-") || strings.HasPrefix(full, "-MJ") {
		return 0, statistic.New(statistic.UnsupportedCompilerOption, full)
	}

	// Rule 6: too-hard-for-direct-mode disables direct mode but does not
	// by itself dispose of the token; routing continues below.
	if c.TooHardForDirectMode(full) && ctx.Config.Direct {
		ctx.Config.Direct = false
		log.Warningf("argprocessor: disabling direct mode, %s is too hard for it", full)
	}

	// Rule 7: -Xarch_*.
	if strings.HasPrefix(full, "-Xarch_") {
		return 0, statistic.New(statistic.UnsupportedCompilerOption, full)
	}

	// Rule 8: -arch <v>. Re-emitted during final assembly, not here.
	if a.Key() == "-arch" {
		st.info.ArchArgs = append(st.info.ArchArgs, a.Value())
		if len(st.info.ArchArgs) == 2 {
			ctx.Config.RunSecondCPP = true
		}
		return i + 1, nil
	}

	// Rule 9: some arguments clang passes directly to cc1 (related to
	// precompiled headers) need the usual handling. The -Xclang prefix is
	// routed to wherever the cc1 argument will go, and the cc1 argument
	// itself is dispatched normally.
	if full == "-Xclang" && i+1 < args.Len() {
		switch next := args.At(i + 1).Full(); next {
		case "-emit-pch", "-emit-pth", "-include-pch", "-include-pth", "-fno-pch-timestamp":
			switch {
			case c.AffectsComp(next):
				st.compilerOnlyArgs.PushBack(a)
			case c.AffectsCPP(next):
				st.cppArgs.PushBack(a)
			default:
				st.commonArgs.PushBack(a)
			}
			return dispatch(ctx, st, args, i+1)
		}
	}

	// Rule 10/11: compopt affects comp (exact, then prefix).
	if c.AffectsComp(full) {
		st.compilerOnlyArgs.PushBack(a)
		takesArg := c.TakesArg(full) || (ctx.Dialect == classifier.NVCC && full == "-Werror")
		if takesArg && !a.HasBeenSplit() {
			if i+1 >= args.Len() {
				return 0, statistic.New(statistic.BadCompilerArguments, full+" requires an argument")
			}
			st.compilerOnlyArgs.PushBack(args.At(i + 1))
			return i + 2, nil
		}
		return i + 1, nil
	}

	// Rule 12: -fmodules needs direct depend mode plus the modules
	// sloppiness bit; module files never appear in preprocessed output, so
	// only the depend mode dependency list can pick up module.modulemap.
	if full == "-fmodules" {
		if !ctx.Config.Direct || !ctx.Config.DependMode {
			return 0, statistic.New(statistic.CouldNotUseModules, "-fmodules without direct depend mode")
		}
		if !ctx.Config.Sloppiness.Has(config.SloppyModules) {
			return 0, statistic.New(statistic.CouldNotUseModules, "-fmodules without modules sloppiness")
		}
		st.commonArgs.PushBack(a)
		return i + 1, nil
	}

	// Rule 13: -c, and NVCC's -dc / --device-c (separable compilation
	// implies -c).
	if full == "-c" {
		st.foundCOpt = true
		return i + 1, nil
	}
	if (full == "-dc" || full == "--device-c") && ctx.Dialect == classifier.NVCC {
		st.foundDCOpt = true
		return i + 1, nil
	}

	// Rule 14: -S.
	if full == "-S" {
		st.commonArgs.PushBack(a)
		st.foundSOpt = true
		return i + 1, nil
	}

	// Rule 15: -x<lang>. A value starting with something other than a
	// lowercase letter (e.g. -xHost, -xCORE-AVX2) is an ordinary Intel
	// option, not a language specification; GCC's -x argument is always
	// lowercase. Otherwise remember the last language specified before the
	// input file and strip the option.
	if a.Key() == "-x" {
		v := a.Value()
		if v == "" || v[0] < 'a' || v[0] > 'z' {
			st.commonArgs.PushBack(a)
			return i + 1, nil
		}
		if st.info.InputFile == "" {
			st.explicitLanguage = v
		}
		return i + 1, nil
	}

	// Rule 16: -o <path>, and the alternate no-space form -o<path> that
	// NVCC does not support.
	if full == "-o" {
		if i+1 >= args.Len() {
			return 0, statistic.New(statistic.BadCompilerArguments, "-o requires an argument")
		}
		st.info.OutputObj = ctx.relativize(args.At(i + 1).Full())
		return i + 2, nil
	}
	if strings.HasPrefix(full, "-o") && len(full) > 2 && ctx.Dialect != classifier.NVCC {
		st.info.OutputObj = ctx.relativize(full[2:])
		return i + 1, nil
	}

	// Rule 17: -fdebug-prefix-map= / -ffile-prefix-map=.
	if strings.HasPrefix(full, "-fdebug-prefix-map=") || strings.HasPrefix(full, "-ffile-prefix-map=") {
		st.info.DebugPrefixMaps = append(st.info.DebugPrefixMaps, a.Value())
		st.commonArgs.PushBack(a)
		return i + 1, nil
	}

	// Rule 18: -g* family.
	if strings.HasPrefix(full, "-g") {
		st.commonArgs.PushBack(a)
		handleDebugFlag(st, full)
		return i + 1, nil
	}

	// Rule 19: -MD / -MMD.
	if full == "-MD" || full == "-MMD" {
		st.info.GeneratingDependencies = true
		st.info.SeenMDMMD = true
		st.depArgs.PushBack(a)
		return i + 1, nil
	}

	// Rule 20: -MF(=)<v>. The "=" form is always re-emitted without the
	// "="; space and written-together forms keep their original shape.
	if a.Key() == "-MF" {
		st.dependencyFilenameSpecified = true
		rel := ctx.relativize(a.Value())
		split := a.SplitChar()
		if split == arg.Equal {
			split = arg.WrittenTogether
		}
		st.depArgs.PushBack(arg.MustFromParts("-MF", split, rel))
		return i + 1, nil
	}

	// Rule 21: -MQ / -MT.
	if a.Key() == "-MQ" || a.Key() == "-MT" {
		st.info.DependencyTargetSpecified = true
		rewritten := arg.MustFromParts(a.Key(), a.SplitChar(), ctx.relativize(a.Value()))
		st.depArgs.PushBack(rewritten)
		return i + 1, nil
	}

	// Rule 22: coverage / stack-usage options.
	switch full {
	case "-fprofile-arcs":
		st.info.ProfileArcs = true
		st.commonArgs.PushBack(a)
		return i + 1, nil
	case "-ftest-coverage":
		st.info.GeneratingCoverage = true
		st.commonArgs.PushBack(a)
		return i + 1, nil
	case "--coverage", "-coverage": // -coverage is undocumented but works.
		st.info.ProfileArcs = true
		st.info.GeneratingCoverage = true
		st.commonArgs.PushBack(a)
		return i + 1, nil
	case "-fstack-usage":
		st.info.GeneratingStackUsage = true
		st.commonArgs.PushBack(a)
		return i + 1, nil
	}

	// Rule 23: profiling sub-protocol.
	if strings.HasPrefix(full, "-fprofile-") || strings.HasPrefix(full, "-fauto-profile") ||
		full == "-fbranch-probabilities" {
		if serr := handleProfilingOption(ctx, st, a); serr != nil {
			return 0, serr
		}
		return i + 1, nil
	}

	// Rule 24: -fsanitize-blacklist=<v>.
	if strings.HasPrefix(full, "-fsanitize-blacklist=") {
		st.info.SanitizeBlacklists = append(st.info.SanitizeBlacklists, a.Value())
		st.commonArgs.PushBack(a)
		return i + 1, nil
	}

	// Rule 25: --sysroot=<v>.
	if a.Key() == "--sysroot" && a.SplitChar() == arg.Equal {
		rel := ctx.relativize(a.Value())
		st.commonArgs.PushBack(arg.MustFromParts("--sysroot", arg.Equal, rel))
		return i + 1, nil
	}

	// Rule 26: --sysroot <v> / -target <v>.
	if (full == "--sysroot" || full == "-target") && !a.HasBeenSplit() {
		if i+1 >= args.Len() {
			return 0, statistic.New(statistic.BadCompilerArguments, full+" requires an argument")
		}
		st.commonArgs.PushBack(a)
		next := args.At(i + 1)
		st.commonArgs.PushBack(arg.FromToken(ctx.relativize(next.Full())))
		return i + 2, nil
	}

	// Rule 27: -Wp,* preprocessor passthrough sub-protocol.
	if strings.HasPrefix(full, "-Wp,") {
		serr := handleWpOption(ctx, st, full)
		if serr != nil {
			return 0, serr
		}
		return i + 1, nil
	}

	// Rule 28: -MP.
	if full == "-MP" {
		st.depArgs.PushBack(a)
		return i + 1, nil
	}

	// Rule 29: -finput-charset=<v>.
	if strings.HasPrefix(full, "-finput-charset=") {
		st.inputCharsetOption = full
		return i + 1, nil
	}

	// Rule 30: --serialize-diagnostics <v>.
	if full == "--serialize-diagnostics" {
		if i+1 >= args.Len() {
			return 0, statistic.New(statistic.BadCompilerArguments, full+" requires an argument")
		}
		st.info.OutputDia = ctx.relativize(args.At(i + 1).Full())
		st.info.GeneratingDiagnostics = true
		return i + 2, nil
	}

	// Rule 31: color diagnostics. Consumed here and re-injected during
	// final composition; unrecognized spellings fall through.
	switch full {
	case "-fcolor-diagnostics", "-fdiagnostics-color", "-fdiagnostics-color=always":
		st.colorDiagnostics = colorAlways
		return i + 1, nil
	case "-fno-color-diagnostics", "-fno-diagnostics-color", "-fdiagnostics-color=never":
		st.colorDiagnostics = colorNever
		return i + 1, nil
	case "-fdiagnostics-color=auto":
		st.colorDiagnostics = colorAuto
		return i + 1, nil
	}

	// Rule 32: -fdirectives-only / -frewrite-includes.
	if full == "-fdirectives-only" {
		st.foundDirectivesOnly = true
		return i + 1, nil
	}
	if full == "-frewrite-includes" {
		st.foundRewriteIncludes = true
		return i + 1, nil
	}

	// Rule 33: -fno-pch-timestamp.
	if full == "-fno-pch-timestamp" {
		st.info.FNoPCHTimestamp = true
		st.commonArgs.PushBack(a)
		return i + 1, nil
	}

	// Rule 34: -fpch-preprocess.
	if full == "-fpch-preprocess" {
		st.foundFpchPreprocess = true
		st.commonArgs.PushBack(a)
		return i + 1, nil
	}

	// Rule 35: -index-store-path <v>.
	if full == "-index-store-path" && ctx.Config.Sloppiness.Has(config.SloppyClangIndexStore) {
		return i + 2, nil
	}

	// Rule 36: takes_path options. In the -Xclang <opt> -Xclang <path>
	// two-hop form, the -Xclang rule routes the first -Xclang and the
	// option arrives here; handleTakesPath then looks past the second
	// -Xclang to the path.
	if c.TakesPath(full) {
		return handleTakesPath(ctx, st, args, i, a)
	}

	// Rule 37: same as rule 36 but for options with a concatenated
	// argument beginning with a slash, e.g. "-I/abs/path".
	if strings.HasPrefix(full, "-") {
		if slash := strings.IndexByte(full, '/'); slash >= 0 {
			opt := full[:slash]
			if c.TakesConcatArg(opt) && c.TakesPath(opt) {
				rel := ctx.relativize(full[slash:])
				rewritten := arg.MustFromParts(opt, arg.WrittenTogether, rel)
				if c.AffectsCPP(opt) {
					st.cppArgs.PushBack(rewritten)
				} else {
					st.commonArgs.PushBack(rewritten)
				}
				return i + 1, nil
			}
		}
	}

	// Rule 38: takes_arg.
	if c.TakesArg(full) && !a.HasBeenSplit() {
		if i+1 >= args.Len() {
			return 0, statistic.New(statistic.BadCompilerArguments, full+" requires an argument")
		}
		dst := st.commonArgs
		if c.AffectsCPP(full) {
			dst = st.cppArgs
		}
		dst.PushBack(a)
		dst.PushBack(args.At(i + 1))
		return i + 2, nil
	}

	// Rule 39: any other token starting with "-".
	if strings.HasPrefix(full, "-") {
		if c.AffectsCPP(full) {
			st.cppArgs.PushBack(a)
		} else {
			st.commonArgs.PushBack(a)
		}
		return i + 1, nil
	}

	// Rule 40: non-option token, a candidate input file.
	return handleNonOption(ctx, st, args, i)
}

func atFilePath(full string) (string, bool) {
	if strings.HasPrefix(full, "@") && len(full) > 1 {
		return full[1:], true
	}
	if strings.HasPrefix(full, "-@") && len(full) > 2 {
		return full[2:], true
	}
	return "", false
}

func handleDebugFlag(st *state, full string) {
	switch {
	case strings.HasPrefix(full, "-gdwarf"):
		// Selection of DWARF format (-gdwarf or -gdwarf-<version>) enables
		// debug info on level 2.
		st.info.GeneratingDebugInfo = true
	case strings.HasPrefix(full, "-gz"):
		// -gz[=type] neither disables nor enables debug info.
	case strings.HasSuffix(full, "0"):
		// "-g0", "-ggdb0" or similar: all debug information disabled.
		st.info.GeneratingDebugInfo = false
		st.generatingDebuginfoLevel3 = false
	default:
		st.info.GeneratingDebugInfo = true
		if strings.HasSuffix(full, "3") {
			st.generatingDebuginfoLevel3 = true
		}
		if full == "-gsplit-dwarf" {
			st.info.SeenSplitDwarf = true
		}
	}
}

func handleProfilingOption(ctx *Context, st *state, a arg.Arg) *statistic.Error {
	full := a.Full()
	switch full {
	case "-fprofile-correction", "-fprofile-reorder-functions",
		"-fprofile-sample-accurate", "-fprofile-values":
		st.commonArgs.PushBack(a)
		return nil
	}

	var newProfilePath string
	newProfileUse := false
	pushed := false

	switch {
	case a.Key() == "-fprofile-dir":
		newProfilePath = a.Value()
	case full == "-fprofile-generate" || full == "-fprofile-instr-generate":
		st.info.ProfileGenerate = true
		if ctx.Dialect == classifier.Clang {
			newProfilePath = "."
		} else {
			// GCC uses $PWD/$(basename $obj).
			newProfilePath = ctx.ApparentCWD
		}
	case a.Key() == "-fprofile-generate" || a.Key() == "-fprofile-instr-generate":
		st.info.ProfileGenerate = true
		newProfilePath = resolveProfileDir(ctx, a.Value())
		st.commonArgs.PushBack(arg.MustFromParts(a.Key(), arg.Equal, newProfilePath))
		pushed = true
	case full == "-fprofile-use" || full == "-fprofile-instr-use" ||
		full == "-fprofile-sample-use" || full == "-fbranch-probabilities" ||
		full == "-fauto-profile":
		newProfileUse = true
		if st.info.ProfilePath == "" {
			newProfilePath = "."
		}
	case a.Key() == "-fprofile-use" || a.Key() == "-fprofile-instr-use" ||
		a.Key() == "-fprofile-sample-use" || a.Key() == "-fauto-profile":
		newProfileUse = true
		newProfilePath = a.Value()
	default:
		return statistic.New(statistic.UnsupportedCompilerOption, "unknown profiling option "+full)
	}

	if newProfileUse {
		if st.info.ProfileUse {
			return statistic.New(statistic.UnsupportedCompilerOption, "multiple profiling options")
		}
		st.info.ProfileUse = true
	}
	if newProfilePath != "" {
		st.info.ProfilePath = newProfilePath
		log.V(1).Infof("argprocessor: set profile directory to %s", newProfilePath)
	}
	if st.info.ProfileGenerate && st.info.ProfileUse {
		// Too hard to figure out what the compiler will do.
		return statistic.New(statistic.UnsupportedCompilerOption, "both generating and using profile info")
	}
	if !pushed {
		st.commonArgs.PushBack(a)
	}
	return nil
}

// resolveProfileDir realizes a -fprofile-generate=<dir> path against the
// apparent working directory when the directory exists, the way the
// original resolves it via realpath; a directory that does not yet exist
// is passed through unmodified since realpath would fail on it too.
func resolveProfileDir(ctx *Context, dir string) string {
	fi, err := ctx.stat(dir)
	if err != nil || !fi.IsDir() {
		return dir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(ctx.ApparentCWD, dir)
}

// handleWpOption handles -Wp,*: a comma-separated option list handed
// straight to the preprocessor. The few forms with cacheable meaning
// are decoded; -P is fatal; everything else degrades to preprocessor
// mode.
func handleWpOption(ctx *Context, st *state, full string) *statistic.Error {
	rest := strings.TrimPrefix(full, "-Wp,")
	parts := strings.Split(rest, ",")

	for _, p := range parts {
		if p == "-P" {
			return statistic.New(statistic.UnsupportedCompilerOption, full)
		}
	}

	if len(parts) == 2 && (parts[0] == "-MD" || parts[0] == "-MMD") {
		st.info.GeneratingDependencies = true
		st.dependencyFilenameSpecified = true
		st.info.OutputDep = ctx.relativize(parts[1])
		st.depArgs.PushBack(arg.FromToken(full))
		return nil
	}

	if len(parts) == 1 && strings.HasPrefix(parts[0], "-D") {
		st.cppArgs.PushBack(arg.FromToken(parts[0]))
		return nil
	}

	if parts[0] == "-MP" && len(parts) == 1 {
		st.depArgs.PushBack(arg.FromToken(full))
		return nil
	}
	if (parts[0] == "-MF" || parts[0] == "-MQ" || parts[0] == "-MT") && len(parts) == 2 {
		st.depArgs.PushBack(arg.FromToken(full))
		return nil
	}

	if ctx.Config.Direct {
		ctx.Config.Direct = false
		log.Warningf("argprocessor: disabling direct mode, unrecognized -Wp, form %s", full)
	}
	st.cppArgs.PushBack(arg.FromToken(full))
	return nil
}

// handleTakesPath implements rule 36: options whose argument is a path we
// rewrite to relative for a better hit rate, with PCH detection on the
// side. In the -Xclang -include-(pch/pth) -Xclang <path> case, the path
// is one index further behind.
func handleTakesPath(ctx *Context, st *state, args *argv.ArgVector, i int, a arg.Arg) (int, *statistic.Error) {
	full := a.Full()
	if i+1 >= args.Len() {
		return 0, statistic.New(statistic.BadCompilerArguments, full+" requires an argument")
	}
	next := 1
	if args.At(i+1).Full() == "-Xclang" && i+2 < args.Len() {
		next = 2
	}
	pathArg := args.At(i + next).Full()

	if serr := detectPCH(ctx, st, full, pathArg, next == 2); serr != nil {
		return 0, serr
	}

	rel := ctx.relativize(pathArg)
	dst := st.commonArgs
	if ctx.Classifier.AffectsCPP(full) {
		dst = st.cppArgs
	}
	dst.PushBack(a)
	if next == 2 {
		dst.PushBack(args.At(i + 1))
	}
	dst.PushBack(arg.FromToken(rel))
	return i + next + 1, nil
}

// detectPCH tries to be smart about detecting precompiled headers. If the
// option is one clang passes to cc1 (isCC1), a header with a sibling
// precompiled file is not accepted just because that file exists, because
// clang doesn't behave that way either.
func detectPCH(ctx *Context, st *state, option, path string, isCC1 bool) *statistic.Error {
	var pchFile string
	if option == "-include-pch" || option == "-include-pth" {
		if _, err := ctx.stat(path); err == nil {
			log.V(1).Infof("argprocessor: detected use of precompiled header: %s", path)
			pchFile = path
		}
	} else if !isCC1 {
		for _, ext := range []string{".gch", ".pch", ".pth"} {
			withExt := path + ext
			if _, err := ctx.stat(withExt); err == nil {
				log.V(1).Infof("argprocessor: detected use of precompiled header: %s", withExt)
				pchFile = withExt
			}
		}
	}
	if pchFile == "" {
		return nil
	}
	if st.includedPCHFile != "" {
		return statistic.New(statistic.BadCompilerArguments,
			"multiple precompiled headers used: "+st.includedPCHFile+" and "+pchFile)
	}
	st.includedPCHFile = pchFile
	st.foundPCH = true
	return nil
}

// handleNonOption implements rule 40: a token with no leading "-" is a
// candidate input file. If the token isn't a plain file, assume it's an
// option rather than an input file; that copes better with unusual
// compiler options. "/dev/null" is an exception sometimes used as an
// input file when build systems probe compiler flags.
func handleNonOption(ctx *Context, st *state, args *argv.ArgVector, i int) (int, *statistic.Error) {
	a := args.At(i)
	full := a.Full()

	if full != "/dev/null" {
		fi, err := ctx.stat(full)
		if err != nil || !fi.Mode().IsRegular() {
			log.V(1).Infof("argprocessor: %s is not a regular file, not considering as input file", full)
			st.commonArgs.PushBack(a)
			return i + 1, nil
		}
	}

	if st.info.InputFile != "" {
		if language.ForFile(full) != "" {
			return 0, statistic.New(statistic.MultipleSourceFiles, st.info.InputFile+" and "+full)
		}
		if !st.foundCOpt && !st.foundDCOpt {
			if strings.Contains(full, "conftest.") {
				return 0, statistic.New(statistic.AutoconfTest, full)
			}
			return 0, statistic.New(statistic.CalledForLink, full)
		}
		return 0, statistic.New(statistic.UnsupportedSourceLanguage, full)
	}

	if st.info.GeneratingCoverage {
		// The source file path gets embedded in the coverage notes, so
		// keep it exactly as given.
		st.info.InputFile = full
	} else {
		// Rewrite to relative to increase hit rate.
		st.info.InputFile = ctx.relativize(full)
	}
	return i + 1, nil
}
