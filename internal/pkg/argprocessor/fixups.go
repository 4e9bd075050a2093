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

	"github.com/AlexanderLanin/ccache/internal/pkg/arg"
	"github.com/AlexanderLanin/ccache/internal/pkg/argv"
	"github.com/AlexanderLanin/ccache/internal/pkg/classifier"
	"github.com/AlexanderLanin/ccache/internal/pkg/config"
	"github.com/AlexanderLanin/ccache/internal/pkg/language"
	"github.com/AlexanderLanin/ccache/internal/pkg/statistic"
)

// postLoopFixups runs once every token has been dispatched: the checks
// and defaults that depend on the invocation as a whole rather than on
// any single argument.
func postLoopFixups(ctx *Context, st *state) *statistic.Error {
	// 1. A level-3 debug build embeds macro expansion info the first
	// preprocessor pass alone can't reproduce faithfully.
	if st.generatingDebuginfoLevel3 && !ctx.Config.RunSecondCPP {
		ctx.Config.RunSecondCPP = true
	}

	// 2. DEPENDENCIES_OUTPUT / SUNPRO_DEPENDENCIES name a dependency file
	// (and optional target) the compiler writes on the side.
	applyDependenciesEnv(ctx, st)

	// 3.
	if st.info.InputFile == "" {
		return statistic.New(statistic.NoInputFile, "")
	}

	// 4. Using a PCH without time_macros sloppiness can't give direct
	// hits, since the header's defines never pass through the hash.
	if st.foundPCH || st.foundFpchPreprocess {
		st.info.UsingPrecompiledHeader = true
		st.info.IncludedPCHFile = st.includedPCHFile
		if !ctx.Config.Sloppiness.Has(config.SloppyTimeMacros) {
			return statistic.New(statistic.CouldNotUsePrecompiledHeader,
				"time_macros sloppiness is required when using precompiled headers")
		}
	}

	// 5.
	if st.info.ProfilePath == "" {
		st.info.ProfilePath = ctx.ApparentCWD
	}

	// 6.
	if st.explicitLanguage == "none" {
		st.explicitLanguage = ""
	}
	fileLanguage := language.ForFile(st.info.InputFile)
	if st.explicitLanguage != "" {
		if !language.IsSupported(st.explicitLanguage) {
			return statistic.New(statistic.UnsupportedSourceLanguage, st.explicitLanguage)
		}
		st.info.ActualLanguage = st.explicitLanguage
	} else {
		st.info.ActualLanguage = fileLanguage
	}

	// 7.
	st.info.OutputIsPrecompiledHeader = language.IsPrecompiledHeader(st.info.ActualLanguage) ||
		hasPCHExtension(st.info.OutputObj)
	if st.info.OutputIsPrecompiledHeader && !ctx.Config.Sloppiness.Has(config.SloppyPCHDefines) {
		return statistic.New(statistic.CouldNotUsePrecompiledHeader,
			"pch_defines,time_macros sloppiness is required when creating precompiled headers")
	}

	// 8. We must have -c. Creating a PCH is the one case where the
	// compiler is happy without it, so inject one; otherwise this was a
	// link (or an autoconf probe, which dominates "called for link" in
	// many builds and gets its own counter).
	if !st.foundCOpt && !st.foundDCOpt && !st.foundSOpt {
		if st.info.OutputIsPrecompiledHeader {
			st.commonArgs.PushBack(arg.FromToken("-c"))
		} else if strings.Contains(st.info.InputFile, "conftest.") {
			return statistic.New(statistic.AutoconfTest, st.info.InputFile)
		} else {
			return statistic.New(statistic.CalledForLink, st.info.InputFile)
		}
	}

	if st.info.ActualLanguage == "" {
		return statistic.New(statistic.UnsupportedSourceLanguage, st.info.InputFile)
	}

	// 9. CUDA source is always re-preprocessed before it reaches the
	// device compiler pipeline.
	if st.info.ActualLanguage == "cu" {
		ctx.Config.RunSecondCPP = true
	}

	// 10.
	st.info.DirectIFile = language.IsPreprocessed(st.info.ActualLanguage)

	// 11. It doesn't work to create the .gch from preprocessed source.
	if st.info.OutputIsPrecompiledHeader {
		ctx.Config.RunSecondCPP = true
	}

	// 12.
	if ctx.Config.CPPExtension == "" {
		pLanguage := language.PLanguage(st.info.ActualLanguage)
		ctx.Config.CPPExtension = strings.TrimPrefix(language.CPPExtension(pLanguage), ".")
	}

	// 13. Don't try to second-guess the compiler's heuristics for stdout
	// handling.
	if st.info.OutputObj == "-" {
		return statistic.New(statistic.OutputToStdout, "")
	}

	// 14.
	if st.info.OutputObj == "" {
		if st.info.OutputIsPrecompiledHeader {
			st.info.OutputObj = st.info.InputFile + ".gch"
		} else {
			ext := ".o"
			if st.foundSOpt {
				ext = ".s"
			}
			st.info.OutputObj = changeExt(filepath.Base(st.info.InputFile), ext)
		}
	}

	// 15.
	if st.info.SeenSplitDwarf {
		dot := strings.LastIndexByte(st.info.OutputObj, '.')
		if dot < 0 || dot == len(st.info.OutputObj)-1 {
			return statistic.New(statistic.BadCompilerArguments,
				"badly formed object filename "+st.info.OutputObj)
		}
		st.info.OutputDwo = changeExt(st.info.OutputObj, ".dwo")
	}

	// 16. Cope with -o /dev/null; anything else existing must be a
	// regular file in a directory that exists.
	if st.info.OutputObj != "/dev/null" {
		if fi, err := ctx.stat(st.info.OutputObj); err == nil && !fi.Mode().IsRegular() {
			return statistic.New(statistic.BadOutputFile, st.info.OutputObj)
		}
	}
	outputDir := filepath.Dir(st.info.OutputObj)
	if fi, err := ctx.stat(outputDir); err != nil || !fi.IsDir() {
		return statistic.New(statistic.BadOutputFile, "directory does not exist: "+outputDir)
	}

	// 17.
	composeOutputArgs(ctx, st)
	return nil
}

// applyDependenciesEnv implements fixup 2. Contrary to what the GCC
// documentation seems to imply, the compiler still creates object files
// with these set, i.e. they work as -MMD/-MD, not -MM/-M. They do
// nothing on Clang. The value is either "file" or "file target"; the
// paths are relativized and re-exported so the compiler also sees the
// relative form.
func applyDependenciesEnv(ctx *Context, st *state) {
	envVar := "DEPENDENCIES_OUTPUT"
	val := ctx.getenv(envVar)
	if val == "" {
		envVar = "SUNPRO_DEPENDENCIES"
		val = ctx.getenv(envVar)
	}
	if val == "" {
		return
	}

	st.info.GeneratingDependencies = true
	st.dependencyFilenameSpecified = true

	fields := strings.Fields(val)
	if len(fields) == 0 {
		return
	}
	st.info.OutputDep = ctx.relativize(fields[0])

	if len(fields) > 1 {
		// The "file target" form.
		st.info.DependencyTargetSpecified = true
		relTarget := ctx.relativize(fields[1])
		ctx.setenv(envVar, st.info.OutputDep+" "+relTarget)
	} else {
		// The "file" form.
		st.dependencyImplicitTargetSpecified = true
		ctx.setenv(envVar, st.info.OutputDep)
	}
}

// hasPCHExtension reports whether path's extension names a precompiled
// header artifact.
func hasPCHExtension(path string) bool {
	switch filepath.Ext(path) {
	case ".gch", ".pch", ".pth":
		return true
	default:
		return false
	}
}

// changeExt replaces path's extension with newExt, or appends newExt if
// path has none.
func changeExt(path, newExt string) string {
	if ext := filepath.Ext(path); ext != "" {
		return strings.TrimSuffix(path, ext) + newExt
	}
	return path + newExt
}

// composeOutputArgs implements fixup 17: folding the accumulated options
// that depend on the fully-resolved language and output path into
// cpp_args/dep_args/compiler_only_args.
func composeOutputArgs(ctx *Context, st *state) {
	// Some options shouldn't be passed to the real compiler when it
	// compiles preprocessed code: -finput-charset (conversion would happen
	// twice) and -x (the wrong language would be selected).
	if st.inputCharsetOption != "" {
		st.cppArgs.PushBack(arg.FromToken(st.inputCharsetOption))
	}
	if st.foundPCH {
		st.cppArgs.PushBack(arg.FromToken("-fpch-preprocess"))
	}
	if st.explicitLanguage != "" {
		st.cppArgs.PushBack(arg.FromToken("-x"))
		st.cppArgs.PushBack(arg.FromToken(st.explicitLanguage))
	}

	st.info.StripDiagnosticsColors = st.colorDiagnostics == colorNever ||
		(st.colorDiagnostics == colorAuto && !ctx.isColorTTY())

	// Since the compiler's output is redirected it will not color its
	// diagnostics by default, so when colors are wanted, force them.
	var colorFlag string
	switch ctx.Dialect {
	case classifier.Clang:
		if st.info.ActualLanguage != "assembler" {
			colorFlag = "-fcolor-diagnostics"
		}
	case classifier.GCC:
		colorFlag = "-fdiagnostics-color"
	default:
		// Other compilers don't output color, so there is nothing to
		// force or strip.
		st.info.StripDiagnosticsColors = false
	}
	if colorFlag != "" && !st.info.StripDiagnosticsColors {
		if !ctx.Config.RunSecondCPP {
			st.cppArgs.PushBack(arg.FromToken(colorFlag))
		}
		st.compilerOnlyArgs.PushBack(arg.FromToken(colorFlag))
		if ctx.Config.DependMode {
			st.info.DependExtraArgs = append(st.info.DependExtraArgs, colorFlag)
		}
	}

	if st.info.GeneratingDependencies {
		if !st.dependencyFilenameSpecified {
			defaultDepFile := changeExt(st.info.OutputObj, ".d")
			st.info.OutputDep = ctx.relativize(defaultDepFile)
			if !ctx.Config.RunSecondCPP {
				// When compiling preprocessed code the dep args go to the
				// preprocessor, which doesn't know the final object path,
				// so point -MF at the right .d file.
				st.depArgs.PushBack(arg.FromToken("-MF"))
				st.depArgs.PushBack(arg.FromToken(defaultDepFile))
			}
		}
		if !st.info.DependencyTargetSpecified && !st.dependencyImplicitTargetSpecified &&
			!ctx.Config.RunSecondCPP {
			// Same reasoning: -MQ gets the correct target object into the
			// .d file.
			st.depArgs.PushBack(arg.FromToken("-MQ"))
			st.depArgs.PushBack(arg.FromToken(st.info.OutputObj))
		}
	}

	if st.info.GeneratingCoverage {
		st.info.OutputCov = ctx.relativize(changeExt(st.info.OutputObj, ".gcno"))
	}
	if st.info.GeneratingStackUsage {
		st.info.OutputSu = ctx.relativize(changeExt(st.info.OutputObj, ".su"))
	}
}

// assemble composes the three vectors callers consume from the
// per-category vectors the dispatch loop accumulated.
func assemble(ctx *Context, st *state) *ProcessArgsResult {
	compilerArgs := concatVectors(st.commonArgs, st.compilerOnlyArgs)

	switch {
	case ctx.Config.RunSecondCPP:
		compilerArgs = concatVectors(compilerArgs, st.cppArgs)
	case st.foundDirectivesOnly || st.foundRewriteIncludes:
		// The preprocessor directives need to be passed again; the
		// partially preprocessed source still needs more preprocessing.
		compilerArgs = concatVectors(compilerArgs, st.cppArgs)
		if st.foundDirectivesOnly {
			appendToken(st.cppArgs, "-fdirectives-only")
			appendToken(compilerArgs, "-fpreprocessed")
			appendToken(compilerArgs, "-fdirectives-only")
		}
		if st.foundRewriteIncludes {
			appendToken(st.cppArgs, "-frewrite-includes")
			appendToken(compilerArgs, "-x")
			appendToken(compilerArgs, st.info.ActualLanguage)
		}
	case st.explicitLanguage != "":
		// Workaround for distcc-style forwarding which doesn't reset the
		// language specified with -x: name the preprocessed language
		// explicitly.
		appendToken(compilerArgs, "-x")
		appendToken(compilerArgs, language.PLanguage(st.explicitLanguage))
	}

	if st.foundCOpt {
		appendToken(compilerArgs, "-c")
	}
	if st.foundDCOpt {
		appendToken(compilerArgs, "-dc")
	}
	for _, v := range st.info.ArchArgs {
		appendToken(compilerArgs, "-arch")
		appendToken(compilerArgs, v)
	}

	preprocessorArgs := concatVectors(st.commonArgs, st.cppArgs)

	var extraArgsToHash *argv.ArgVector
	if ctx.Config.RunSecondCPP {
		compilerArgs = concatVectors(compilerArgs, st.depArgs)
		extraArgsToHash = concatVectors(st.compilerOnlyArgs, st.depArgs)
	} else {
		preprocessorArgs = concatVectors(preprocessorArgs, st.depArgs)
		extraArgsToHash = st.compilerOnlyArgs.Clone()
	}

	return &ProcessArgsResult{
		PreprocessorArgs: preprocessorArgs,
		ExtraArgsToHash:  extraArgsToHash,
		CompilerArgs:     compilerArgs,
		Info:             st.info,
	}
}

func concatVectors(a, b *argv.ArgVector) *argv.ArgVector {
	out := a.Clone()
	for i := 0; i < b.Len(); i++ {
		out.PushBack(b.At(i))
	}
	return out
}

func appendToken(v *argv.ArgVector, tok string) {
	v.PushBack(arg.FromToken(tok))
}
