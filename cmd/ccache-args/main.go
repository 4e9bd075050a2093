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

// The ccache-args binary runs a compiler command line through
// argprocessor.ProcessArgs and prints the three derived argument
// vectors, without ever invoking a compiler or touching a cache.
//
//	ccache-args --base_dir=$PWD -- gcc -c -g -MD foo.c -o foo.o
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/AlexanderLanin/ccache/internal/pkg/argprocessor"
	"github.com/AlexanderLanin/ccache/internal/pkg/argv"
	"github.com/AlexanderLanin/ccache/internal/pkg/classifier"
	"github.com/AlexanderLanin/ccache/internal/pkg/config"
	"github.com/AlexanderLanin/ccache/internal/pkg/statistic"

	log "github.com/golang/glog"
)

var (
	baseDir      = flag.String("base_dir", "", "Directory output paths are relativized against; empty disables relativization.")
	apparentCWD  = flag.String("apparent_cwd", "", "Working directory used for default profile paths; defaults to base_dir.")
	noDirect     = flag.Bool("no_direct", false, "Disable direct mode up front, as if a prior run already fell back to it.")
	dependMode   = flag.Bool("depend_mode", false, "Enable depend mode.")
	runSecondCPP = flag.Bool("run_second_cpp", true, "Always run the real preprocessor rather than trusting dependency output from a single pass.")
	compilerType = flag.String("compiler_type", "", "Override dialect auto-detection (gcc, clang, nvcc, intel); empty auto-detects from argv[0].")
	sloppiness   = flag.String("sloppiness", "", "Comma-separated sloppiness bits: include_file_mtime,time_macros,pch_defines,clang_index_store,modules.")
)

var sloppyByName = map[string]config.Sloppy{
	"include_file_mtime": config.SloppyIncludeFileMtime,
	"time_macros":        config.SloppyTimeMacros,
	"pch_defines":        config.SloppyPCHDefines,
	"clang_index_store":  config.SloppyClangIndexStore,
	"modules":            config.SloppyModules,
}

func parseSloppiness(s string) (config.Sloppy, error) {
	var sloppy config.Sloppy
	if s == "" {
		return sloppy, nil
	}
	for _, name := range strings.Split(s, ",") {
		bit, ok := sloppyByName[strings.TrimSpace(name)]
		if !ok {
			return 0, fmt.Errorf("unknown sloppiness %q", name)
		}
		sloppy |= bit
	}
	return sloppy, nil
}

func dialectFor(name, argv0 string) classifier.Dialect {
	switch name {
	case "gcc":
		return classifier.GCC
	case "clang":
		return classifier.Clang
	case "nvcc":
		return classifier.NVCC
	case "intel":
		return classifier.Intel
	default:
		return classifier.GuessDialect(argv0)
	}
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %v [-flags] -- compiler args...\n", path.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	cmd := flag.Args()
	if len(cmd) == 0 {
		flag.Usage()
		log.Exit("no command provided")
	}

	sloppy, err := parseSloppiness(*sloppiness)
	if err != nil {
		log.Exitf("bad -sloppiness: %v", err)
	}

	cwd := *apparentCWD
	if cwd == "" {
		cwd = *baseDir
	}

	cfg := &config.Config{
		Direct:       !*noDirect,
		DependMode:   *dependMode,
		RunSecondCPP: *runSecondCPP,
		CompilerType: *compilerType,
		Sloppiness:   sloppy,
	}

	ctx := &argprocessor.Context{
		OrigArgs:    argv.FromArgv(cmd),
		Config:      cfg,
		BaseDir:     *baseDir,
		ApparentCWD: cwd,
		Dialect:     dialectFor(*compilerType, cmd[0]),
	}

	result, err := argprocessor.ProcessArgs(ctx)
	if err != nil {
		var serr *statistic.Error
		if errors.As(err, &serr) {
			log.Exitf("%s: %v", serr.Stat, serr)
		}
		log.Exitf("%v", err)
	}

	fmt.Println("preprocessor_args:", result.PreprocessorArgs.ToString())
	fmt.Println("extra_args_to_hash:", result.ExtraArgsToHash.ToString())
	fmt.Println("compiler_args:", result.CompilerArgs.ToString())
	fmt.Println("input_file:", result.Info.InputFile)
	fmt.Println("output_obj:", result.Info.OutputObj)
	fmt.Println("actual_language:", result.Info.ActualLanguage)
	log.Flush()
}
