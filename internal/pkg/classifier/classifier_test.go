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

import "testing"

func TestGuessDialect(t *testing.T) {
	tests := []struct {
		path string
		want Dialect
	}{
		{"/usr/bin/gcc", GCC},
		{"/usr/bin/g++", GCC},
		{"/usr/bin/clang++", Clang},
		{"clang-cl.exe", Clang},
		{"/opt/cuda/bin/nvcc", NVCC},
		{"icpc", Intel},
	}
	for _, tc := range tests {
		if got := GuessDialect(tc.path); got != tc.want {
			t.Errorf("GuessDialect(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestCommonPredicates(t *testing.T) {
	c := New(GCC)
	if !c.TooHard("-E") {
		t.Error("-E should be too hard")
	}
	if !c.TooHardForDirectMode("-Xpreprocessor") {
		t.Error("-Xpreprocessor should be too hard for direct mode")
	}
	if !c.TooHard("-M") {
		t.Error("-M should be too hard outright")
	}
	if !c.TakesArg("-o") || !c.TakesPath("-o") {
		t.Error("-o should take a path argument")
	}
	if !c.TakesConcatArg("-I") {
		t.Error("-I should take a concatenated argument")
	}
	if !c.AffectsCPP("-Dfoo") {
		t.Error("-Dfoo should affect preprocessing via prefix match")
	}
	if !c.AffectsCPP("-Wp,-MD") {
		t.Error("-Wp,-MD should affect preprocessing via prefix predicate")
	}
	if !c.AffectsComp("-Wa,--noexecstack") {
		t.Error("-Wa,... should affect compilation via prefix predicate")
	}
	if !c.TooHard("-specs=custom.specs") {
		t.Error("-specs=file should be too hard via prefix match")
	}
	if c.TooHard("-c") {
		t.Error("-c should not be too hard")
	}
}

func TestNVCCOverride(t *testing.T) {
	c := New(NVCC)
	if !c.TooHard("-dlink") {
		t.Error("-dlink should be too hard under NVCC dialect")
	}
	gcc := New(GCC)
	if gcc.TooHard("-dlink") {
		t.Error("-dlink should not be recognized under the GCC dialect")
	}
}

func TestIntelOverride(t *testing.T) {
	c := New(Intel)
	if !c.TooHardForDirectMode("-ipo") {
		t.Error("-ipo should force preprocessor mode under the Intel dialect")
	}
}

func TestUnknownOptionIsAllZero(t *testing.T) {
	c := New(GCC)
	if c.TooHard("-some-made-up-flag") || c.TakesArg("-some-made-up-flag") || c.AffectsCPP("-some-made-up-flag") {
		t.Error("unrecognized option should report false from every predicate")
	}
}
