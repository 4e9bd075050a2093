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

package language

import "testing"

func TestForFile(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"foo.c", "c"},
		{"foo.cpp", "c++"},
		{"dir.with.dots/foo.cu", "cu"},
		{"foo.mm", "objective-c++"},
		{"foo.h", "c-header"},
		{"noext", ""},
		{"weird/no.ext.here.", ""},
	}
	for _, tc := range tests {
		if got := ForFile(tc.path); got != tc.want {
			t.Errorf("ForFile(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestIsSupported(t *testing.T) {
	if !IsSupported("c++") {
		t.Error("c++ should be supported")
	}
	if IsSupported("fortran") {
		t.Error("fortran should not be supported")
	}
}

func TestIsPreprocessed(t *testing.T) {
	if !IsPreprocessed("cpp-output") {
		t.Error("cpp-output should be already preprocessed")
	}
	if IsPreprocessed("c") {
		t.Error("c should not be already preprocessed")
	}
}

func TestIsPrecompiledHeader(t *testing.T) {
	if !IsPrecompiledHeader("c++-header") {
		t.Error("c++-header should be a precompiled-header language")
	}
	if IsPrecompiledHeader("c++") {
		t.Error("c++ should not be a precompiled-header language")
	}
}

func TestPLanguageAndCPPExtension(t *testing.T) {
	if got, want := PLanguage("c"), "cpp-output"; got != want {
		t.Errorf("PLanguage(c) = %q, want %q", got, want)
	}
	if got, want := CPPExtension("c++"), ".ii"; got != want {
		t.Errorf("CPPExtension(c++) = %q, want %q", got, want)
	}
	if got := PLanguage("unknown"); got != "" {
		t.Errorf("PLanguage(unknown) = %q, want empty", got)
	}
}
