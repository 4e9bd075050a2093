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

package relpath

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRelToUnderBase(t *testing.T) {
	got := RelTo("/home/user/project", "/home/user/project/src/foo.h")
	want := "." + string(filepath.Separator) + filepath.Join("src", "foo.h")
	if got != want {
		t.Errorf("RelTo() = %q, want %q", got, want)
	}
}

func TestRelToOutsideBaseReturnsUnchanged(t *testing.T) {
	got := RelTo("/home/user/project", "/usr/include/stdio.h")
	if got != "/usr/include/stdio.h" {
		t.Errorf("RelTo() = %q, want input unchanged", got)
	}
}

func TestRelToAlreadyRelativeReturnsUnchanged(t *testing.T) {
	got := RelTo("/home/user/project", "src/foo.h")
	if got != "src/foo.h" {
		t.Errorf("RelTo() = %q, want input unchanged", got)
	}
}

func TestRelToNonPathValueReturnsUnchanged(t *testing.T) {
	got := RelTo("/home/user/project", "x86_64-unknown-linux-gnu")
	if got != "x86_64-unknown-linux-gnu" {
		t.Errorf("RelTo() = %q, want input unchanged", got)
	}
}

func TestRelToEmptyPath(t *testing.T) {
	if got := RelTo("/home/user/project", ""); got != "" {
		t.Errorf("RelTo() = %q, want empty string", got)
	}
}

func TestList(t *testing.T) {
	got := List("/base", []string{"/base/a.h", "/other/b.h"})
	want := []string{"." + string(filepath.Separator) + "a.h", "/other/b.h"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List diff (-want +got):\n%s", diff)
	}
}
