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

// Package relpath relativizes compiler-argument paths against a base
// directory, the way ccache rewrites absolute -I/-isystem/--sysroot
// paths under the current directory into relative ones so that the same
// source built from two different checkouts of the same tree still
// produces identical preprocessor-affecting arguments.
package relpath

import (
	"path/filepath"
	"strings"
)

// RelTo rewrites p relative to base when p is an absolute path under
// base. Anything else — a path already relative, a path outside base, or
// a relative form that cannot be computed — is returned unchanged:
// relativization is an optimization, never a correctness requirement, so
// callers never need to check for failure. Notably, values that merely
// look path-shaped (target triples, make targets) pass through untouched
// because they are not absolute.
//
// A computed relative path is given an explicit "./" prefix (except "."
// itself) so it can never be confused with a bare name the compiler
// would resolve against its own search order.
func RelTo(base, p string) string {
	if p == "" || base == "" || !filepath.IsAbs(p) {
		return p
	}
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return p
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	if rel == "." {
		return "."
	}
	if !strings.HasPrefix(rel, "."+string(filepath.Separator)) {
		rel = "." + string(filepath.Separator) + rel
	}
	return rel
}

// List applies RelTo to every element of paths, preserving order.
func List(base string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = RelTo(base, p)
	}
	return out
}
