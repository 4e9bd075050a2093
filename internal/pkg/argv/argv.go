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

// Package argv provides ArgVector, an ordered, mutable sequence of Args
// with the bulk-mutation and parameter-aware reparsing operations the
// argument-processing core needs, plus response-file loading.
package argv

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlexanderLanin/ccache/internal/pkg/arg"
)

// ArgVector is an ordered sequence of Args.
type ArgVector struct {
	args []arg.Arg
}

// FromArgv builds an ArgVector by copying argv verbatim, parsing each token
// with arg.FromToken.
func FromArgv(argv []string) *ArgVector {
	v := &ArgVector{args: make([]arg.Arg, 0, len(argv))}
	for _, tok := range argv {
		v.args = append(v.args, arg.FromToken(tok))
	}
	return v
}

// FromArgs builds an ArgVector directly from already-constructed Args.
func FromArgs(args []arg.Arg) *ArgVector {
	v := &ArgVector{args: make([]arg.Arg, len(args))}
	copy(v.args, args)
	return v
}

// FromString splits a shell-like command string on unescaped whitespace.
// Backslash escapes the next character; single quotes, double quotes, and
// backticks delimit literal runs.
func FromString(cmd string) *ArgVector {
	return FromArgv(splitShellLike(cmd))
}

func splitShellLike(cmd string) []string {
	var tokens []string
	var cur strings.Builder
	inToken := false
	var quote rune
	runes := []rune(cmd)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else if r == '\\' && i+1 < len(runes) {
				i++
				cur.WriteRune(runes[i])
			} else {
				cur.WriteRune(r)
			}
			inToken = true
		case r == '\'' || r == '"' || r == '`':
			quote = r
			inToken = true
		case r == '\\' && i+1 < len(runes):
			i++
			cur.WriteRune(runes[i])
			inToken = true
		case isShellSpace(r):
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

func isShellSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n':
		return true
	default:
		return false
	}
}

// isAtFileSpace matches GCC's @file whitespace class: space, tab, newline,
// carriage return, vertical tab, form feed.
func isAtFileSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// FromGCCAtFile reads path and tokenizes its contents using GCC's @file
// rules: backslash escapes the next character, and each of ', ", ` groups
// characters until the matching closing quote; unquoted whitespace
// separates tokens. Returns an error wrapping the read failure if the file
// cannot be opened.
func FromGCCAtFile(path string) (*ArgVector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("argv: reading arg file %q: %w", path, err)
	}
	return FromArgv(tokenizeAtFile(string(data))), nil
}

func tokenizeAtFile(content string) []string {
	var tokens []string
	var cur strings.Builder
	inToken := false
	var quote rune
	runes := []rune(content)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
			inToken = true
		case r == '\\' && i+1 < len(runes):
			i++
			cur.WriteRune(runes[i])
			inToken = true
		case r == '\'' || r == '"' || r == '`':
			quote = r
			inToken = true
		case isAtFileSpace(r):
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

// Len returns the number of Args in v.
func (v *ArgVector) Len() int { return len(v.args) }

// At returns the Arg at index i.
func (v *ArgVector) At(i int) arg.Arg { return v.args[i] }

// Set replaces the Arg at index i.
func (v *ArgVector) Set(i int, a arg.Arg) { v.args[i] = a }

// Slice returns the underlying Args as a plain slice (read-only use
// expected; callers must not mutate the returned slice's backing array
// across ArgVector mutations).
func (v *ArgVector) Slice() []arg.Arg { return v.args }

// PushBack appends a to the end of v.
func (v *ArgVector) PushBack(a arg.Arg) { v.args = append(v.args, a) }

// PushBackToken appends the result of arg.FromToken(tok) to v.
func (v *ArgVector) PushBackToken(tok string) { v.PushBack(arg.FromToken(tok)) }

// PushFront prepends a to v.
func (v *ArgVector) PushFront(a arg.Arg) {
	v.args = append([]arg.Arg{a}, v.args...)
}

// PopBack removes the last n Args.
func (v *ArgVector) PopBack(n int) {
	if n > len(v.args) {
		n = len(v.args)
	}
	v.args = v.args[:len(v.args)-n]
}

// PopFront removes the first n Args.
func (v *ArgVector) PopFront(n int) {
	if n > len(v.args) {
		n = len(v.args)
	}
	v.args = v.args[n:]
}

// Insert inserts the Args of sub at position index.
func (v *ArgVector) Insert(index int, sub *ArgVector) {
	tail := append([]arg.Arg{}, v.args[index:]...)
	v.args = append(v.args[:index], append(append([]arg.Arg{}, sub.args...), tail...)...)
}

// Replace erases the single Arg at index and inserts sub in its place.
func (v *ArgVector) Replace(index int, sub *ArgVector) {
	tail := append([]arg.Arg{}, v.args[index+1:]...)
	v.args = append(v.args[:index], append(append([]arg.Arg{}, sub.args...), tail...)...)
}

// EraseWithPrefix removes every Arg whose Full() starts with prefix.
func (v *ArgVector) EraseWithPrefix(prefix string) {
	filtered := v.args[:0]
	for _, a := range v.args {
		if !strings.HasPrefix(a.Full(), prefix) {
			filtered = append(filtered, a)
		}
	}
	v.args = filtered
}

// Equal reports whether v and other contain the same Args in the same
// order.
func (v *ArgVector) Equal(other *ArgVector) bool {
	if v.Len() != other.Len() {
		return false
	}
	for i := range v.args {
		if !v.args[i].Equal(other.args[i]) {
			return false
		}
	}
	return true
}

// ToArgv returns the rendered form of every Arg, in order.
func (v *ArgVector) ToArgv() []string {
	out := make([]string, len(v.args))
	for i, a := range v.args {
		out[i] = a.Full()
	}
	return out
}

// ToString joins every Arg's rendered form with single spaces. No quoting
// is performed.
func (v *ArgVector) ToString() string {
	return strings.Join(v.ToArgv(), " ")
}

// Clone returns a deep copy of v.
func (v *ArgVector) Clone() *ArgVector {
	return FromArgs(v.args)
}
