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

// Package arg provides Arg, the immutable value type for a single
// command-line token of a compiler invocation.
package arg

import (
	"fmt"
	"strings"
)

// Split identifies how an Arg's key and value are glued together in its
// rendered (full) form.
type Split int

const (
	// None means the Arg is a single token with no key/value split.
	None Split = iota
	// Equal means the token was written as "key=value".
	Equal
	// Space means the key and value are separate tokens joined by a space
	// when rendered, e.g. "-MF" "foo.d".
	Space
	// WrittenTogether means the value is glued directly onto the key with
	// no separator, e.g. "-Ifoo".
	WrittenTogether
)

func (s Split) separator() string {
	switch s {
	case Equal:
		return "="
	case Space:
		return " "
	case WrittenTogether:
		return ""
	default:
		return ""
	}
}

// Arg is an immutable command-line token, optionally split into a key and
// value across a known separator. Equality and identity are defined by
// (Full, SplitChar); Key and Value are derived slices of Full.
type Arg struct {
	full      string
	key       string
	value     string
	splitChar Split
}

// FromToken parses a raw command-line token. If the token contains '=', it
// is split on the first occurrence with SplitChar() == Equal; otherwise the
// Arg is unsplit (SplitChar() == None).
func FromToken(token string) Arg {
	if i := strings.IndexByte(token, '='); i >= 0 {
		return Arg{
			full:      token,
			key:       token[:i],
			value:     token[i+1:],
			splitChar: Equal,
		}
	}
	return Arg{full: token, splitChar: None}
}

// FromParts builds an Arg from an explicit key/split/value triple. Split
// must not be None; the rendered Full() form is key + separator(split) +
// value.
func FromParts(key string, split Split, value string) (Arg, error) {
	if split == None {
		return Arg{}, fmt.Errorf("arg: FromParts: split must not be None (key=%q value=%q)", key, value)
	}
	return Arg{
		full:      key + split.separator() + value,
		key:       key,
		value:     value,
		splitChar: split,
	}, nil
}

// MustFromParts is FromParts but panics on error. Intended for call sites
// that construct an Arg with a literal, known-good split.
func MustFromParts(key string, split Split, value string) Arg {
	a, err := FromParts(key, split, value)
	if err != nil {
		panic(err)
	}
	return a
}

// Full returns the token as it would appear on the command line.
func (a Arg) Full() string { return a.full }

// Key returns the logical key portion, or the empty string if the Arg has
// not been split.
func (a Arg) Key() string { return a.key }

// Value returns the logical value portion, or the empty string if the Arg
// has not been split.
func (a Arg) Value() string { return a.value }

// SplitChar returns the separator tag used to glue Key and Value together.
func (a Arg) SplitChar() Split { return a.splitChar }

// HasBeenSplit reports whether the Arg carries a distinct key/value pair.
func (a Arg) HasBeenSplit() bool { return a.splitChar != None }

// Equal reports whether two Args have the same rendered form and split tag.
func (a Arg) Equal(other Arg) bool {
	return a.full == other.full && a.splitChar == other.splitChar
}

// String renders the Arg back to its command-line form.
func (a Arg) String() string { return a.full }

// WithValue returns a copy of a with the value replaced, preserving the
// key and split tag, e.g. "-MF=foo.d" becomes "-MF=bar.d". An unsplit Arg
// is replaced by FromToken(value).
func (a Arg) WithValue(value string) Arg {
	if a.splitChar == None {
		return FromToken(value)
	}
	return MustFromParts(a.key, a.splitChar, value)
}

// WithSplit returns a copy of a re-rendered using a different split style,
// keeping the same key and value. This is how "-MF=foo.d" becomes
// "-MFfoo.d": same key/value, split changes from Equal to WrittenTogether.
func (a Arg) WithSplit(split Split) Arg {
	if !a.HasBeenSplit() {
		return a
	}
	return MustFromParts(a.key, split, a.value)
}
