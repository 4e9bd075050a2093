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

package argv

import (
	"strings"

	"github.com/AlexanderLanin/ccache/internal/pkg/arg"
)

// AddParam reparses v, fusing tokens that match param according to the
// allowed split styles in splits: a single pass that, for each allowed
// split style, rewrites the matching token shape into a single split
// Arg.
//
//   - Space in splits: adjacent unsplit tokens [param, v] fuse into
//     Arg(param, Space, v), provided v does not itself look like an option
//     (does not start with "-").
//   - Equal in splits: a token "param=v" is already represented as
//     Arg(param, Equal, v) by FromToken; AddParam leaves it as is.
//   - WrittenTogether in splits: a token "paramv" (non-empty v) becomes
//     Arg(param, WrittenTogether, v).
//
// AddParam is idempotent: calling it twice with the same (param, splits)
// leaves the ArgVector unchanged after the first pass.
func (v *ArgVector) AddParam(param string, splits []arg.Split) int {
	allowed := make(map[arg.Split]bool, len(splits))
	for _, s := range splits {
		allowed[s] = true
	}

	var out []arg.Arg
	count := 0
	for i := 0; i < len(v.args); i++ {
		a := v.args[i]

		if allowed[arg.Space] && a.SplitChar() == arg.None && a.Full() == param &&
			i+1 < len(v.args) && !strings.HasPrefix(v.args[i+1].Full(), "-") {
			out = append(out, arg.MustFromParts(param, arg.Space, v.args[i+1].Full()))
			i++
			count++
			continue
		}

		if allowed[arg.WrittenTogether] && a.SplitChar() == arg.None &&
			strings.HasPrefix(a.Full(), param) && len(a.Full()) > len(param) {
			out = append(out, arg.MustFromParts(param, arg.WrittenTogether, strings.TrimPrefix(a.Full(), param)))
			count++
			continue
		}

		if allowed[arg.Equal] && a.SplitChar() == arg.Equal && a.Key() == param {
			count++
		}

		out = append(out, a)
	}
	v.args = out
	return count
}
