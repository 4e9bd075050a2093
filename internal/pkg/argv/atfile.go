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

// ExpandAtFile replaces the Arg at index with the tokenized contents of the
// GCC-style response file at path, the way a bare "@file" token is expanded
// in place during argument processing.
func (v *ArgVector) ExpandAtFile(index int, path string) error {
	sub, err := FromGCCAtFile(path)
	if err != nil {
		return err
	}
	v.Replace(index, sub)
	return nil
}

// InsertAtFile inserts the tokenized contents of the response file at path
// at position index without removing any existing Arg. NVCC's
// -optf/--options-file lists zero or more response files; each is inserted
// in turn rather than replacing the option that named them.
func (v *ArgVector) InsertAtFile(index int, path string) error {
	sub, err := FromGCCAtFile(path)
	if err != nil {
		return err
	}
	v.Insert(index, sub)
	return nil
}
