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

package statistic

import (
	"errors"
	"testing"
)

func TestStringKnownAndUnknown(t *testing.T) {
	if got, want := CalledForLink.String(), "called_for_link"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := Statistic(999).String(); got != "unknown_statistic" {
		t.Errorf("String() for out-of-range value = %q, want %q", got, "unknown_statistic")
	}
}

func TestNewErrorMessage(t *testing.T) {
	err := New(BadOutputFile, "output path is a directory")
	want := "bad_output_file: output path is a directory"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(NoInputFile, "stat failed", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	want := "no_input_file: stat failed: permission denied"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
