// Copyright 2018 The CUE Authors
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

package token

import "testing"

func TestPositionBefore(t *testing.T) {
	testCases := []struct {
		a, b Position
		want bool
	}{
		{Position{0, 0}, Position{0, 1}, true},
		{Position{0, 5}, Position{1, 0}, true},
		{Position{1, 0}, Position{0, 5}, false},
		{Position{2, 3}, Position{2, 3}, false},
	}
	for _, tc := range testCases {
		if got := tc.a.Before(tc.b); got != tc.want {
			t.Errorf("%v.Before(%v) = %v; want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestPositionString(t *testing.T) {
	if got, want := (Position{0, 0}).String(), "1:1"; got != want {
		t.Errorf("got %q; want %q", got, want)
	}
	if got, want := NoPos.String(), "-"; got != want {
		t.Errorf("got %q; want %q", got, want)
	}
}
