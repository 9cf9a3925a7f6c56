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

func TestLookup(t *testing.T) {
	testCases := []struct {
		ident string
		want  Token
	}{
		{"local", LOCAL},
		{"function", FUNCTION},
		{"rawcall", RAWCALL},
		{"__LINE__", LINE_MACRO},
		{"__FILE__", FILE_MACRO},
		{"typeof", TYPEOF},
		{"instanceof", INSTANCEOF},
		{"in", IN},
		{"foo", IDENT},
		{"Foo_Bar2", IDENT},
	}
	for _, tc := range testCases {
		if got := Lookup(tc.ident); got != tc.want {
			t.Errorf("Lookup(%q) = %v; want %v", tc.ident, got, tc.want)
		}
	}
}

func TestPrecedence(t *testing.T) {
	testCases := []struct {
		tok  Token
		want int
	}{
		{COMMA, 0},
		{ASSIGN, 1},
		{NEWSLOT, 1},
		{LOGAND, 2},
		{IN, 2},
		{XOR, 3},
		{AND, 4},
		{OR, 5},
		{EQ, 6},
		{THREEWAY, 6},
		{LSS, 7},
		{INSTANCEOF, 7},
		{SHL, 8},
		{ADD, 9},
		{MUL, 10},
		{IDENT, LowestPrec},
	}
	for _, tc := range testCases {
		if got := tc.tok.Precedence(); got != tc.want {
			t.Errorf("%v.Precedence() = %d; want %d", tc.tok, got, tc.want)
		}
	}
}

func TestTokenString(t *testing.T) {
	if got, want := FUNCTION.String(), "function"; got != want {
		t.Errorf("FUNCTION.String() = %q; want %q", got, want)
	}
	if got, want := DCOLON.String(), "::"; got != want {
		t.Errorf("DCOLON.String() = %q; want %q", got, want)
	}
}

func TestIsKeyword(t *testing.T) {
	if !LOCAL.IsKeyword() {
		t.Errorf("LOCAL.IsKeyword() = false; want true")
	}
	if TYPEOF.IsKeyword() {
		t.Errorf("TYPEOF.IsKeyword() = true; want false (lexed as operator)")
	}
	if IDENT.IsKeyword() {
		t.Errorf("IDENT.IsKeyword() = true; want false")
	}
}
