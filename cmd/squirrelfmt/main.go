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

// Command squirrelfmt exercises the language core end-to-end from the
// shell: formatting files, checking that they're already formatted, and
// looking up a declaration for a cursor position. The real editor
// integration is the langserver package sitting behind a protocol
// transport (spec §6, §12 Non-goals); this is a thin, scriptable stand-in.
package main

import (
	"os"

	"github.com/mkmarek/squirrel-lsp/cmd/squirrelfmt/cmd"
)

func main() {
	if err := cmd.Root().Execute(); err != nil {
		os.Exit(1)
	}
}
