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

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mkmarek/squirrel-lsp/langserver"
	"github.com/mkmarek/squirrel-lsp/token"
)

// newDeclCmd exposes langserver.GotoDeclaration without a real editor
// transport — useful for scripting and for exercising the scope table
// from the shell.
func newDeclCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decl <file> <line> <column>",
		Short: "print the declaration span for the identifier at line:column (1-based)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := loggerFor(cmd)
			start := time.Now()
			path := args[0]
			line, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("line: %w", err)
			}
			col, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("column: %w", err)
			}

			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			pos := token.Position{Line: line - 1, Column: col - 1}
			rng, ok := langserver.GotoDeclaration("file://"+path, string(src), pos)
			if !ok {
				log.WithFields(logrus.Fields{"file": path, "duration": time.Since(start)}).Debug("no declaration found")
				return fmt.Errorf("%s:%d:%d: no declaration found", path, line, col)
			}
			log.WithFields(logrus.Fields{"file": path, "duration": time.Since(start)}).Debug("resolved declaration")
			fmt.Fprintf(cmd.OutOrStdout(), "%s:%s-%s\n", path, rng.From, rng.To)
			return nil
		},
	}
	return cmd
}
