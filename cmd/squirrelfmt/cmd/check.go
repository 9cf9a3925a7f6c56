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
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mkmarek/squirrel-lsp/diagnostics"
	"github.com/mkmarek/squirrel-lsp/format"
	"github.com/mkmarek/squirrel-lsp/langserver"
)

// newCheckCmd reports, without rewriting anything, whether each argument
// is correctly formatted and prints any lint findings the scope table has
// for it. It exits nonzero if a file is unformatted or has an error-level
// finding (an unresolved identifier); warning-level findings (unused
// variables) are printed but non-fatal, matching spec §7's "lint
// diagnostics are non-fatal" (CLI shape mirrors `gofmt -l`/`cue fmt
// --check` plus `cue vet`).
func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "report files that are not correctly formatted or have lint findings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := loggerFor(cmd)
			opts := optionsFromFlags(cmd)
			dirty := false
			for _, path := range args {
				start := time.Now()
				src, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				out, err := format.Format(src, opts)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				diags := langserver.OnDocumentChange("file://"+path, string(src), 0)
				failing := false
				for _, d := range diags {
					if d.Severity == diagnostics.Error {
						failing = true
					}
				}
				unformatted := out != string(src)
				if unformatted || len(diags) > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), path)
					for _, d := range diags {
						fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s: %s\n", d.From, d.Severity, d.Message)
					}
				}
				if unformatted || failing {
					dirty = true
				}
				log.WithFields(logrus.Fields{
					"file":             path,
					"diagnostic_count": len(diags),
					"duration":         time.Since(start),
				}).Debug("checked")
			}
			if dirty {
				return fmt.Errorf("one or more files are not formatted or have an error-level lint finding")
			}
			return nil
		},
	}
	addFormatFlags(cmd)
	return cmd
}
