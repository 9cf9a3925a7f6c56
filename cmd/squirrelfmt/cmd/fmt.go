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

	"github.com/mkmarek/squirrel-lsp/format"
)

func newFmtCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <file>...",
		Short: "reformat Squirrel source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := loggerFor(cmd)
			opts := optionsFromFlags(cmd)
			for _, path := range args {
				start := time.Now()
				src, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				out, err := format.Format(src, opts)
				if err != nil {
					log.WithField("file", path).WithError(err).Error("format failed")
					return fmt.Errorf("%s: %w", path, err)
				}
				fields := logrus.Fields{"file": path, "duration": time.Since(start)}
				if write {
					if out == string(src) {
						log.WithFields(fields).Debug("already formatted")
						continue
					}
					if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
						return err
					}
					log.WithFields(fields).Info("rewrote file")
					continue
				}
				log.WithFields(fields).Debug("formatted")
				fmt.Fprint(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place instead of printing to stdout")
	addFormatFlags(cmd)
	return cmd
}

func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("insert-spaces", true, "indent with spaces instead of tabs")
	cmd.Flags().Int("tab-size", 2, "number of spaces per indent level, when --insert-spaces is set")
	cmd.Flags().Bool("insert-final-newline", true, "ensure the output ends with exactly one newline")
	cmd.Flags().Bool("trim-final-newlines", false, "strip trailing newlines before applying --insert-final-newline")
}

func optionsFromFlags(cmd *cobra.Command) format.Options {
	insertSpaces, _ := cmd.Flags().GetBool("insert-spaces")
	tabSize, _ := cmd.Flags().GetInt("tab-size")
	insertFinal, _ := cmd.Flags().GetBool("insert-final-newline")
	trimFinal, _ := cmd.Flags().GetBool("trim-final-newlines")
	return format.Options{
		InsertSpaces:       insertSpaces,
		TabSize:            tabSize,
		InsertFinalNewline: insertFinal,
		TrimFinalNewlines:  trimFinal,
	}
}
