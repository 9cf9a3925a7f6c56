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
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Root returns the squirrelfmt command tree.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:           "squirrelfmt",
		Short:         "format, check and inspect Squirrel source files",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().Bool("verbose", false, "log at debug level")

	root.AddCommand(newFmtCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newDeclCmd())
	return root
}

// loggerFor builds this invocation's structured logger. The core packages
// themselves never log (spec §5 treats logging as outside the
// language-processing core). Every command handler gets the same
// process-wide logrus.StandardLogger(); --verbose raises that shared
// logger's level to Debug.
func loggerFor(cmd *cobra.Command) logrus.FieldLogger {
	logger := logrus.StandardLogger()
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
