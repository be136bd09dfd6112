// Copyright 2017-2020 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

// Command parsekit validates documents with the grammars shipped with
// parsekit.
//
// Configuration is read from flags, PARSEKIT_* environment variables and an
// optional parsekit.yaml file, in decreasing order of precedence.
//
package main

import (
	"os"
	"runtime"

	"github.com/db47h/parsekit/token"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	conf := viper.New()

	rootCmd := &cobra.Command{
		Use:          "parsekit",
		Short:        "Validate documents with parsekit grammars",
		SilenceUsage: true,
	}

	addFlags(rootCmd.PersistentFlags())
	_ = conf.BindPFlags(rootCmd.PersistentFlags())
	conf.SetEnvPrefix("PARSEKIT")
	conf.AutomaticEnv()

	rootCmd.AddCommand(newJSONCmd(conf))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func addFlags(flags *pflag.FlagSet) {
	flags.String("config", "",
		"Configuration file. Defaults to parsekit.yaml in the current directory, if any.")
	flags.String("log_level", "warn", "Log level, one of [debug, info, warn, error].")
	flags.Int("chunk_size", 0, "Number of runes read at once. 0 uses the source default.")
	flags.String("encoding", "utf-8", "Encoding of input files, as an IANA name.")
	flags.Int("tab_width", token.DefaultTabWidth, "Tab width used to compute columns.")
	flags.Int("workers", runtime.NumCPU(), "Maximum number of files parsed concurrently.")
}
