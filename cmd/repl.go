// Copyright © 2018 The ELPS authors

package cmd

import (
	"os"
	"path/filepath"

	"github.com/luthersystems/ares/lisp"
	"github.com/luthersystems/ares/repl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive lisp REPL",
	Long: `Start an interactive read-eval-print loop.

The standard library is loaded automatically. Line editing, tab completion
of bound names, and command history are supported via readline. Input
continues on the next line until brackets balance. Use Ctrl-D to exit and
Ctrl-C to discard a partial form.

Example REPL session:
  ares> (+ 1 2)
  3
  ares> (define square
          (lambda (x) (* x x)))
  <lambda square>
  ares> (square 5)
  25
  ares> (help 'map)
  ...`,
	Run: func(cmd *cobra.Command, args []string) {
		prompt := viper.GetString("prompt")
		if prompt == "" {
			prompt = filepath.Base(os.Args[0]) + "> "
		}
		opts := []repl.Option{repl.WithLogger(newLogger(os.Stderr))}
		if viper.IsSet("history-file") {
			opts = append(opts, repl.WithHistoryFile(viper.GetString("history-file")))
		}
		repl.RunRepl(prompt, append(opts,
			repl.WithLispConfig(
				lisp.WithMaxStackHeight(viper.GetInt("max-stack-height")),
				lisp.WithMaxMacroExpansionDepth(viper.GetInt("max-macro-expansion-depth")),
			),
		)...)
	},
}

func init() {
	replCmd.Flags().String("prompt", "", "REPL prompt (default is the program name followed by \"> \")")
	replCmd.Flags().String("history-file", "", "readline history file (default is $HOME/.ares_history)")
	_ = viper.BindPFlag("prompt", replCmd.Flags().Lookup("prompt"))
	_ = viper.BindPFlag("history-file", replCmd.Flags().Lookup("history-file"))
}
