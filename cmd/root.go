// Copyright © 2018 The ELPS authors

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/luthersystems/ares/diagnostic"
	"github.com/luthersystems/ares/lisp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ares",
	Short: "Ares, an embeddable lisp interpreter",
	Long: `Ares is an embeddable lisp interpreter implemented in Go. The CLI runs
lisp source, starts an interactive REPL, and shows built-in documentation.

Getting started:
  ares run file.lisp           Run a lisp source file
  ares run -e '(+ 1 2)'        Evaluate an expression
  ares repl                    Start an interactive REPL
  ares doc map                 Show documentation for a function

Language overview:
  Ares is a Lisp-1 (single namespace for functions and values). Names are
  bound with (define name value) and procedures are made with lambda.
  Macros are defined with define-macro and may use quasiquote. Calls in
  tail position do not grow the evaluation stack.

Configuration is read from $HOME/.ares.yaml and ARES_* environment
variables, for example ARES_LOG_LEVEL=debug.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		r := &diagnostic.Renderer{Color: diagnostic.ColorAuto}
		_ = r.Render(os.Stderr, diagnostic.FromError(err))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ares.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn",
		"Interpreter log level (trace, debug, info, warn, error).")
	rootCmd.PersistentFlags().Int("max-stack-height", 0,
		"Maximum number of evaluator frames. Zero means unlimited.")
	rootCmd.PersistentFlags().Int("max-macro-expansion-depth", lisp.DefaultMaxMacroExpansionDepth,
		"Maximum number of successive expansions of a single macro form.")
	for _, name := range []string{"log-level", "max-stack-height", "max-macro-expansion-depth"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	rootCmd.AddCommand(RunCommand())
	rootCmd.AddCommand(DocCommand())
	rootCmd.AddCommand(replCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".ares" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".ares")
	}

	viper.SetEnvPrefix("ares")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
