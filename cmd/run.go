// Copyright © 2018 The ELPS authors

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"github.com/luthersystems/ares/lisp"
	"github.com/luthersystems/ares/lisp/x/profiler"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type runFlags struct {
	expression bool
	print      bool
	excludes   []string
	callgrind  string
	cpuProfile string
	trace      bool
	noForeign  bool
}

// RunCommand returns the run command.  Options let an embedder run lisp
// code against its own foreign functions.
func RunCommand(opts ...Option) *cobra.Command {
	cfg := newCmdConfig(opts...)
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run [flags] FILE|EXPR ...",
		Short: "Run lisp code",
		Long: `Run lisp code supplied via the command line or a file.

Each argument is a file to evaluate in order in a single context. An
argument ending in "/..." names every .lisp file beneath a directory. With
-e the arguments are expressions instead.

Examples:
  ares run main.lisp
  ares run -p -e '(map (list 1 2 3) (lambda (x) (* x x)))'
  ares run --callgrind callgrind.out lib/... --exclude vendor`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runExec(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, flags, args)
		},
	}
	cmd.Flags().BoolVarP(&flags.expression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	cmd.Flags().BoolVarP(&flags.print, "print", "p", false,
		"Print expression values to stdout")
	cmd.Flags().StringSliceVar(&flags.excludes, "exclude", nil,
		"Skip files whose path, name, or directory matches a glob pattern")
	cmd.Flags().StringVar(&flags.callgrind, "callgrind", "",
		"Write a callgrind profile of lisp calls to a file")
	cmd.Flags().StringVar(&flags.cpuProfile, "cpuprofile", "",
		"Write a Go CPU profile labeled with lisp function names to a file")
	cmd.Flags().BoolVar(&flags.trace, "trace", false,
		"Log an opentelemetry span for each lisp call to stderr")
	cmd.Flags().BoolVar(&flags.noForeign, "no-foreign", false,
		"Leave foreign function calls out of profiles and traces")
	return cmd
}

// lifecycle is implemented by the profilers in lisp/x/profiler.
type lifecycle interface {
	lisp.Profiler
	Enable() error
	Complete() error
}

func runExec(stdout, stderr io.Writer, cfg *cmdConfig, flags *runFlags, args []string) error {
	ctx, err := cfg.newContext(stderr)
	if err != nil {
		return err
	}
	rt := ctx.Runtime()
	logger := rt.Logger

	var popts []profiler.Option
	if flags.noForeign {
		popts = append(popts, profiler.WithoutForeignFunctions(ctx.Env()))
	}
	var profilers []lifecycle
	if flags.callgrind != "" {
		p := profiler.NewCallgrindProfiler(rt, popts...)
		if err := p.SetFile(flags.callgrind); err != nil {
			return err
		}
		profilers = append(profilers, p)
	}
	if flags.cpuProfile != "" {
		f, err := os.Create(flags.cpuProfile)
		if err != nil {
			return err
		}
		defer f.Close() //nolint:errcheck // closed after the profile is flushed
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
		profilers = append(profilers, profiler.NewPprofAnnotator(rt, context.Background(), popts...))
	}
	if flags.trace {
		traceLog := logrus.New()
		traceLog.SetOutput(stderr)
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(&logExporter{logger: traceLog}))
		defer tp.Shutdown(context.Background()) //nolint:errcheck // the exporter holds no resources
		otel.SetTracerProvider(tp)
		profilers = append(profilers, profiler.NewOpenTelemetryAnnotator(rt, context.Background(), popts...))
	}
	switch len(profilers) {
	case 0:
	case 1:
		if err := profilers[0].Enable(); err != nil {
			return err
		}
		defer completeProfiler(logger, profilers[0])
	default:
		return fmt.Errorf("only one of --callgrind, --cpuprofile and --trace may be given")
	}

	sources, err := runReadSources(flags, args)
	if err != nil {
		return err
	}
	var state struct{}
	lc := ctx.Load(&state)
	for _, src := range sources {
		logger.WithField("source", src.name).Debug("running")
		v, err := lc.EvalString(src.text)
		if err != nil {
			return fmt.Errorf("%s: %w", src.name, err)
		}
		if flags.print {
			fmt.Fprintln(stdout, ctx.Format(v)) //nolint:errcheck // best-effort output
		}
	}
	return nil
}

func completeProfiler(logger logrus.FieldLogger, p lifecycle) {
	if err := p.Complete(); err != nil {
		logger.WithError(err).Error("profiler failed to complete")
	}
}

type source struct {
	name string
	text string
}

func runReadSources(flags *runFlags, args []string) ([]source, error) {
	if flags.expression {
		srcs := make([]source, len(args))
		for i := range args {
			srcs[i] = source{name: fmt.Sprintf("expression %d", i+1), text: args[i]}
		}
		return srcs, nil
	}
	paths, err := expandArgs(args)
	if err != nil {
		return nil, err
	}
	paths = filterExcludes(paths, flags.excludes)
	srcs := make([]source, len(paths))
	for i, path := range paths {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		srcs[i] = source{name: path, text: string(b)}
	}
	return srcs, nil
}
