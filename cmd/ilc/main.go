// Command ilc is a thin CLI driver over the internal compiler core: read
// one namespace file and zero or more library files, run them through the
// parse/elaborate/pass pipeline, and either report diagnostics or emit a
// structural dump — no backend, no simulation, just the core (§6).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilang-hdl/ilc/internal/config"
	"github.com/ilang-hdl/ilc/internal/diagnostics"
	"github.com/ilang-hdl/ilc/internal/elaborate"
	"github.com/ilang-hdl/ilc/internal/parser"
	"github.com/ilang-hdl/ilc/internal/passrunner"
	"github.com/ilang-hdl/ilc/internal/pipeline"
	"github.com/ilang-hdl/ilc/internal/snapshot"
)

// exit codes (§6): 0 success, 1 user error (parse/resolution/malformed
// control), 2 internal invariant violation.
const (
	exitOK       = 0
	exitUserErr  = 1
	exitInternal = 2
)

type cliArgs struct {
	file      string
	libraries []string
	passes    []string
	emit      string
	dump      bool
}

func parseArgs(argv []string) (cliArgs, error) {
	var a cliArgs
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--file":
			i++
			if i >= len(argv) {
				return a, fmt.Errorf("--file requires a path")
			}
			a.file = argv[i]
		case strings.HasPrefix(arg, "--file="):
			a.file = strings.TrimPrefix(arg, "--file=")
		case arg == "--libraries":
			i++
			if i >= len(argv) {
				return a, fmt.Errorf("--libraries requires a path")
			}
			a.libraries = append(a.libraries, argv[i])
		case strings.HasPrefix(arg, "--libraries="):
			a.libraries = append(a.libraries, strings.TrimPrefix(arg, "--libraries="))
		case arg == "--pass":
			i++
			if i >= len(argv) {
				return a, fmt.Errorf("--pass requires a name")
			}
			a.passes = append(a.passes, argv[i])
		case strings.HasPrefix(arg, "--pass="):
			a.passes = append(a.passes, strings.TrimPrefix(arg, "--pass="))
		case arg == "--emit":
			i++
			if i >= len(argv) {
				return a, fmt.Errorf("--emit requires a format name")
			}
			a.emit = argv[i]
		case strings.HasPrefix(arg, "--emit="):
			a.emit = strings.TrimPrefix(arg, "--emit=")
		case arg == "--dump":
			a.dump = true
		case arg == "--help" || arg == "-h":
			return a, errHelp
		default:
			return a, fmt.Errorf("unrecognized argument %q", arg)
		}
	}
	if a.file == "" {
		return a, fmt.Errorf("--file <path> is required")
	}
	return a, nil
}

var errHelp = fmt.Errorf("help requested")

func usage() {
	fmt.Fprintf(os.Stderr, `ilc %s — intermediate-language compiler core

Usage:
  ilc --file <path> [--libraries <path>]... [--pass <name>]... [--emit <format>] [--dump]

Flags:
  --file <path>       namespace source file (%s)
  --libraries <path>  primitive library file (%s); repeatable
  --pass <name>       run only this pass, in the order given; repeatable.
                      Defaults to: %s
  --emit <format>     downstream backend to emit for (not implemented by
                      this core; accepted so callers can probe availability)
  --dump              print a YAML structural snapshot of every elaborated
                      component instead of just diagnostics
`, config.Version, config.SourceFileExt, config.LibraryFileExt, strings.Join(config.DefaultPassOrder, ","))
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			os.Exit(exitInternal)
		}
	}()

	args, err := parseArgs(os.Args[1:])
	if err == errHelp {
		usage()
		os.Exit(exitOK)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(exitUserErr)
	}

	os.Exit(run(args))
}

func run(args cliArgs) int {
	if !config.HasSourceExt(args.file) {
		fmt.Fprintf(os.Stderr, "warning: %s does not have a recognized source extension (%v)\n", args.file, config.SourceFileExtensions)
	}
	src, err := os.ReadFile(args.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", args.file, err)
		return exitUserErr
	}

	var libSrcs []parser.LibrarySource
	for _, path := range args.libraries {
		if !config.HasLibraryExt(path) {
			fmt.Fprintf(os.Stderr, "warning: %s does not have the recognized library extension (%s)\n", path, config.LibraryFileExt)
		}
		text, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading %s: %v\n", path, err)
			return exitUserErr
		}
		libSrcs = append(libSrcs, parser.LibrarySource{File: path, Text: string(text)})
	}

	absFile, err := filepath.Abs(args.file)
	if err != nil {
		absFile = args.file
	}

	ctx := pipeline.NewPipelineContext(string(src))
	ctx.FilePath = absFile
	ctx.PassNames = args.passes

	p := pipeline.New(
		parser.LibraryProcessor{Sources: libSrcs},
		parser.Processor{},
		elaborate.Processor{},
		passrunner.Processor{DefaultOrder: config.DefaultPassOrder},
	)
	ctx = p.Run(ctx)

	if ctx.HasErrors() {
		diagnostics.PrintAll(ctx.RunID, ctx.Errors)
		if anyInternal(ctx.Errors) {
			return exitInternal
		}
		return exitUserErr
	}

	if args.dump {
		out, err := snapshot.ToYAMLAll(ctx.Components)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rendering snapshot: %v\n", err)
			return exitInternal
		}
		fmt.Print(out)
	}

	if args.emit != "" {
		fmt.Fprintf(os.Stderr, "note: --emit %s requested but no backend is wired into this core\n", args.emit)
	}

	return exitOK
}

func anyInternal(errs []*diagnostics.DiagnosticError) bool {
	for _, e := range errs {
		if e.Code == diagnostics.ErrInternal {
			return true
		}
	}
	return false
}
