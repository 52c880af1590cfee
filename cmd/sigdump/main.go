// Command sigdump previews the eager compilation signatures of the
// functions in a Go package tree: it loads the packages, translates
// every top-level function's declared types into compiler types, and
// prints the signature each function would be compiled with.
package main

import (
	"flag"
	"fmt"
	"go/types"
	"log/slog"
	"os"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/olehluchkiv/anjit/internal/logging"
	"github.com/olehluchkiv/anjit/internal/source"
)

func main() {
	// Use a custom FlagSet so flags can appear on either side of the
	// positional path argument.
	flags, positional := reorderArgs(os.Args[1:])

	fs := flag.NewFlagSet("sigdump", flag.ExitOnError)
	filter := fs.String("filter", "", "package path prefix filter")
	includeUnexported := fs.Bool("include-unexported", false, "include unexported functions")
	strict := fs.Bool("strict", false, "exit non-zero when any function has no compiler signature")
	logFile := fs.String("log-file", "", "optional log file path")
	logLevel := fs.String("log-level", "info", "log level (debug, info, warn, error)")

	if err := fs.Parse(flags); err != nil {
		os.Exit(1)
	}
	positional = append(positional, fs.Args()...)

	dir := "."
	if len(positional) > 0 {
		dir = positional[0]
	}

	level, err := parseLogLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q: %v\n", *logLevel, err)
		os.Exit(1)
	}

	logger, logCleanup, err := logging.Setup(*logFile, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	defer logCleanup()

	entries, unmapped, err := dump(dir, *filter, *includeUnexported, logger)
	if err != nil {
		logger.Error("signature dump failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, e := range entries {
		fmt.Println(e)
	}
	if len(unmapped) > 0 {
		fmt.Fprintf(os.Stderr, "\n%d function(s) without a compiler signature:\n", len(unmapped))
		for _, u := range unmapped {
			fmt.Fprintln(os.Stderr, "  "+u)
		}
		if *strict {
			os.Exit(1)
		}
	}
}

// dump loads dir and renders one "pkg.Func: signature" line per
// translatable function, plus the reasons for the untranslatable ones.
func dump(dir, filter string, includeUnexported bool, logger *slog.Logger) (entries, unmapped []string, err error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, nil, fmt.Errorf("loading packages: %w", err)
	}
	logger.Info("packages loaded", "packages_count", len(pkgs))

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			logger.Warn("package load error", "package", pkg.PkgPath, "error", e.Msg)
		}
		if pkg.Types == nil {
			continue
		}
		if filter != "" && !strings.HasPrefix(pkg.PkgPath, filter) {
			continue
		}

		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			fn, ok := scope.Lookup(name).(*types.Func)
			if !ok {
				continue
			}
			if !includeUnexported && !fn.Exported() {
				continue
			}
			sig := fn.Type().(*types.Signature)
			if sig.Recv() != nil {
				continue
			}

			qualified := pkg.Name + "." + fn.Name()
			jsig, mapErr := source.MapGoSignature(sig)
			if mapErr != nil {
				logger.Debug("function skipped", "func", qualified, "reason", mapErr)
				unmapped = append(unmapped, fmt.Sprintf("%s: %v", qualified, mapErr))
				continue
			}
			entries = append(entries, fmt.Sprintf("%s: %s", qualified, jsig))
		}
	}

	sort.Strings(entries)
	sort.Strings(unmapped)
	logger.Info("dump complete", "signatures", len(entries), "unmapped", len(unmapped))
	return entries, unmapped, nil
}

// reorderArgs separates flags and positional arguments so flags can
// appear in any position. Flags that take a value consume the next arg.
func reorderArgs(args []string) (flags, positional []string) {
	valueFlagSet := map[string]bool{
		"-filter": true, "-log-file": true, "-log-level": true,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			if !strings.Contains(arg, "=") && valueFlagSet[arg] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, arg)
		}
	}
	return flags, positional
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s (valid: debug, info, warn, error)", s)
	}
}
