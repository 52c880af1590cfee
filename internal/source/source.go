// Package source recovers declaration-level information about Go
// functions that reflection cannot provide, most importantly parameter
// names. It locates a function's declaring file through the runtime and
// loads it with go/packages.
package source

import (
	"fmt"
	"go/ast"
	"go/token"
	"log/slog"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"

	"golang.org/x/tools/go/packages"
)

// FuncInfo describes a function declaration.
type FuncInfo struct {
	Name     string // bare declared name, or the runtime symbol for closures
	FullName string // fully qualified runtime symbol
	File     string
	Line     int
	Params   []string // declared parameter names in order
	// FromSource is false when the declaring source could not be found
	// and Params is empty.
	FromSource bool
}

type loadedFile struct {
	fset  *token.FileSet
	files []*ast.File
}

// Loader resolves functions to their declarations, caching one load per
// declaring file. It is meant for single-threaded decoration-time use.
type Loader struct {
	logger *slog.Logger
	cache  map[string]*loadedFile
}

// NewLoader returns a Loader logging through the given logger.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, cache: make(map[string]*loadedFile)}
}

// Describe returns declaration information for fn, which must be a
// function value. When the declaring source cannot be located (closures,
// generated code, stripped binaries) the result has FromSource false and
// no parameter names; this is a degradation, not an error.
func (l *Loader) Describe(fn any) (*FuncInfo, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil, fmt.Errorf("not a function: %T", fn)
	}

	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return nil, fmt.Errorf("no runtime information for %T", fn)
	}
	file, line := rf.FileLine(rf.Entry())
	full := rf.Name()
	bare := bareName(full)

	info := &FuncInfo{
		Name:     bare,
		FullName: full,
		File:     file,
		Line:     line,
	}

	if bare == "" || file == "" {
		l.logger.Debug("function has no declared name", "symbol", full)
		return info, nil
	}

	lf, err := l.load(file)
	if err != nil {
		l.logger.Debug("could not load declaring source", "file", file, "error", err)
		return info, nil
	}

	decl := findDecl(lf, file, bare, line)
	if decl == nil {
		l.logger.Debug("no matching declaration found", "symbol", full, "file", file, "line", line)
		return info, nil
	}

	info.Params = paramNames(decl)
	info.FromSource = true
	l.logger.Debug("declaration resolved", "func", bare, "params", len(info.Params))
	return info, nil
}

func (l *Loader) load(file string) (*loadedFile, error) {
	if lf, ok := l.cache[file]; ok {
		return lf, nil
	}

	cfg := &packages.Config{
		Mode:  packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:   filepath.Dir(file),
		Tests: true,
	}
	pkgs, err := packages.Load(cfg, "file="+file)
	if err != nil {
		return nil, fmt.Errorf("loading package for %s: %w", file, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no package contains %s", file)
	}

	lf := &loadedFile{}
	for _, pkg := range pkgs {
		if lf.fset == nil {
			lf.fset = pkg.Fset
		}
		lf.files = append(lf.files, pkg.Syntax...)
	}
	if lf.fset == nil {
		return nil, fmt.Errorf("no syntax loaded for %s", file)
	}

	l.cache[file] = lf
	return lf, nil
}

// findDecl locates the FuncDecl named name whose source range covers
// line in file. The runtime reports the line of the function's entry,
// which always falls inside the declaration.
func findDecl(lf *loadedFile, file, name string, line int) *ast.FuncDecl {
	var byName *ast.FuncDecl
	for _, f := range lf.files {
		for _, d := range f.Decls {
			fd, ok := d.(*ast.FuncDecl)
			if !ok || fd.Name.Name != name {
				continue
			}
			start := lf.fset.Position(fd.Pos())
			if start.Filename != file {
				continue
			}
			end := lf.fset.Position(fd.End())
			if start.Line <= line && line <= end.Line {
				return fd
			}
			byName = fd
		}
	}
	// Fall back to a unique name match; inlining can shift entry lines.
	return byName
}

// paramNames expands grouped parameters (x, y float64) into one name per
// parameter, in declaration order. Unnamed parameters get positional names.
func paramNames(decl *ast.FuncDecl) []string {
	if decl.Type.Params == nil {
		return nil
	}
	var names []string
	for _, field := range decl.Type.Params.List {
		if len(field.Names) == 0 {
			names = append(names, fmt.Sprintf("arg%d", len(names)))
			continue
		}
		for _, n := range field.Names {
			if n.Name == "_" {
				names = append(names, fmt.Sprintf("arg%d", len(names)))
				continue
			}
			names = append(names, n.Name)
		}
	}
	return names
}

// bareName extracts the declared function name from a runtime symbol
// such as "github.com/user/pkg.Add" or "pkg.(*T).M". It returns "" for
// closures and method values, which have no addressable declaration name.
func bareName(symbol string) string {
	if i := strings.LastIndex(symbol, "/"); i >= 0 {
		symbol = symbol[i+1:]
	}
	parts := strings.Split(symbol, ".")
	name := parts[len(parts)-1]
	name = strings.TrimSuffix(name, "-fm")
	if name == "" || isClosureSymbol(name) {
		return ""
	}
	return name
}

// isClosureSymbol reports whether name looks like a compiler-generated
// closure symbol element (func1, func2, or a bare nesting index).
func isClosureSymbol(name string) bool {
	rest := strings.TrimPrefix(name, "func")
	if rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
