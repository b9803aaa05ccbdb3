package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// skipDirs are directories that never hold first-party Terraform.
var skipDirs = map[string]bool{
	".terraform":   true,
	".git":         true,
	"node_modules": true,
	"venv":         true,
}

// LoadDirectory reads every .tf file under dir. Files are read
// concurrently (no ordering requirement between reads) and the result
// is sorted by path so the downstream pipeline sees one stable
// sequence.
func LoadDirectory(ctx context.Context, dir string) ([]Source, error) {
	var paths []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if skipDirs[name] || (strings.HasPrefix(name, ".") && path != dir) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(info.Name(), ".tf") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	sources := make([]Source, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	sem := make(chan struct{}, 8)
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				errs[i] = ctx.Err()
				return
			}
			content, err := os.ReadFile(path)
			if err != nil {
				errs[i] = fmt.Errorf("failed to read %s: %w", path, err)
				return
			}
			sources[i] = Source{Path: path, Content: content}
		}(i, path)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	return sources, nil
}

// Extraction is the output of the extract+resolve stages: the resolved
// declarations, the symbol table they were resolved against, and the
// per-file structural errors. A broken file fails alone; the rest of
// the tree still analyzes.
type Extraction struct {
	Declarations []ResourceDeclaration
	Symbols      *SymbolTable
	FileErrors   []*ParseError
}

// Extract parses the whole source set, builds one symbol table from
// every file, and returns the resolved declarations in deterministic
// order. Pure: no I/O, no shared state beyond the returned values.
func Extract(sources []Source) *Extraction {
	out := &Extraction{}

	// Callers may hand sources in any order; the pipeline's determinism
	// guarantee starts here.
	sources = append([]Source(nil), sources...)
	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })

	var parsed []*sourceFile
	for _, s := range sources {
		f, err := parseSource(s)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				out.FileErrors = append(out.FileErrors, pe)
				continue
			}
			out.FileErrors = append(out.FileErrors, &ParseError{File: s.Path, Line: 1, Column: 1, Detail: err.Error()})
			continue
		}
		parsed = append(parsed, f)
	}

	// Symbols from every parseable file are collected before any
	// resource attribute is resolved; locals may reference variables
	// and locals declared in other files.
	out.Symbols = NewSymbolTable(parsed)

	seen := make(map[string]int)
	for _, f := range parsed {
		out.Declarations = append(out.Declarations, extractResources(f, out.Symbols, seen)...)
	}

	sort.SliceStable(out.Declarations, func(i, j int) bool {
		a, b := out.Declarations[i], out.Declarations[j]
		if a.SourceFile != b.SourceFile {
			return a.SourceFile < b.SourceFile
		}
		return a.StartLine < b.StartLine
	})
	return out
}
