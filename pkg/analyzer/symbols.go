package analyzer

import (
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// localEntry is an unresolved local definition. The source bytes are
// kept so unresolvable expressions can retain their raw text.
type localEntry struct {
	expr hclsyntax.Expression
	src  []byte
}

// SymbolTable holds every value available for substitution: variable
// defaults, locals, and data source addresses. Locals are resolved
// lazily and transitively; a cycle marks every local on it unresolved
// instead of looping.
type SymbolTable struct {
	variables map[string]string
	locals    map[string]localEntry
	dataRefs  map[string]struct{}

	resolvedLocals map[string]string
	failedLocals   map[string]bool
	resolving      map[string]bool

	gaps int
}

// NewSymbolTable builds the table from every variable, locals, and data
// block found across the parsed file set. Symbols from every file are
// visible to every other file, matching Terraform module scoping.
func NewSymbolTable(files []*sourceFile) *SymbolTable {
	t := &SymbolTable{
		variables:      make(map[string]string),
		locals:         make(map[string]localEntry),
		dataRefs:       make(map[string]struct{}),
		resolvedLocals: make(map[string]string),
		failedLocals:   make(map[string]bool),
		resolving:      make(map[string]bool),
	}
	for _, f := range files {
		t.collect(f)
	}
	return t
}

func (t *SymbolTable) collect(f *sourceFile) {
	for _, block := range f.body.Blocks {
		switch block.Type {
		case "variable":
			if len(block.Labels) != 1 {
				continue
			}
			if def, ok := block.Body.Attributes["default"]; ok {
				// Only literal defaults are usable; a variable without
				// one stays unresolved by design.
				if text, ok := staticText(def.Expr); ok {
					t.variables[block.Labels[0]] = text
				}
			}
		case "locals":
			for name, attr := range block.Body.Attributes {
				t.locals[name] = localEntry{expr: attr.Expr, src: f.src}
			}
		case "data":
			if len(block.Labels) == 2 {
				t.dataRefs[block.Labels[0]+"."+block.Labels[1]] = struct{}{}
			}
		}
	}
}

// Variable returns the default value of a variable, if one was declared.
func (t *SymbolTable) Variable(name string) (string, bool) {
	v, ok := t.variables[name]
	return v, ok
}

// Local resolves a local, following references to other locals and
// variables. Returns false for missing, cyclic, or non-literal locals.
func (t *SymbolTable) Local(name string) (string, bool) {
	return t.resolveLocal(name)
}

// Gaps returns the number of resolution gaps absorbed so far. Gaps are
// never errors; they degrade to the wildcard/placeholder policy.
func (t *SymbolTable) Gaps() int {
	return t.gaps
}

// DataSources returns the number of data source declarations seen.
func (t *SymbolTable) DataSources() int {
	return len(t.dataRefs)
}

func (t *SymbolTable) resolveLocal(name string) (string, bool) {
	if v, ok := t.resolvedLocals[name]; ok {
		return v, true
	}
	if t.failedLocals[name] {
		return "", false
	}
	entry, ok := t.locals[name]
	if !ok {
		return "", false
	}
	if t.resolving[name] {
		// Reference cycle. Mark failed so the whole chain terminates.
		t.failedLocals[name] = true
		return "", false
	}

	t.resolving[name] = true
	v := t.Resolve(entry.expr, entry.src)
	delete(t.resolving, name)

	if v.Kind == Literal {
		t.resolvedLocals[name] = v.Text
		return v.Text, true
	}
	t.failedLocals[name] = true
	return "", false
}

// staticText evaluates an expression that references nothing. Maps,
// lists, and function calls are not usable as name material and report
// false.
func staticText(expr hclsyntax.Expression) (string, bool) {
	if len(expr.Variables()) > 0 {
		return "", false
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", false
	}
	return ctyText(val)
}

func ctyText(val cty.Value) (string, bool) {
	if !val.IsKnown() || val.IsNull() {
		return "", false
	}
	conv, err := convert.Convert(val, cty.String)
	if err != nil || conv.IsNull() {
		return "", false
	}
	return conv.AsString(), true
}
