package analyzer

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// Source is one (path, content) pair of a configuration tree.
type Source struct {
	Path    string
	Content []byte
}

// sourceFile is one successfully parsed Terraform file.
type sourceFile struct {
	path string
	src  []byte
	body *hclsyntax.Body
}

// parseSource runs the HCL syntax parser over one file. Structural
// problems (unbalanced braces, truncated blocks) surface as a single
// ParseError carrying the file and position of the first diagnostic;
// nothing is extracted from a broken file.
func parseSource(s Source) (*sourceFile, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(s.Content, s.Path)
	if diags.HasErrors() {
		return nil, parseErrorFromDiags(s.Path, diags)
	}

	body, ok := f.Body.(*hclsyntax.Body)
	if !ok {
		return nil, &ParseError{File: s.Path, Line: 1, Column: 1, Detail: "file is not native Terraform syntax"}
	}
	return &sourceFile{path: s.Path, src: s.Content, body: body}, nil
}

func parseErrorFromDiags(path string, diags hcl.Diagnostics) *ParseError {
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		pe := &ParseError{File: path, Line: 1, Column: 1, Detail: d.Summary}
		if d.Detail != "" {
			pe.Detail = d.Summary + ": " + d.Detail
		}
		if d.Subject != nil {
			pe.Line = d.Subject.Start.Line
			pe.Column = d.Subject.Start.Column
		}
		return pe
	}
	return &ParseError{File: path, Line: 1, Column: 1, Detail: "invalid configuration"}
}

// extractResources walks the top-level blocks of a parsed file and
// emits one ResourceDeclaration per AWS resource block, resolving
// attribute expressions against the symbol table. Block bodies are
// captured whole; nested blocks stay inside RawBody and never confuse
// the declaration boundary because the grammar tracks brace depth.
func extractResources(f *sourceFile, table *SymbolTable, seen map[string]int) []ResourceDeclaration {
	var decls []ResourceDeclaration

	for _, block := range f.body.Blocks {
		if block.Type != "resource" || len(block.Labels) != 2 {
			continue
		}
		resType := block.Labels[0]
		if !strings.HasPrefix(resType, "aws_") {
			// Only the AWS provider maps onto IAM actions.
			continue
		}

		name := block.Labels[1]
		if _, iterated := block.Body.Attributes["count"]; iterated {
			name += "[*]"
		} else if _, iterated := block.Body.Attributes["for_each"]; iterated {
			name += "[*]"
		}

		// Logical names are unique per type across the configuration;
		// synthesize a suffix for repeats instead of silently dropping
		// one.
		key := resType + "." + name
		seen[key]++
		if n := seen[key]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}

		attrs := make(map[string]AttrValue, len(block.Body.Attributes))
		for attrName, attr := range block.Body.Attributes {
			attrs[attrName] = table.Resolve(attr.Expr, f.src)
		}

		rng := block.Body.SrcRange
		decls = append(decls, ResourceDeclaration{
			Type:       resType,
			Name:       name,
			Attributes: attrs,
			SourceFile: f.path,
			StartLine:  block.DefRange().Start.Line,
			EndLine:    rng.End.Line,
			RawBody:    rangeText(f.src, rng),
		})
	}
	return decls
}

func rangeText(src []byte, rng hcl.Range) string {
	if rng.Start.Byte < 0 || rng.End.Byte > len(src) || rng.Start.Byte > rng.End.Byte {
		return ""
	}
	return string(src[rng.Start.Byte:rng.End.Byte])
}
