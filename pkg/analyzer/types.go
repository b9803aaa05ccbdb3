// Package analyzer extracts resource declarations from Terraform source
// and resolves variable, local, and cross-resource references inside them.
package analyzer

import (
	"fmt"
	"sort"
)

// ValueKind classifies an attribute value after resolution.
type ValueKind int

const (
	// Literal is a fully resolved textual value.
	Literal ValueKind = iota
	// Reference is a stable placeholder for a cross-resource or data
	// source reference. The real value only exists at apply time.
	Reference
	// Unresolved marks a value that still contains interpolation we
	// could not substitute. Downstream stages must not treat it as a
	// concrete name.
	Unresolved
)

func (k ValueKind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Reference:
		return "reference"
	default:
		return "unresolved"
	}
}

// AttrValue is one resolved attribute value. Text holds the literal
// text for Literal, the referenced address (e.g. "aws_iam_role.x.arn")
// for Reference, and the raw source expression for Unresolved.
type AttrValue struct {
	Kind ValueKind
	Text string
}

// IsLiteral reports whether the value can be used as a concrete name.
func (v AttrValue) IsLiteral() bool {
	return v.Kind == Literal && v.Text != ""
}

// ResourceDeclaration is one parsed infrastructure resource. It is
// created once by the extractor and read-only afterwards.
type ResourceDeclaration struct {
	// Type is the vendor-prefixed resource type, e.g. "aws_s3_bucket".
	Type string
	// Name is the logical name. Iterated declarations (count/for_each)
	// carry an "[*]" marker; the iteration set is never expanded.
	Name string
	// Attributes maps top-level attribute names to resolved values.
	Attributes map[string]AttrValue

	// Provenance, used only for diagnostics and reporting.
	SourceFile string
	StartLine  int
	EndLine    int

	// RawBody is the unparsed block body text.
	RawBody string
}

// Address returns the Terraform address "type.name".
func (d *ResourceDeclaration) Address() string {
	return d.Type + "." + d.Name
}

// AttributeNames returns the attribute names in sorted order.
func (d *ResourceDeclaration) AttributeNames() []string {
	names := make([]string, 0, len(d.Attributes))
	for n := range d.Attributes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseError reports a structurally broken Terraform file. It is fatal
// for the affected file; the extractor never emits partial declarations.
type ParseError struct {
	File   string
	Line   int
	Column int
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s:%d,%d: %s", e.File, e.Line, e.Column, e.Detail)
}
