package analyzer

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// Resolve maps one attribute expression to its AttrValue. The shapes it
// understands are literals, "${var.x}" / "${local.x}" interpolation,
// bare traversals (var.x, local.x, data.t.n.attr, aws_iam_role.x.arn),
// and string templates concatenating any of those. Everything else
// (function calls, conditionals, collections) is Unresolved.
func (t *SymbolTable) Resolve(expr hclsyntax.Expression, src []byte) AttrValue {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		if text, ok := ctyText(e.Val); ok {
			return AttrValue{Kind: Literal, Text: text}
		}
		return t.unresolved(expr, src)

	case *hclsyntax.TemplateWrapExpr:
		// "${single_expression}" with nothing around it.
		return t.Resolve(e.Wrapped, src)

	case *hclsyntax.TemplateExpr:
		return t.resolveTemplate(e, src)

	case *hclsyntax.ScopeTraversalExpr:
		return t.resolveTraversal(e.Traversal, expr, src)

	default:
		if text, ok := staticText(expr); ok {
			return AttrValue{Kind: Literal, Text: text}
		}
		return t.unresolved(expr, src)
	}
}

// resolveTemplate concatenates template parts. Every part must resolve
// to a literal for the whole template to count as one; a template whose
// only part is a cross-resource reference keeps the Reference kind so
// downstream stages see the address.
func (t *SymbolTable) resolveTemplate(e *hclsyntax.TemplateExpr, src []byte) AttrValue {
	var b strings.Builder
	for _, part := range e.Parts {
		pv := t.Resolve(part, src)
		if pv.Kind != Literal {
			if len(e.Parts) == 1 && pv.Kind == Reference {
				return pv
			}
			return AttrValue{Kind: Unresolved, Text: rangeText(src, e.Range())}
		}
		b.WriteString(pv.Text)
	}
	return AttrValue{Kind: Literal, Text: b.String()}
}

func (t *SymbolTable) resolveTraversal(trav hcl.Traversal, expr hclsyntax.Expression, src []byte) AttrValue {
	switch trav.RootName() {
	case "var":
		name := traversalStep(trav, 1)
		if v, ok := t.variables[name]; ok && name != "" {
			return AttrValue{Kind: Literal, Text: v}
		}
		return t.unresolved(expr, src)

	case "local":
		name := traversalStep(trav, 1)
		if v, ok := t.resolveLocal(name); ok {
			return AttrValue{Kind: Literal, Text: v}
		}
		return t.unresolved(expr, src)

	case "data":
		// Data source values are never known at analysis time; keep a
		// stable placeholder so interpolation cannot crash.
		t.gaps++
		return AttrValue{Kind: Reference, Text: traversalString(trav)}

	default:
		// Cross-resource reference (e.g. aws_iam_role.x.arn). The
		// referenced runtime attribute is unknowable here.
		t.gaps++
		return AttrValue{Kind: Reference, Text: traversalString(trav)}
	}
}

func (t *SymbolTable) unresolved(expr hclsyntax.Expression, src []byte) AttrValue {
	t.gaps++
	return AttrValue{Kind: Unresolved, Text: rangeText(src, expr.Range())}
}

// traversalStep returns the attribute name at step i, or "".
func traversalStep(trav hcl.Traversal, i int) string {
	if i >= len(trav) {
		return ""
	}
	if attr, ok := trav[i].(hcl.TraverseAttr); ok {
		return attr.Name
	}
	return ""
}

// traversalString renders a traversal back to its address form.
func traversalString(trav hcl.Traversal) string {
	var b strings.Builder
	for _, step := range trav {
		switch s := step.(type) {
		case hcl.TraverseRoot:
			b.WriteString(s.Name)
		case hcl.TraverseAttr:
			b.WriteString("." + s.Name)
		case hcl.TraverseIndex:
			if text, ok := ctyText(s.Key); ok {
				b.WriteString(fmt.Sprintf("[%s]", text))
			} else {
				b.WriteString("[*]")
			}
		}
	}
	return b.String()
}
