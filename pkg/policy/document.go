// Package policy renders merged statements as IAM policy documents and
// lints them against configurable rules.
package policy

import (
	"encoding/json"

	"github.com/DrSkyle/tfgrant/pkg/statement"
)

// Version is the only policy language version current IAM accepts.
const Version = "2012-10-17"

// Document is a complete IAM policy document.
type Document struct {
	Version   string                `json:"Version"`
	Statement []statement.Statement `json:"Statement"`
}

// NewDocument wraps statements in a document. Statements arrive sorted
// from the merge stage; the order is preserved so rendering is
// deterministic.
func NewDocument(stmts []statement.Statement) *Document {
	if stmts == nil {
		stmts = []statement.Statement{}
	}
	return &Document{Version: Version, Statement: stmts}
}

// Render serializes the document as indented JSON, the form the IAM
// console and terraform's jsonencode both accept.
func (d *Document) Render() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
