package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DrSkyle/tfgrant/pkg/statement"
)

func TestLintDefaultRules(t *testing.T) {
	l, err := NewLinter(nil)
	if err != nil {
		t.Fatal(err)
	}

	findings := l.Lint([]statement.Statement{
		{
			Sid:      "IamRole",
			Effect:   "Allow",
			Action:   []string{"iam:CreateRole"},
			Resource: []string{"arn:aws:iam::${aws_account}:role/*"},
		},
		{
			Sid:      "S3Bucket",
			Effect:   "Allow",
			Action:   []string{"s3:CreateBucket"},
			Resource: []string{"arn:aws:s3:::logs"},
		},
	})

	byRule := map[string][]string{}
	for _, f := range findings {
		byRule[f.RuleID] = append(byRule[f.RuleID], f.Sid)
	}

	if sids := byRule["wildcard-iam"]; len(sids) != 1 || sids[0] != "IamRole" {
		t.Errorf("wildcard-iam findings = %v", sids)
	}
	for _, f := range findings {
		if f.Sid == "S3Bucket" {
			t.Errorf("clean statement flagged by %s", f.RuleID)
		}
	}
}

func TestLintBroadActions(t *testing.T) {
	l, err := NewLinter(nil)
	if err != nil {
		t.Fatal(err)
	}

	findings := l.Lint([]statement.Statement{{
		Sid:      "Wafv2WebAcl",
		Effect:   "Allow",
		Action:   []string{"wafv2:CreateWebAcl", "wafv2:Get*"},
		Resource: []string{"arn:aws:wafv2:${aws_region}:${aws_account}:*"},
	}})

	found := false
	for _, f := range findings {
		if f.RuleID == "broad-actions" {
			found = true
		}
	}
	if !found {
		t.Error("expected broad-actions finding for wildcard action pattern")
	}
}

func TestLoadRulesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `rules:
  - id: no-sqs
    condition: service == "sqs"
    severity: error
    message: sqs is forbidden here
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 1 || rules[0].ID != "no-sqs" {
		t.Fatalf("unexpected rules: %+v", rules)
	}

	l, err := NewLinter(rules)
	if err != nil {
		t.Fatal(err)
	}
	findings := l.Lint([]statement.Statement{{
		Sid:      "SqsQueue",
		Action:   []string{"sqs:CreateQueue"},
		Resource: []string{"arn:aws:sqs:${aws_region}:${aws_account}:jobs"},
	}})
	if len(findings) != 1 || findings[0].RuleID != "no-sqs" {
		t.Errorf("custom rule did not fire: %v", findings)
	}
}

func TestNewLinterRejectsBadCondition(t *testing.T) {
	_, err := NewLinter([]LintRule{{ID: "bad", Condition: "this is not CEL ((("}})
	if err == nil {
		t.Error("expected compile error for malformed condition")
	}
}
