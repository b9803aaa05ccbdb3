package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DrSkyle/tfgrant/pkg/analyzer"
	"github.com/DrSkyle/tfgrant/pkg/engine"
	"github.com/DrSkyle/tfgrant/pkg/policy"
	"github.com/DrSkyle/tfgrant/pkg/statement"
)

func sampleResult() *engine.Result {
	return &engine.Result{
		Declarations: make([]analyzer.ResourceDeclaration, 3),
		Statements: []statement.Statement{
			{
				Sid:      "S3Bucket",
				Effect:   "Allow",
				Action:   []string{"s3:CreateBucket", "s3:DeleteBucket"},
				Resource: []string{"arn:aws:s3:::data", "arn:aws:s3:::logs"},
				Sources:  []string{"aws_s3_bucket.data", "aws_s3_bucket.logs"},
			},
			{
				Sid:      "Wafv2WebAcl",
				Effect:   "Allow",
				Action:   []string{"wafv2:CreateWebAcl"},
				Resource: []string{"arn:aws:wafv2:${aws_region}:${aws_account}:*"},
			},
		},
	}
}

func TestComputeStats(t *testing.T) {
	stats := Compute(sampleResult())

	assert.Equal(t, 3, stats.Declarations)
	assert.Equal(t, 2, stats.Statements)
	assert.Equal(t, 3, stats.Actions)
	assert.Equal(t, 2, stats.SpecificARNs)
	assert.Equal(t, 1, stats.WildcardARNs)
	// Two of three scopes are specific.
	assert.Equal(t, 66, stats.Score)
}

func TestComputeStatsPenalties(t *testing.T) {
	res := sampleResult()
	res.Skipped = []string{"aws_.weird"}
	res.FileErrors = []*analyzer.ParseError{{File: "broken.tf", Line: 3}}

	stats := Compute(res)
	assert.Equal(t, 66-5-10, stats.Score)
}

func TestComputeStatsFloor(t *testing.T) {
	res := &engine.Result{
		FileErrors: make([]*analyzer.ParseError, 20),
	}
	for i := range res.FileErrors {
		res.FileErrors[i] = &analyzer.ParseError{File: "x.tf"}
	}
	stats := Compute(res)
	assert.Equal(t, 0, stats.Score)
}

func TestMarkdownSections(t *testing.T) {
	res := sampleResult()
	res.FileErrors = []*analyzer.ParseError{{File: "broken.tf", Line: 3, Detail: "Unclosed configuration block"}}
	res.Skipped = []string{"aws_.weird"}

	md := Markdown(res, []policy.Finding{
		{RuleID: "wildcard-resources", Sid: "Wafv2WebAcl", Severity: "warn", Message: "statement falls back to wildcard resource scoping"},
	})

	for _, want := range []string{
		"# tfgrant analysis report",
		"## Summary",
		"## Skipped files",
		"`broken.tf:3`",
		"## Resources without derivable actions",
		"## Lint findings",
		"wildcard-resources",
		"### S3Bucket",
		"`aws_s3_bucket.data`",
		"arn:aws:s3:::logs",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}
}
