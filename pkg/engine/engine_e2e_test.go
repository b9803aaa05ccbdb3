package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/DrSkyle/tfgrant/pkg/analyzer"
	"github.com/DrSkyle/tfgrant/pkg/statement"
)

func quietEngine(cfg Config) *Engine {
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(WithConfig(cfg))
}

func analyze(t *testing.T, cfg Config, files map[string]string) *Result {
	t.Helper()
	var sources []analyzer.Source
	for path, content := range files {
		sources = append(sources, analyzer.Source{Path: path, Content: []byte(content)})
	}
	res, err := quietEngine(cfg).Analyze(context.Background(), sources)
	if err != nil && !errors.Is(err, ErrPartialResult) {
		t.Fatalf("Analyze: %v", err)
	}
	return res
}

func findStatement(stmts []statement.Statement, sid string) *statement.Statement {
	for i := range stmts {
		if stmts[i].Sid == sid {
			return &stmts[i]
		}
	}
	return nil
}

func TestAnalyzeTwoBucketsOneStatement(t *testing.T) {
	res := analyze(t, Config{}, map[string]string{
		"main.tf": `
resource "aws_s3_bucket" "logs" {
  bucket = "logs"
}

resource "aws_s3_bucket" "data" {
  bucket = "data"
}
`,
	})

	if len(res.Statements) != 1 {
		t.Fatalf("expected one statement, got %d", len(res.Statements))
	}
	s := res.Statements[0]
	want := []string{"arn:aws:s3:::data", "arn:aws:s3:::logs"}
	if len(s.Resource) != 2 || s.Resource[0] != want[0] || s.Resource[1] != want[1] {
		t.Errorf("Resource = %v, want %v", s.Resource, want)
	}
	for _, r := range s.Resource {
		if strings.Contains(r, "*") {
			t.Errorf("literal bucket names must not wildcard: %s", r)
		}
	}
}

func TestAnalyzeInfersUnknownType(t *testing.T) {
	res := analyze(t, Config{}, map[string]string{
		"main.tf": `
resource "aws_wafv2_web_acl" "edge" {
  name = "edge"
}
`,
	})

	if res.InferredTypes != 1 {
		t.Fatalf("expected 1 inferred type, got %d", res.InferredTypes)
	}
	s := findStatement(res.Statements, "Wafv2WebAcl")
	if s == nil {
		t.Fatalf("wafv2 statement missing: %+v", res.Statements)
	}
	for _, verb := range []string{"Create", "Delete", "Update"} {
		found := false
		for _, a := range s.Action {
			if a == "wafv2:"+verb+"WebAcl" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected wafv2:%sWebAcl, got %v", verb, s.Action)
		}
	}
}

func TestAnalyzeResolvesLocalIntoARN(t *testing.T) {
	res := analyze(t, Config{}, map[string]string{
		"locals.tf": `
locals {
  name_prefix = "my-app-dev"
}
`,
		"main.tf": `
resource "aws_lambda_function" "main" {
  function_name = "${local.name_prefix}-processor"
}
`,
	})

	s := findStatement(res.Statements, "LambdaFunction")
	if s == nil {
		t.Fatal("lambda statement missing")
	}
	want := "arn:aws:lambda:${aws_region}:${aws_account}:function:my-app-dev-processor"
	if len(s.Resource) != 1 || s.Resource[0] != want {
		t.Errorf("Resource = %v, want [%s]", s.Resource, want)
	}
}

func TestAnalyzeCrossReferenceDoesNotPoisonOwnARN(t *testing.T) {
	res := analyze(t, Config{}, map[string]string{
		"main.tf": `
resource "aws_iam_role" "x" {
  name = "runner"
}

resource "aws_lambda_function" "f" {
  function_name = "worker"
  role = aws_iam_role.x.arn
}
`,
	})

	s := findStatement(res.Statements, "LambdaFunction")
	if s == nil {
		t.Fatal("lambda statement missing")
	}
	if len(s.Resource) != 1 || !strings.HasSuffix(s.Resource[0], "function:worker") {
		t.Errorf("cross-reference in another attribute changed the ARN: %v", s.Resource)
	}
	if res.ResolutionGaps == 0 {
		t.Error("cross-reference should count as a gap")
	}
}

func TestAnalyzeUnresolvedNameFallsBackToWildcard(t *testing.T) {
	res := analyze(t, Config{}, map[string]string{
		"main.tf": `
variable "bucket_name" {
  type = string
}

resource "aws_s3_bucket" "b" {
  bucket = var.bucket_name
}
`,
	})

	s := findStatement(res.Statements, "S3Bucket")
	if s == nil {
		t.Fatal("s3 statement missing")
	}
	if len(s.Resource) != 1 || s.Resource[0] != "arn:aws:s3:::*" {
		t.Errorf("expected wildcard bucket scoping, got %v", s.Resource)
	}
}

func TestAnalyzeBrokenFileIsPartial(t *testing.T) {
	files := map[string]string{
		"broken.tf": `
resource "aws_s3_bucket" "b" {
  bucket = "x"
`,
		"ok.tf": `
resource "aws_sqs_queue" "q" {
  name = "jobs"
}
`,
	}

	res := analyze(t, Config{}, files)
	if len(res.FileErrors) != 1 || res.FileErrors[0].File != "broken.tf" {
		t.Fatalf("expected broken.tf parse error, got %+v", res.FileErrors)
	}
	if findStatement(res.Statements, "SqsQueue") == nil {
		t.Error("healthy file should still produce statements")
	}
	for _, s := range res.Statements {
		for _, a := range s.Action {
			if strings.HasPrefix(a, "s3:") {
				t.Error("broken file contributed statements")
			}
		}
	}

	// Same input under strict mode fails loudly.
	var sources []analyzer.Source
	for path, content := range files {
		sources = append(sources, analyzer.Source{Path: path, Content: []byte(content)})
	}
	_, err := quietEngine(Config{StrictMode: true}).Analyze(context.Background(), sources)
	if !errors.Is(err, ErrPartialResult) {
		t.Errorf("strict mode should return ErrPartialResult, got %v", err)
	}
}

func TestAnalyzeSkipsUnmappableTypes(t *testing.T) {
	res := analyze(t, Config{}, map[string]string{
		"main.tf": `
resource "aws_" "weird" {
  name = "x"
}

resource "aws_sqs_queue" "q" {
  name = "jobs"
}
`,
	})

	if len(res.Skipped) != 1 {
		t.Fatalf("expected 1 skipped resource, got %v", res.Skipped)
	}
	if findStatement(res.Statements, "SqsQueue") == nil {
		t.Error("mappable resources must still analyze")
	}
}

func TestAnalyzeDeterministicOutput(t *testing.T) {
	files := map[string]string{
		"main.tf": `
resource "aws_s3_bucket" "a" {
  bucket = "a"
}

resource "aws_dynamodb_table" "t" {
  name = "events"
}

resource "aws_wafv2_web_acl" "w" {
  name = "edge"
}
`,
	}

	first := analyze(t, Config{}, files)
	second := analyze(t, Config{}, files)

	if len(first.Statements) != len(second.Statements) {
		t.Fatalf("statement counts differ: %d vs %d", len(first.Statements), len(second.Statements))
	}
	for i := range first.Statements {
		a, b := first.Statements[i], second.Statements[i]
		if a.Sid != b.Sid {
			t.Fatalf("Sid order unstable: %s vs %s", a.Sid, b.Sid)
		}
		for j := range a.Action {
			if a.Action[j] != b.Action[j] {
				t.Fatalf("action order unstable in %s", a.Sid)
			}
		}
	}
}
