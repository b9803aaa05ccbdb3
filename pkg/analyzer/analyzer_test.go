package analyzer

import (
	"strings"
	"testing"
)

func extractOne(t *testing.T, files map[string]string) *Extraction {
	t.Helper()
	var sources []Source
	for path, content := range files {
		sources = append(sources, Source{Path: path, Content: []byte(content)})
	}
	return Extract(sources)
}

func TestExtractLiteralAttributes(t *testing.T) {
	ext := extractOne(t, map[string]string{
		"main.tf": `
resource "aws_s3_bucket" "logs" {
  bucket = "acme-logs"
  force_destroy = true
}

resource "aws_s3_bucket" "data" {
  bucket = "acme-data"
}
`,
	})

	if len(ext.FileErrors) != 0 {
		t.Fatalf("unexpected file errors: %v", ext.FileErrors)
	}
	if len(ext.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(ext.Declarations))
	}

	d := ext.Declarations[0]
	if d.Address() != "aws_s3_bucket.logs" {
		t.Errorf("expected aws_s3_bucket.logs first, got %s", d.Address())
	}
	v, ok := d.Attributes["bucket"]
	if !ok || !v.IsLiteral() || v.Text != "acme-logs" {
		t.Errorf("expected literal bucket name, got %+v", v)
	}
	if d.SourceFile != "main.tf" || d.StartLine != 2 {
		t.Errorf("bad provenance: %s:%d", d.SourceFile, d.StartLine)
	}
}

func TestExtractIgnoresNonAWSBlocks(t *testing.T) {
	ext := extractOne(t, map[string]string{
		"main.tf": `
provider "aws" {
  region = "us-east-1"
}

resource "google_storage_bucket" "gcs" {
  name = "not-aws"
}

resource "aws_sqs_queue" "jobs" {
  name = "jobs"
}
`,
	})

	if len(ext.Declarations) != 1 {
		t.Fatalf("expected 1 declarations, got %d", len(ext.Declarations))
	}
	if ext.Declarations[0].Type != "aws_sqs_queue" {
		t.Errorf("expected aws_sqs_queue, got %s", ext.Declarations[0].Type)
	}
}

func TestExtractNestedBlocksAreNotAttributes(t *testing.T) {
	ext := extractOne(t, map[string]string{
		"main.tf": `
resource "aws_instance" "web" {
  ami = "ami-12345"
  root_block_device {
    volume_size = 100
  }
}
`,
	})

	d := ext.Declarations[0]
	if _, ok := d.Attributes["volume_size"]; ok {
		t.Error("nested block attribute leaked to top level")
	}
	if _, ok := d.Attributes["ami"]; !ok {
		t.Error("top-level attribute missing")
	}
	if !strings.Contains(d.RawBody, "root_block_device") {
		t.Error("raw body should retain nested block text")
	}
}

func TestExtractIterationMarker(t *testing.T) {
	ext := extractOne(t, map[string]string{
		"main.tf": `
resource "aws_subnet" "private" {
  count = 3
  vpc_id = "vpc-123"
}
`,
	})

	if len(ext.Declarations) != 1 {
		t.Fatalf("iterated resource must stay a single declaration, got %d", len(ext.Declarations))
	}
	if ext.Declarations[0].Name != "private[*]" {
		t.Errorf("expected iteration marker, got %q", ext.Declarations[0].Name)
	}
}

func TestExtractDuplicateNames(t *testing.T) {
	ext := extractOne(t, map[string]string{
		"a.tf": `
resource "aws_s3_bucket" "b" {
  bucket = "one"
}
`,
		"b.tf": `
resource "aws_s3_bucket" "b" {
  bucket = "two"
}
`,
	})

	if len(ext.Declarations) != 2 {
		t.Fatalf("expected both duplicates kept, got %d", len(ext.Declarations))
	}
	names := map[string]bool{}
	for _, d := range ext.Declarations {
		names[d.Name] = true
	}
	if len(names) != 2 {
		t.Errorf("duplicate declarations must get distinct names, got %v", names)
	}
}

func TestExtractParseErrorIsolatesFile(t *testing.T) {
	ext := extractOne(t, map[string]string{
		"broken.tf": `
resource "aws_s3_bucket" "b" {
  bucket = "x"
`,
		"ok.tf": `
resource "aws_sqs_queue" "q" {
  name = "jobs"
}
`,
	})

	if len(ext.FileErrors) != 1 {
		t.Fatalf("expected 1 parse error, got %d", len(ext.FileErrors))
	}
	pe := ext.FileErrors[0]
	if pe.File != "broken.tf" {
		t.Errorf("parse error should name the broken file, got %s", pe.File)
	}
	if pe.Line == 0 {
		t.Error("parse error should carry a position")
	}
	if len(ext.Declarations) != 1 || ext.Declarations[0].Type != "aws_sqs_queue" {
		t.Errorf("healthy file should still extract, got %+v", ext.Declarations)
	}
}

func TestResolveVariableDefault(t *testing.T) {
	ext := extractOne(t, map[string]string{
		"vars.tf": `
variable "env" {
  type = string
  default = "prod"
}
`,
		"main.tf": `
resource "aws_sqs_queue" "q" {
  name = var.env
}
`,
	})

	v := ext.Declarations[0].Attributes["name"]
	if !v.IsLiteral() || v.Text != "prod" {
		t.Errorf("expected variable default to resolve, got %+v", v)
	}
}

func TestResolveVariableWithoutDefault(t *testing.T) {
	ext := extractOne(t, map[string]string{
		"main.tf": `
variable "env" {
  type = string
}

resource "aws_sqs_queue" "q" {
  name = var.env
}
`,
	})

	v := ext.Declarations[0].Attributes["name"]
	if v.Kind != Unresolved {
		t.Errorf("variable without default must stay unresolved, got %+v", v)
	}
}

func TestResolveLocalInterpolation(t *testing.T) {
	ext := extractOne(t, map[string]string{
		"locals.tf": `
locals {
  app = "my-app"
  env = "dev"
  name_prefix = "${local.app}-${local.env}"
}
`,
		"main.tf": `
resource "aws_lambda_function" "main" {
  function_name = "${local.name_prefix}-processor"
  handler = "index.handler"
}
`,
	})

	v := ext.Declarations[0].Attributes["function_name"]
	if !v.IsLiteral() || v.Text != "my-app-dev-processor" {
		t.Errorf("expected transitive local resolution, got %+v", v)
	}
}

func TestResolveLocalCycle(t *testing.T) {
	ext := extractOne(t, map[string]string{
		"main.tf": `
locals {
  a = local.b
  b = local.a
}

resource "aws_sqs_queue" "q" {
  name = local.a
}
`,
	})

	v := ext.Declarations[0].Attributes["name"]
	if v.Kind != Unresolved {
		t.Errorf("cyclic locals must resolve to Unresolved, got %+v", v)
	}
}

func TestResolveCrossResourceReference(t *testing.T) {
	ext := extractOne(t, map[string]string{
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

	var fn *ResourceDeclaration
	for i := range ext.Declarations {
		if ext.Declarations[i].Type == "aws_lambda_function" {
			fn = &ext.Declarations[i]
		}
	}
	if fn == nil {
		t.Fatal("lambda declaration missing")
	}

	role := fn.Attributes["role"]
	if role.Kind != Reference {
		t.Errorf("cross-resource reference must be Reference, got %+v", role)
	}
	if role.Text != "aws_iam_role.x.arn" {
		t.Errorf("reference should keep the address, got %q", role.Text)
	}
	// The referencing resource's own name attribute is unaffected.
	if name := fn.Attributes["function_name"]; !name.IsLiteral() || name.Text != "worker" {
		t.Errorf("own naming attribute must stay literal, got %+v", name)
	}
	if ext.Symbols.Gaps() == 0 {
		t.Error("cross-resource reference should count as a resolution gap")
	}
}

func TestResolveDataSourceReference(t *testing.T) {
	ext := extractOne(t, map[string]string{
		"main.tf": `
data "aws_caller_identity" "current" {}

resource "aws_sqs_queue" "q" {
  name = data.aws_caller_identity.current.account_id
}
`,
	})

	v := ext.Declarations[0].Attributes["name"]
	if v.Kind != Reference {
		t.Errorf("data reference must be Reference, got %+v", v)
	}
}

func TestExtractDeterministicOrder(t *testing.T) {
	files := map[string]string{
		"b.tf": `
resource "aws_sqs_queue" "b" {
  name = "b"
}
`,
		"a.tf": `
resource "aws_sqs_queue" "a2" {
  name = "a2"
}

resource "aws_sqs_queue" "a1" {
  name = "a1"
}
`,
	}

	first := extractOne(t, files)
	second := extractOne(t, files)
	if len(first.Declarations) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(first.Declarations))
	}
	for i := range first.Declarations {
		if first.Declarations[i].Address() != second.Declarations[i].Address() {
			t.Fatalf("extraction order unstable at %d: %s vs %s",
				i, first.Declarations[i].Address(), second.Declarations[i].Address())
		}
	}
	if first.Declarations[0].SourceFile != "a.tf" || first.Declarations[0].Name != "a2" {
		t.Errorf("ordering should be by file then line, got %s %s",
			first.Declarations[0].SourceFile, first.Declarations[0].Name)
	}
}
