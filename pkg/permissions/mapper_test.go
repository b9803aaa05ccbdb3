package permissions

import (
	"errors"
	"sort"
	"strings"
	"testing"
)

func TestActionsFromCatalog(t *testing.T) {
	m := NewMapper()

	actions, err := m.Actions("aws_s3_bucket")
	if err != nil {
		t.Fatalf("catalog lookup failed: %v", err)
	}
	want := map[string]bool{"s3:CreateBucket": false, "s3:DeleteBucket": false, "s3:ListBucket": false}
	for _, a := range actions {
		if _, ok := want[a]; ok {
			want[a] = true
		}
		if !strings.HasPrefix(a, "s3:") {
			t.Errorf("catalog action from wrong namespace: %s", a)
		}
	}
	for a, seen := range want {
		if !seen {
			t.Errorf("expected %s in catalog actions", a)
		}
	}
	if m.Inferred() != 0 {
		t.Errorf("catalog hit must not touch the inference cache")
	}
}

func TestActionsInferenceFallback(t *testing.T) {
	m := NewMapper()

	actions, err := m.Actions("aws_wafv2_web_acl")
	if err != nil {
		t.Fatalf("inference failed: %v", err)
	}

	for _, verb := range []string{"Create", "Get", "List", "Delete", "Update"} {
		found := false
		for _, a := range actions {
			if a == "wafv2:"+verb+"WebAcl" {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected wafv2:%sWebAcl in inferred actions, got %v", verb, actions)
		}
	}
	if !sort.StringsAreSorted(actions) {
		t.Error("inferred actions must be sorted")
	}
	if m.Inferred() != 1 {
		t.Errorf("expected 1 inferred type, got %d", m.Inferred())
	}
}

func TestActionsInferenceCacheStable(t *testing.T) {
	m := NewMapper()

	first, err := m.Actions("aws_appstream_fleet")
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.Actions("aws_appstream_fleet")
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != len(second) {
		t.Fatalf("cache returned different sizes: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("cache unstable at %d: %s vs %s", i, first[i], second[i])
		}
	}
	if m.Inferred() != 1 {
		t.Errorf("repeat lookups must not grow the cache, got %d", m.Inferred())
	}

	// Returned slices are copies; mutating one must not poison the cache.
	first[0] = "tampered"
	third, _ := m.Actions("aws_appstream_fleet")
	if third[0] == "tampered" {
		t.Error("cache shares memory with callers")
	}
}

func TestActionsRejectsForeignTypes(t *testing.T) {
	m := NewMapper()

	for _, typ := range []string{"google_storage_bucket", "", "aws_"} {
		_, err := m.Actions(typ)
		if err == nil {
			t.Errorf("expected MappingError for %q", typ)
			continue
		}
		var merr *MappingError
		if !errors.As(err, &merr) {
			t.Errorf("expected MappingError for %q, got %T", typ, err)
		}
	}
}

func TestSplitServiceAliases(t *testing.T) {
	cases := []struct {
		typ     string
		service string
		family  string
	}{
		{"aws_s3_bucket", "s3", "bucket"},
		{"aws_db_instance", "rds", "instance"},
		{"aws_vpc", "ec2", "vpc"},
		{"aws_security_group", "ec2", "security_group"},
		{"aws_cloudwatch_log_group", "logs", "log_group"},
		{"aws_lb", "elasticloadbalancing", "load_balancer"},
		{"aws_wafv2_web_acl", "wafv2", "web_acl"},
		{"aws_sfn_state_machine", "states", "state_machine"},
	}
	for _, c := range cases {
		service, family, err := Split(c.typ)
		if err != nil {
			t.Errorf("Split(%s): %v", c.typ, err)
			continue
		}
		if service != c.service || family != c.family {
			t.Errorf("Split(%s) = %s/%s, want %s/%s", c.typ, service, family, c.service, c.family)
		}
	}
}

func TestTitle(t *testing.T) {
	cases := map[string]string{
		"web_acl":       "WebAcl",
		"bucket":        "Bucket",
		"log_group":     "LogGroup",
		"state-machine": "StateMachine",
	}
	for in, want := range cases {
		if got := Title(in); got != want {
			t.Errorf("Title(%q) = %q, want %q", in, got, want)
		}
	}
}
