package policy

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/checker/decls"
	"gopkg.in/yaml.v3"

	"github.com/DrSkyle/tfgrant/pkg/statement"
)

// LintRule is a user-defined check over one policy statement. Condition
// is a CEL expression; a true result flags the statement.
type LintRule struct {
	ID        string `json:"id" yaml:"id"`
	Condition string `json:"condition" yaml:"condition"` // e.g. "wildcard_resources && service == 'iam'"
	Severity  string `json:"severity" yaml:"severity"`   // "warn" or "error"
	Message   string `json:"message" yaml:"message"`
}

// Finding is one rule match against one statement.
type Finding struct {
	RuleID   string
	Sid      string
	Severity string
	Message  string
}

// defaultRules flag the scoping losses worth a human look.
var defaultRules = []LintRule{
	{
		ID:        "wildcard-iam",
		Condition: `service == "iam" && wildcard_resources`,
		Severity:  "error",
		Message:   "IAM actions scoped to wildcard resources can escalate privileges",
	},
	{
		ID:        "wildcard-resources",
		Condition: `wildcard_resources`,
		Severity:  "warn",
		Message:   "statement falls back to wildcard resource scoping",
	},
	{
		ID:        "broad-actions",
		Condition: `actions.exists(a, a.endsWith("*"))`,
		Severity:  "warn",
		Message:   "statement grants a wildcard action pattern",
	},
}

// DefaultRules returns a copy of the built-in rule set.
func DefaultRules() []LintRule {
	return append([]LintRule(nil), defaultRules...)
}

// Linter compiles lint rules once and evaluates them per statement.
type Linter struct {
	env      *cel.Env
	rules    []LintRule
	programs map[string]cel.Program
}

// NewLinter builds a linter from the given rules, or the default rule
// set when rules is empty.
func NewLinter(rules []LintRule) (*Linter, error) {
	if len(rules) == 0 {
		rules = defaultRules
	}
	env, err := cel.NewEnv(
		cel.Declarations(
			decls.NewVar("sid", decls.String),
			decls.NewVar("service", decls.String),
			decls.NewVar("actions", decls.NewListType(decls.String)),
			decls.NewVar("resources", decls.NewListType(decls.String)),
			decls.NewVar("wildcard_resources", decls.Bool),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}

	l := &Linter{env: env, rules: rules, programs: make(map[string]cel.Program)}
	for _, r := range rules {
		ast, issues := env.Compile(r.Condition)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("rule %s compilation error: %w", r.ID, issues.Err())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("rule %s program creation error: %w", r.ID, err)
		}
		l.programs[r.ID] = prg
	}
	return l, nil
}

// LoadRules reads lint rules from a YAML file.
func LoadRules(path string) ([]LintRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	var wrapper struct {
		Rules []LintRule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	return wrapper.Rules, nil
}

// Lint evaluates every rule against every statement. Findings come back
// in statement order, rules in declaration order within a statement.
func (l *Linter) Lint(stmts []statement.Statement) []Finding {
	var findings []Finding
	for _, s := range stmts {
		vars := statementVars(s)
		for _, r := range l.rules {
			out, _, err := l.programs[r.ID].Eval(vars)
			if err != nil {
				slog.Error("rule evaluation failed", "rule_id", r.ID, "sid", s.Sid, "error", err)
				continue
			}
			if match, ok := out.Value().(bool); ok && match {
				findings = append(findings, Finding{
					RuleID:   r.ID,
					Sid:      s.Sid,
					Severity: r.Severity,
					Message:  r.Message,
				})
			}
		}
	}
	return findings
}

func statementVars(s statement.Statement) map[string]interface{} {
	service := ""
	if len(s.Action) > 0 {
		service = strings.SplitN(s.Action[0], ":", 2)[0]
	}
	wildcard := false
	for _, r := range s.Resource {
		if strings.Contains(r, "*") {
			wildcard = true
			break
		}
	}
	return map[string]interface{}{
		"sid":                s.Sid,
		"service":            service,
		"actions":            s.Action,
		"resources":          s.Resource,
		"wildcard_resources": wildcard,
	}
}
