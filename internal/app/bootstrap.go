// Package app wires the analysis pipeline to its collaborators:
// telemetry, the advisor layer, artifact storage, and AWS.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/DrSkyle/tfgrant/pkg/advisor"
	"github.com/DrSkyle/tfgrant/pkg/arnbuild"
	"github.com/DrSkyle/tfgrant/pkg/awsx"
	"github.com/DrSkyle/tfgrant/pkg/config"
	"github.com/DrSkyle/tfgrant/pkg/engine"
	"github.com/DrSkyle/tfgrant/pkg/permissions"
	"github.com/DrSkyle/tfgrant/pkg/policy"
	"github.com/DrSkyle/tfgrant/pkg/report"
	"github.com/DrSkyle/tfgrant/pkg/statement"
	"github.com/DrSkyle/tfgrant/pkg/storage"
	"github.com/DrSkyle/tfgrant/pkg/telemetry"
	"github.com/DrSkyle/tfgrant/pkg/version"
)

// Artifacts is what one run produces.
type Artifacts struct {
	Result   *engine.Result
	Policy   []byte
	Report   string
	Findings []policy.Finding
}

// Run analyzes cfg.Path and writes the policy and report artifacts.
func Run(ctx context.Context, cfg config.Config) (*Artifacts, error) {
	logger := newLogger(cfg)

	shutdown, err := telemetry.Init(ctx, version.AppName, version.Current, cfg.OtelEndpoint)
	if err != nil {
		logger.Warn("telemetry init failed", "error", err)
	} else {
		defer shutdown(context.WithoutCancel(ctx))
	}

	eng := engine.New(engine.WithConfig(engine.Config{
		StrictMode: cfg.Strict,
		Verbose:    cfg.Verbose,
		JsonLogs:   cfg.JsonLogs,
		Logger:     logger,
	}))

	res, err := eng.AnalyzeDir(ctx, cfg.Path)
	if err != nil {
		return nil, err
	}

	if cfg.Advisor.Enabled && len(res.Skipped) > 0 {
		if extra := advise(ctx, cfg, logger, res); len(extra) > 0 {
			res.Grants = append(res.Grants, extra...)
			res.Statements = statement.Merge(res.Grants)
		}
	}

	doc := policy.NewDocument(res.Statements)
	rendered, err := doc.Render()
	if err != nil {
		return nil, fmt.Errorf("rendering policy: %w", err)
	}

	findings, err := lint(cfg, res)
	if err != nil {
		return nil, err
	}

	art := &Artifacts{
		Result:   res,
		Policy:   rendered,
		Report:   report.Markdown(res, findings),
		Findings: findings,
	}

	if cfg.OutputDir != "" {
		if err := export(ctx, cfg, art); err != nil {
			return nil, err
		}
	}
	return art, nil
}

// Apply substitutes the caller's identity into a rendered policy and
// pushes it to IAM.
func Apply(ctx context.Context, cfg config.Config, rendered []byte) (string, error) {
	logger := newLogger(cfg)

	client, err := awsx.NewClient(ctx, cfg.AWS.Region, cfg.AWS.Profile)
	if err != nil {
		return "", err
	}
	id, err := client.VerifyIdentity(ctx)
	if err != nil {
		return "", err
	}
	logger.Info("resolved caller identity", "arn", id.ARN, "region", id.Region)

	document := awsx.Substitute(string(rendered), id)
	applier := awsx.NewApplier(client, logger)
	policyArn, err := applier.Apply(ctx, cfg.AWS.PolicyName, document, id)
	if err != nil {
		return "", err
	}
	if cfg.AWS.AttachRole != "" {
		if err := applier.AttachToRole(ctx, policyArn, cfg.AWS.AttachRole); err != nil {
			return "", err
		}
	}
	return policyArn, nil
}

// advise asks the model layer about skipped resource types and turns
// non-empty suggestions into wildcard-scoped grants.
func advise(ctx context.Context, cfg config.Config, logger *slog.Logger, res *engine.Result) []statement.Grant {
	inner := advisor.NewOpenAIClient(cfg.Advisor.BaseURL, cfg.Advisor.APIKey, cfg.Advisor.Model)
	store := storage.NewLocalStore(cfg.Advisor.CacheDir)
	adv := advisor.NewCachedAdvisor(inner, store)
	arns := arnbuild.NewBuilder()

	byAddress := make(map[string]int)
	for i, d := range res.Declarations {
		byAddress[d.Address()] = i
	}

	var grants []statement.Grant
	for _, addr := range res.Skipped {
		i, ok := byAddress[addr]
		if !ok {
			continue
		}
		decl := res.Declarations[i]
		sug, err := adv.Suggest(ctx, decl.Type, decl.AttributeNames())
		if err != nil {
			logger.Warn("advisor lookup failed", "resource", addr, "error", err)
			continue
		}
		if len(sug.Actions) == 0 {
			continue
		}
		// Skipped types are exactly the ones the strict splitter
		// rejects, so a lenient fallback is needed here or the answer
		// is thrown away with the type.
		service, family, err := permissions.Split(decl.Type)
		if err != nil {
			service, family = fallbackScope(decl.Type, sug.Actions)
		}
		if service == "" {
			continue
		}
		logger.Info("advisor suggestion", "resource", addr, "actions", len(sug.Actions))
		grants = append(grants, statement.Grant{
			Address: addr,
			Service: service,
			Family:  family,
			Actions: sug.Actions,
			ARNs:    arns.ARNs(service, family, "", false),
		})
	}
	return grants
}

// fallbackScope derives a best-effort service token and family for a
// type the strict splitter rejects. The service comes from the
// suggested actions when they carry a namespace, otherwise from the
// first usable type segment.
func fallbackScope(resourceType string, actions []string) (service, family string) {
	if len(actions) > 0 {
		if ns, _, ok := strings.Cut(actions[0], ":"); ok && ns != "" {
			service = ns
		}
	}
	trimmed := strings.Trim(strings.TrimPrefix(resourceType, "aws_"), "_")
	if trimmed == "" {
		return service, service
	}
	if service == "" {
		service = strings.SplitN(trimmed, "_", 2)[0]
	}
	family = strings.Trim(strings.TrimPrefix(trimmed, service), "_")
	if family == "" {
		family = trimmed
	}
	return service, family
}

func lint(cfg config.Config, res *engine.Result) ([]policy.Finding, error) {
	var rules []policy.LintRule
	if cfg.RulesFile != "" {
		var err error
		rules, err = policy.LoadRules(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
	}
	linter, err := policy.NewLinter(rules)
	if err != nil {
		return nil, err
	}
	return linter.Lint(res.Statements), nil
}

func export(ctx context.Context, cfg config.Config, art *Artifacts) error {
	var awsCfg aws.Config
	if strings.HasPrefix(cfg.OutputDir, "s3://") {
		client, err := awsx.NewClient(ctx, cfg.AWS.Region, cfg.AWS.Profile)
		if err != nil {
			return err
		}
		awsCfg = client.Config
	}
	store := storage.FromURL(cfg.OutputDir, awsCfg)
	if err := store.Put(ctx, "policy.json", art.Policy); err != nil {
		return fmt.Errorf("writing policy artifact: %w", err)
	}
	if err := store.Put(ctx, "report.md", []byte(art.Report)); err != nil {
		return fmt.Errorf("writing report artifact: %w", err)
	}
	return nil
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.JsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
