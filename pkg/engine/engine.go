// Package engine runs the full derivation pipeline: extract resource
// declarations from Terraform sources, map each to IAM actions, scope
// them to ARNs, and merge the results into policy statements.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/DrSkyle/tfgrant/pkg/analyzer"
	"github.com/DrSkyle/tfgrant/pkg/arnbuild"
	"github.com/DrSkyle/tfgrant/pkg/permissions"
	"github.com/DrSkyle/tfgrant/pkg/statement"
)

// ErrPartialResult indicates the analysis completed but at least one
// source file failed to parse and was skipped.
var ErrPartialResult = errors.New("analysis completed with partial results")

// Config holds engine settings.
type Config struct {
	// StrictMode forces a non-nil error when any source file fails to
	// parse instead of degrading to a partial result.
	StrictMode bool

	Verbose  bool
	JsonLogs bool

	// Dependencies.
	Logger *slog.Logger
}

// Result is the outcome of one analysis run.
type Result struct {
	Declarations []analyzer.ResourceDeclaration
	Statements   []statement.Statement
	Grants       []statement.Grant

	// FileErrors lists source files excluded because they failed to
	// parse. The rest of the result is still valid.
	FileErrors []*analyzer.ParseError

	// Skipped lists resource addresses no actions could be derived for.
	Skipped []string

	// ResolutionGaps counts attribute references that could not be
	// resolved to literals and fell back to wildcard scoping.
	ResolutionGaps int

	// InferredTypes counts resource types served by naming-convention
	// inference rather than the curated catalog.
	InferredTypes int
}

// Engine is the runtime core.
type Engine struct {
	Logger *slog.Logger
	Tracer trace.Tracer

	config Config
	arns   *arnbuild.Builder
}

// Option defines a functional configuration override.
type Option func(*Engine)

// New initializes the Engine.
func New(opts ...Option) *Engine {
	handler := slog.NewJSONHandler(os.Stderr, nil)
	e := &Engine{
		Logger: slog.New(handler),
		Tracer: otel.Tracer("tfgrant/engine"),
		arns:   arnbuild.NewBuilder(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.Logger = l
	}
}

// WithConfig sets raw config.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.config = cfg
		if cfg.Logger != nil {
			e.Logger = cfg.Logger
		}
	}
}

// AnalyzeDir loads every .tf file under dir and analyzes it.
func (e *Engine) AnalyzeDir(ctx context.Context, dir string) (*Result, error) {
	sources, err := analyzer.LoadDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}
	return e.Analyze(ctx, sources)
}

// Analyze runs the pipeline over the given sources. A file that fails
// to parse is dropped and reported in Result.FileErrors; the error
// return is non-nil for parse failures only under StrictMode.
func (e *Engine) Analyze(ctx context.Context, sources []analyzer.Source) (*Result, error) {
	ctx, span := e.Tracer.Start(ctx, "Engine.Analyze")
	defer span.End()

	ext := analyzer.Extract(sources)
	for _, pe := range ext.FileErrors {
		e.Logger.Warn("skipping unparseable file",
			"file", pe.File, "line", pe.Line, "error", pe.Detail)
	}

	res := &Result{
		Declarations:   ext.Declarations,
		FileErrors:     ext.FileErrors,
		ResolutionGaps: ext.Symbols.Gaps(),
	}

	// The inference cache is scoped to one analysis, never shared
	// across runs.
	mapper := permissions.NewMapper()

	for _, decl := range ext.Declarations {
		grant, err := e.grant(mapper, decl)
		if err != nil {
			var merr *permissions.MappingError
			if errors.As(err, &merr) {
				e.Logger.Warn("no actions derivable", "resource", decl.Address(), "error", err)
				res.Skipped = append(res.Skipped, decl.Address())
				continue
			}
			return nil, err
		}
		res.Grants = append(res.Grants, grant)
	}

	res.Statements = statement.Merge(res.Grants)
	res.InferredTypes = mapper.Inferred()

	span.SetAttributes(
		attribute.Int("analyze.declarations", len(res.Declarations)),
		attribute.Int("analyze.statements", len(res.Statements)),
		attribute.Int("analyze.file_errors", len(res.FileErrors)),
	)

	e.Logger.Info("analysis complete",
		"declarations", len(res.Declarations),
		"statements", len(res.Statements),
		"gaps", res.ResolutionGaps,
		"inferred_types", res.InferredTypes)

	if len(res.FileErrors) > 0 {
		span.SetAttributes(attribute.Bool("analyze.partial", true))
		if e.config.StrictMode {
			return res, ErrPartialResult
		}
	}
	return res, nil
}

// grant derives one declaration's actions and ARNs.
func (e *Engine) grant(mapper *permissions.Mapper, decl analyzer.ResourceDeclaration) (statement.Grant, error) {
	actions, err := mapper.Actions(decl.Type)
	if err != nil {
		return statement.Grant{}, err
	}
	service, family, err := permissions.Split(decl.Type)
	if err != nil {
		return statement.Grant{}, err
	}

	name, resolved := "", false
	if attr := arnbuild.NamingAttribute(decl.Type); attr != "" {
		if v, ok := decl.Attributes[attr]; ok && v.IsLiteral() {
			name, resolved = v.Text, true
		}
	}

	return statement.Grant{
		Address: decl.Address(),
		Service: service,
		Family:  family,
		Actions: actions,
		ARNs:    e.arns.ARNs(service, family, name, resolved),
	}, nil
}
