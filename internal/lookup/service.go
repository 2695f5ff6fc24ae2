package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"mymyunsw/internal/lookup/metrics"
	"mymyunsw/internal/lookup/models"
	"mymyunsw/pkg/domain"
	dErrors "mymyunsw/pkg/domain-errors"
)

// Store answers point lookups. Absence is reported through the boolean, never
// as an error; errors mean the lookup itself could not run.
type Store interface {
	GetStudent(ctx context.Context, zid domain.ZID) (models.StudentRecord, bool, error)
	GetProgram(ctx context.Context, code domain.ProgramCode) (models.ProgramRecord, bool, error)
	GetStream(ctx context.Context, code domain.StreamCode) (models.StreamRecord, bool, error)
}

// Result holds what a plan resolved. Program and Stream are nil when the plan
// did not ask for them.
type Result struct {
	Student models.StudentRecord
	Program *models.ProgramRecord
	Stream  *models.StreamRecord
}

// Resolver runs lookup plans against a store.
type Resolver struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(r *Resolver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(r *Resolver) {
		r.tracer = tracer
	}
}

// New constructs a Resolver.
func New(store Store, opts ...Option) (*Resolver, error) {
	if store == nil {
		return nil, errors.New("lookup store is required")
	}
	r := &Resolver{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
		tracer: otel.Tracer("mymyunsw/internal/lookup"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Execute runs the plan's steps in order and stops at the first key the
// store cannot resolve. Each step runs at most once.
func (r *Resolver) Execute(ctx context.Context, plan Plan) (*Result, error) {
	ctx, span := r.tracer.Start(ctx, "lookup.Execute")
	defer span.End()

	result := &Result{}
	for _, step := range plan.Steps() {
		if err := r.runStep(ctx, plan, step, result); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, dErrors.MessageOf(err))
			return nil, err
		}
	}
	return result, nil
}

func (r *Resolver) runStep(ctx context.Context, plan Plan, step Step, result *Result) error {
	ctx, span := r.tracer.Start(ctx, "lookup."+string(step.Kind),
		trace.WithAttributes(attribute.String("lookup.key", step.Key)))
	defer span.End()

	start := time.Now()
	var (
		found bool
		err   error
	)
	switch step.Kind {
	case StepStudent:
		result.Student, found, err = r.store.GetStudent(ctx, plan.Student)
	case StepProgram:
		var rec models.ProgramRecord
		rec, found, err = r.store.GetProgram(ctx, plan.Program)
		if found {
			result.Program = &rec
		}
	case StepStream:
		var rec models.StreamRecord
		rec, found, err = r.store.GetStream(ctx, plan.Stream)
		if found {
			result.Stream = &rec
		}
	default:
		return dErrors.Newf(dErrors.CodeInternal, "unknown lookup step %q", step.Kind)
	}
	elapsed := time.Since(start)

	switch {
	case err != nil:
		r.metrics.ObserveLookup(string(step.Kind), "error", elapsed)
		r.logger.ErrorContext(ctx, "lookup failed", "kind", step.Kind, "key", step.Key, "error", err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return dErrors.Wrap(err, dErrors.CodeTimeout, fmt.Sprintf("%s lookup aborted", step.Kind))
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("%s lookup failed", step.Kind))
	case !found:
		r.metrics.ObserveLookup(string(step.Kind), "not_found", elapsed)
		r.logger.DebugContext(ctx, "lookup key not found", "kind", step.Kind, "key", step.Key)
		return notFound(step)
	default:
		r.metrics.ObserveLookup(string(step.Kind), "found", elapsed)
		r.logger.DebugContext(ctx, "lookup resolved", "kind", step.Kind, "key", step.Key, "duration", elapsed)
		return nil
	}
}

func notFound(step Step) error {
	switch step.Kind {
	case StepStudent:
		return dErrors.Newf(dErrors.CodeNotFound, "Invalid student id %s", step.Key)
	case StepProgram:
		return dErrors.Newf(dErrors.CodeNotFound, "Invalid program code %s", step.Key)
	default:
		return dErrors.Newf(dErrors.CodeNotFound, "Invalid stream code %s", step.Key)
	}
}
