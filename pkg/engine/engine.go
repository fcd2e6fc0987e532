package engine

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"time"

	"github.com/dmitrymomot/formkit/pkg/async"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/result"
	"github.com/dmitrymomot/formkit/pkg/rule"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Engine executes rule trees against data. It holds no per-call state and is
// safe for concurrent use; one Engine serves every dialect.
type Engine struct {
	logger       *slog.Logger
	observers    []Observer
	checkTimeout time.Duration
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{logger: logger.Discard()}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(logger.Component("engine"))
	return e
}

var defaultEngine = New()

// Validate runs r against data with a default Engine.
func Validate(r *rule.Rule, data any) *result.Result {
	return defaultEngine.Validate(context.Background(), r, data)
}

// Validate runs r against data and returns the settled result tree. It waits
// for every check, synchronous or not, before aggregating; the returned tree
// is never partial. Failing checks are reported in the tree, never as errors.
func (e *Engine) Validate(ctx context.Context, r *rule.Rule, data any) *result.Result {
	start := time.Now()

	var futures []*async.Future[bool]
	root := e.schedule(ctx, r, data, "", &futures)

	// Check errors are recorded per check during collect.
	_, _ = async.WaitAll(futures...)

	res := e.collect(ctx, root)
	result.Finalize(res)

	elapsed := time.Since(start)
	e.logger.DebugContext(ctx, "validation completed",
		logger.Rule(r.Name()),
		logger.Outcome(res.HasErrors),
		slog.Int("checks", len(futures)),
		logger.Duration(elapsed),
	)
	for _, o := range e.observers {
		o.ObserveValidation(r.Name(), res, elapsed)
	}
	return res
}

// ValidateAsync starts Validate on its own goroutine. The future settles once
// the whole tree has settled.
func (e *Engine) ValidateAsync(ctx context.Context, r *rule.Rule, data any) *async.Future[*result.Result] {
	return async.Async(context.WithoutCancel(ctx), data, func(_ context.Context, data any) (*result.Result, error) {
		return e.Validate(ctx, r, data), nil
	})
}

// pending mirrors a rule node while its checks are outstanding.
type pending struct {
	rule   *rule.Rule
	path   string
	checks []pendingCheck
	fields []*pending
	items  []*pending
}

type pendingCheck struct {
	name    string
	binding validator.Binding
	params  map[string]any
	future  *async.Future[bool]
}

// schedule walks rule and data together, starting every check and recording
// its future. Nothing is aggregated here.
func (e *Engine) schedule(ctx context.Context, r *rule.Rule, data any, path string, futures *[]*async.Future[bool]) *pending {
	p := &pending{rule: r, path: path}

	switch r.Kind() {
	case rule.KindField:
		for _, b := range r.Checks() {
			pc := pendingCheck{name: b.Name(), binding: b, params: b.Params()}
			pc.future = e.run(ctx, b, data)
			p.checks = append(p.checks, pc)
			*futures = append(*futures, pc.future)
		}

	case rule.KindObject:
		for _, child := range r.Children() {
			p.fields = append(p.fields, e.schedule(ctx, child, property(data, child.Name()), joinPath(path, child.Name()), futures))
		}

	case rule.KindCollection:
		items := sequence(data)
		count := len(items)

		p.checks = append(p.checks,
			e.countCheck(ctx, "minItems", count, r.MinItemsCheck),
			e.countCheck(ctx, "maxItems", count, r.MaxItemsCheck),
		)
		for _, pc := range p.checks {
			*futures = append(*futures, pc.future)
		}

		p.items = make([]*pending, 0, count)
		for i, item := range items {
			p.items = append(p.items, e.schedule(ctx, r.Item(), item, path+"["+strconv.Itoa(i)+"]", futures))
		}
	}

	return p
}

// countCheck evaluates one item bound against the effective item count.
// An unset bound passes.
func (e *Engine) countCheck(ctx context.Context, name string, count int, bound func() (validator.Binding, bool)) pendingCheck {
	b, ok := bound()
	if !ok {
		return pendingCheck{
			name:   name,
			params: map[string]any{"count": count},
			future: async.Resolve(true),
		}
	}
	params := b.Params()
	if params == nil {
		params = map[string]any{}
	}
	params["count"] = count
	return pendingCheck{name: name, binding: b, params: params, future: e.run(ctx, b, count)}
}

// run starts one check. A check that panics while starting settles as
// failed; a pending asynchronous check is bounded by the check timeout.
func (e *Engine) run(ctx context.Context, b validator.Binding, value any) (f *async.Future[bool]) {
	defer func() {
		if r := recover(); r != nil {
			f = async.Reject[bool](fmt.Errorf("%w: %v", async.ErrPanic, r))
		}
	}()

	if e.checkTimeout <= 0 {
		return b.Run(ctx, value)
	}

	checkCtx, cancel := context.WithTimeout(ctx, e.checkTimeout)
	f = b.Run(checkCtx, value)
	if f.IsComplete() {
		cancel()
		return f
	}
	return async.Async(checkCtx, f, func(ctx context.Context, f *async.Future[bool]) (bool, error) {
		defer cancel()
		return f.AwaitContext(ctx)
	})
}

// collect turns a settled pending tree into result nodes. Every future is
// complete at this point, so Await never blocks.
func (e *Engine) collect(ctx context.Context, p *pending) *result.Result {
	var res *result.Result
	switch p.rule.Kind() {
	case rule.KindField:
		res = result.NewField()
	case rule.KindObject:
		res = result.NewObject()
		for _, child := range p.fields {
			res.Errors[child.rule.Name()] = e.collect(ctx, child)
		}
	case rule.KindCollection:
		res = result.NewCollection(len(p.items))
		for _, item := range p.items {
			res.Children = append(res.Children, e.collect(ctx, item))
		}
	default:
		return &result.Result{}
	}

	for _, pc := range p.checks {
		res.ValidationFailures[pc.name] = e.outcome(ctx, p.path, pc)
	}
	return res
}

func (e *Engine) outcome(ctx context.Context, path string, pc pendingCheck) result.Failure {
	ok, err := pc.future.Await()
	f := result.Failure{HasError: err != nil || !ok, Params: pc.params}
	if !f.HasError {
		return f
	}

	if err != nil {
		e.logger.WarnContext(ctx, "check did not complete",
			logger.Path(path),
			logger.Check(pc.name),
			logger.Error(err),
		)
		params := maps.Clone(f.Params)
		if params == nil {
			params = make(map[string]any, 1)
		}
		params["error"] = err.Error()
		f.Params = params
	}

	f.Message = pc.binding.Message()
	f.TranslationKey = pc.binding.TranslationKey()
	for _, o := range e.observers {
		o.ObserveCheckFailure(pc.name)
	}
	return f
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
