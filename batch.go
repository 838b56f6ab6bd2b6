package gocalc

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ============================================================
// Batch evaluation
// ============================================================

// BatchResult is one evaluated expression. Err holds a per-expression failure;
// one bad expression does not stop the batch.
type BatchResult struct {
	Expression string
	Value      Value
	Display    string
	Err        error
}

// EvaluateBatch evaluates exprs concurrently, at most limit at a time (GOMAXPROCS
// when limit <= 0). Results keep input order. Only cancellation of ctx is returned
// as an error.
func (ev *Evaluator) EvaluateBatch(ctx context.Context, exprs []string, limit int) ([]BatchResult, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	out := make([]BatchResult, len(exprs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, expr := range exprs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := ev.Evaluate(expr)
			r := BatchResult{Expression: expr, Value: v, Err: err}
			if err == nil {
				r.Display = ev.Format(v)
			} else {
				r.Display = "Error"
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	diag().Debug("evaluated batch", "count", len(exprs), "limit", limit)
	return out, nil
}

func EvaluateBatch(ctx context.Context, exprs []string, limit int) ([]BatchResult, error) {
	return defaultEvaluator.EvaluateBatch(ctx, exprs, limit)
}
