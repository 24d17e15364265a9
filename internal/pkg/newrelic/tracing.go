package newrelic

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// FromContext extracts New Relic transaction from standard context
func FromContext(ctx context.Context) *newrelic.Transaction {
	return newrelic.FromContext(ctx)
}

// WithSegment executes a function within a New Relic segment when a
// transaction is present on ctx
func WithSegment(ctx context.Context, segmentName string, fn func() error) error {
	if txn := FromContext(ctx); txn != nil {
		defer txn.StartSegment(segmentName).End()
	}
	return fn()
}

// WithSegmentAndReturn is WithSegment for functions that return a value
func WithSegmentAndReturn[T any](ctx context.Context, segmentName string, fn func() (T, error)) (T, error) {
	if txn := FromContext(ctx); txn != nil {
		defer txn.StartSegment(segmentName).End()
	}
	return fn()
}

// StartBackground starts a non-web transaction for work that does not come
// from an HTTP request, such as engine ticks or bus messages. The returned
// end func must be called once the work is done.
func StartBackground(ctx context.Context, app *newrelic.Application, name string) (context.Context, func()) {
	if app == nil {
		return ctx, func() {}
	}
	txn := app.StartTransaction(name)
	return newrelic.NewContext(ctx, txn), txn.End
}
