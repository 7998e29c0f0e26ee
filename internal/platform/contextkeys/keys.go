// Package contextkeys holds typed context keys shared across packages.
package contextkeys

import "context"

type contextKey string

const operationIDKey = contextKey("operation_id")

// WithOperationID returns a copy of ctx carrying the given operation id.
func WithOperationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, operationIDKey, id)
}

// GetOperationID returns the operation id stored in ctx, if any.
func GetOperationID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(operationIDKey).(string)
	return id, ok && id != ""
}
