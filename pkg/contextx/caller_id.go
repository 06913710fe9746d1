package contextx

import (
	"context"
	"fmt"
)

type CallerID string

type contextKeyCallerID struct{}

func (c CallerID) String() string {
	return string(c)
}

func WithCallerID(ctx context.Context, callerID CallerID) context.Context {
	return context.WithValue(ctx, contextKeyCallerID{}, callerID)
}

func CallerIDFromContext(ctx context.Context) (CallerID, error) {
	callerID, ok := ctx.Value(contextKeyCallerID{}).(CallerID)
	if !ok {
		return "", fmt.Errorf("caller id: %w", ErrNoValue)
	}

	return callerID, nil
}
