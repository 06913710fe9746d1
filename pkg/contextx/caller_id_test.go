package contextx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"otc_desk/pkg/contextx"
)

func TestCallerID(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var testCallerIDEmpty contextx.CallerID

	testCallerIDNotEmpty := contextx.CallerID("partner-1")

	callerID, err := contextx.CallerIDFromContext(ctx)
	rq.Equal(testCallerIDEmpty, callerID)
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "caller id: no value in context")

	ctx = contextx.WithCallerID(ctx, testCallerIDNotEmpty)

	callerID, err = contextx.CallerIDFromContext(ctx)
	rq.Equal(testCallerIDNotEmpty, callerID)
	rq.NoError(err)
}
