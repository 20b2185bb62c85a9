package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depvet/depvet/internal/adapters/telemetry"
)

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx, span := tracer.Start(context.Background(), "resolve /tmp/demo")
	assert.Equal(t, context.Background(), ctx)
	require.NotNil(t, span)

	// None of these should panic or block.
	span.SetAttribute("candidates", 3)
	span.RecordError(assert.AnError)
	span.End()
	assert.NoError(t, tracer.Close())
}
