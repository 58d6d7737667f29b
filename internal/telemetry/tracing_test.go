package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Tests here swap the global provider and do not run in parallel.

func TestTracerProviderExportsSpans(t *testing.T) {
	before := otel.GetTracerProvider()

	var buf bytes.Buffer
	tp, err := NewTracerProvider(&buf, "rnafold", "test")
	require.NoError(t, err)

	_, span := otel.Tracer("telemetry-test").Start(context.Background(), "FoldUnderTest")
	span.SetAttributes(attribute.String("rnafold.strategy", "Sequential"))
	span.End()

	require.NoError(t, tp.Shutdown(context.Background()))

	out := buf.String()
	assert.Contains(t, out, `"Name": "FoldUnderTest"`)
	assert.Contains(t, out, "rnafold.strategy")
	assert.Contains(t, out, "service.name")
	assert.Same(t, before, otel.GetTracerProvider(), "Shutdown restores the previous provider")
}

func TestTracerProviderShutdownWithoutSpans(t *testing.T) {
	var buf bytes.Buffer
	tp, err := NewTracerProvider(&buf, "rnafold", "test")
	require.NoError(t, err)
	require.NoError(t, tp.Shutdown(context.Background()))
	assert.Empty(t, buf.String())
}
