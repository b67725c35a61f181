package tracing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointHost(t *testing.T) {
	tests := map[string]string{
		"http://localhost:4318": "localhost:4318",
		"https://otel.internal": "otel.internal",
		"collector:4318":        "collector:4318",
	}
	for in, want := range tests {
		if got := endpointHost(in); got != want {
			t.Errorf("endpointHost(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInit_WithoutEndpointIsNoop(t *testing.T) {
	require.NoError(t, Init(context.Background(), Config{}))

	_, span := Tracer("test").Start(context.Background(), "db.acquire")
	defer span.End()
	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, Shutdown(context.Background()))
}

func TestInit_WithEndpointRecordsSpans(t *testing.T) {
	// Nothing listens here; spans are only exported on flush.
	err := Init(context.Background(), Config{
		Endpoint:    "http://127.0.0.1:1",
		ServiceName: "ventanilla-test",
		Insecure:    true,
	})
	require.NoError(t, err)

	_, span := Tracer("test").Start(context.Background(), "db.acquire")
	assert.True(t, span.SpanContext().IsValid())
	assert.True(t, span.IsRecording())
	span.End()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_ = Shutdown(ctx) // export to the closed port fails; only the state reset matters

	_, after := Tracer("test").Start(context.Background(), "db.acquire")
	defer after.End()
	assert.False(t, after.SpanContext().IsValid())
}
