package tracer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledTracerShutdownIsNoop(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "false")
	shutdown := InitTracer("alignai-backend")
	assert.NoError(t, shutdown(context.Background()))
}
