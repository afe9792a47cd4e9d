package telemetry

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/agentsynergy/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	shutdown := Setup(context.Background(), "test", logging.Nop())

	assert.NoError(t, shutdown(context.Background()))
}
