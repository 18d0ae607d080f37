package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), "repscan", "test", "")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupEnabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), "repscan", "test", "http://127.0.0.1:4318/v1/traces")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// nothing was exported, so flushing on a dead context returns quickly
	_ = shutdown(ctx)
}
