package file

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPersistenceAcceptsFileURL(t *testing.T) {
	dir := t.TempDir()

	p := NewPersistence("file://" + dir)
	require.NoError(t, p.HealthCheck(context.Background()))
	require.NoError(t, p.Close(context.Background()))
}

func TestHealthCheckFailsForMissingRoot(t *testing.T) {
	p := NewPersistence("/nonexistent/courseloom-data")

	assert.Error(t, p.HealthCheck(context.Background()))
}
