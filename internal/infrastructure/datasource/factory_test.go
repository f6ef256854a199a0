package datasource

import (
	"testing"
	"time"

	"github.com/hesab/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	live, err := New(config.DataSourceConfig{Mode: "live", BaseURL: "http://localhost:5000", Timeout: time.Second}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &HTTPSource{}, live)

	fixture, err := New(config.DataSourceConfig{Mode: "fixture"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &FixtureSource{}, fixture)

	_, err = New(config.DataSourceConfig{Mode: "mock"}, zap.NewNop())
	assert.ErrorContains(t, err, `unknown datasource mode "mock"`)
}
