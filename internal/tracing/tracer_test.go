package tracing

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderDisabled(t *testing.T) {
	provider, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err)

	assert.False(t, provider.Enabled())
	assert.NotNil(t, provider.Tracer())
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProviderFileExporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "traces.jsonl")

	provider, err := NewProvider(Config{
		Enabled:  true,
		Exporter: "file",
		FilePath: path,
	})
	require.NoError(t, err)
	assert.True(t, provider.Enabled())

	_, span := provider.Tracer().Start(context.Background(), "test-span")
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))

	data, err := os.ReadFile(path) // #nosec G304 -- temp path
	require.NoError(t, err)

	var record SpanRecord
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "test-span", record.Name)
	assert.NotEmpty(t, record.TraceID)
	assert.NotEmpty(t, record.SpanID)
}

func TestNewProviderFileExporterRequiresPath(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "file"})
	assert.Error(t, err)
}

func TestNewProviderUnknownExporter(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "kafka"})
	assert.Error(t, err)
}

func TestNewProviderNoneExporter(t *testing.T) {
	provider, err := NewProvider(Config{Enabled: true, Exporter: "none"})
	require.NoError(t, err)
	assert.True(t, provider.Enabled())
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "file", cfg.Exporter)
	assert.Equal(t, "lariat", cfg.ServiceName)
	assert.Equal(t, 1.0, cfg.SampleRate)
}
