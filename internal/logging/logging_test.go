package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zapcore.DebugLevel, levelFromString("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, levelFromString("warning"))
	assert.Equal(t, zapcore.ErrorLevel, levelFromString("error"))
	assert.Equal(t, zapcore.InfoLevel, levelFromString("bogus"))
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core).Sugar().With("request_id", "r-1")

	ctx := IntoContext(context.Background(), l)
	FromContext(ctx).Infow("hello", "status", 200)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "hello", entry.Message)
	assert.Equal(t, "r-1", entry.ContextMap()["request_id"])
	assert.EqualValues(t, 200, entry.ContextMap()["status"])
}

func TestFromContext_DefaultsToGlobal(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, FromContext(context.Background()))
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")

	l, err := New(Config{Level: "info", File: path})
	require.NoError(t, err)
	l.Infow("file_entry", "k", "v")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file_entry")
}
